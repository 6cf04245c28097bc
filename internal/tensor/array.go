package tensor

import (
	"errors"
	"fmt"

	"github.com/born-ml/revad/internal/parallel"
	"github.com/born-ml/revad/internal/variable"
)

// ErrShapeMismatch is returned when a bulk assignment's source shape differs
// from the target array's shape.
var ErrShapeMismatch = errors.New("assigning values of different shape")

// Array is a fixed-shape N-dimensional container of Variables.
//
// Arithmetic on Arrays is elementwise with NumPy broadcasting: element i of
// a.Mul(b) is the Variable a[i].Mul(b[i]). Reductions that remove every
// dimension yield a bare *variable.Variable instead of a zero-dimensional
// Array (see Reduction).
//
// Example:
//
//	x := variable.New(2)
//	y := variable.New(3)
//	v, _ := tensor.FromVariables([]*variable.Variable{x, y}, tensor.Shape{2})
//	z := v.Mul(v).Sum()  // x² + y²
//	v.Gradient(z)        // [4 6]
type Array struct {
	shape   Shape
	strides []int
	data    []*variable.Variable
}

// FromDense creates an Array of independent Variables, one per value.
func FromDense(d *Dense) *Array {
	a := newArray(d.shape)
	for i, v := range d.data {
		a.data[i] = variable.New(v)
	}
	return a
}

// FromValues creates an Array of independent Variables from a Go slice.
func FromValues(values []float64, shape Shape) (*Array, error) {
	d, err := FromSlice(values, shape)
	if err != nil {
		return nil, err
	}
	return FromDense(d), nil
}

// FromVariables packs existing Variables into an Array.
// The Variables are shared, not copied.
func FromVariables(vars []*variable.Variable, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(vars) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(vars))
	}
	a := newArray(shape)
	copy(a.data, vars)
	return a, nil
}

func newArray(shape Shape) *Array {
	return &Array{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    make([]*variable.Variable, shape.NumElements()),
	}
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return len(a.data)
}

// At returns the Variable at the given indices.
func (a *Array) At(indices ...int) *variable.Variable {
	return a.data[flatOffset(a.shape, a.strides, indices)]
}

// Flat returns the Variable at row-major position i.
func (a *Array) Flat(i int) *variable.Variable {
	return a.data[i]
}

// Variables returns a copy of the elements in row-major order.
func (a *Array) Variables() []*variable.Variable {
	out := make([]*variable.Variable, len(a.data))
	copy(out, a.data)
	return out
}

// Assign stores each value of d into the corresponding element.
//
// Fails with ErrShapeMismatch if shapes differ, and with
// variable.ErrInvalidMutation at the first composite element. Elements
// before that one have already been assigned.
func (a *Array) Assign(d *Dense) error {
	if !a.shape.Equal(d.shape) {
		return fmt.Errorf("assign %v to %v: %w", d.shape, a.shape, ErrShapeMismatch)
	}
	for i, v := range d.data {
		if err := a.data[i].Assign(v); err != nil {
			return fmt.Errorf("assign element %d: %w", i, err)
		}
	}
	return nil
}

// Evaluate returns the current element values.
func (a *Array) Evaluate() *Dense {
	out := newDense(a.shape)
	for i, v := range a.data {
		out.data[i] = v.Value()
	}
	return out
}

// Gradient evaluates the derivative of v with respect to every element.
// Entry i of the result is v.Derivative(a[i]).
//
// Each entry is an independent read-only walk of v's graph, so entries are
// computed in parallel for large arrays. Results do not depend on the
// worker count.
func (a *Array) Gradient(v *variable.Variable) *Dense {
	out := newDense(a.shape)
	parallel.For(len(a.data), func(i int) {
		out.data[i] = v.Derivative(a.data[i])
	}, parallel.DefaultConfig())
	return out
}

// String formats the element values with nested brackets.
func (a *Array) String() string {
	return formatNested(a.shape, func(i int) string {
		return fmt.Sprintf("%v", a.data[i].Value())
	})
}

// Operand implementation: elements are handed out by reference.
func (a *Array) operandShape() Shape { return a.shape }

func (a *Array) node(i int) *variable.Variable { return a.data[i] }
