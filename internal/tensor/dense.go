package tensor

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/born-ml/revad/internal/variable"
)

// Dense is a plain N-dimensional array of float64 values in row-major
// order. It carries no graph: it is what Array.Evaluate and Array.Gradient
// return, and what Array.Assign consumes.
//
// As an Operand, every element use is promoted to a new independent
// Variable.
type Dense struct {
	shape   Shape
	strides []int
	data    []float64
}

// FromSlice creates a Dense array from a Go slice.
// The slice is copied.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	d := newDense(shape)
	copy(d.data, data)
	return d, nil
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice(data []float64, shape Shape) *Dense {
	d, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return d
}

// Zeros creates a Dense array filled with zeros.
func Zeros(shape Shape) *Dense {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return newDense(shape)
}

// Full creates a Dense array filled with value.
func Full(shape Shape, value float64) *Dense {
	d := Zeros(shape)
	for i := range d.data {
		d.data[i] = value
	}
	return d
}

// Randn creates a Dense array of standard normal samples drawn from rng.
func Randn(shape Shape, rng *rand.Rand) *Dense {
	d := Zeros(shape)
	for i := range d.data {
		d.data[i] = rng.NormFloat64()
	}
	return d
}

func newDense(shape Shape) *Dense {
	return &Dense{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    make([]float64, shape.NumElements()),
	}
}

// Shape returns the array's shape.
func (d *Dense) Shape() Shape {
	return d.shape
}

// NumElements returns the total number of elements.
func (d *Dense) NumElements() int {
	return len(d.data)
}

// Data returns the underlying row-major storage.
//
// WARNING: Modifications to the returned slice modify the array.
func (d *Dense) Data() []float64 {
	return d.data
}

// At returns the element at the given indices.
func (d *Dense) At(indices ...int) float64 {
	return d.data[flatOffset(d.shape, d.strides, indices)]
}

// Set stores value at the given indices.
func (d *Dense) Set(value float64, indices ...int) {
	d.data[flatOffset(d.shape, d.strides, indices)] = value
}

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	c := newDense(d.shape)
	copy(c.data, d.data)
	return c
}

// Scale returns a new array with every element multiplied by factor.
func (d *Dense) Scale(factor float64) *Dense {
	out := newDense(d.shape)
	for i, v := range d.data {
		out.data[i] = factor * v
	}
	return out
}

// AddScaled returns d + factor*other. Shapes must match.
func (d *Dense) AddScaled(other *Dense, factor float64) *Dense {
	if !d.shape.Equal(other.shape) {
		panic(fmt.Sprintf("addscaled: shape mismatch %v vs %v", d.shape, other.shape))
	}
	out := newDense(d.shape)
	for i, v := range d.data {
		out.data[i] = v + factor*other.data[i]
	}
	return out
}

// AllClose reports whether both arrays have the same shape and every pair of
// elements differs by at most atol.
func (d *Dense) AllClose(other *Dense, atol float64) bool {
	if !d.shape.Equal(other.shape) {
		return false
	}
	for i, v := range d.data {
		if math.Abs(v-other.data[i]) > atol {
			return false
		}
	}
	return true
}

// String formats the array with nested brackets.
func (d *Dense) String() string {
	return formatNested(d.shape, func(i int) string {
		return fmt.Sprintf("%v", d.data[i])
	})
}

// Operand implementation: each use is a fresh leaf.
func (d *Dense) operandShape() Shape { return d.shape }

func (d *Dense) node(i int) *variable.Variable {
	return variable.New(d.data[i])
}

// flatOffset converts indices into a flat offset, panicking when they are
// out of bounds.
func flatOffset(shape Shape, strides, indices []int) int {
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// formatNested renders a row-major array with one bracket level per
// dimension.
func formatNested(shape Shape, elem func(i int) string) string {
	if len(shape) == 0 {
		return elem(0)
	}
	var sb strings.Builder
	strides := shape.ComputeStrides()
	var walk func(dim, offset int)
	walk = func(dim, offset int) {
		sb.WriteByte('[')
		for i := 0; i < shape[dim]; i++ {
			if i > 0 {
				sb.WriteByte(' ')
			}
			if dim == len(shape)-1 {
				sb.WriteString(elem(offset + i))
			} else {
				walk(dim+1, offset+i*strides[dim])
			}
		}
		sb.WriteByte(']')
	}
	walk(0, 0)
	return sb.String()
}
