package tensor

import (
	"fmt"

	"github.com/born-ml/revad/internal/variable"
)

// Reduction is the result of a reducing operation. It holds either an Array
// or, when every dimension was reduced away, a bare scalar Variable. A
// zero-dimensional Array is never produced.
type Reduction struct {
	array  *Array
	scalar *variable.Variable
}

// reduced is the normalization hook every reduction passes its result
// through.
func reduced(out *Array) Reduction {
	if len(out.shape) == 0 {
		return Reduction{scalar: out.data[0]}
	}
	return Reduction{array: out}
}

// IsScalar reports whether the reduction collapsed to a single Variable.
func (r Reduction) IsScalar() bool {
	return r.scalar != nil
}

// Scalar returns the reduced Variable. Panics if the result is an Array.
func (r Reduction) Scalar() *variable.Variable {
	if r.scalar == nil {
		if r.array == nil {
			panic("reduction: empty result")
		}
		panic(fmt.Sprintf("reduction: result is an array of shape %v, not a scalar", r.array.shape))
	}
	return r.scalar
}

// Array returns the reduced Array. Panics if the result is a scalar.
func (r Reduction) Array() *Array {
	if r.array == nil {
		if r.scalar != nil {
			panic("reduction: result is a scalar, not an array")
		}
		panic("reduction: empty result")
	}
	return r.array
}

// Sum adds every element, left to right in row-major order, and returns the
// resulting scalar Variable.
func (a *Array) Sum() *variable.Variable {
	out := newArray(Shape{})
	out.data[0] = sumNodes(a.data)
	return reduced(out).Scalar()
}

// Mean returns Sum divided by the number of elements.
func (a *Array) Mean() *variable.Variable {
	return a.Sum().Div(variable.Const(float64(len(a.data))))
}

// SumDim sums along dim (negative values count from the end).
// Summing the only dimension of a 1-D array yields a scalar.
//
// Example:
//
//	x := tensor.FromDense(tensor.Zeros(tensor.Shape{2, 3}))
//	x.SumDim(-1).Array() // shape [2]
func (a *Array) SumDim(dim int) Reduction {
	ndim := len(a.shape)
	dim = normalizeDim("sumdim", dim, ndim)

	outShape := make(Shape, 0, ndim-1)
	for i, d := range a.shape {
		if i != dim {
			outShape = append(outShape, d)
		}
	}
	out := newArray(outShape)

	// keepDim layout: same rank with the reduced dimension set to 1.
	keepShape := a.shape.Clone()
	keepShape[dim] = 1
	keepStrides := keepShape.ComputeStrides()

	for i, v := range a.data {
		outIdx := 0
		rem := i
		for d, stride := range a.strides {
			coord := rem / stride
			rem %= stride
			if d != dim {
				outIdx += coord * keepStrides[d]
			}
		}
		if out.data[outIdx] == nil {
			out.data[outIdx] = v
		} else {
			out.data[outIdx] = out.data[outIdx].Add(v)
		}
	}

	return reduced(out)
}

// sumNodes folds nodes with Add, starting from the first element.
func sumNodes(nodes []*variable.Variable) *variable.Variable {
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = acc.Add(n)
	}
	return acc
}
