package tensor

import (
	"fmt"
	"slices"
)

// Shape represents the dimensions of an array.
// The empty shape describes a zero-dimensional value holding one element.
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return slices.Clone(s)
}

// ComputeStrides calculates row-major strides: stride[i] is the product of
// all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = step
		step *= s[i]
	}
	return strides
}

// normalizeDim resolves a negative dimension index against ndim.
func normalizeDim(op string, dim, ndim int) int {
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("%s: dimension %d out of range for %dD array", op, dim, ndim))
	}
	return dim
}

// BroadcastShapes applies NumPy broadcasting rules to two shapes.
//
// Shapes are compared right to left. Two dimensions are compatible when they
// are equal or one of them is 1; missing leading dimensions count as 1.
//
//	(3, 1) + (3, 5) → (3, 5)
//	(5)    + (3, 5) → (3, 5)
//	()     + (2, 2) → (2, 2)
//	(3, 4) + (3, 5) → error
func BroadcastShapes(a, b Shape) (Shape, error) {
	n := max(len(a), len(b))
	out := make(Shape, n)

	for i := 1; i <= n; i++ {
		aDim, bDim := 1, 1
		if len(a)-i >= 0 {
			aDim = a[len(a)-i]
		}
		if len(b)-i >= 0 {
			bDim = b[len(b)-i]
		}

		switch {
		case aDim == bDim, bDim == 1:
			out[n-i] = aDim
		case aDim == 1:
			out[n-i] = bDim
		default:
			return nil, fmt.Errorf("shapes %v and %v not compatible for broadcasting (dimension %d: %d vs %d)",
				a, b, n-i, aDim, bDim)
		}
	}

	return out, nil
}

// broadcastStrides computes strides that map an index in outShape back into
// an array of shape in. Broadcast and padded dimensions get stride 0.
func broadcastStrides(in, outShape Shape) []int {
	strides := make([]int, len(outShape))
	offset := len(outShape) - len(in)
	inStrides := in.ComputeStrides()

	for i := range outShape {
		j := i - offset
		if j < 0 || in[j] == 1 {
			continue
		}
		strides[i] = inStrides[j]
	}
	return strides
}

// sourceIndex converts a flat output index into the flat index of a source
// array whose broadcast strides are inStrides.
func sourceIndex(outIdx int, outStrides, inStrides []int) int {
	idx := 0
	for d, stride := range outStrides {
		coord := outIdx / stride
		outIdx %= stride
		idx += coord * inStrides[d]
	}
	return idx
}
