package tensor

import "fmt"

// Reshape returns an Array with the same elements in a new shape.
// The elements are shared; no graph nodes are created.
func (a *Array) Reshape(shape ...int) *Array {
	newShape := Shape(shape)
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	if newShape.NumElements() != len(a.data) {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) into %v", a.shape, len(a.data), newShape))
	}
	out := newArray(newShape)
	copy(out.data, a.data)
	return out
}

// Transpose returns the transpose of a 2D Array. Elements are shared.
func (a *Array) Transpose() *Array {
	if len(a.shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D arrays supported, got %dD", len(a.shape)))
	}
	rows, cols := a.shape[0], a.shape[1]
	out := newArray(Shape{cols, rows})
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.data[j*rows+i] = a.data[i*cols+j]
		}
	}
	return out
}
