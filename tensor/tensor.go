// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/revad/autodiff"
	"github.com/born-ml/revad/internal/tensor"
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3} is a 2×3 matrix, Shape{} a zero-dimensional value.
type Shape = tensor.Shape

// Dense is a plain float64 array.
type Dense = tensor.Dense

// Array is an array of autodiff Variables.
type Array = tensor.Array

// Operand is anything that can take part in Array arithmetic:
// *Array, *Dense, Scalar, or the result of Shared.
type Operand = tensor.Operand

// Scalar is a plain number broadcast against any shape.
type Scalar = tensor.Scalar

// Reduction is the result of a reduction that may collapse to a scalar.
type Reduction = tensor.Reduction

// ErrShapeMismatch is returned by Array.Assign for a Dense of another shape.
var ErrShapeMismatch = tensor.ErrShapeMismatch

// BroadcastShapes returns the broadcast shape of a and b.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}

// Dense constructors

// FromSlice creates a Dense from row-major data.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice(data []float64, shape Shape) *Dense {
	return tensor.MustFromSlice(data, shape)
}

// Zeros creates a zero-filled Dense.
func Zeros(shape Shape) *Dense {
	return tensor.Zeros(shape)
}

// Full creates a Dense filled with value.
func Full(shape Shape, value float64) *Dense {
	return tensor.Full(shape, value)
}

// Randn creates a Dense of standard normal samples drawn from rng.
func Randn(shape Shape, rng *rand.Rand) *Dense {
	return tensor.Randn(shape, rng)
}

// Array constructors

// FromDense promotes every element of d to a fresh leaf Variable.
func FromDense(d *Dense) *Array {
	return tensor.FromDense(d)
}

// FromValues creates an Array of fresh leaves from row-major values.
func FromValues(values []float64, shape Shape) (*Array, error) {
	return tensor.FromValues(values, shape)
}

// FromVariables wraps existing Variables without copying them.
func FromVariables(vars []*autodiff.Variable, shape Shape) (*Array, error) {
	return tensor.FromVariables(vars, shape)
}

// Shared broadcasts one Variable by reference.
func Shared(v *autodiff.Variable) Operand {
	return tensor.Shared(v)
}

// Operations

// Add returns a + b, broadcasting.
func Add(a, b Operand) *Array { return tensor.Add(a, b) }

// Sub returns a - b, broadcasting.
func Sub(a, b Operand) *Array { return tensor.Sub(a, b) }

// Mul returns a * b, broadcasting.
func Mul(a, b Operand) *Array { return tensor.Mul(a, b) }

// Div returns a / b, broadcasting.
func Div(a, b Operand) *Array { return tensor.Div(a, b) }

// Pow returns a ** b, broadcasting.
func Pow(a, b Operand) *Array { return tensor.Pow(a, b) }

// Dot follows NumPy dot semantics for 1-D and 2-D operands.
func Dot(a, b Operand) Reduction { return tensor.Dot(a, b) }
