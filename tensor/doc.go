// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides arrays of autodiff Variables with NumPy-style
// broadcasting.
//
// # Overview
//
// Two array types live here:
//   - Dense: plain float64 data, used for inputs, targets and gradients
//   - Array: one autodiff.Variable per element, differentiable
//
// Arithmetic on an Array applies the scalar operation per element and returns
// a new Array. Dense operands and Scalar values are promoted to fresh leaves
// on every use; wrap a Variable with Shared to reuse one node across every
// element.
//
// # Basic Usage
//
//	import "github.com/born-ml/revad/tensor"
//
//	func main() {
//	    w, _ := tensor.FromValues([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    x := tensor.MustFromSlice([]float64{1, 0, 0, 1}, tensor.Shape{2, 2})
//
//	    loss := w.MatMul(x).Tanh().Pow(tensor.Scalar(2)).Sum()
//	    grad := w.Gradient(loss) // *Dense, same shape as w
//	}
//
// # Reductions
//
// Sum and Mean collapse an Array to a single Variable. SumDim and Dot return
// a Reduction, which is a Variable when the result has no dimensions left
// and an Array otherwise.
//
// # Mutation
//
// Array.Assign replaces leaf values in place. Graphs built earlier keep their
// recorded values; rebuild them to see the new inputs.
package tensor
