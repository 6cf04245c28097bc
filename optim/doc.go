// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based optimizers over expression graphs.
//
// # Overview
//
// This package contains:
//   - GradientDescent: the plain descent driver
//   - SGD: gradient descent with optional momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/revad/autodiff"
//	    "github.com/born-ml/revad/optim"
//	    "github.com/born-ml/revad/tensor"
//	)
//
//	func main() {
//	    w := tensor.FromDense(tensor.Zeros(tensor.Shape{1, 3}))
//	    params := []optim.Parameter{w}
//
//	    errorFn := func(p []optim.Parameter) *autodiff.Variable {
//	        pred := p[0].(*tensor.Array).MatMul(x)
//	        return pred.Sub(y).Pow(tensor.Scalar(2)).Mean()
//	    }
//
//	    errors, err := optim.GradientDescent(params, errorFn, optim.DescentConfig{
//	        Iterations: 100,
//	        LR:         0.1,
//	    })
//	}
//
// # Parameter Updates
//
// Steps never mutate parameter nodes. Each step replaces params[i] with a new
// node param - lr*update, so the error function must rebuild its graph from
// the slice it is given on every call.
package optim
