// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"go.uber.org/zap"

	"github.com/born-ml/revad/autodiff"
	"github.com/born-ml/revad/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Parameter is a trainable value: a *autodiff.Variable or a *tensor.Array.
type Parameter = optim.Parameter

// ErrorFunc builds a fresh error node from the current parameters.
type ErrorFunc = optim.ErrorFunc

// Common errors.
var (
	ErrUnsupportedParameter = optim.ErrUnsupportedParameter
	ErrInvalidConfig        = optim.ErrInvalidConfig
)

// Minimize runs numIters steps of opt and returns one error node per
// iteration. params holds the learned parameters on return.
func Minimize(opt Optimizer, params []Parameter, errorFn ErrorFunc, numIters int, logger *zap.Logger) ([]*autodiff.Variable, error) {
	return optim.Minimize(opt, params, errorFn, numIters, logger)
}

// Gradient descent

// DescentConfig configures GradientDescent.
type DescentConfig = optim.DescentConfig

// GradientDescent minimizes errorFn with plain gradient descent.
//
// Example:
//
//	params := []optim.Parameter{w0, w1}
//	errors, err := optim.GradientDescent(params, errorFn, optim.DescentConfig{
//	    Iterations: 10,
//	    LR:         0.01,
//	})
func GradientDescent(params []Parameter, errorFn ErrorFunc, cfg DescentConfig) ([]*autodiff.Variable, error) {
	return optim.GradientDescent(params, errorFn, cfg)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	})
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}
