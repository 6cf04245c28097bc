// Package optim implements gradient-based optimization over expression
// graphs.
//
// Parameters are Variables or Arrays. Every step replaces each parameter
// with a new graph node (param - lr*update); nothing is mutated in place, so
// the error function must rebuild its graph from the current parameters on
// every call.
//
// Example usage:
//
//	W := tensor.FromDense(tensor.Zeros(tensor.Shape{2, 2}))
//	params := []optim.Parameter{W}
//
//	errorFn := func(p []optim.Parameter) *variable.Variable {
//	    w := p[0].(*tensor.Array)
//	    return w.MatMul(X).Sub(Y).Pow(tensor.Scalar(2)).Sum()
//	}
//
//	errors, err := optim.GradientDescent(params, errorFn, optim.DescentConfig{
//	    Iterations: 10,
//	    LR:         0.01,
//	})
package optim

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/revad/internal/tensor"
	"github.com/born-ml/revad/internal/variable"
)

// Common errors.
var (
	ErrUnsupportedParameter = errors.New("parameter must be *variable.Variable or *tensor.Array")
	ErrInvalidConfig        = errors.New("invalid optimizer configuration")
)

// Parameter is a trainable value: a *variable.Variable or a *tensor.Array.
type Parameter any

// ErrorFunc builds a fresh error node from the current parameters.
type ErrorFunc func(params []Parameter) *variable.Variable

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step replaces every parameter in params with its updated value,
	// using gradients of loss taken with respect to the current parameters.
	Step(params []Parameter, loss *variable.Variable) error

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Minimize runs numIters optimization steps and returns the error node
// built at the start of each iteration.
//
// params is updated in place: on return it holds the final parameters. The
// returned nodes are not evaluated; call Evaluate on them for numbers.
// A nil logger disables progress logging.
func Minimize(opt Optimizer, params []Parameter, errorFn ErrorFunc, numIters int, logger *zap.Logger) ([]*variable.Variable, error) {
	if errorFn == nil {
		return nil, fmt.Errorf("nil error function: %w", ErrInvalidConfig)
	}
	if numIters < 0 {
		return nil, fmt.Errorf("negative iteration count %d: %w", numIters, ErrInvalidConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	errs := make([]*variable.Variable, 0, numIters)
	for i := 0; i < numIters; i++ {
		e := errorFn(params)
		if e == nil {
			return errs, fmt.Errorf("iteration %d: error function returned nil", i)
		}
		errs = append(errs, e)

		if err := opt.Step(params, e); err != nil {
			return errs, fmt.Errorf("iteration %d: %w", i, err)
		}

		logger.Info("iteration",
			zap.Int("iter", i),
			zap.Float64("error", e.Evaluate()),
			zap.Float64("lr", opt.GetLR()))
	}
	return errs, nil
}

// gradient evaluates d(loss)/d(param). Scalar parameters yield a
// zero-dimensional Dense.
func gradient(param Parameter, loss *variable.Variable) (*tensor.Dense, error) {
	switch p := param.(type) {
	case *variable.Variable:
		g := tensor.Zeros(tensor.Shape{})
		g.Data()[0] = p.Gradient(loss)
		return g, nil
	case *tensor.Array:
		return p.Gradient(loss), nil
	default:
		return nil, fmt.Errorf("%T: %w", param, ErrUnsupportedParameter)
	}
}

// descend returns param - update as a new graph node.
func descend(param Parameter, update *tensor.Dense) (Parameter, error) {
	switch p := param.(type) {
	case *variable.Variable:
		return p.Sub(variable.Const(update.Data()[0])), nil
	case *tensor.Array:
		return p.Sub(update), nil
	default:
		return nil, fmt.Errorf("%T: %w", param, ErrUnsupportedParameter)
	}
}
