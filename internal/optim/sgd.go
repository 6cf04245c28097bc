package optim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/born-ml/revad/internal/tensor"
	"github.com/born-ml/revad/internal/variable"
)

// SGD implements gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
//
// Velocities are tracked by parameter position, since every step replaces
// the parameter nodes themselves.
type SGD struct {
	lr         float64
	momentum   float64
	velocities map[int]*tensor.Dense
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return newSGD(config.LR, config.Momentum)
}

// newSGD uses lr as given, zero included.
func newSGD(lr, momentum float64) *SGD {
	return &SGD{
		lr:         lr,
		momentum:   momentum,
		velocities: make(map[int]*tensor.Dense),
	}
}

// Step replaces every parameter with param - lr*update.
func (s *SGD) Step(params []Parameter, loss *variable.Variable) error {
	for i, param := range params {
		grad, err := gradient(param, loss)
		if err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}

		update := grad
		if s.momentum != 0 {
			update = s.updateVelocity(i, grad)
		}

		next, err := descend(param, update.Scale(s.lr))
		if err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
		params[i] = next
	}
	return nil
}

func (s *SGD) updateVelocity(i int, grad *tensor.Dense) *tensor.Dense {
	velocity, exists := s.velocities[i]
	if !exists || !velocity.Shape().Equal(grad.Shape()) {
		velocity = tensor.Zeros(grad.Shape())
	}
	velocity = velocity.Scale(s.momentum).AddScaled(grad, 1)
	s.velocities[i] = velocity
	return velocity
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}

// DescentConfig configures GradientDescent.
type DescentConfig struct {
	Iterations int
	LR         float64     // Learning rate, used as given (0 leaves parameters unchanged)
	Momentum   float64     // Optional momentum
	Logger     *zap.Logger // Per-iteration error; nil disables logging
}

// GradientDescent minimizes errorFn over params with plain gradient descent.
//
// Each iteration builds e = errorFn(params), records e, and replaces every
// parameter p with p - lr*p.Gradient(e). Returns the recorded error nodes,
// one per iteration. params holds the learned parameters on return.
//
// No randomness is involved: identical inputs give bit-identical errors.
func GradientDescent(params []Parameter, errorFn ErrorFunc, cfg DescentConfig) ([]*variable.Variable, error) {
	opt := newSGD(cfg.LR, cfg.Momentum)
	return Minimize(opt, params, errorFn, cfg.Iterations, cfg.Logger)
}
