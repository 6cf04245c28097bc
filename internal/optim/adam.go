package optim

import (
	"fmt"
	"math"

	"github.com/born-ml/revad/internal/tensor"
	"github.com/born-ml/revad/internal/variable"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int                   // Timestep for bias correction
	m     map[int]*tensor.Dense // First moment, by parameter position
	v     map[int]*tensor.Dense // Second moment, by parameter position
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Running average coefficients (default: [0.9, 0.999])
	Eps   float64    // Denominator term (default: 1e-8)
}

// NewAdam creates a new Adam optimizer, filling in default hyperparameters.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam{
		lr:    config.LR,
		beta1: config.Betas[0],
		beta2: config.Betas[1],
		eps:   config.Eps,
		m:     make(map[int]*tensor.Dense),
		v:     make(map[int]*tensor.Dense),
	}
}

// Step performs one Adam update on every parameter.
func (a *Adam) Step(params []Parameter, loss *variable.Variable) error {
	a.t++
	bc1 := 1 - math.Pow(a.beta1, float64(a.t))
	bc2 := 1 - math.Pow(a.beta2, float64(a.t))

	for i, param := range params {
		grad, err := gradient(param, loss)
		if err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}

		m := a.moment(a.m, i, grad.Shape())
		v := a.moment(a.v, i, grad.Shape())

		update := tensor.Zeros(grad.Shape())
		md, vd, ud := m.Data(), v.Data(), update.Data()
		for j, g := range grad.Data() {
			md[j] = a.beta1*md[j] + (1-a.beta1)*g
			vd[j] = a.beta2*vd[j] + (1-a.beta2)*g*g
			mHat := md[j] / bc1
			vHat := vd[j] / bc2
			ud[j] = a.lr * mHat / (math.Sqrt(vHat) + a.eps)
		}

		next, err := descend(param, update)
		if err != nil {
			return fmt.Errorf("parameter %d: %w", i, err)
		}
		params[i] = next
	}
	return nil
}

// moment returns the state buffer for parameter i, resetting it when the
// parameter's shape changed.
func (a *Adam) moment(state map[int]*tensor.Dense, i int, shape tensor.Shape) *tensor.Dense {
	buf, ok := state[i]
	if !ok || !buf.Shape().Equal(shape) {
		buf = tensor.Zeros(shape)
		state[i] = buf
	}
	return buf
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam) SetLR(lr float64) {
	a.lr = lr
}
