// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides scalar reverse-mode automatic differentiation.
//
// Every arithmetic operation on a Variable records a new node holding its
// value, the operation and its operands. Derivatives are computed on demand
// by walking the graph with the chain rule.
//
// Example:
//
//	import "github.com/born-ml/revad/autodiff"
//
//	func main() {
//	    x := autodiff.New(2)
//	    y := autodiff.New(3)
//	    z := x.Mul(y).Add(autodiff.Const(1)).Tanh()
//
//	    dzdx := z.Derivative(x)
//	    dzdy := y.Gradient(z) // same as z.Derivative(y)
//	}
package autodiff

import (
	"github.com/born-ml/revad/internal/variable"
)

// Variable is a node in an expression graph.
type Variable = variable.Variable

// Operand is anything that can take part in Variable arithmetic:
// a *Variable or a Const.
type Operand = variable.Operand

// Const is a plain number, promoted to a fresh leaf when used.
type Const = variable.Const

// Op identifies the operation that produced a Variable.
type Op = variable.Op

// Operation constants.
const (
	OpNone = variable.OpNone
	OpNeg  = variable.OpNeg
	OpAdd  = variable.OpAdd
	OpSub  = variable.OpSub
	OpMul  = variable.OpMul
	OpDiv  = variable.OpDiv
	OpPow  = variable.OpPow
	OpTanh = variable.OpTanh
)

// ErrInvalidMutation is returned when assigning to a non-leaf Variable.
var ErrInvalidMutation = variable.ErrInvalidMutation

// New creates a leaf Variable.
func New(value float64) *Variable {
	return variable.New(value)
}

// Add returns a + b. Use it when the left operand is a Const.
func Add(a, b Operand) *Variable { return variable.Add(a, b) }

// Sub returns a - b.
func Sub(a, b Operand) *Variable { return variable.Sub(a, b) }

// Mul returns a * b.
func Mul(a, b Operand) *Variable { return variable.Mul(a, b) }

// Div returns a / b.
func Div(a, b Operand) *Variable { return variable.Div(a, b) }

// Pow returns a ** b.
func Pow(a, b Operand) *Variable { return variable.Pow(a, b) }

// Neg returns -a.
func Neg(a Operand) *Variable { return variable.Neg(a) }

// Tanh returns tanh(a).
func Tanh(a Operand) *Variable { return variable.Tanh(a) }
