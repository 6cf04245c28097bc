package tensor

import (
	"fmt"

	"github.com/born-ml/revad/internal/variable"
)

type binaryFunc func(a, b *variable.Variable) *variable.Variable

// broadcast applies fn to every pair of broadcast elements of a and b.
// Incompatible shapes panic, as with any malformed arithmetic expression.
func broadcast(name string, a, b Operand, fn binaryFunc) *Array {
	aShape, bShape := a.operandShape(), b.operandShape()
	outShape, err := BroadcastShapes(aShape, bShape)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	out := newArray(outShape)

	// Fast path: identical shapes need no index translation.
	if aShape.Equal(bShape) {
		for i := range out.data {
			out.data[i] = fn(a.node(i), b.node(i))
		}
		return out
	}

	aStrides := broadcastStrides(aShape, outShape)
	bStrides := broadcastStrides(bShape, outShape)
	for i := range out.data {
		ai := sourceIndex(i, out.strides, aStrides)
		bi := sourceIndex(i, out.strides, bStrides)
		out.data[i] = fn(a.node(ai), b.node(bi))
	}
	return out
}

// Add returns a + b elementwise.
func Add(a, b Operand) *Array {
	return broadcast("add", a, b, func(x, y *variable.Variable) *variable.Variable { return x.Add(y) })
}

// Sub returns a - b elementwise.
func Sub(a, b Operand) *Array {
	return broadcast("sub", a, b, func(x, y *variable.Variable) *variable.Variable { return x.Sub(y) })
}

// Mul returns a * b elementwise.
func Mul(a, b Operand) *Array {
	return broadcast("mul", a, b, func(x, y *variable.Variable) *variable.Variable { return x.Mul(y) })
}

// Div returns a / b elementwise.
func Div(a, b Operand) *Array {
	return broadcast("div", a, b, func(x, y *variable.Variable) *variable.Variable { return x.Div(y) })
}

// Pow returns a ** b elementwise.
func Pow(a, b Operand) *Array {
	return broadcast("pow", a, b, func(x, y *variable.Variable) *variable.Variable { return x.Pow(y) })
}

// Add returns a + other elementwise.
func (a *Array) Add(other Operand) *Array { return Add(a, other) }

// Sub returns a - other elementwise.
func (a *Array) Sub(other Operand) *Array { return Sub(a, other) }

// Mul returns a * other elementwise.
func (a *Array) Mul(other Operand) *Array { return Mul(a, other) }

// Div returns a / other elementwise.
func (a *Array) Div(other Operand) *Array { return Div(a, other) }

// Pow returns a ** other elementwise.
func (a *Array) Pow(other Operand) *Array { return Pow(a, other) }

// Neg returns -a elementwise.
func (a *Array) Neg() *Array {
	return a.apply((*variable.Variable).Neg)
}

// Tanh returns tanh(a) elementwise.
func (a *Array) Tanh() *Array {
	return a.apply((*variable.Variable).Tanh)
}

func (a *Array) apply(fn func(*variable.Variable) *variable.Variable) *Array {
	out := newArray(a.shape)
	for i, v := range a.data {
		out.data[i] = fn(v)
	}
	return out
}
