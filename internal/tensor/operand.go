package tensor

import "github.com/born-ml/revad/internal/variable"

// Operand is anything that broadcasts against an Array in elementwise
// arithmetic: *Array, *Dense, Scalar and Shared.
//
// node(i) yields the Variable for flat index i of the operand's own storage.
// Raw numbers are promoted on every call, so a number broadcast over n
// elements becomes n distinct leaves. Only Array and Shared hand out the same
// node more than once.
type Operand interface {
	operandShape() Shape
	node(i int) *variable.Variable
}

// Scalar is a bare number broadcast against every element.
type Scalar float64

func (s Scalar) operandShape() Shape { return Shape{} }

func (s Scalar) node(int) *variable.Variable {
	return variable.New(float64(s))
}

// Shared broadcasts a single Variable by reference: every element of the
// result depends on the same node.
func Shared(v *variable.Variable) Operand {
	return shared{v: v}
}

type shared struct {
	v *variable.Variable
}

func (s shared) operandShape() Shape { return Shape{} }

func (s shared) node(int) *variable.Variable { return s.v }
