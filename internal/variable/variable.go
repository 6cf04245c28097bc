// Package variable implements scalar reverse-mode automatic differentiation.
//
// A Variable is a node in an expression graph: either an independent leaf
// holding a value, or a composite built by an arithmetic operator from one or
// two operand Variables. Derivatives of any node with respect to any ancestor
// are computed by walking the graph from the node down to the leaves and
// applying the chain rule for each operator (see chain.go).
//
// Lifecycle:
//   - Leaves are mutable cells: Assign replaces their value.
//   - Composites are immutable snapshots. Their value is computed once, at
//     construction, from the operand values at that instant.
//   - Nothing propagates. After assigning to a leaf, rebuild every composite
//     that should observe the new value.
//
// Nodes are compared by identity (pointer), never by value.
//
// Example:
//
//	x := variable.New(2)
//	y := variable.New(3)
//	z := x.Mul(y).Add(variable.Const(1)) // z = x*y + 1
//	z.Derivative(x)                      // 3
//	z.Derivative(y)                      // 2
package variable

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidMutation is returned when assigning to a composite Variable.
var ErrInvalidMutation = errors.New("cannot assign to dependent variable")

// Variable is a scalar expression node.
//
// Invariant: op == OpNone if and only if operands is empty.
type Variable struct {
	value    float64
	op       Op
	operands []*Variable // Operand order matters for sub, div and pow
}

// New creates an independent Variable with the given value.
func New(value float64) *Variable {
	return &Variable{value: value}
}

// newComposite creates a dependent Variable. The value must already be
// computed from the operand values.
func newComposite(value float64, op Op, operands ...*Variable) *Variable {
	return &Variable{
		value:    value,
		op:       op,
		operands: operands,
	}
}

// Value returns the cached value of v.
func (v *Variable) Value() float64 {
	return v.value
}

// Evaluate returns the current value assigned to v.
// Composite values are those computed when the node was built.
func (v *Variable) Evaluate() float64 {
	return v.value
}

// Op returns the operator that produced v (OpNone for leaves).
func (v *Variable) Op() Op {
	return v.op
}

// Operands returns a copy of v's operand list.
func (v *Variable) Operands() []*Variable {
	if len(v.operands) == 0 {
		return nil
	}
	out := make([]*Variable, len(v.operands))
	copy(out, v.operands)
	return out
}

// IsLeaf reports whether v is an independent variable.
func (v *Variable) IsLeaf() bool {
	return v.op == OpNone
}

// Assign replaces the value of an independent variable.
//
// Composites already built from v keep their old values; they must be
// constructed again to observe the change.
func (v *Variable) Assign(value float64) error {
	if !v.IsLeaf() {
		return fmt.Errorf("assign %v: %w", value, ErrInvalidMutation)
	}
	v.value = value
	return nil
}

// Derivative evaluates dv/dtarget at the current graph values.
//
// Algorithm:
//  1. If v is target itself, the derivative is 1, or -1 when v's own
//     operator is negation.
//  2. Else if v is a leaf, it does not depend on target: 0.
//  3. Otherwise apply the chain rule for v's operator, which recurses into
//     the operands.
//
// Nothing is cached between calls. A sub-graph reachable along k paths is
// walked k times.
func (v *Variable) Derivative(target *Variable) float64 {
	if v == target {
		if v.op == OpNeg {
			return -1
		}
		return 1
	}
	if v.IsLeaf() {
		return 0
	}
	return chain(v.op, v.operands, target)
}

// Gradient evaluates the derivative of other with respect to v.
func (v *Variable) Gradient(other *Variable) float64 {
	return other.Derivative(v)
}

// Neg returns -v.
func (v *Variable) Neg() *Variable {
	return newComposite(-v.value, OpNeg, v)
}

// Add returns v + other.
func (v *Variable) Add(other Operand) *Variable {
	o := Promote(other)
	return newComposite(v.value+o.value, OpAdd, v, o)
}

// Sub returns v - other.
func (v *Variable) Sub(other Operand) *Variable {
	o := Promote(other)
	return newComposite(v.value-o.value, OpSub, v, o)
}

// Mul returns v * other.
func (v *Variable) Mul(other Operand) *Variable {
	o := Promote(other)
	return newComposite(v.value*o.value, OpMul, v, o)
}

// Div returns v / other using floating point division.
func (v *Variable) Div(other Operand) *Variable {
	o := Promote(other)
	return newComposite(v.value/o.value, OpDiv, v, o)
}

// Pow returns v raised to the power other.
func (v *Variable) Pow(other Operand) *Variable {
	o := Promote(other)
	return newComposite(math.Pow(v.value, o.value), OpPow, v, o)
}

// Tanh returns the hyperbolic tangent of v.
func (v *Variable) Tanh() *Variable {
	return newComposite(math.Tanh(v.value), OpTanh, v)
}

// String returns a short representation of v.
func (v *Variable) String() string {
	return fmt.Sprintf("<var = %v>", v.value)
}

// TreeString renders v's dependency tree, one node per line, indented by
// depth.
//
// Example for (x + 2) with x = 1:
//
//	3 = add:
//	 1
//	 2
func (v *Variable) TreeString() string {
	var sb strings.Builder
	v.writeTree(&sb, 0)
	return sb.String()
}

func (v *Variable) writeTree(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat(" ", depth))
	fmt.Fprintf(sb, "%v", v.value)
	if v.IsLeaf() {
		return
	}
	fmt.Fprintf(sb, " = %s:", v.op)
	for _, operand := range v.operands {
		sb.WriteByte('\n')
		operand.writeTree(sb, depth+1)
	}
}
