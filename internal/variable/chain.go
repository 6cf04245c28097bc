package variable

import (
	"fmt"
	"math"
)

// Chain rules, one per operator.
//
// Each rule differentiates a composite node with respect to v using the
// operands' current values and recursing into the operands' Derivative.
// Contributions from every path to v are summed.

// chain dispatches to the rule for op.
func chain(op Op, operands []*Variable, v *Variable) float64 {
	switch op {
	case OpNeg:
		return dNeg(operands, v)
	case OpAdd:
		return dAdd(operands, v)
	case OpSub:
		return dSub(operands, v)
	case OpMul:
		return dMul(operands, v)
	case OpDiv:
		return dDiv(operands, v)
	case OpPow:
		return dPow(operands, v)
	case OpTanh:
		return dTanh(operands, v)
	default:
		panic(fmt.Sprintf("derivative: no chain rule for operator %s", op))
	}
}

// dNeg: d(-a)/dv = -da/dv.
func dNeg(operands []*Variable, v *Variable) float64 {
	return -operands[0].Derivative(v)
}

// dAdd: d(a+b)/dv = da/dv + db/dv.
func dAdd(operands []*Variable, v *Variable) float64 {
	return operands[0].Derivative(v) + operands[1].Derivative(v)
}

// dSub: d(a-b)/dv = da/dv - db/dv.
func dSub(operands []*Variable, v *Variable) float64 {
	return operands[0].Derivative(v) - operands[1].Derivative(v)
}

// dMul: d(a*b)/dv = da/dv*b + a*db/dv.
func dMul(operands []*Variable, v *Variable) float64 {
	a, b := operands[0], operands[1]
	return a.Derivative(v)*b.value + a.value*b.Derivative(v)
}

// dDiv: d(a/b)/dv = (da/dv*b - a*db/dv) / b².
func dDiv(operands []*Variable, v *Variable) float64 {
	a, b := operands[0], operands[1]
	return (a.Derivative(v)*b.value - a.value*b.Derivative(v)) / (b.value * b.value)
}

// dPow: d(a^b)/dv = b*a^(b-1)*da/dv + a^b*ln(a)*db/dv.
//
// The exponent term is dropped when a <= 0, where ln(a) is undefined.
// This is not a sub-gradient: for a non-positive base only the base term
// is reported.
func dPow(operands []*Variable, v *Variable) float64 {
	a, b := operands[0], operands[1]
	base := b.value * math.Pow(a.value, b.value-1) * a.Derivative(v)
	if a.value > 0 {
		return base + math.Pow(a.value, b.value)*math.Log(a.value)*b.Derivative(v)
	}
	return base
}

// dTanh: d(tanh a)/dv = (1 - tanh²(a)) * da/dv.
func dTanh(operands []*Variable, v *Variable) float64 {
	a := operands[0]
	t := math.Tanh(a.value)
	return (1 - t*t) * a.Derivative(v)
}
