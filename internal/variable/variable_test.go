package variable_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/born-ml/revad/internal/variable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-4

func TestDerivative_Identity(t *testing.T) {
	x := variable.New(2)
	y := variable.New(2) // same value, different node

	assert.Equal(t, 1.0, x.Derivative(x))
	assert.Equal(t, 0.0, x.Derivative(y))
	assert.Equal(t, 0.0, y.Derivative(x))
}

func TestNeg(t *testing.T) {
	for _, value := range []float64{0, 2.5, -35} {
		x := variable.New(value)
		assert.InDelta(t, -1.0, x.Neg().Derivative(x), tol, "x = %v", value)
	}
}

func TestNeg_TargetIsNegatedNode(t *testing.T) {
	x := variable.New(4)
	y := x.Neg()

	// y is the target itself; its own operator decides the sign.
	assert.Equal(t, -1.0, y.Derivative(y))
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		dx, dy float64
	}{
		{"positive", 1, 2, 1, 1},
		{"negative", 1, -2, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := variable.New(tt.x), variable.New(tt.y)
			z := x.Add(y)
			assert.Equal(t, tt.x+tt.y, z.Value())
			assert.InDelta(t, tt.dx, z.Derivative(x), tol)
			assert.InDelta(t, tt.dy, z.Derivative(y), tol)
		})
	}
}

func TestAdd_SelfReference(t *testing.T) {
	x := variable.New(3)
	assert.Equal(t, 2.0, x.Add(x).Derivative(x))
}

func TestSub(t *testing.T) {
	for _, yv := range []float64{2, -2} {
		x, y := variable.New(1), variable.New(yv)
		z := x.Sub(y)
		assert.Equal(t, 1-yv, z.Value())
		assert.InDelta(t, 1.0, z.Derivative(x), tol)
		assert.InDelta(t, -1.0, z.Derivative(y), tol)
	}
}

func TestMul(t *testing.T) {
	x, y := variable.New(1), variable.New(2)
	assert.InDelta(t, 2.0, x.Mul(y).Derivative(x), tol)
	assert.InDelta(t, 1.0, x.Mul(y).Derivative(y), tol)

	y2 := variable.New(-2)
	assert.InDelta(t, -2.0, x.Mul(y2).Derivative(x), tol)
	assert.InDelta(t, 1.0, x.Mul(y2).Derivative(y2), tol)
}

func TestMul_SelfReference(t *testing.T) {
	x := variable.New(3)
	assert.Equal(t, 2*x.Value(), x.Mul(x).Derivative(x))
}

func TestDiv(t *testing.T) {
	x, y := variable.New(2), variable.New(4)
	assert.InDelta(t, 0.25, x.Div(y).Derivative(x), tol)
	assert.InDelta(t, -2*math.Pow(4, -2), x.Div(y).Derivative(y), tol)

	y2 := variable.New(-4)
	assert.InDelta(t, -0.25, x.Div(y2).Derivative(x), tol)
	assert.InDelta(t, -2*math.Pow(-4, -2), x.Div(y2).Derivative(y2), tol)
}

func TestDiv_ByZero(t *testing.T) {
	x, y := variable.New(1), variable.New(0)
	z := x.Div(y)
	assert.True(t, math.IsInf(z.Value(), 1))
	// (1*0 - 1*0) / 0
	assert.True(t, math.IsNaN(z.Derivative(x)))
}

func TestPow_PositiveBase(t *testing.T) {
	x, y := variable.New(2), variable.New(4)
	z := x.Pow(y)
	assert.Equal(t, 16.0, z.Value())
	assert.InDelta(t, 4*math.Pow(2, 3), z.Derivative(x), tol)
	assert.InDelta(t, math.Pow(2, 4)*math.Log(2), z.Derivative(y), tol)
}

func TestPow_NegativeExponent(t *testing.T) {
	x, y := variable.New(2), variable.New(-4)
	z := x.Pow(y)
	assert.InDelta(t, -4*math.Pow(2, -5), z.Derivative(x), tol)
	assert.InDelta(t, math.Pow(2, -4)*math.Log(2), z.Derivative(y), tol)
}

func TestPow_NonPositiveBaseDropsExponentTerm(t *testing.T) {
	x, y := variable.New(-2), variable.New(3)
	z := x.Pow(y)
	assert.Equal(t, -8.0, z.Value())
	assert.Equal(t, 3*math.Pow(-2, 2), z.Derivative(x))
	assert.Equal(t, 0.0, z.Derivative(y))

	zero := variable.New(0)
	assert.Equal(t, 0.0, zero.Pow(y).Derivative(y))
}

func TestTanh(t *testing.T) {
	x := variable.New(0)
	assert.Equal(t, 1.0, x.Tanh().Derivative(x))

	big := variable.New(100)
	assert.InDelta(t, 0.0, big.Tanh().Derivative(big), tol)
}

func TestChain(t *testing.T) {
	t.Run("through negation", func(t *testing.T) {
		x := variable.New(2)
		y := x.Neg()
		assert.InDelta(t, 4.0, y.Pow(variable.Const(2)).Derivative(x), tol)
	})

	t.Run("linear combination", func(t *testing.T) {
		x, y := variable.New(2), variable.New(3)
		z := variable.Mul(variable.Const(2), x).Add(variable.Mul(variable.Const(4), y))
		assert.InDelta(t, 2.0, z.Derivative(x), tol)
		assert.InDelta(t, 4.0, z.Derivative(y), tol)
	})

	t.Run("negated product minus product", func(t *testing.T) {
		x, y := variable.New(2), variable.New(3)
		z := x.Neg().Mul(variable.Const(2)).Sub(variable.Mul(variable.Const(4), y))
		assert.InDelta(t, -2.0, z.Derivative(x), tol)
		assert.InDelta(t, -4.0, z.Derivative(y), tol)
	})

	t.Run("diamond", func(t *testing.T) {
		x := variable.New(1.5)
		s := x.Mul(x)        // shared
		z := s.Add(s).Mul(s) // 2x⁴
		want := 8 * math.Pow(1.5, 3)
		assert.InDelta(t, want, z.Derivative(x), 1e-12)
	})
}

func TestReflectedOperators(t *testing.T) {
	x := variable.New(4)

	assert.Equal(t, 6.0, variable.Sub(variable.Const(10), x).Value())
	assert.Equal(t, -1.0, variable.Sub(variable.Const(10), x).Derivative(x))

	z := variable.Div(variable.Const(2), x) // 2/x
	assert.Equal(t, 0.5, z.Value())
	assert.InDelta(t, -2/16.0, z.Derivative(x), 1e-12)

	p := variable.Pow(variable.Const(2), x) // 2^x
	assert.InDelta(t, 16*math.Log(2), p.Derivative(x), 1e-12)
}

func TestConstPromotesFreshLeaf(t *testing.T) {
	c := variable.Const(3)
	a := variable.Promote(c)
	b := variable.Promote(c)

	assert.NotSame(t, a, b)
	assert.True(t, a.IsLeaf())

	x := variable.New(1)
	assert.Same(t, x, variable.Promote(x))
}

func TestOperandOrderPreserved(t *testing.T) {
	x, y := variable.New(1), variable.New(2)
	z := x.Sub(y)

	ops := z.Operands()
	require.Len(t, ops, 2)
	assert.Same(t, x, ops[0])
	assert.Same(t, y, ops[1])
	assert.Equal(t, variable.OpSub, z.Op())
}

func TestAssign(t *testing.T) {
	x, y := variable.New(2), variable.New(5)
	z := x.Mul(y)

	require.NoError(t, x.Assign(3))
	assert.Equal(t, 3.0, x.Value())

	// The old composite is a snapshot.
	assert.Equal(t, 10.0, z.Value())
	assert.Equal(t, 5.0, z.Derivative(x))

	rebuilt := x.Mul(y)
	assert.Equal(t, 15.0, rebuilt.Value())
}

func TestAssign_Composite(t *testing.T) {
	x := variable.New(1)
	z := x.Add(variable.Const(1))

	err := z.Assign(7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, variable.ErrInvalidMutation))
	assert.Equal(t, 2.0, z.Value())
}

func TestGradient(t *testing.T) {
	x, y := variable.New(2), variable.New(3)
	z := x.Mul(y)
	assert.Equal(t, z.Derivative(x), x.Gradient(z))
	assert.Equal(t, 2.0, y.Gradient(z))
}

func TestTreeString(t *testing.T) {
	x := variable.New(1)
	z := x.Add(variable.Const(2)).Tanh()

	want := fmt.Sprintf("%v = tanh:\n 3 = add:\n  1\n  2", math.Tanh(3))
	assert.Equal(t, want, z.TreeString())
	assert.Equal(t, "<var = 1>", x.String())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "none", variable.OpNone.String())
	assert.Equal(t, "pow", variable.OpPow.String())
	assert.Equal(t, 1, variable.OpTanh.Arity())
	assert.Equal(t, 2, variable.OpDiv.Arity())
	assert.Equal(t, 0, variable.OpNone.Arity())
}
