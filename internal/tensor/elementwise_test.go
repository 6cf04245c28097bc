package tensor_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/revad/internal/tensor"
	"github.com/born-ml/revad/internal/variable"
)

func TestElementwise_SameShape(t *testing.T) {
	a, err := tensor.FromValues([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	b, err := tensor.FromValues([]float64{4, 3, 2, 1}, tensor.Shape{2, 2})
	require.NoError(t, err)

	tests := []struct {
		name string
		got  *tensor.Array
		want []float64
	}{
		{"add", a.Add(b), []float64{5, 5, 5, 5}},
		{"sub", a.Sub(b), []float64{-3, -1, 1, 3}},
		{"mul", a.Mul(b), []float64{4, 6, 6, 4}},
		{"div", a.Div(b), []float64{0.25, 2.0 / 3, 1.5, 4}},
		{"pow", a.Pow(b), []float64{1, 8, 9, 4}},
		{"neg", a.Neg(), []float64{-1, -2, -3, -4}},
		{"tanh", a.Tanh(), []float64{math.Tanh(1), math.Tanh(2), math.Tanh(3), math.Tanh(4)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tensor.Shape{2, 2}, tt.got.Shape())
			if diff := cmp.Diff(tt.want, tt.got.Evaluate().Data(), approx); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestElementwise_ElementsAreScalarNodes(t *testing.T) {
	a := tensor.FromDense(tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2}))
	b := tensor.FromDense(tensor.MustFromSlice([]float64{3, 4}, tensor.Shape{2}))
	c := a.Mul(b)

	for i := 0; i < 2; i++ {
		el := c.Flat(i)
		assert.Equal(t, variable.OpMul, el.Op())
		ops := el.Operands()
		assert.Same(t, a.Flat(i), ops[0])
		assert.Same(t, b.Flat(i), ops[1])
	}
}

func TestElementwise_Broadcast(t *testing.T) {
	row, err := tensor.FromValues([]float64{10, 20, 30}, tensor.Shape{3})
	require.NoError(t, err)
	col, err := tensor.FromValues([]float64{1, 2}, tensor.Shape{2, 1})
	require.NoError(t, err)

	sum := col.Add(row)
	assert.Equal(t, tensor.Shape{2, 3}, sum.Shape())
	assert.Equal(t, []float64{11, 21, 31, 12, 22, 32}, sum.Evaluate().Data())

	// Each column element feeds three outputs.
	assert.Equal(t, []float64{3, 3}, col.Gradient(sum.Sum()).Data())
	assert.Equal(t, []float64{2, 2, 2}, row.Gradient(sum.Sum()).Data())
}

func TestElementwise_BroadcastMismatchPanics(t *testing.T) {
	a := tensor.FromDense(tensor.Zeros(tensor.Shape{3, 4}))
	b := tensor.FromDense(tensor.Zeros(tensor.Shape{3, 5}))

	assert.Panics(t, func() { a.Add(b) })
}

func TestScalar_PromotesDistinctLeafPerElement(t *testing.T) {
	a := tensor.FromDense(tensor.Zeros(tensor.Shape{3}))
	b := tensor.Mul(tensor.Scalar(2), a)

	first := b.Flat(0).Operands()[0]
	for i := 1; i < 3; i++ {
		other := b.Flat(i).Operands()[0]
		assert.NotSame(t, first, other)
		assert.Equal(t, 2.0, other.Value())
	}
}

func TestDense_PromotesDistinctLeafPerUse(t *testing.T) {
	d := tensor.MustFromSlice([]float64{5}, tensor.Shape{1})
	a := tensor.FromDense(tensor.Zeros(tensor.Shape{2}))

	// d broadcasts over both elements; each use is a new leaf.
	b := a.Add(d)
	assert.NotSame(t, b.Flat(0).Operands()[1], b.Flat(1).Operands()[1])
}

func TestShared_BroadcastsOneNode(t *testing.T) {
	w := variable.New(2)
	a, err := tensor.FromValues([]float64{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)

	z := a.Mul(tensor.Shared(w)).Sum()
	assert.Equal(t, 12.0, z.Value())

	// dz/dw sums over every element that used w.
	assert.Equal(t, 6.0, z.Derivative(w))
}

func TestReflectedScalar(t *testing.T) {
	a, err := tensor.FromValues([]float64{1, 2, 4}, tensor.Shape{3})
	require.NoError(t, err)

	got := tensor.Div(tensor.Scalar(1), a)
	assert.Equal(t, []float64{1, 0.5, 0.25}, got.Evaluate().Data())

	grad := a.Gradient(got.Sum())
	if diff := cmp.Diff([]float64{-1, -0.25, -0.0625}, grad.Data(), approx); diff != "" {
		t.Errorf("gradient mismatch (-want +got):\n%s", diff)
	}
}
