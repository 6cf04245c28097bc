package tensor_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/born-ml/revad/internal/tensor"
	"github.com/born-ml/revad/internal/variable"
)

const tol = 1e-4

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var approx = cmpopts.EquateApprox(0, tol)

func pair(t *testing.T) (*variable.Variable, *variable.Variable, *tensor.Array) {
	t.Helper()
	x, y := variable.New(2), variable.New(3)
	v, err := tensor.FromVariables([]*variable.Variable{x, y}, tensor.Shape{2})
	require.NoError(t, err)
	return x, y, v
}

func TestFromDense_PromotesLeaves(t *testing.T) {
	d := tensor.MustFromSlice([]float64{0, 1, 2, 3}, tensor.Shape{2, 2})
	a := tensor.FromDense(d)

	assert.Equal(t, tensor.Shape{2, 2}, a.Shape())
	assert.Equal(t, 4, a.Size())
	for i := 0; i < a.Size(); i++ {
		assert.True(t, a.Flat(i).IsLeaf())
	}
	assert.Equal(t, 2.0, a.At(1, 0).Value())

	// Source and array are independent.
	d.Set(9, 0, 0)
	assert.Equal(t, 0.0, a.At(0, 0).Value())
}

func TestFromVariables_SharesNodes(t *testing.T) {
	x, y, v := pair(t)
	assert.Same(t, x, v.Flat(0))
	assert.Same(t, y, v.Flat(1))

	_, err := tensor.FromVariables([]*variable.Variable{x}, tensor.Shape{2})
	assert.Error(t, err)
}

func TestGradient_Identity(t *testing.T) {
	x, y, v := pair(t)

	assert.Equal(t, []float64{1, 0}, v.Gradient(x).Data())
	assert.Equal(t, []float64{0, 1}, v.Gradient(y).Data())
}

func TestGradient_Sum(t *testing.T) {
	x, y, v := pair(t)
	z := v.Sum()

	assert.Equal(t, []float64{1, 1}, v.Gradient(z).Data())
	assert.Equal(t, 1.0, z.Derivative(x))
	assert.Equal(t, 1.0, z.Derivative(y))
}

func TestGradient_ScaledSum(t *testing.T) {
	_, _, v := pair(t)
	z := tensor.Mul(tensor.Scalar(2), v).Sum()

	assert.Equal(t, []float64{2, 2}, v.Gradient(z).Data())
}

func TestGradient_SumOfSquares(t *testing.T) {
	_, _, v := pair(t)
	z := v.Mul(v).Sum()

	assert.Equal(t, 13.0, z.Value())
	assert.Equal(t, []float64{4, 6}, v.Gradient(z).Data())
}

func TestGradient_LargeArrayMatchesScalarDerivative(t *testing.T) {
	values := make([]float64, 200)
	for i := range values {
		values[i] = float64(i) / 50
	}
	a, err := tensor.FromValues(values, tensor.Shape{10, 20})
	require.NoError(t, err)

	z := a.Tanh().Mul(a).Sum()
	grad := a.Gradient(z)

	want := make([]float64, len(values))
	for i := range values {
		want[i] = z.Derivative(a.Flat(i))
	}
	assert.Equal(t, want, grad.Data())
}

func TestEvaluate(t *testing.T) {
	a, err := tensor.FromValues([]float64{1, -2, 3, -4}, tensor.Shape{2, 2})
	require.NoError(t, err)

	got := a.Neg().Evaluate()
	assert.Equal(t, tensor.Shape{2, 2}, got.Shape())
	if diff := cmp.Diff([]float64{-1, 2, -3, 4}, got.Data(), approx); diff != "" {
		t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssign(t *testing.T) {
	a := tensor.FromDense(tensor.Zeros(tensor.Shape{2, 2}))
	b := tensor.FromDense(tensor.Full(tensor.Shape{2, 2}, 2))

	z := a.Mul(b).Sum()
	assert.Equal(t, []float64{0, 0, 0, 0}, b.Gradient(z).Data())

	require.NoError(t, a.Assign(tensor.Full(tensor.Shape{2, 2}, 3)))
	assert.Equal(t, []float64{3, 3, 3, 3}, a.Evaluate().Data())

	// The composite keeps its old value. Chain rules read a's leaves
	// directly, so the stale graph mixes old and new state.
	assert.Equal(t, 0.0, z.Value())
	assert.Equal(t, []float64{3, 3, 3, 3}, b.Gradient(z).Data())

	z = a.Mul(b).Sum()
	assert.Equal(t, []float64{3, 3, 3, 3}, b.Gradient(z).Data())
	assert.Equal(t, 24.0, z.Value())
}

func TestAssign_ShapeMismatch(t *testing.T) {
	a := tensor.FromDense(tensor.Zeros(tensor.Shape{2, 2}))

	err := a.Assign(tensor.Zeros(tensor.Shape{4}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))
}

func TestAssign_CompositeElement(t *testing.T) {
	a := tensor.FromDense(tensor.Zeros(tensor.Shape{2}))
	b := a.Add(tensor.Scalar(1))

	err := b.Assign(tensor.Full(tensor.Shape{2}, 5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, variable.ErrInvalidMutation))
	assert.Equal(t, []float64{1, 1}, b.Evaluate().Data())
}

func TestArray_String(t *testing.T) {
	a, err := tensor.FromValues([]float64{0, 1, 2, 3}, tensor.Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, "[[0 1] [2 3]]", a.String())
}
