package tensor

import (
	"fmt"

	"github.com/born-ml/revad/internal/variable"
)

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
//
// Each output element is the left-to-right sum of its K products,
// ((a[i,0]*b[0,j] + a[i,1]*b[1,j]) + ...). A *Dense right operand is
// promoted per use, so no leaf is shared between products.
func (a *Array) MatMul(b Operand) *Array {
	aShape, bShape := a.shape, b.operandShape()
	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D arrays supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	return dot(a, b).Array()
}

// Dot follows NumPy dot semantics for arrays of rank 1 and 2:
//
//	(M, K) · (K, N) -> (M, N)
//	(M, K) · (K)    -> (M)
//	(K)    · (K, N) -> (N)
//	(K)    · (K)    -> scalar
func (a *Array) Dot(b Operand) Reduction {
	return dot(a, b)
}

// Dot is the package-level form of Array.Dot, accepting any operands.
func Dot(a, b Operand) Reduction {
	return dot(a, b)
}

func dot(a, b Operand) Reduction {
	aShape, bShape := a.operandShape(), b.operandShape()
	if len(aShape) < 1 || len(aShape) > 2 || len(bShape) < 1 || len(bShape) > 2 {
		panic(fmt.Sprintf("dot: only 1D and 2D arrays supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	// Promote vectors to matrices: a row vector on the left, a column vector
	// on the right. The extra dimensions are dropped from the output.
	m, k := 1, aShape[0]
	if len(aShape) == 2 {
		m, k = aShape[0], aShape[1]
	}
	kAlt, n := bShape[0], 1
	if len(bShape) == 2 {
		n = bShape[1]
	}
	if k != kAlt {
		panic(fmt.Sprintf("dot: shapes %v and %v not aligned (%d != %d)", aShape, bShape, k, kAlt))
	}

	outShape := make(Shape, 0, 2)
	if len(aShape) == 2 {
		outShape = append(outShape, m)
	}
	if len(bShape) == 2 {
		outShape = append(outShape, n)
	}

	out := newArray(outShape)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var acc *variable.Variable
			for p := 0; p < k; p++ {
				prod := a.node(i*k + p).Mul(b.node(p*n + j))
				if acc == nil {
					acc = prod
				} else {
					acc = acc.Add(prod)
				}
			}
			out.data[i*n+j] = acc
		}
	}

	return reduced(out)
}
