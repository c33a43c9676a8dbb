package projection_test

import (
	"testing"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/projection"
	"github.com/stretchr/testify/require"
)

// nodes is the full-order dimension of the fixture; every node carries weight 1/nodes,
// so integrating a constant c over the unit domain gives c.
const nodes = 4

// constantBasis returns k functions where function i is the constant i+1.
func constantBasis(t *testing.T, k int) *functions.List {
	t.Helper()
	l, err := functions.New(functions.DenseSpace(nodes))
	require.NoError(t, err)
	for i := 0; i < k; i++ {
		vals := make([]float64, nodes)
		for n := range vals {
			vals[n] = float64(i + 1)
		}
		v, err := matrix.NewVectorFrom(vals)
		require.NoError(t, err)
		require.NoError(t, l.Append(v))
	}

	return l
}

// integral is the linear form v ↦ ∫ v dx.
func integral(t *testing.T) projection.VectorForm {
	t.Helper()
	w := make([]float64, nodes)
	for n := range w {
		w[n] = 1.0 / nodes
	}
	b, err := matrix.NewVectorFrom(w)
	require.NoError(t, err)

	return projection.VectorForm{B: b}
}

// mass is the bilinear form (u, v) ↦ ∫ u·v dx.
func mass(t *testing.T) projection.MatrixForm {
	t.Helper()
	a, err := matrix.NewDense(nodes, nodes)
	require.NoError(t, err)
	for n := 0; n < nodes; n++ {
		require.NoError(t, a.Set(n, n, 1.0/nodes))
	}

	return projection.MatrixForm{A: a}
}

func mustVector(t *testing.T, vals ...float64) *matrix.Vector {
	t.Helper()
	v, err := matrix.NewVectorFrom(vals)
	require.NoError(t, err)

	return v
}

// listOf binds vs to a dense space of their common length.
func listOf(t *testing.T, vs ...*matrix.Vector) *functions.List {
	t.Helper()
	l, err := functions.New(functions.DenseSpace(vs[0].Len()))
	require.NoError(t, err)
	require.NoError(t, l.Extend(vs))

	return l
}
