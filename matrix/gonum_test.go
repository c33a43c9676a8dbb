package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/romkit/matrix"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFromGonum(t *testing.T) {
	t.Parallel()

	g := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	d, err := matrix.FromGonum(g.T())
	require.NoError(t, err)
	require.Equal(t, 3, d.Rows())
	require.Equal(t, 2, d.Cols())
	require.Equal(t, []float64{1, 4, 2, 5, 3, 6}, d.RawData())

	// copies
	g.Set(0, 0, 100)
	require.Equal(t, 1.0, MustAt(t, d, 0, 0))

	_, err = matrix.FromGonum(mat.NewDense(1, 1, []float64{math.NaN()}))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestEigenSym_MatchesJacobi compares the gonum solver with the Jacobi solver.
func TestEigenSym_MatchesJacobi(t *testing.T) {
	t.Parallel()

	a := spdFixture(t, 5)
	gv, gq, err := matrix.EigenSym(a, 1e-12)
	require.NoError(t, err)
	requireOrthonormal(t, gq, 1e-10)
	requireEigenEquation(t, a, gq, gv, 1e-9)

	jv, _, err := matrix.Eigen(a, 1e-12, 1000)
	require.NoError(t, err)
	sort.Float64s(jv)
	require.InDeltaSlice(t, jv, gv, 1e-9)

	_, _, err = matrix.EigenSym(NewFilledDense(t, 2, 2, []float64{1, 2, 0, 1}), 1e-12)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}
