// Package matrix_test contains unit tests for the dense kernels and the
// Jacobi eigen-solver.
package matrix_test

import (
	"math"
	"sort"
	"testing"

	"github.com/katalvlaran/romkit/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScale_InPlace checks Scale writes through to matrices and vectors alike.
func TestScale_InPlace(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, -2, 3, -4})
	require.NoError(t, matrix.Scale(-0.5, a))
	require.Equal(t, []float64{-0.5, 1, -1.5, 2}, a.RawData())

	v := MustVector(t, 2, 4)
	require.NoError(t, matrix.Scale(0.25, v))
	require.Equal(t, []float64{0.5, 1}, v.RawData())

	require.ErrorIs(t, matrix.Scale(2, nil), matrix.ErrNilMatrix)
	var nilVec *matrix.Vector
	require.ErrorIs(t, matrix.Scale(2, nilVec), matrix.ErrNilMatrix)
}

// TestMatVecVecMat covers y = A·x and y = xᵀ·A on a rectangular matrix.
func TestMatVecVecMat(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	y, err := matrix.MatVec(a, []float64{1, 0, -1})
	require.NoError(t, err)
	require.Equal(t, []float64{-2, -2}, y)

	z, err := matrix.VecMat([]float64{1, 1}, a)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 7, 9}, z)

	_, err = matrix.MatVec(a, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.VecMat([]float64{1, 2, 3}, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestInner_Bilinear checks xᵀAy against a hand computation.
func TestInner_Bilinear(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 3, []float64{
		1, 0, 2,
		0, 3, 0,
	})
	// A·y = [1+2*1, 3*1] = [3, 3]; xᵀ(Ay) = 2*3 + (-1)*3 = 3
	got, err := matrix.Inner(a, []float64{2, -1}, []float64{1, 1, 1})
	require.NoError(t, err)
	require.Equal(t, 3.0, got)

	_, err = matrix.Inner(a, []float64{1, 2, 3}, []float64{1, 1, 1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestDot_Errors covers nil and length mismatches.
func TestDot_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.Dot(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.Dot([]float64{1, 2}, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	d, err := matrix.Dot([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.NoError(t, err)
	require.Equal(t, 32.0, d)
}

// TestFrobeniusAxpy covers the tensor-native kernels on matrices and vectors.
func TestFrobeniusAxpy(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	b := NewFilledDense(t, 2, 2, []float64{1, 1, 1, 1})
	f, err := matrix.Frobenius(a, b)
	require.NoError(t, err)
	require.Equal(t, 10.0, f)

	require.NoError(t, matrix.Axpy(2, a, b))
	require.Equal(t, []float64{3, 5, 7, 9}, b.RawData())

	x := MustVector(t, 1, 2)
	y := MustVector(t, 0, 0)
	require.NoError(t, matrix.Axpy(-1, x, y))
	require.Equal(t, []float64{-1, -2}, y.RawData())

	// a 2×1 matrix and a length-2 vector have the same shape
	col := NewFilledDense(t, 2, 1, []float64{1, 1})
	f, err = matrix.Frobenius(col, x)
	require.NoError(t, err)
	require.Equal(t, 3.0, f)

	require.ErrorIs(t, matrix.Axpy(1, a, x), matrix.ErrDimensionMismatch)
	_, err = matrix.Frobenius(nil, x)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestAllClose checks the relative tolerance and WithEpsilon.
func TestAllClose(t *testing.T) {
	t.Parallel()

	a := MustVector(t, 1, 1000)
	b := MustVector(t, 1+1e-12, 1000+1e-7)
	ok, err := matrix.AllClose(a, b)
	require.NoError(t, err)
	assert.True(t, ok)

	c := MustVector(t, 1.1, 1000)
	ok, err = matrix.AllClose(a, c)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = matrix.AllClose(a, c, matrix.WithEpsilon(0.1))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = matrix.AllClose(a, MustVector(t, 1))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestEigen_Errors validates error handling in Eigen.
func TestEigen_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.Eigen(nil, 1e-10, 10)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, _, err = matrix.Eigen(MustDense(t, 2, 3), 1e-10, 10)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	ns := NewFilledDense(t, 2, 2, []float64{1, 2, 3, 4})
	_, _, err = matrix.Eigen(ns, 1e-12, 10)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	// zero rotations allowed on a matrix with a non-zero off-diagonal
	sym := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2})
	_, _, err = matrix.Eigen(sym, 1e-12, 0)
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

// TestEigen_Diagonal_NoRotation ensures a diagonal input returns its diagonal and Q = I.
func TestEigen_Diagonal_NoRotation(t *testing.T) {
	t.Parallel()

	d := NewFilledDense(t, 3, 3, []float64{
		5, 0, 0,
		0, -2, 0,
		0, 0, 7,
	})
	vals, q, err := matrix.Eigen(d, 1e-12, 10)
	require.NoError(t, err)
	require.Equal(t, []float64{5, -2, 7}, vals)
	var i, j int
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.Equal(t, want, MustAt(t, q, i, j))
		}
	}
}

// TestEigen_2x2_Analytic checks [[2,1],[1,2]] → {1, 3} with orthonormal vectors.
func TestEigen_2x2_Analytic(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 2, 2, []float64{2, 1, 1, 2})
	vals, q, err := matrix.Eigen(hide{a}, 1e-12, 50)
	require.NoError(t, err)

	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	require.InDelta(t, 1.0, sorted[0], 1e-12)
	require.InDelta(t, 3.0, sorted[1], 1e-12)
	requireOrthonormal(t, q, 1e-12)
	requireEigenEquation(t, a, q, vals, 1e-10)
}

// TestEigen_BlockDiagonal_Degenerate checks repeated eigenvalues keep an orthonormal basis.
func TestEigen_BlockDiagonal_Degenerate(t *testing.T) {
	t.Parallel()

	a := NewFilledDense(t, 4, 4, []float64{
		2, 1, 0, 0,
		1, 2, 0, 0,
		0, 0, 3, 0,
		0, 0, 0, 3,
	})
	vals, q, err := matrix.Eigen(a, 1e-12, 100)
	require.NoError(t, err)
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	require.InDeltaSlice(t, []float64{1, 3, 3, 3}, sorted, 1e-12)
	requireOrthonormal(t, q, 1e-12)
	requireEigenEquation(t, a, q, vals, 1e-10)
}

// TestEigen_SPD_6x6 checks the eigen equation and the trace identity on a dense SPD input.
func TestEigen_SPD_6x6(t *testing.T) {
	t.Parallel()

	const n = 6
	a := spdFixture(t, n)
	vals, q, err := matrix.Eigen(a, 1e-12, 1000)
	require.NoError(t, err)
	requireOrthonormal(t, q, 1e-10)
	requireEigenEquation(t, a, q, vals, 1e-9)

	trace, sum := 0.0, 0.0
	for i := 0; i < n; i++ {
		trace += MustAt(t, a, i, i)
		sum += vals[i]
		require.Greater(t, vals[i], 0.0)
	}
	require.InDelta(t, trace, sum, 1e-9*math.Max(1, math.Abs(trace)))
}
