// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for kernels.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/romkit/matrix"
	"github.com/stretchr/testify/require"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the interface (non-*Dense) fallback paths in code under test.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err)

	return m
}

// NewFilledDense builds r×c *Dense from a row-major flat slice.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err)

	return m
}

// MustVector builds a *Vector from values or fails the test.
func MustVector(t *testing.T, vals ...float64) *matrix.Vector {
	t.Helper()
	v, err := matrix.NewVectorFrom(vals)
	require.NoError(t, err)

	return v
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// spdFixture returns a deterministic SPD matrix A = MᵀM + n·I.
func spdFixture(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	a := MustDense(t, n, n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			s := 0.0
			for k = 0; k < n; k++ {
				s += math.Sin(float64(k*n+i+1)) * math.Sin(float64(k*n+j+1))
			}
			if i == j {
				s += float64(n)
			}
			require.NoError(t, a.Set(i, j, s))
		}
	}

	return a
}

// requireOrthonormal asserts QᵀQ ≈ I.
func requireOrthonormal(t *testing.T, q *matrix.Dense, tol float64) {
	t.Helper()
	n := q.Cols()
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			s := 0.0
			for k = 0; k < q.Rows(); k++ {
				s += MustAt(t, q, k, i) * MustAt(t, q, k, j)
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, s, tol, "QᵀQ[%d,%d]", i, j)
		}
	}
}

// requireEigenEquation asserts A·q_k ≈ λ_k·q_k for every column k.
func requireEigenEquation(t *testing.T, a matrix.Matrix, q *matrix.Dense, vals []float64, tol float64) {
	t.Helper()
	n := a.Rows()
	var i, k int
	for k = 0; k < n; k++ {
		col := make([]float64, n)
		for i = 0; i < n; i++ {
			col[i] = MustAt(t, q, i, k)
		}
		aq, err := matrix.MatVec(a, col)
		require.NoError(t, err)
		for i = 0; i < n; i++ {
			require.InDelta(t, vals[k]*col[i], aq[i], tol, "A·q[%d] row %d", k, i)
		}
	}
}
