// SPDX-License-Identifier: MIT

// Package matrix - bridge to gonum.org/v1/gonum/mat.
//
// Purpose:
//   - Offer EigenSym, a LAPACK-backed (gonum) symmetric eigen-solver with the same
//     output contract as the Jacobi Eigen: unsorted eigenvalues, eigenvectors as columns.
//   - FromGonum copies gonum results back into Dense.
//
// Complexity quicksheet:
//   - FromGonum O(size); EigenSym O(n^3).

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	opEigenSym  = "EigenSym"
	opFromGonum = "FromGonum"
)

// FromGonum copies any gonum matrix into a new *Dense.
// Errors: ErrInvalidDimensions for empty inputs, ErrNaNInf under the default policy.
// Complexity: O(r*c).
func FromGonum(m mat.Matrix) (*Dense, error) {
	r, c := m.Dims()
	d, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err = d.Set(i, j, m.At(i, j)); err != nil {
				return nil, matrixErrorf(opFromGonum, err)
			}
		}
	}

	return d, nil
}

// EigenSym decomposes a symmetric matrix with gonum's mat.EigenSym.
// Implementation:
//   - Stage 1: ValidateSymmetric(m, tol) so both solvers reject the same inputs.
//   - Stage 2: build a mat.SymDense from the upper triangle and factorize with vectors.
//
// Returns eigenvalues in gonum's (ascending) order and eigenvectors as columns.
//
// Errors:
//   - ErrDimensionMismatch, ErrAsymmetry from validation.
//   - ErrMatrixEigenFailed when gonum reports a failed factorization.
//
// Complexity: Time O(n^3), Space O(n^2).
func EigenSym(m Matrix, tol float64) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	n := m.Rows()
	sym := mat.NewSymDense(n, nil)
	var i, j int
	var v float64
	var err error
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opEigenSym, err)
			}
			sym.SetSym(i, j, v)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, matrixErrorf(opEigenSym, fmt.Errorf("factorize n=%d: %w", n, ErrMatrixEigenFailed))
	}
	values := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	q, err := FromGonum(&vecs)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}

	return values, q, nil
}
