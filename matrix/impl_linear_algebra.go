// SPDX-License-Identifier: MIT
// Package matrix provides the dense kernels the online layer is built on:
// in-place scaling and axpy, matrix-vector products,
// bilinear pairings xᵀAy, tensor-native inner products and the Jacobi
// eigen-solver for symmetric matrices. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - All kernels use central validators and wrap failures via matrixErrorf.
//   - Fast paths operate on *Dense flat storage; other Matrix implementations
//     go through At/Set with identical loop order.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// ZeroSum is the initial sum value for dot products and similar reductions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opScale     = "Scale"
	opEigen     = "Eigen"
	opMatVec    = "MatVec"
	opVecMat    = "VecMat"
	opDot       = "Dot"
	opInner     = "Inner"
	opFrobenius = "Frobenius"
	opAxpy      = "Axpy"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Scale multiplies every entry of t by alpha in place.
// Errors: ErrNilMatrix.
// Complexity: Time O(size), no allocations.
func Scale(alpha float64, t Tensor) error {
	if err := ValidateTensorNotNil(t); err != nil {
		return matrixErrorf(opScale, err)
	}
	data := t.RawData()
	for k := range data {
		data[k] *= alpha
	}

	return nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Fast-path: *Dense performs one pass per row with flat indexing.
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var acc, xv float64
		for i = 0; i < d.r; i++ {
			acc = ZeroSum
			base = i * d.c
			for j = 0; j < d.c; j++ {
				xv = x[j]
				if xv != 0 { // skip zero multiplications
					acc += d.data[base+j] * xv
				}
			}
			y[i] = acc
		}

		return y, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < rows; i++ {
		y[i] = ZeroSum
		for j = 0; j < cols; j++ {
			mv, err = m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}

// VecMat computes the row vector w = xᵀ * m, i.e. w[j] = Σ_i x[i]·m[i,j].
//
// Contract: len(x) == m.Rows().
// Determinism: rows are visited in order so each w[j] accumulates in i order.
// Complexity: Time O(r*c), Space O(c) for w.
func VecMat(x []float64, m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.Rows()); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	w := make([]float64, m.Cols())

	if d, ok := m.(*Dense); ok {
		var i, j, base int
		var xi float64
		for i = 0; i < d.r; i++ {
			xi = x[i]
			if xi == 0 {
				continue
			}
			base = i * d.c
			for j = 0; j < d.c; j++ {
				w[j] += xi * d.data[base+j]
			}
		}

		return w, nil
	}

	var i, j int
	var mv float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opVecMat, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			w[j] += x[i] * mv
		}
	}

	return w, nil
}

// Dot returns Σ x[i]*y[i].
// Errors: ErrNilMatrix for nil slices, ErrDimensionMismatch for unequal lengths.
// Complexity: O(n).
func Dot(x, y []float64) (float64, error) {
	if err := ValidateVecLen(x, len(y)); err != nil {
		return 0, matrixErrorf(opDot, err)
	}
	if y == nil {
		return 0, matrixErrorf(opDot, ErrNilMatrix)
	}
	acc := ZeroSum
	for i := range x {
		acc += x[i] * y[i]
	}

	return acc, nil
}

// Inner evaluates the bilinear pairing xᵀ·A·y.
// With A symmetric positive definite this is the inner product A induces;
// with A = I it reduces to Dot(x, y).
//
// Contract: A is len(x)×len(y).
// Complexity: Time O(r*c), Space O(r).
func Inner(a Matrix, x, y []float64) (float64, error) {
	ay, err := MatVec(a, y)
	if err != nil {
		return 0, matrixErrorf(opInner, err)
	}
	s, err := Dot(x, ay)
	if err != nil {
		return 0, matrixErrorf(opInner, err)
	}

	return s, nil
}

// Frobenius returns the tensor-native inner product Σ a_k·b_k over the raw
// storage of two same-shaped tensors (Frobenius for matrices, dot for vectors).
// Complexity: O(size).
func Frobenius(a, b Tensor) (float64, error) {
	if err := ValidateTensorPair(a, b); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	s, err := Dot(a.RawData(), b.RawData())
	if err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}

	return s, nil
}

// Axpy performs y += alpha*x in place on same-shaped tensors.
// Complexity: O(size), no allocations.
func Axpy(alpha float64, x, y Tensor) error {
	if err := ValidateTensorPair(x, y); err != nil {
		return matrixErrorf(opAxpy, err)
	}
	if alpha == 0 {
		return nil
	}
	xs, ys := x.RawData(), y.RawData()
	for k := range ys {
		ys[k] += alpha * xs[k]
	}

	return nil
}

// AllClose reports whether |a_k - b_k| ≤ eps·(1 + |b_k|) for every entry of two
// same-shaped tensors. eps defaults to DefaultEpsilon (see WithEpsilon).
// Complexity: O(size).
func AllClose(a, b Tensor, opts ...Option) (bool, error) {
	if err := ValidateTensorPair(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	o := gatherOptions(opts...)
	as, bs := a.RawData(), b.RawData()
	for k := range as {
		if math.Abs(as[k]-bs[k]) > o.eps*(1+math.Abs(bs[k])) {
			return false, nil
		}
	}

	return true, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// Implementation:
//   - Stage 1: Validate symmetric square input within tol (not nil, square, |A[i,j]-A[j,i]| ≤ tol).
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and apply a Jacobi rotation.
//
// Behavior highlights:
//   - Stable, deterministic pivot scan; fast path for *Dense updates.
//   - Eigenvalues are returned in diagonal order (unsorted); callers sort as needed.
//
// Inputs:
//   - m: symmetric Matrix (within tol); n := m.Rows().
//   - tol: convergence threshold on max |off-diagonal| (absolute).
//   - maxIter: safety cap on rotations.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix).
//   - *Dense: Q whose columns are orthonormal eigenvectors.
//
// Errors:
//   - ErrDimensionMismatch (non-square), ErrAsymmetry (not symmetric within tol),
//     ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxIter).
//
// Complexity:
//   - Time O(maxIter * n^2), Space O(n^2).
//
// AI-Hints:
//   - Scale tol with the matrix magnitude (e.g. tol = 1e-12·‖A‖_F) for large-valued inputs.
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := m.Rows()

	// Working copy A as *Dense so the rotation loop always runs on flat storage.
	a, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opEigen, err)
			}
			a.data[i*n+j] = v
		}
	}
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0 // Q starts as identity
	}

	var (
		iter               int
		p, r               int     // current pivot indices
		maxOff, off        float64 // current max |A[p,r]|
		app, arr, apr      float64 // pivot block entries
		aip, air, qip, qir float64
		theta, t, c, s     float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1: Find pivot (p,r) maximizing |A[p,r]|
		maxOff = NormZero
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		// J.2: Converged.
		if maxOff < tol {
			break
		}

		// J.3: Rotation parameters.
		app = a.data[p*n+p]
		arr = a.data[r*n+r]
		apr = a.data[p*n+r]
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: Apply rotation to A (symmetric update).
		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip = a.data[i*n+p]
			air = a.data[i*n+r]
			a.data[i*n+p] = c*aip - s*air
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+r] = s*aip + c*air
			a.data[r*n+i] = a.data[i*n+r]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
		a.data[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
		a.data[p*n+r], a.data[r*n+p] = 0, 0

		// J.5: Accumulate rotation into Q.
		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qir = q.data[i*n+r]
			q.data[i*n+p] = c*qip - s*qir
			q.data[i*n+r] = s*qip + c*qir
		}
	}

	// Final convergence check.
	maxOff = NormZero
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if off = math.Abs(a.data[i*n+j]); off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}
