// SPDX-License-Identifier: MIT

// Package matrix - Vector storage & write-through segments.
//
// Purpose:
//   - Dense, sequential float64 vector used as the online vector of the reduced layer.
//   - Same safety contract as Dense: indexers return sentinels instead of panicking.
//   - Segment(off, n) gives a no-copy window, the vector analogue of Dense.View;
//     block vectors are addressed segment by segment.
//
// Complexity quicksheet:
//   - NewVector: O(n) zero-init; At/Set/AddAt: O(1); Clone: O(n); Segment: O(1).

package matrix

import (
	"fmt"
	"strings"
)

const (
	ctxVecAt      = "Vector.At"
	ctxVecSet     = "Vector.Set"
	ctxVecAddAt   = "Vector.AddAt"
	ctxVecFrom    = "NewVectorFrom"
	ctxVecSegment = "Vector.Segment"
)

// Vector is a dense, contiguous float64 vector.
type Vector struct {
	data           []float64 // len == n
	validateNaNInf bool      // numeric guard shared with Dense semantics
}

var (
	_ Tensor       = (*Vector)(nil)
	_ fmt.Stringer = (*Vector)(nil)
)

// NewVector creates a zero vector of length n.
// Errors:
//   - ErrInvalidDimensions when n <= 0.
//
// Complexity: Time O(n), Space O(n).
func NewVector(n int) (*Vector, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Vector{data: make([]float64, n), validateNaNInf: DefaultValidateNaNInf}, nil
}

// NewVectorFrom copies values into a new Vector.
// Errors:
//   - ErrInvalidDimensions when values is empty.
//   - ErrNaNInf when a value is not finite under the default policy.
//
// Complexity: Time O(n), Space O(n).
func NewVectorFrom(values []float64) (*Vector, error) {
	v, err := NewVector(len(values))
	if err != nil {
		return nil, err
	}
	for i, x := range values {
		if v.validateNaNInf && isNonFinite(x) {
			return nil, fmt.Errorf("%s[%d]: %w", ctxVecFrom, i, ErrNaNInf)
		}
	}
	copy(v.data, values)

	return v, nil
}

// Len returns the number of entries.
func (v *Vector) Len() int { return len(v.data) }

// Shape reports (n, 1) so vectors share the Tensor surface with matrices.
func (v *Vector) Shape() (rows, cols int) { return len(v.data), 1 }

// RawData exposes the backing slice without copying.
func (v *Vector) RawData() []float64 { return v.data }

// At returns entry i or ErrOutOfRange.
func (v *Vector) At(i int) (float64, error) {
	if i < 0 || i >= len(v.data) {
		return 0, fmt.Errorf("%s(%d): %w", ctxVecAt, i, ErrOutOfRange)
	}

	return v.data[i], nil
}

// Set stores x at entry i honoring the NaN/Inf policy.
func (v *Vector) Set(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("%s(%d): %w", ctxVecSet, i, ErrOutOfRange)
	}
	if v.validateNaNInf && isNonFinite(x) {
		return fmt.Errorf("%s(%d): %w", ctxVecSet, i, ErrNaNInf)
	}
	v.data[i] = x

	return nil
}

// AddAt accumulates x into entry i: v[i] += x.
func (v *Vector) AddAt(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("%s(%d): %w", ctxVecAddAt, i, ErrOutOfRange)
	}
	sum := v.data[i] + x
	if v.validateNaNInf && isNonFinite(sum) {
		return fmt.Errorf("%s(%d): %w", ctxVecAddAt, i, ErrNaNInf)
	}
	v.data[i] = sum

	return nil
}

// ScaleInPlace multiplies every entry by alpha.
// Complexity: O(n).
func (v *Vector) ScaleInPlace(alpha float64) {
	for i := range v.data {
		v.data[i] *= alpha
	}
}

// Zero resets all entries to 0.
func (v *Vector) Zero() { clear(v.data) }

// Clone returns an independent copy with the same policy.
func (v *Vector) Clone() *Vector {
	cp := make([]float64, len(v.data))
	copy(cp, v.data)

	return &Vector{data: cp, validateNaNInf: v.validateNaNInf}
}

// String renders "[a, b, c]".
func (v *Vector) String() string {
	var b strings.Builder
	b.WriteString(_fmtRowOpen)
	for i, x := range v.data {
		if i > 0 {
			b.WriteString(_fmtSep)
		}
		b.WriteString(fmt.Sprintf("%g", x))
	}
	b.WriteString("]")

	return b.String()
}

// Segment returns a write-through window [off, off+n) over v.
// Errors:
//   - ErrBadShape when the window does not fit.
//
// Complexity: O(1).
func (v *Vector) Segment(off, n int) (*VectorView, error) {
	if off < 0 || n < 0 || off+n > len(v.data) {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxVecSegment, off, n, ErrBadShape)
	}

	return &VectorView{base: v, off: off, n: n}, nil
}

// VectorView is a non-owning window into a Vector.
type VectorView struct {
	base *Vector
	off  int
	n    int
}

// Len returns the window length.
func (s *VectorView) Len() int { return s.n }

// At reads entry i of the window.
func (s *VectorView) At(i int) (float64, error) {
	if i < 0 || i >= s.n {
		return 0, fmt.Errorf("VectorView.At(%d): %w", i, ErrOutOfRange)
	}

	return s.base.data[s.off+i], nil
}

// Values returns the window as a sub-slice of the base storage (no copy).
func (s *VectorView) Values() []float64 { return s.base.data[s.off : s.off+s.n] }

// AddAt accumulates x into entry i of the window (write-through).
func (s *VectorView) AddAt(i int, x float64) error {
	if i < 0 || i >= s.n {
		return fmt.Errorf("VectorView.AddAt(%d): %w", i, ErrOutOfRange)
	}

	return s.base.AddAt(s.off+i, x)
}
