// Package gramschmidt extends an orthonormal functions list with a new
// function, orthonormalized against the list under an online inner product.
package gramschmidt

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/matrix"
)

var (
	// ErrLinearlyDependent is returned when the new function lies in the span of the list.
	ErrLinearlyDependent = errors.New("gramschmidt: function is linearly dependent on the list")

	// ErrBlockMismatch is returned when per-block arguments disagree in length.
	ErrBlockMismatch = errors.New("gramschmidt: block arguments do not match")
)

// DefaultTolerance is the relative residual norm under which a function is
// considered dependent.
const DefaultTolerance = 1e-12

// Option configures Orthonormalize.
type Option func(*options)

type options struct{ tol float64 }

// WithTolerance sets the relative dependence threshold. Panics when tol is
// negative or not finite.
func WithTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic("gramschmidt: WithTolerance requires a finite tol ≥ 0")
	}

	return func(o *options) { o.tol = tol }
}

// Orthonormalize subtracts from fn its projections onto the elements of list
// (assumed orthonormal), normalizes the residual and appends it to list.
// fn is not modified.
//
// Modified Gram–Schmidt is used: each projection is taken against the
// running residual.
//
// Errors:
//   - ErrLinearlyDependent when the residual norm is at most tol·‖fn‖; list is unchanged.
//   - matrix.ErrNilMatrix for a nil list, function or inner product.
//   - matrix.ErrDimensionMismatch when fn or innerProduct do not match the list space.
func Orthonormalize(list *functions.List, fn *matrix.Vector, innerProduct *matrix.Dense, opts ...Option) error {
	if list == nil || fn == nil || innerProduct == nil {
		return fmt.Errorf("gramschmidt.Orthonormalize: %w", matrix.ErrNilMatrix)
	}
	o := options{tol: DefaultTolerance}
	for _, opt := range opts {
		opt(&o)
	}
	if fn.Len() != list.Space().Dim() {
		return fmt.Errorf("gramschmidt.Orthonormalize: len %d for space %d: %w",
			fn.Len(), list.Space().Dim(), matrix.ErrDimensionMismatch)
	}

	norm := func(v []float64) (float64, error) {
		s, err := matrix.Inner(innerProduct, v, v)
		if err != nil {
			return 0, err
		}

		return math.Sqrt(math.Max(s, 0)), nil
	}

	res := fn.Clone()
	r := res.RawData()
	initial, err := norm(r)
	if err != nil {
		return fmt.Errorf("gramschmidt.Orthonormalize: %w", err)
	}
	for i, b := range list.All() {
		c, err := matrix.Inner(innerProduct, r, b.RawData())
		if err != nil {
			return fmt.Errorf("gramschmidt.Orthonormalize: basis %d: %w", i, err)
		}
		if err = matrix.Axpy(-c, b, res); err != nil {
			return fmt.Errorf("gramschmidt.Orthonormalize: basis %d: %w", i, err)
		}
	}

	n, err := norm(r)
	if err != nil {
		return fmt.Errorf("gramschmidt.Orthonormalize: %w", err)
	}
	if n == 0 || n <= o.tol*initial {
		return fmt.Errorf("gramschmidt.Orthonormalize: residual %g of %g: %w", n, initial, ErrLinearlyDependent)
	}
	res.ScaleInPlace(1 / n)

	return list.Append(res)
}

// OrthonormalizeBlock runs Orthonormalize on every block.
// A failing block stops the loop; earlier blocks keep their new element.
func OrthonormalizeBlock(lists []*functions.List, fns []*matrix.Vector, innerProducts []*matrix.Dense, opts ...Option) error {
	if len(fns) != len(lists) || len(innerProducts) != len(lists) {
		return fmt.Errorf("gramschmidt.OrthonormalizeBlock: %d lists, %d functions, %d inner products: %w",
			len(lists), len(fns), len(innerProducts), ErrBlockMismatch)
	}
	for I := range lists {
		if err := Orthonormalize(lists[I], fns[I], innerProducts[I], opts...); err != nil {
			return fmt.Errorf("gramschmidt.OrthonormalizeBlock: block %d: %w", I, err)
		}
	}

	return nil
}
