package pod

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/romkit/matrix"
)

var (
	// ErrInvalidInput is returned for an empty snapshot list, N < 0, or tol outside [0, 1].
	ErrInvalidInput = errors.New("pod: invalid input")

	// ErrBlockMismatch is returned when per-block arguments disagree in length.
	ErrBlockMismatch = errors.New("pod: block arguments do not match")
)

// source is the snapshot collection a decomposition reads from.
type source[T matrix.Tensor] interface {
	Len() int
	At(i int) (T, error)
	Combine(weights []float64) (T, error)
}

// decomposition is the solver output before it is wrapped into a result list.
type decomposition[T matrix.Tensor] struct {
	eigenvalues  []float64
	modes        []T
	eigenvectors []*matrix.Vector
}

// decompose runs correlation → eigen → sort → truncate → reconstruct → normalize.
func decompose[T matrix.Tensor](
	snaps source[T],
	inner func(a, b T) (float64, error),
	maxModes int,
	tol float64,
	o options,
) (*decomposition[T], error) {
	n := snaps.Len()
	switch {
	case n == 0:
		return nil, fmt.Errorf("empty snapshot list: %w", ErrInvalidInput)
	case maxModes < 0:
		return nil, fmt.Errorf("N = %d: %w", maxModes, ErrInvalidInput)
	case math.IsNaN(tol) || tol < 0 || tol > 1:
		return nil, fmt.Errorf("tol = %g: %w", tol, ErrInvalidInput)
	}

	corr, err := correlation(snaps, inner)
	if err != nil {
		return nil, err
	}
	values, vectors, err := eigen(corr, o)
	if err != nil {
		return nil, err
	}

	// stable descending order; ties keep solver order
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case values[a] > values[b]:
			return -1
		case values[a] < values[b]:
			return 1
		default:
			return 0
		}
	})
	sorted := make([]float64, n)
	for k, idx := range order {
		sorted[k] = values[idx]
	}

	k, ratio := truncation(sorted, maxModes, tol)

	out := &decomposition[T]{
		eigenvalues:  sorted,
		modes:        make([]T, 0, k),
		eigenvectors: make([]*matrix.Vector, 0, k),
	}
	for m := 0; m < k; m++ {
		vec, err := column(vectors, order[m])
		if err != nil {
			return nil, err
		}
		mode, err := snaps.Combine(vec.RawData())
		if err != nil {
			return nil, fmt.Errorf("mode %d: %w", m, err)
		}
		if lambda := sorted[m]; o.normalize && lambda > 0 {
			s := 1 / math.Sqrt(lambda)
			if err = matrix.Scale(s, mode); err != nil {
				return nil, fmt.Errorf("mode %d: %w", m, err)
			}
			vec.ScaleInPlace(s)
		}
		out.modes = append(out.modes, mode)
		out.eigenvectors = append(out.eigenvectors, vec)
	}

	o.logger.Debug("pod decomposition",
		"snapshots", n, "retained", k, "energy_ratio", ratio,
		"solver", o.solver, "normalize", o.normalize)

	return out, nil
}

// correlation builds C[i][j] = inner(s_i, s_j) from the upper triangle.
func correlation[T matrix.Tensor](snaps source[T], inner func(a, b T) (float64, error)) (*matrix.Dense, error) {
	n := snaps.Len()
	c, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	items := make([]T, n)
	for i := range items {
		if items[i], err = snaps.At(i); err != nil {
			return nil, err
		}
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if v, err = inner(items[i], items[j]); err != nil {
				return nil, fmt.Errorf("correlation (%d,%d): %w", i, j, err)
			}
			if err = c.Set(i, j, v); err != nil {
				return nil, err
			}
			if err = c.Set(j, i, v); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

// eigen decomposes the symmetric correlation matrix with the selected solver.
func eigen(c *matrix.Dense, o options) ([]float64, *matrix.Dense, error) {
	n := c.Rows()
	norm := 0.0
	for _, x := range c.RawData() {
		norm += x * x
	}
	tol := o.eigTol * math.Max(1, math.Sqrt(norm))

	switch o.solver {
	case SolverGonum:
		return matrix.EigenSym(c, tol)
	default:
		maxRot := o.maxRotations
		if maxRot == 0 {
			maxRot = max(1000, 50*n*n)
		}

		return matrix.Eigen(c, tol, maxRot)
	}
}

// truncation returns the smallest k with k == min(N, n) or
// Σ|λ[0:k]| / Σ|λ| ≥ 1 − tol, and the energy ratio retained by k.
// All-zero spectra retain nothing.
func truncation(sorted []float64, maxModes int, tol float64) (k int, ratio float64) {
	total := 0.0
	for _, l := range sorted {
		total += math.Abs(l)
	}
	if total == 0 {
		return 0, 0
	}
	limit := min(maxModes, len(sorted))
	retained := 0.0
	for k = 0; k < limit; k++ {
		if retained/total >= 1-tol {
			break
		}
		retained += math.Abs(sorted[k])
	}

	return k, retained / total
}

// column copies column idx of q into a new vector with a fixed sign:
// the entry of largest magnitude (first one on ties) is made positive.
func column(q *matrix.Dense, idx int) (*matrix.Vector, error) {
	n := q.Rows()
	vals := make([]float64, n)
	pivot := 0
	var err error
	for i := 0; i < n; i++ {
		if vals[i], err = q.At(i, idx); err != nil {
			return nil, err
		}
		if math.Abs(vals[i]) > math.Abs(vals[pivot]) {
			pivot = i
		}
	}
	if vals[pivot] < 0 {
		for i := range vals {
			vals[i] = -vals[i]
		}
	}

	return matrix.NewVectorFrom(vals)
}
