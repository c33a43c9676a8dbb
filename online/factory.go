package online

import (
	"fmt"

	"github.com/katalvlaran/romkit/matrix"
)

// NewMatrix returns a zero-filled M×N online matrix.
// Errors: matrix.ErrInvalidDimensions when M or N is not positive.
func NewMatrix(m, n int) (*matrix.Dense, error) {
	d, err := matrix.NewDense(m, n)
	if err != nil {
		return nil, fmt.Errorf("online.NewMatrix(%d,%d): %w", m, n, err)
	}

	return d, nil
}

// NewVector returns a zero-filled online vector of length N.
func NewVector(n int) (*matrix.Vector, error) {
	v, err := matrix.NewVector(n)
	if err != nil {
		return nil, fmt.Errorf("online.NewVector(%d): %w", n, err)
	}

	return v, nil
}

// NewMatrixBlock returns one dense matrix of shape (ΣM, ΣN). Block boundaries
// are not stored; callers address block (I,J) through Offsets and View.
func NewMatrixBlock(ms, ns []int) (*matrix.Dense, error) {
	rows, err := Total(ms)
	if err != nil {
		return nil, fmt.Errorf("online.NewMatrixBlock rows: %w", err)
	}
	cols, err := Total(ns)
	if err != nil {
		return nil, fmt.Errorf("online.NewMatrixBlock cols: %w", err)
	}

	return NewMatrix(rows, cols)
}

// NewVectorBlock returns one dense vector of length ΣN.
func NewVectorBlock(ns []int) (*matrix.Vector, error) {
	n, err := Total(ns)
	if err != nil {
		return nil, fmt.Errorf("online.NewVectorBlock: %w", err)
	}

	return NewVector(n)
}

// Total sums block sizes. Every size must be positive and the list non-empty.
func Total(sizes []int) (int, error) {
	if len(sizes) == 0 {
		return 0, fmt.Errorf("empty block list: %w", matrix.ErrInvalidDimensions)
	}
	total := 0
	for i, s := range sizes {
		if s <= 0 {
			return 0, fmt.Errorf("block %d has size %d: %w", i, s, matrix.ErrInvalidDimensions)
		}
		total += s
	}

	return total, nil
}

// Offsets returns the start of every block: Offsets([2 3 4]) = [0 2 5].
func Offsets(sizes []int) []int {
	out := make([]int, len(sizes))
	acc := 0
	for i, s := range sizes {
		out[i] = acc
		acc += s
	}

	return out
}

// MatrixFactory creates M×N online matrices.
type MatrixFactory struct{ Rows, Cols int }

// Create implements tensorio.Factory.
func (f MatrixFactory) Create() (*matrix.Dense, error) { return NewMatrix(f.Rows, f.Cols) }

// MatrixBlockFactory creates block online matrices.
type MatrixBlockFactory struct{ Rows, Cols []int }

// Create implements tensorio.Factory.
func (f MatrixBlockFactory) Create() (*matrix.Dense, error) { return NewMatrixBlock(f.Rows, f.Cols) }

// VectorFactory creates online vectors of length Size.
type VectorFactory struct{ Size int }

// Create implements tensorio.Factory.
func (f VectorFactory) Create() (*matrix.Vector, error) { return NewVector(f.Size) }

// VectorBlockFactory creates block online vectors.
type VectorBlockFactory struct{ Sizes []int }

// Create implements tensorio.Factory.
func (f VectorBlockFactory) Create() (*matrix.Vector, error) { return NewVectorBlock(f.Sizes) }
