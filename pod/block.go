package pod

import (
	"fmt"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/matrix"
)

// BlockParam is a per-block parameter: one value shared by every block, or one value per block.
type BlockParam[T any] struct {
	values    []T
	broadcast bool
}

// Same uses v for every block.
func Same[T any](v T) BlockParam[T] {
	return BlockParam[T]{values: []T{v}, broadcast: true}
}

// Each uses vs[I] for block I; len(vs) must equal the number of blocks.
func Each[T any](vs ...T) BlockParam[T] {
	return BlockParam[T]{values: append([]T(nil), vs...)}
}

func (p BlockParam[T]) resolve(blocks int) ([]T, error) {
	if p.broadcast {
		out := make([]T, blocks)
		for i := range out {
			out[i] = p.values[0]
		}

		return out, nil
	}
	if len(p.values) != blocks {
		return nil, fmt.Errorf("%d values for %d blocks: %w", len(p.values), blocks, ErrBlockMismatch)
	}

	return p.values, nil
}

// BlockResult holds one decomposition per block, in block order.
type BlockResult struct {
	Eigenvalues  [][]float64
	Modes        []*functions.List
	Eigenvectors [][]*matrix.Vector
}

// FunctionsBlock decomposes every block independently with its own inner
// product, maximum mode count and tolerance. Options apply to every block.
//
// Errors:
//   - ErrInvalidInput when lists is empty or a block fails the Functions checks.
//   - ErrBlockMismatch when innerProducts, maxModes or tol do not match len(lists).
func FunctionsBlock(
	lists []*functions.List,
	innerProducts []*matrix.Dense,
	maxModes BlockParam[int],
	tol BlockParam[float64],
	opts ...Option,
) (*BlockResult, error) {
	if len(lists) == 0 {
		return nil, fmt.Errorf("pod.FunctionsBlock: no blocks: %w", ErrInvalidInput)
	}
	if len(innerProducts) != len(lists) {
		return nil, fmt.Errorf("pod.FunctionsBlock: %d inner products for %d blocks: %w",
			len(innerProducts), len(lists), ErrBlockMismatch)
	}
	ns, err := maxModes.resolve(len(lists))
	if err != nil {
		return nil, fmt.Errorf("pod.FunctionsBlock: N: %w", err)
	}
	tols, err := tol.resolve(len(lists))
	if err != nil {
		return nil, fmt.Errorf("pod.FunctionsBlock: tol: %w", err)
	}

	out := &BlockResult{
		Eigenvalues:  make([][]float64, len(lists)),
		Modes:        make([]*functions.List, len(lists)),
		Eigenvectors: make([][]*matrix.Vector, len(lists)),
	}
	for I, list := range lists {
		r, err := Functions(list, innerProducts[I], ns[I], tols[I], opts...)
		if err != nil {
			return nil, fmt.Errorf("pod.FunctionsBlock: block %d: %w", I, err)
		}
		out.Eigenvalues[I] = r.Eigenvalues
		out.Modes[I] = r.Modes
		out.Eigenvectors[I] = r.Eigenvectors
	}

	return out, nil
}
