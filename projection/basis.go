package projection

import "github.com/katalvlaran/romkit/matrix"

// Basis is an ordered set of reduced basis functions. *functions.List implements it.
type Basis interface {
	Len() int
	At(i int) (*matrix.Vector, error)
}

// MatrixBases selects the test and trial bases of a matrix projection.
// Implemented by Galerkin and PetrovGalerkin only.
type MatrixBases interface {
	bases() (test, trial Basis)
}

// Galerkin uses the same basis for test and trial functions.
type Galerkin struct {
	Basis Basis
}

func (g Galerkin) bases() (test, trial Basis) { return g.Basis, g.Basis }

// PetrovGalerkin uses independent bases. The projected matrix has one row per
// test function and one column per trial function.
type PetrovGalerkin struct {
	Test  Basis
	Trial Basis
}

func (p PetrovGalerkin) bases() (test, trial Basis) { return p.Test, p.Trial }

// BlockBases selects the per-block test and trial bases of a block matrix projection.
// Implemented by BlockGalerkin and BlockPetrovGalerkin only.
type BlockBases interface {
	blocks() (test, trial []Basis)
}

// BlockGalerkin uses the same blocks for rows and columns.
type BlockGalerkin struct {
	Blocks []Basis
}

func (g BlockGalerkin) blocks() (test, trial []Basis) { return g.Blocks, g.Blocks }

// BlockPetrovGalerkin uses independent row (test) and column (trial) blocks.
type BlockPetrovGalerkin struct {
	Test  []Basis
	Trial []Basis
}

func (p BlockPetrovGalerkin) blocks() (test, trial []Basis) { return p.Test, p.Trial }

// sizes returns the basis lengths of bs.
func sizes(bs []Basis) []int {
	out := make([]int, len(bs))
	for i, b := range bs {
		out[i] = b.Len()
	}

	return out
}
