package projection

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/online"
)

// ErrBlockMismatch is returned when the number of forms disagrees with the
// number of basis blocks.
var ErrBlockMismatch = errors.New("projection: forms and basis blocks do not match")

const (
	opProjectVector      = "ProjectVector"
	opAccumulateVector   = "AccumulateVector"
	opProjectVectorBlk   = "ProjectVectorBlock"
	opAccumulateVecBlk   = "AccumulateVectorBlock"
	opProjectMatrix      = "ProjectMatrix"
	opAccumulateMatrix   = "AccumulateMatrix"
	opProjectMatrixBlk   = "ProjectMatrixBlock"
	opAccumulateMatBlock = "AccumulateMatrixBlock"
)

func projectionErrorf(op string, err error) error {
	return fmt.Errorf("projection.%s: %w", op, err)
}

// ProjectVector returns the online vector with entries l(b_i) for every basis function b_i.
func ProjectVector(l LinearForm, basis Basis) (*matrix.Vector, error) {
	if err := checkBasis(basis); err != nil {
		return nil, projectionErrorf(opProjectVector, err)
	}
	out, err := online.NewVector(basis.Len())
	if err != nil {
		return nil, projectionErrorf(opProjectVector, err)
	}
	if err = addVector(out.RawData(), l, basis); err != nil {
		return nil, projectionErrorf(opProjectVector, err)
	}

	return out, nil
}

// AccumulateVector adds l(b_i) to dst[i]. It never clears dst, so callers
// combine forms by projecting each pre-scaled form into the same destination.
// Errors: matrix.ErrDimensionMismatch when dst.Len() != basis.Len().
func AccumulateVector(dst *matrix.Vector, l LinearForm, basis Basis) error {
	if err := checkBasis(basis); err != nil {
		return projectionErrorf(opAccumulateVector, err)
	}
	if dst == nil {
		return projectionErrorf(opAccumulateVector, matrix.ErrNilMatrix)
	}
	if dst.Len() != basis.Len() {
		return projectionErrorf(opAccumulateVector, fmt.Errorf("dst length %d, basis size %d: %w",
			dst.Len(), basis.Len(), matrix.ErrDimensionMismatch))
	}
	if err := addVector(dst.RawData(), l, basis); err != nil {
		return projectionErrorf(opAccumulateVector, err)
	}

	return nil
}

// ProjectVectorBlock concatenates the projections of ls[I] on blocks[I].
// Segment I starts at the sum of the sizes of the preceding blocks.
func ProjectVectorBlock(ls []LinearForm, blocks []Basis) (*matrix.Vector, error) {
	if err := checkBlocks(len(ls), blocks); err != nil {
		return nil, projectionErrorf(opProjectVectorBlk, err)
	}
	out, err := online.NewVectorBlock(sizes(blocks))
	if err != nil {
		return nil, projectionErrorf(opProjectVectorBlk, err)
	}
	if err = addVectorBlock(out, ls, blocks); err != nil {
		return nil, projectionErrorf(opProjectVectorBlk, err)
	}

	return out, nil
}

// AccumulateVectorBlock adds the block projection of ls into dst.
func AccumulateVectorBlock(dst *matrix.Vector, ls []LinearForm, blocks []Basis) error {
	if err := checkBlocks(len(ls), blocks); err != nil {
		return projectionErrorf(opAccumulateVecBlk, err)
	}
	if dst == nil {
		return projectionErrorf(opAccumulateVecBlk, matrix.ErrNilMatrix)
	}
	if total := sum(sizes(blocks)); dst.Len() != total {
		return projectionErrorf(opAccumulateVecBlk, fmt.Errorf("dst length %d, blocks total %d: %w",
			dst.Len(), total, matrix.ErrDimensionMismatch))
	}
	if err := addVectorBlock(dst, ls, blocks); err != nil {
		return projectionErrorf(opAccumulateVecBlk, err)
	}

	return nil
}

// ProjectMatrix returns the online matrix with entry (i, j) = a(trial_j, test_i).
// Its shape is (test size, trial size); Galerkin gives a square matrix.
func ProjectMatrix(a BilinearForm, b MatrixBases) (*matrix.Dense, error) {
	if b == nil {
		return nil, projectionErrorf(opProjectMatrix, matrix.ErrNilMatrix)
	}
	test, trial := b.bases()
	if err := checkBasis(test); err != nil {
		return nil, projectionErrorf(opProjectMatrix, err)
	}
	if err := checkBasis(trial); err != nil {
		return nil, projectionErrorf(opProjectMatrix, err)
	}
	out, err := online.NewMatrix(test.Len(), trial.Len())
	if err != nil {
		return nil, projectionErrorf(opProjectMatrix, err)
	}
	view, err := out.View(0, 0, test.Len(), trial.Len())
	if err != nil {
		return nil, projectionErrorf(opProjectMatrix, err)
	}
	if err = addMatrix(view, a, test, trial); err != nil {
		return nil, projectionErrorf(opProjectMatrix, err)
	}

	return out, nil
}

// AccumulateMatrix adds the projection of a into dst.
// Errors: matrix.ErrDimensionMismatch when dst is not (test size)×(trial size).
func AccumulateMatrix(dst *matrix.Dense, a BilinearForm, b MatrixBases) error {
	if b == nil || dst == nil {
		return projectionErrorf(opAccumulateMatrix, matrix.ErrNilMatrix)
	}
	test, trial := b.bases()
	if err := checkBasis(test); err != nil {
		return projectionErrorf(opAccumulateMatrix, err)
	}
	if err := checkBasis(trial); err != nil {
		return projectionErrorf(opAccumulateMatrix, err)
	}
	if dst.Rows() != test.Len() || dst.Cols() != trial.Len() {
		return projectionErrorf(opAccumulateMatrix, fmt.Errorf("dst %dx%d, bases %dx%d: %w",
			dst.Rows(), dst.Cols(), test.Len(), trial.Len(), matrix.ErrDimensionMismatch))
	}
	view, err := dst.View(0, 0, test.Len(), trial.Len())
	if err != nil {
		return projectionErrorf(opAccumulateMatrix, err)
	}
	if err = addMatrix(view, a, test, trial); err != nil {
		return projectionErrorf(opAccumulateMatrix, err)
	}

	return nil
}

// ProjectMatrixBlock projects forms[I][J] on (test block I, trial block J) into
// block (I, J) of one dense matrix. A nil form leaves its block zero.
func ProjectMatrixBlock(forms [][]BilinearForm, b BlockBases) (*matrix.Dense, error) {
	if b == nil {
		return nil, projectionErrorf(opProjectMatrixBlk, matrix.ErrNilMatrix)
	}
	test, trial := b.blocks()
	if err := checkFormGrid(forms, test, trial); err != nil {
		return nil, projectionErrorf(opProjectMatrixBlk, err)
	}
	out, err := online.NewMatrixBlock(sizes(test), sizes(trial))
	if err != nil {
		return nil, projectionErrorf(opProjectMatrixBlk, err)
	}
	if err = addMatrixBlock(out, forms, test, trial); err != nil {
		return nil, projectionErrorf(opProjectMatrixBlk, err)
	}

	return out, nil
}

// AccumulateMatrixBlock adds the block projection of forms into dst.
func AccumulateMatrixBlock(dst *matrix.Dense, forms [][]BilinearForm, b BlockBases) error {
	if b == nil || dst == nil {
		return projectionErrorf(opAccumulateMatBlock, matrix.ErrNilMatrix)
	}
	test, trial := b.blocks()
	if err := checkFormGrid(forms, test, trial); err != nil {
		return projectionErrorf(opAccumulateMatBlock, err)
	}
	rows, cols := sum(sizes(test)), sum(sizes(trial))
	if dst.Rows() != rows || dst.Cols() != cols {
		return projectionErrorf(opAccumulateMatBlock, fmt.Errorf("dst %dx%d, blocks %dx%d: %w",
			dst.Rows(), dst.Cols(), rows, cols, matrix.ErrDimensionMismatch))
	}
	if err := addMatrixBlock(dst, forms, test, trial); err != nil {
		return projectionErrorf(opAccumulateMatBlock, err)
	}

	return nil
}

// addVector adds l(b_i) into dst[i].
func addVector(dst []float64, l LinearForm, basis Basis) error {
	if l == nil {
		return fmt.Errorf("linear form: %w", matrix.ErrNilMatrix)
	}
	var (
		i   int
		b   *matrix.Vector
		v   float64
		err error
	)
	for i = 0; i < basis.Len(); i++ {
		if b, err = basis.At(i); err != nil {
			return err
		}
		if v, err = l.Action(b); err != nil {
			return fmt.Errorf("basis function %d: %w", i, err)
		}
		dst[i] += v
	}

	return nil
}

func addVectorBlock(dst *matrix.Vector, ls []LinearForm, blocks []Basis) error {
	offsets := online.Offsets(sizes(blocks))
	for I, basis := range blocks {
		seg, err := dst.Segment(offsets[I], basis.Len())
		if err != nil {
			return err
		}
		if err = addVector(seg.Values(), ls[I], basis); err != nil {
			return fmt.Errorf("block %d: %w", I, err)
		}
	}

	return nil
}

// addMatrix fills dst row by row: one test function per row, all trial
// functions along it. TestAssembler forms assemble once per row.
func addMatrix(dst *matrix.MatrixView, a BilinearForm, test, trial Basis) error {
	if a == nil {
		return fmt.Errorf("bilinear form: %w", matrix.ErrNilMatrix)
	}
	asm, fast := a.(TestAssembler)
	var (
		i, j int
		v, u *matrix.Vector
		w    []float64
		val  float64
		err  error
	)
	for i = 0; i < test.Len(); i++ {
		if v, err = test.At(i); err != nil {
			return err
		}
		if fast {
			if w, err = asm.AssembleTest(v); err != nil {
				return fmt.Errorf("test function %d: %w", i, err)
			}
		}
		for j = 0; j < trial.Len(); j++ {
			if u, err = trial.At(j); err != nil {
				return err
			}
			if fast {
				val, err = matrix.Dot(w, u.RawData())
			} else {
				val, err = a.Action(u, v)
			}
			if err != nil {
				return fmt.Errorf("test function %d, trial function %d: %w", i, j, err)
			}
			if err = dst.AddAt(i, j, val); err != nil {
				return err
			}
		}
	}

	return nil
}

func addMatrixBlock(dst *matrix.Dense, forms [][]BilinearForm, test, trial []Basis) error {
	rowOff := online.Offsets(sizes(test))
	colOff := online.Offsets(sizes(trial))
	for I, row := range forms {
		for J, a := range row {
			if a == nil {
				continue
			}
			view, err := dst.View(rowOff[I], colOff[J], test[I].Len(), trial[J].Len())
			if err != nil {
				return err
			}
			if err = addMatrix(view, a, test[I], trial[J]); err != nil {
				return fmt.Errorf("block (%d,%d): %w", I, J, err)
			}
		}
	}

	return nil
}

func checkBasis(b Basis) error {
	if b == nil {
		return fmt.Errorf("basis: %w", matrix.ErrNilMatrix)
	}
	if l, ok := b.(*functions.List); ok && l == nil {
		return fmt.Errorf("basis: %w", matrix.ErrNilMatrix)
	}

	return nil
}

func checkBlocks(nForms int, blocks []Basis) error {
	if nForms != len(blocks) {
		return fmt.Errorf("%d forms for %d blocks: %w", nForms, len(blocks), ErrBlockMismatch)
	}
	for I, b := range blocks {
		if err := checkBasis(b); err != nil {
			return fmt.Errorf("block %d: %w", I, err)
		}
	}

	return nil
}

func checkFormGrid(forms [][]BilinearForm, test, trial []Basis) error {
	if err := checkBlocks(len(forms), test); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	for I, row := range forms {
		if err := checkBlocks(len(row), trial); err != nil {
			return fmt.Errorf("row %d: %w", I, err)
		}
	}

	return nil
}

func sum(xs []int) int {
	s := 0
	for _, x := range xs {
		s += x
	}

	return s
}
