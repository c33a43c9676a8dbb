package projection

import (
	"fmt"

	"github.com/katalvlaran/romkit/matrix"
)

// LinearForm is a full-order linear functional evaluated against a test function.
type LinearForm interface {
	Action(test *matrix.Vector) (float64, error)
}

// BilinearForm is a full-order bilinear form a(trial, test).
type BilinearForm interface {
	Action(trial, test *matrix.Vector) (float64, error)
}

// TestAssembler is implemented by bilinear forms that can assemble, for a
// fixed test function, the vector w with a(u, test) = w·u for every u.
// Matrix projection uses it to assemble once per row instead of once per entry.
type TestAssembler interface {
	AssembleTest(test *matrix.Vector) ([]float64, error)
}

// LinearFunc adapts a plain function to LinearForm.
type LinearFunc func(test *matrix.Vector) (float64, error)

// Action calls f.
func (f LinearFunc) Action(test *matrix.Vector) (float64, error) { return f(test) }

// BilinearFunc adapts a plain function to BilinearForm.
type BilinearFunc func(trial, test *matrix.Vector) (float64, error)

// Action calls f.
func (f BilinearFunc) Action(trial, test *matrix.Vector) (float64, error) { return f(trial, test) }

// VectorForm is the linear form v ↦ b·v of an assembled full-order vector b.
type VectorForm struct {
	B *matrix.Vector
}

// Action returns b·test.
func (f VectorForm) Action(test *matrix.Vector) (float64, error) {
	if f.B == nil || test == nil {
		return 0, fmt.Errorf("VectorForm: %w", matrix.ErrNilMatrix)
	}

	return matrix.Dot(f.B.RawData(), test.RawData())
}

// MatrixForm is the bilinear form (u, v) ↦ vᵀ·A·u of an assembled full-order
// matrix A (rows pair with the test function, columns with the trial function).
type MatrixForm struct {
	A *matrix.Dense
}

// Action returns testᵀ·A·trial.
func (f MatrixForm) Action(trial, test *matrix.Vector) (float64, error) {
	if f.A == nil || trial == nil || test == nil {
		return 0, fmt.Errorf("MatrixForm: %w", matrix.ErrNilMatrix)
	}

	return matrix.Inner(f.A, test.RawData(), trial.RawData())
}

// AssembleTest returns testᵀ·A.
func (f MatrixForm) AssembleTest(test *matrix.Vector) ([]float64, error) {
	if f.A == nil || test == nil {
		return nil, fmt.Errorf("MatrixForm: %w", matrix.ErrNilMatrix)
	}

	return matrix.VecMat(test.RawData(), f.A)
}

type scaledLinear struct {
	alpha float64
	form  LinearForm
}

func (s scaledLinear) Action(test *matrix.Vector) (float64, error) {
	v, err := s.form.Action(test)

	return s.alpha * v, err
}

// ScaleLinear returns the form alpha·l, or nil when l is nil.
func ScaleLinear(alpha float64, l LinearForm) LinearForm {
	if l == nil {
		return nil
	}

	return scaledLinear{alpha: alpha, form: l}
}

type scaledBilinear struct {
	alpha float64
	form  BilinearForm
}

func (s scaledBilinear) Action(trial, test *matrix.Vector) (float64, error) {
	v, err := s.form.Action(trial, test)

	return s.alpha * v, err
}

type scaledAssembler struct {
	scaledBilinear
	asm TestAssembler
}

func (s scaledAssembler) AssembleTest(test *matrix.Vector) ([]float64, error) {
	w, err := s.asm.AssembleTest(test)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(w))
	for k, x := range w {
		out[k] = s.alpha * x
	}

	return out, nil
}

// ScaleBilinear returns the form alpha·a, or nil when a is nil. The result
// keeps the TestAssembler fast path when a has one.
func ScaleBilinear(alpha float64, a BilinearForm) BilinearForm {
	if a == nil {
		return nil
	}
	s := scaledBilinear{alpha: alpha, form: a}
	if asm, ok := a.(TestAssembler); ok {
		return scaledAssembler{scaledBilinear: s, asm: asm}
	}

	return s
}
