package pod

import (
	"fmt"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/tensors"
)

// FunctionsResult is the decomposition of a functions list.
type FunctionsResult struct {
	// Eigenvalues holds the full spectrum of the correlation matrix, largest first.
	Eigenvalues []float64
	// Modes holds the retained modes, in the snapshots' space.
	Modes *functions.List
	// Eigenvectors holds the retained eigenvectors, paired with Modes.
	Eigenvectors []*matrix.Vector
}

// TensorsResult is the decomposition of a tensors list.
type TensorsResult[T matrix.Tensor] struct {
	Eigenvalues  []float64
	Modes        *tensors.List[T]
	Eigenvectors []*matrix.Vector
}

// Functions decomposes the snapshots in list with the inner product
// (u, v) ↦ uᵀ·A·v of the online matrix innerProduct.
//
// At most maxModes modes are retained, fewer when the leading eigenvalues
// already carry a fraction 1−tol of the energy. With normalization on (the
// default) the modes are orthonormal with respect to innerProduct.
//
// Errors:
//   - ErrInvalidInput for an empty list, maxModes < 0, tol outside [0, 1] or a nil inner product.
//   - matrix.ErrDimensionMismatch when innerProduct does not match the space.
//   - matrix.ErrMatrixEigenFailed when the eigen-solver does not converge.
func Functions(list *functions.List, innerProduct *matrix.Dense, maxModes int, tol float64, opts ...Option) (*FunctionsResult, error) {
	if list == nil || innerProduct == nil {
		return nil, fmt.Errorf("pod.Functions: nil argument: %w", ErrInvalidInput)
	}
	o := gatherOptions(opts...)
	inner := func(a, b *matrix.Vector) (float64, error) {
		return matrix.Inner(innerProduct, a.RawData(), b.RawData())
	}
	d, err := decompose[*matrix.Vector](list, inner, maxModes, tol, o)
	if err != nil {
		return nil, fmt.Errorf("pod.Functions: %w", err)
	}
	modes, err := functions.New(list.Space())
	if err != nil {
		return nil, fmt.Errorf("pod.Functions: %w", err)
	}
	if err = modes.Extend(d.modes); err != nil {
		return nil, fmt.Errorf("pod.Functions: %w", err)
	}

	return &FunctionsResult{Eigenvalues: d.eigenvalues, Modes: modes, Eigenvectors: d.eigenvectors}, nil
}

// Tensors decomposes the tensors in list with the tensor-native inner product
// (Frobenius for matrices, dot for vectors).
func Tensors[T matrix.Tensor](list *tensors.List[T], maxModes int, tol float64, opts ...Option) (*TensorsResult[T], error) {
	if list == nil {
		return nil, fmt.Errorf("pod.Tensors: nil list: %w", ErrInvalidInput)
	}
	o := gatherOptions(opts...)
	inner := func(a, b T) (float64, error) { return matrix.Frobenius(a, b) }
	d, err := decompose[T](list, inner, maxModes, tol, o)
	if err != nil {
		return nil, fmt.Errorf("pod.Tensors: %w", err)
	}
	modes, err := tensors.New(list.Factory())
	if err != nil {
		return nil, fmt.Errorf("pod.Tensors: %w", err)
	}
	if err = modes.Extend(d.modes); err != nil {
		return nil, fmt.Errorf("pod.Tensors: %w", err)
	}

	return &TensorsResult[T]{Eigenvalues: d.eigenvalues, Modes: modes, Eigenvectors: d.eigenvectors}, nil
}
