package tensorio

import (
	"github.com/katalvlaran/romkit/matrix"
)

// Factory creates the zero-filled destination an importer fills.
// It fixes the concrete tensor type and its shape.
type Factory[T matrix.Tensor] interface {
	Create() (T, error)
}

// FactoryFunc adapts a plain constructor to Factory.
type FactoryFunc[T matrix.Tensor] func() (T, error)

// Create calls f.
func (f FactoryFunc[T]) Create() (T, error) { return f() }

// Comm is the process scope an artifact is shared in. Only rank 0 writes;
// every rank reads.
type Comm interface {
	Rank() int
	Size() int
	Barrier() error
}

type selfComm struct{}

func (selfComm) Rank() int      { return 0 }
func (selfComm) Size() int      { return 1 }
func (selfComm) Barrier() error { return nil }

// Self is the single-process scope used by every online object.
var Self Comm = selfComm{}

// Kind tags the stored tensor layout.
type Kind uint8

const (
	// KindVector marks a 1-D tensor; Cols is always 1.
	KindVector Kind = 1
	// KindMatrix marks a 2-D row-major tensor.
	KindMatrix Kind = 2
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	default:
		return "unknown"
	}
}

// kindOf reports the layout of t. Anything that is not a *matrix.Vector is
// stored as a matrix.
func kindOf(t matrix.Tensor) Kind {
	if _, ok := t.(*matrix.Vector); ok {
		return KindVector
	}

	return KindMatrix
}

// isNil catches both a nil interface and a typed nil tensor pointer.
func isNil(t matrix.Tensor) bool { return matrix.ValidateTensorNotNil(t) != nil }
