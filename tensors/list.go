// Package tensors holds ordered lists of online tensors of one shape, such as
// snapshots of reduced operators or right-hand sides.
package tensors

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/romkit/internal/seq"
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/tensorio"
)

// ErrIndexOutOfRange is returned for positions outside [0, Len).
var ErrIndexOutOfRange = seq.ErrIndexOutOfRange

// List is an ordered collection of tensors created by one factory.
type List[T matrix.Tensor] struct {
	factory    tensorio.Factory[T]
	rows, cols int
	items      seq.List[T]
}

// New returns an empty list whose elements must have the shape factory creates.
func New[T matrix.Tensor](factory tensorio.Factory[T]) (*List[T], error) {
	if factory == nil {
		return nil, fmt.Errorf("tensors.New: %w", matrix.ErrNilMatrix)
	}
	proto, err := factory.Create()
	if err != nil {
		return nil, fmt.Errorf("tensors.New: %w", err)
	}
	rows, cols := proto.Shape()

	return &List[T]{factory: factory, rows: rows, cols: cols}, nil
}

// Factory returns the factory the list was created with.
func (l *List[T]) Factory() tensorio.Factory[T] { return l.factory }

// Shape returns the element shape.
func (l *List[T]) Shape() (rows, cols int) { return l.rows, l.cols }

func (l *List[T]) check(t T) error {
	if err := matrix.ValidateTensorNotNil(t); err != nil {
		return err
	}
	rows, cols := t.Shape()
	if rows != l.rows || cols != l.cols {
		return fmt.Errorf("shape %dx%d, want %dx%d: %w", rows, cols, l.rows, l.cols, matrix.ErrDimensionMismatch)
	}

	return nil
}

// Append adds t at the end.
func (l *List[T]) Append(t T) error {
	if err := l.check(t); err != nil {
		return fmt.Errorf("tensors.Append: %w", err)
	}
	l.items.Append(t)

	return nil
}

// Extend appends every tensor of ts; nothing is added if any of them is rejected.
func (l *List[T]) Extend(ts []T) error {
	for i, t := range ts {
		if err := l.check(t); err != nil {
			return fmt.Errorf("tensors.Extend item %d: %w", i, err)
		}
	}
	l.items.Extend(ts)

	return nil
}

// Len returns the number of tensors.
func (l *List[T]) Len() int { return l.items.Len() }

// At returns the i-th tensor.
func (l *List[T]) At(i int) (T, error) { return l.items.At(i) }

// Slice returns a new list holding the tensors in [lo, hi).
func (l *List[T]) Slice(lo, hi int) (*List[T], error) {
	s, err := l.items.Slice(lo, hi)
	if err != nil {
		return nil, err
	}

	return &List[T]{factory: l.factory, rows: l.rows, cols: l.cols, items: *s}, nil
}

// Delete removes the i-th tensor.
func (l *List[T]) Delete(i int) error { return l.items.Delete(i) }

// Clear removes every tensor.
func (l *List[T]) Clear() { l.items.Clear() }

// Items returns a copy of the reference slice.
func (l *List[T]) Items() []T { return l.items.Items() }

// All iterates the tensors in order.
func (l *List[T]) All() iter.Seq2[int, T] { return l.items.All() }

// Combine returns Σ weights[i]·t_i as a new tensor from the factory.
func (l *List[T]) Combine(weights []float64) (T, error) {
	var zero T
	if len(weights) != l.Len() {
		return zero, fmt.Errorf("tensors.Combine: %d weights for %d tensors: %w",
			len(weights), l.Len(), matrix.ErrDimensionMismatch)
	}
	out, err := l.factory.Create()
	if err != nil {
		return zero, fmt.Errorf("tensors.Combine: %w", err)
	}
	for i, t := range l.items.All() {
		if err = matrix.Axpy(weights[i], t, out); err != nil {
			return zero, fmt.Errorf("tensors.Combine item %d: %w", i, err)
		}
	}

	return out, nil
}

// Save writes the list as one artifact dir/name.
func (l *List[T]) Save(dir, name string, opts ...tensorio.Option) error {
	return tensorio.ExportList(l.Items(), tensorio.Self, dir, name, opts...)
}

// Load reads a list saved with Save; every element is created by factory.
func Load[T matrix.Tensor](factory tensorio.Factory[T], dir, name string, opts ...tensorio.Option) (*List[T], error) {
	l, err := New(factory)
	if err != nil {
		return nil, err
	}
	ts, err := tensorio.ImportList(factory, tensorio.Self, dir, name, opts...)
	if err != nil {
		return nil, err
	}
	if err = l.Extend(ts); err != nil {
		return nil, err
	}

	return l, nil
}
