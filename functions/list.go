// Package functions holds ordered lists of basis functions of an online space.
//
// A function is represented by its coefficient vector (a *matrix.Vector);
// every element of a List has the length of the list's Space.
package functions

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/romkit/internal/seq"
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/online"
	"github.com/katalvlaran/romkit/tensorio"
)

// ErrIndexOutOfRange is returned for positions outside [0, Len).
var ErrIndexOutOfRange = seq.ErrIndexOutOfRange

// Space is the function space a list is bound to.
type Space interface {
	Dim() int
}

// DenseSpace is a space of dimension n without block structure.
type DenseSpace int

// Dim implements Space.
func (s DenseSpace) Dim() int { return int(s) }

// BlockSpace is a product space; its functions are block vectors of these sizes.
type BlockSpace []int

// Dim implements Space.
func (s BlockSpace) Dim() int {
	n := 0
	for _, b := range s {
		n += b
	}

	return n
}

// Sizes returns a copy of the block sizes.
func (s BlockSpace) Sizes() []int { return append([]int(nil), s...) }

// List is an ordered collection of functions of one Space.
// Appending stores the reference; callers that keep mutating a vector must Clone it first.
type List struct {
	space Space
	items seq.List[*matrix.Vector]
}

// New returns an empty list bound to space.
func New(space Space) (*List, error) {
	if space == nil || space.Dim() <= 0 {
		return nil, fmt.Errorf("functions.New: %w", matrix.ErrInvalidDimensions)
	}
	if bs, ok := space.(BlockSpace); ok {
		if _, err := online.Total(bs); err != nil {
			return nil, fmt.Errorf("functions.New: %w", err)
		}
	}

	return &List{space: space}, nil
}

// Space returns the space the list is bound to.
func (l *List) Space() Space { return l.space }

func (l *List) check(v *matrix.Vector) error {
	if v == nil {
		return matrix.ErrNilMatrix
	}
	if v.Len() != l.space.Dim() {
		return fmt.Errorf("length %d, space dim %d: %w", v.Len(), l.space.Dim(), matrix.ErrDimensionMismatch)
	}

	return nil
}

// Append adds v at the end.
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch when v does not belong to the space.
func (l *List) Append(v *matrix.Vector) error {
	if err := l.check(v); err != nil {
		return fmt.Errorf("functions.Append: %w", err)
	}
	l.items.Append(v)

	return nil
}

// Extend appends every vector of vs; nothing is added if any of them is rejected.
func (l *List) Extend(vs []*matrix.Vector) error {
	for i, v := range vs {
		if err := l.check(v); err != nil {
			return fmt.Errorf("functions.Extend item %d: %w", i, err)
		}
	}
	l.items.Extend(vs)

	return nil
}

// Len returns the number of functions.
func (l *List) Len() int { return l.items.Len() }

// At returns the i-th function.
func (l *List) At(i int) (*matrix.Vector, error) { return l.items.At(i) }

// Slice returns a new list over the same space holding the functions in [lo, hi).
func (l *List) Slice(lo, hi int) (*List, error) {
	s, err := l.items.Slice(lo, hi)
	if err != nil {
		return nil, err
	}

	return &List{space: l.space, items: *s}, nil
}

// Delete removes the i-th function.
func (l *List) Delete(i int) error { return l.items.Delete(i) }

// Clear removes every function.
func (l *List) Clear() { l.items.Clear() }

// Items returns a copy of the reference slice.
func (l *List) Items() []*matrix.Vector { return l.items.Items() }

// All iterates the functions in order.
func (l *List) All() iter.Seq2[int, *matrix.Vector] { return l.items.All() }

// Combine returns Σ weights[i]·f_i as a new vector of the space.
// Errors: matrix.ErrDimensionMismatch when len(weights) != Len.
func (l *List) Combine(weights []float64) (*matrix.Vector, error) {
	if len(weights) != l.Len() {
		return nil, fmt.Errorf("functions.Combine: %d weights for %d functions: %w",
			len(weights), l.Len(), matrix.ErrDimensionMismatch)
	}
	out, err := online.NewVector(l.space.Dim())
	if err != nil {
		return nil, fmt.Errorf("functions.Combine: %w", err)
	}
	for i, f := range l.items.All() {
		if err = matrix.Axpy(weights[i], f, out); err != nil {
			return nil, fmt.Errorf("functions.Combine item %d: %w", i, err)
		}
	}

	return out, nil
}

// Save writes the list as one artifact dir/name.
func (l *List) Save(dir, name string, opts ...tensorio.Option) error {
	return online.ExportVectors(l.Items(), dir, name, opts...)
}

// Load reads a list saved with Save and binds it to space.
func Load(space Space, dir, name string, opts ...tensorio.Option) (*List, error) {
	l, err := New(space)
	if err != nil {
		return nil, err
	}
	var vs []*matrix.Vector
	if bs, ok := space.(BlockSpace); ok {
		vs, err = online.ImportVectorsBlock(bs.Sizes(), dir, name, opts...)
	} else {
		vs, err = online.ImportVectors(space.Dim(), dir, name, opts...)
	}
	if err != nil {
		return nil, err
	}
	if err = l.Extend(vs); err != nil {
		return nil, err
	}

	return l, nil
}
