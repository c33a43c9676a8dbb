// Package seq is the ordered container shared by the functions and tensors lists.
package seq

import (
	"errors"
	"fmt"
	"iter"
)

// ErrIndexOutOfRange is returned for an index outside [0, Len) or invalid slice bounds.
var ErrIndexOutOfRange = errors.New("seq: index out of range")

// List is an ordered sequence of references. Duplicates are allowed; the list
// never copies the elements it holds.
type List[T any] struct {
	items []T
}

// Append adds x at the end. Amortized O(1).
func (l *List[T]) Append(x T) { l.items = append(l.items, x) }

// Extend appends every element of xs in order.
func (l *List[T]) Extend(xs []T) { l.items = append(l.items, xs...) }

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the element at position i.
func (l *List[T]) At(i int) (T, error) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, fmt.Errorf("At(%d) of %d: %w", i, len(l.items), ErrIndexOutOfRange)
	}

	return l.items[i], nil
}

// Slice returns a new list holding the same references as [lo, hi).
func (l *List[T]) Slice(lo, hi int) (*List[T], error) {
	if lo < 0 || hi > len(l.items) || lo > hi {
		return nil, fmt.Errorf("Slice(%d,%d) of %d: %w", lo, hi, len(l.items), ErrIndexOutOfRange)
	}
	out := &List[T]{items: make([]T, hi-lo)}
	copy(out.items, l.items[lo:hi])

	return out, nil
}

// Delete removes the element at position i, keeping the order of the rest.
func (l *List[T]) Delete(i int) error {
	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("Delete(%d) of %d: %w", i, len(l.items), ErrIndexOutOfRange)
	}
	copy(l.items[i:], l.items[i+1:])
	var zero T
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]

	return nil
}

// Clear removes every element.
func (l *List[T]) Clear() {
	clear(l.items)
	l.items = l.items[:0]
}

// Items returns a copy of the reference slice.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)

	return out
}

// All iterates (index, element) in order.
func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range l.items {
			if !yield(i, x) {
				return
			}
		}
	}
}
