// SPDX-License-Identifier: MIT

// Package matrix: public interfaces shared by dense storage and the online layer.
// Concrete storage lives in impl_dense.go (Dense) and vector.go (Vector);
// errors and options live in dedicated files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns in the matrix.
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

// Tensor is the storage-level view shared by *Dense and *Vector.
// RawData exposes the row-major backing slice (no copy); Shape reports
// (rows, cols) with vectors reported as (n, 1).
//
// Serializers and tensor-native inner products rely only on this surface,
// so both online matrices and online vectors can flow through them.
type Tensor interface {
	Shape() (rows, cols int)
	RawData() []float64
}
