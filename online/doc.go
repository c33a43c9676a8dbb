// Package online creates the small dense tensors of the reduced (online)
// problem and reads and writes them.
//
// A block tensor is a single matrix.Dense or matrix.Vector whose shape is the
// sum of the block sizes; the block layout is not stored and is recovered
// from the sizes with Offsets. The Import and Export helpers bind the
// tensorio backend to the online factories and to the single-process scope.
package online
