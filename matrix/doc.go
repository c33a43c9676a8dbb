// Package matrix offers the dense storage and kernels behind online
// (reduced-basis) tensors.
//
// The matrix package provides:
//
//   - Dense, a row-major M×N matrix with error-returning accessors and
//     no-copy MatrixView windows used to fill block matrices block by block.
//   - Vector, a dense sequential vector with write-through Segment windows.
//   - Kernels: Scale and Axpy (in place), MatVec, VecMat, Dot, Inner (xᵀAy),
//     Frobenius, AllClose.
//   - Eigen (Jacobi rotations) and EigenSym (gonum) for symmetric matrices,
//     with FromGonum to copy gonum results back.
//
// Online objects are small and replicated on every process, so everything in
// this package is sequential and allocation-explicit.
package matrix
