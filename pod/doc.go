// Package pod computes the proper orthogonal decomposition of snapshot lists.
//
// Functions works on a functions.List with an online inner-product matrix,
// Tensors on a tensors.List with the tensor-native inner product, and
// FunctionsBlock runs Functions independently per block.
//
// Every call returns the full spectrum of the correlation matrix (largest
// first) together with the retained modes and eigenvectors. Truncation keeps
// the smallest k such that k == N or the leading k eigenvalues hold at least
// a fraction 1−tol of the total energy; an all-zero spectrum retains nothing.
// Normalization (on by default) scales mode i and eigenvector i by
// 1/sqrt(λ_i) whenever λ_i > 0.
//
// Eigenvectors are returned with a fixed sign: their entry of largest
// magnitude is positive, so both solvers agree on modes of simple eigenvalues.
package pod
