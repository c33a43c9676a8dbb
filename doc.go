// Package romkit is the online layer of a reduced-order modeling toolkit:
// small dense matrices and vectors living in the reduced space, lists of them,
// their storage, and the two algorithms that produce and consume them.
//
// Packages:
//
//	matrix/        dense row-major Dense and Vector, views, kernels, Jacobi Eigen, gonum bridge
//	online/        factory for zero online tensors (plain and block) + shape-bound import/export
//	tensorio/      binary artifact codec with zstd/lz4 payloads, generic Import/Export
//	functions/     FunctionsList: basis functions bound to a space
//	tensors/       TensorsList: online matrices or vectors bound to a factory
//	projection/    Galerkin / Petrov–Galerkin projection of forms (single and block)
//	pod/           proper orthogonal decomposition with energy truncation
//	gramschmidt/   orthonormal extension of a functions list
//	cmd/romctl/    CLI: inspect artifacts, run POD jobs
//
// Quick example: project the integral onto a two-function basis.
//
//	v, _ := projection.ProjectVector(integral, basis) // basis: functions.List of 2 modes
//	fmt.Println(v)                                    // [1, 2]
//
// Artifacts are written as <dir>/<name>.dat by rank 0 of a tensorio.Comm and
// read back with the matching factory; online objects always use tensorio.Self.
package romkit
