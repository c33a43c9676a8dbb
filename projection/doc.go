// Package projection reduces full-order linear and bilinear forms onto reduced
// bases, producing online vectors and matrices.
//
// Forms are capabilities: a LinearForm evaluates l(v) for a test function, a
// BilinearForm evaluates a(u, v) for a trial function u and a test function v.
// Bilinear forms that also implement TestAssembler are projected row by row,
// assembling once per test function.
//
// Matrix projections take their bases as a tagged value: Galerkin (one basis)
// or PetrovGalerkin (independent test and trial bases), and BlockGalerkin or
// BlockPetrovGalerkin for block systems. Entry (i, j) of a projected matrix is
// a(trial_j, test_i).
//
// Every ProjectX allocates its result; the matching AccumulateX adds into an
// existing destination and never clears it.
package projection
