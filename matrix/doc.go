// Package matrix provides dense, row-major float64 matrices and the linear
// algebra kernels densekit builds on.
//
// The matrix package provides:
//
//   - Dense, a row-major buffer with bounds-checked At/Set that return errors
//     instead of panicking.
//   - Mul, MulTo and MulWith (optionally row-parallel) for C = A × B.
//   - Transpose for Mᵀ.
//   - LU with partial pivoting and Inverse built on top of it.
//   - Add, Sub, Hadamard, Scale and MatVec for completeness.
//
// All kernels validate shapes before touching data and fail fast with
// ErrDimensionMismatch; Inverse and LU report ErrSingularMatrix when a pivot
// is numerically zero. Operands are never mutated and results are always
// freshly allocated, except for MulTo which writes into a caller-owned dst.
//
// Kernels accept any Matrix; concrete *Dense operands take a flat-slice
// fast path, everything else falls back to At/Set in a fixed i→j order.
package matrix
