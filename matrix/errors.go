// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels (wrapped with an operation tag) and
// tests check them via errors.Is. No kernel panics on user-triggered errors.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with fmt.Errorf("<Op>: %w", ErrX);
// callers still match with errors.Is.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub different shapes, Mul where a.Cols != b.Rows, a non-square
	// input to LU/Inverse, or a flat buffer whose length is not rows*cols.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrSingularMatrix is returned by LU and Inverse when the selected pivot is
	// numerically zero. The input is never returned in its place.
	ErrSingularMatrix = errors.New("matrix: singular matrix")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrAliasedOperands signals that an output buffer shares storage with an
	// input of a kernel that cannot run in place (MulTo).
	ErrAliasedOperands = errors.New("matrix: output aliases an operand")

	// ErrNaNInf signals a NaN or ±Inf where a finite value is required
	// (tolerances, option values).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
