// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/densekit/matrix"
	"github.com/katalvlaran/densekit/vector"
)

// NumericBackend is the contract every kernel provider satisfies.
// All matrices are row-major; results are always freshly allocated and
// inputs are never mutated.
type NumericBackend interface {
	// Name is the registry key of the backend.
	Name() string

	ScalarAdd(v []float64, s float64) []float64
	ScalarMul(v []float64, s float64) []float64
	// ScalarDiv follows IEEE-754 for s == 0.
	ScalarDiv(v []float64, s float64) []float64

	Add(a, b []float64) ([]float64, error)
	Mul(a, b []float64) ([]float64, error)
	Div(a, b []float64) ([]float64, error)
	Dot(a, b []float64) (float64, error)

	// MatMul multiplies A (m×k) by B (k×n) and returns C (m×n).
	MatMul(a []float64, m, k int, b []float64, n int) ([]float64, error)
	// Transpose returns the cols×rows transpose of a rows×cols matrix.
	Transpose(a []float64, rows, cols int) ([]float64, error)
	// Invert returns the inverse of an n×n matrix.
	Invert(a []float64, n int) ([]float64, error)
}

var (
	// ErrDimensionMismatch indicates operand lengths or shapes that do not fit
	// the requested operation, including non-positive dimensions.
	ErrDimensionMismatch = errors.New("backend: dimension mismatch")

	// ErrSingularMatrix indicates that Invert was asked to invert a singular
	// (or numerically singular) matrix. No result is returned.
	ErrSingularMatrix = errors.New("backend: singular matrix")

	// ErrUnknownBackend indicates a registry lookup for an unregistered name.
	ErrUnknownBackend = errors.New("backend: unknown backend")

	// ErrInvalidBackend indicates a nil backend or one with an empty name.
	ErrInvalidBackend = errors.New("backend: invalid backend")

	// ErrDuplicateBackend indicates a second registration under the same name.
	ErrDuplicateBackend = errors.New("backend: backend already registered")
)

// Operation tags used in error messages.
const (
	opAdd       = "Add"
	opMul       = "Mul"
	opDiv       = "Div"
	opDot       = "Dot"
	opMatMul    = "MatMul"
	opTranspose = "Transpose"
	opInvert    = "Invert"
)

// translate maps a vector/matrix error onto the backend taxonomy while keeping
// the original error in the chain, so both sentinels match errors.Is.
func translate(tag string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matrix.ErrSingularMatrix):
		return fmt.Errorf("%s: %w: %w", tag, ErrSingularMatrix, err)
	case errors.Is(err, vector.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrInvalidDimensions):
		return fmt.Errorf("%s: %w: %w", tag, ErrDimensionMismatch, err)
	default:
		return fmt.Errorf("%s: %w", tag, err)
	}
}

// checkLen validates equal operand lengths.
func checkLen(tag string, a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%s: len %d != %d: %w", tag, len(b), len(a), ErrDimensionMismatch)
	}

	return nil
}

// checkShape validates that buf holds a rows×cols matrix with positive dims.
func checkShape(tag string, buf []float64, rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%s: shape %dx%d: %w", tag, rows, cols, ErrDimensionMismatch)
	}
	if len(buf) != rows*cols {
		return fmt.Errorf("%s: len %d, want %dx%d: %w", tag, len(buf), rows, cols, ErrDimensionMismatch)
	}

	return nil
}
