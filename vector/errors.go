// SPDX-License-Identifier: MIT

package vector

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch indicates operands (or dst) of different lengths.
var ErrDimensionMismatch = errors.New("vector: dimension mismatch")

// ErrInvalidTolerance indicates a NaN, infinite or negative tolerance.
var ErrInvalidTolerance = errors.New("vector: invalid tolerance")

// Operation tags for error wrapping.
const (
	opAdd      = "Add"
	opSub      = "Sub"
	opMul      = "Mul"
	opDiv      = "Div"
	opDot      = "Dot"
	opScalar   = "Scalar"
	opAllClose = "AllClose"
)

// vectorErrorf wraps err with an operation tag; errors.Is still matches.
func vectorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// lengthError reports a length mismatch with both lengths for diagnostics.
func lengthError(tag string, got, want int) error {
	return vectorErrorf(tag, fmt.Errorf("len %d != %d: %w", got, want, ErrDimensionMismatch))
}
