// SPDX-License-Identifier: MIT

package vector

import "math"

// Dot returns Σ a[i]*b[i], accumulated left to right.
// The dot product of two empty vectors is 0.
//
// Errors: ErrDimensionMismatch when len(a) != len(b).
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, lengthError(opDot, len(b), len(a))
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum, nil
}

// AllClose reports whether |a[i]-b[i]| <= atol for every i.
// NaN is never close to anything; equal infinities are close.
//
// Errors: ErrDimensionMismatch, ErrInvalidTolerance.
func AllClose(a, b []float64, atol float64) (bool, error) {
	if math.IsNaN(atol) || math.IsInf(atol, 0) || atol < 0 {
		return false, vectorErrorf(opAllClose, ErrInvalidTolerance)
	}
	if len(a) != len(b) {
		return false, lengthError(opAllClose, len(b), len(a))
	}
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !(math.Abs(a[i]-b[i]) <= atol) {
			return false, nil
		}
	}

	return true, nil
}
