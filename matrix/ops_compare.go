// SPDX-License-Identifier: MIT

package matrix

import "math"

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// A NaN on either side never satisfies the relation. Equal infinities do.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol must be finite and non-negative (ValidateTolerance).
//
// Time: O(r*c). Space: O(1). Deterministic.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateTolerance(rtol); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateTolerance(atol); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	r, c := a.Rows(), a.Cols()

	// Dense fast-path over flat slices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !closeTo(da.data[idx], db.data[idx], rtol, atol) {
					return false, nil // early-exit on first violation
				}
			}

			return true, nil
		}
	}

	var av, bv float64
	var err error
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return false, matrixErrorf(opAllClose, err)
			}
			if !closeTo(av, bv, rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// closeTo reports |a-b| ≤ atol + rtol*|b| with IEEE-aware edge handling.
func closeTo(a, b, rtol, atol float64) bool {
	if a == b { // covers equal infinities
		return true
	}

	return math.Abs(a-b) <= atol+rtol*math.Abs(b)
}
