// SPDX-License-Identifier: MIT

package vector

// ScalarAdd returns v[i] + s for every element.
func ScalarAdd(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	scalarAdd(out, v, s)

	return out
}

// ScalarMul returns v[i] * s for every element.
func ScalarMul(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	scalarMul(out, v, s)

	return out
}

// ScalarDiv returns v[i] / s for every element. s == 0 is not an error:
// x/0 is ±Inf and 0/0 is NaN.
func ScalarDiv(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	scalarDiv(out, v, s)

	return out
}

// ScalarAddTo writes v[i] + s into dst. dst may be v.
func ScalarAddTo(dst, v []float64, s float64) error {
	if len(dst) != len(v) {
		return lengthError(opScalar, len(dst), len(v))
	}
	scalarAdd(dst, v, s)

	return nil
}

// ScalarMulTo writes v[i] * s into dst. dst may be v.
func ScalarMulTo(dst, v []float64, s float64) error {
	if len(dst) != len(v) {
		return lengthError(opScalar, len(dst), len(v))
	}
	scalarMul(dst, v, s)

	return nil
}

// ScalarDivTo writes v[i] / s into dst. dst may be v.
func ScalarDivTo(dst, v []float64, s float64) error {
	if len(dst) != len(v) {
		return lengthError(opScalar, len(dst), len(v))
	}
	scalarDiv(dst, v, s)

	return nil
}

func scalarAdd(dst, v []float64, s float64) {
	for i := range dst {
		dst[i] = v[i] + s
	}
}

func scalarMul(dst, v []float64, s float64) {
	for i := range dst {
		dst[i] = v[i] * s
	}
}

// scalarDiv divides rather than multiplying by 1/s so results match x/s exactly.
func scalarDiv(dst, v []float64, s float64) {
	for i := range dst {
		dst[i] = v[i] / s
	}
}
