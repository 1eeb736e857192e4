// SPDX-License-Identifier: MIT

package vector

// binaryKernel writes op(a[i], b[i]) into dst; lengths are pre-validated.
type binaryKernel func(dst, a, b []float64)

// apply validates operand lengths and runs k into a fresh slice.
func apply(tag string, a, b []float64, k binaryKernel) ([]float64, error) {
	if len(a) != len(b) {
		return nil, lengthError(tag, len(b), len(a))
	}
	out := make([]float64, len(a))
	k(out, a, b)

	return out, nil
}

// applyTo validates operand and dst lengths and runs k into dst.
func applyTo(tag string, dst, a, b []float64, k binaryKernel) error {
	if len(a) != len(b) {
		return lengthError(tag, len(b), len(a))
	}
	if len(dst) != len(a) {
		return lengthError(tag, len(dst), len(a))
	}
	k(dst, a, b)

	return nil
}

// Add returns a[i] + b[i]. Errors: ErrDimensionMismatch.
func Add(a, b []float64) ([]float64, error) { return apply(opAdd, a, b, add) }

// Sub returns a[i] - b[i]. Errors: ErrDimensionMismatch.
func Sub(a, b []float64) ([]float64, error) { return apply(opSub, a, b, sub) }

// Mul returns a[i] * b[i]. Errors: ErrDimensionMismatch.
func Mul(a, b []float64) ([]float64, error) { return apply(opMul, a, b, mul) }

// Div returns a[i] / b[i] with IEEE-754 semantics for zero divisors.
// Errors: ErrDimensionMismatch.
func Div(a, b []float64) ([]float64, error) { return apply(opDiv, a, b, div) }

// AddTo writes a[i] + b[i] into dst. dst may alias a or b.
func AddTo(dst, a, b []float64) error { return applyTo(opAdd, dst, a, b, add) }

// SubTo writes a[i] - b[i] into dst. dst may alias a or b.
func SubTo(dst, a, b []float64) error { return applyTo(opSub, dst, a, b, sub) }

// MulTo writes a[i] * b[i] into dst. dst may alias a or b.
func MulTo(dst, a, b []float64) error { return applyTo(opMul, dst, a, b, mul) }

// DivTo writes a[i] / b[i] into dst. dst may alias a or b.
func DivTo(dst, a, b []float64) error { return applyTo(opDiv, dst, a, b, div) }

func add(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

func sub(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

func mul(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func div(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] / b[i]
	}
}
