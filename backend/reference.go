// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/katalvlaran/densekit/matrix"
	"github.com/katalvlaran/densekit/vector"
)

// ReferenceName is the registry key of the Reference backend.
const ReferenceName = "reference"

// Option configures a Reference backend.
type Option func(*Reference)

// WithWorkers sets the number of goroutines MatMul may use.
// Panics if n < 1.
func WithWorkers(n int) Option {
	opt := matrix.WithWorkers(n)

	return func(r *Reference) { r.mulOpts = append(r.mulOpts, opt) }
}

// WithPivotTolerance sets the relative pivot threshold used by Invert.
// The default, 0, rejects only zero, subnormal or NaN pivots.
// Panics on NaN, ±Inf or negative tol.
func WithPivotTolerance(tol float64) Option {
	opt := matrix.WithPivotTolerance(tol)

	return func(r *Reference) { r.luOpts = append(r.luOpts, opt) }
}

// Reference runs every operation on the pure-Go kernels of packages vector
// and matrix. The zero value is not usable; call NewReference.
type Reference struct {
	mulOpts []matrix.Option
	luOpts  []matrix.Option
}

// NewReference returns a Reference backend configured by opts.
func NewReference(opts ...Option) *Reference {
	r := &Reference{}
	for _, set := range opts {
		if set != nil {
			set(r)
		}
	}

	return r
}

// Name implements NumericBackend.
func (r *Reference) Name() string { return ReferenceName }

// ScalarAdd implements NumericBackend.
func (r *Reference) ScalarAdd(v []float64, s float64) []float64 { return vector.ScalarAdd(v, s) }

// ScalarMul implements NumericBackend.
func (r *Reference) ScalarMul(v []float64, s float64) []float64 { return vector.ScalarMul(v, s) }

// ScalarDiv implements NumericBackend.
func (r *Reference) ScalarDiv(v []float64, s float64) []float64 { return vector.ScalarDiv(v, s) }

// Add implements NumericBackend.
func (r *Reference) Add(a, b []float64) ([]float64, error) {
	out, err := vector.Add(a, b)

	return out, translate(opAdd, err)
}

// Mul implements NumericBackend.
func (r *Reference) Mul(a, b []float64) ([]float64, error) {
	out, err := vector.Mul(a, b)

	return out, translate(opMul, err)
}

// Div implements NumericBackend.
func (r *Reference) Div(a, b []float64) ([]float64, error) {
	out, err := vector.Div(a, b)

	return out, translate(opDiv, err)
}

// Dot implements NumericBackend.
func (r *Reference) Dot(a, b []float64) (float64, error) {
	d, err := vector.Dot(a, b)

	return d, translate(opDot, err)
}

// MatMul implements NumericBackend.
func (r *Reference) MatMul(a []float64, m, k int, b []float64, n int) ([]float64, error) {
	am, err := matrix.NewDenseFrom(m, k, a)
	if err != nil {
		return nil, translate(opMatMul, err)
	}
	bm, err := matrix.NewDenseFrom(k, n, b)
	if err != nil {
		return nil, translate(opMatMul, err)
	}
	c, err := matrix.MulWith(am, bm, r.mulOpts...)
	if err != nil {
		return nil, translate(opMatMul, err)
	}

	return flatten(c), nil
}

// Transpose implements NumericBackend.
func (r *Reference) Transpose(a []float64, rows, cols int) ([]float64, error) {
	m, err := matrix.NewDenseFrom(rows, cols, a)
	if err != nil {
		return nil, translate(opTranspose, err)
	}
	t, err := matrix.Transpose(m)
	if err != nil {
		return nil, translate(opTranspose, err)
	}

	return flatten(t), nil
}

// Invert implements NumericBackend.
func (r *Reference) Invert(a []float64, n int) ([]float64, error) {
	m, err := matrix.NewDenseFrom(n, n, a)
	if err != nil {
		return nil, translate(opInvert, err)
	}
	inv, err := matrix.Inverse(m, r.luOpts...)
	if err != nil {
		return nil, translate(opInvert, err)
	}

	return flatten(inv), nil
}

// flatten returns the row-major elements of m.
func flatten(m matrix.Matrix) []float64 {
	if d, ok := m.(*matrix.Dense); ok {
		return d.Data()
	}
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, _ := m.At(i, j) // indices are in range
			out = append(out, v)
		}
	}

	return out
}
