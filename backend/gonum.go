// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// GonumName is the registry key of the Gonum backend.
const GonumName = "gonum"

// Gonum routes every operation through gonum: floats for the vector kernels,
// blas64 for Dot and MatMul, mat for Transpose and Invert.
//
// gonum panics on malformed shapes, so every method validates its operands
// before calling into it.
type Gonum struct{}

// NewGonum returns the Gonum backend.
func NewGonum() *Gonum { return &Gonum{} }

// Name implements NumericBackend.
func (Gonum) Name() string { return GonumName }

// ScalarAdd implements NumericBackend.
func (Gonum) ScalarAdd(v []float64, s float64) []float64 {
	out := cloneVec(v)
	floats.AddConst(s, out)

	return out
}

// ScalarMul implements NumericBackend.
func (Gonum) ScalarMul(v []float64, s float64) []float64 {
	out := cloneVec(v)
	floats.Scale(s, out)

	return out
}

// ScalarDiv implements NumericBackend. It divides by a constant vector rather
// than scaling by 1/s so every element equals v[i]/s exactly.
func (Gonum) ScalarDiv(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	if len(v) == 0 {
		return out
	}
	den := make([]float64, len(v))
	for i := range den {
		den[i] = s
	}
	floats.DivTo(out, v, den)

	return out
}

// Add implements NumericBackend.
func (Gonum) Add(a, b []float64) ([]float64, error) {
	if err := checkLen(opAdd, a, b); err != nil {
		return nil, err
	}
	out := make([]float64, len(a))
	floats.AddTo(out, a, b)

	return out, nil
}

// Mul implements NumericBackend.
func (Gonum) Mul(a, b []float64) ([]float64, error) {
	if err := checkLen(opMul, a, b); err != nil {
		return nil, err
	}
	out := make([]float64, len(a))
	floats.MulTo(out, a, b)

	return out, nil
}

// Div implements NumericBackend.
func (Gonum) Div(a, b []float64) ([]float64, error) {
	if err := checkLen(opDiv, a, b); err != nil {
		return nil, err
	}
	out := make([]float64, len(a))
	floats.DivTo(out, a, b)

	return out, nil
}

// Dot implements NumericBackend.
func (Gonum) Dot(a, b []float64) (float64, error) {
	if err := checkLen(opDot, a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, nil
	}

	return blas64.Dot(
		blas64.Vector{N: len(a), Data: a, Inc: 1},
		blas64.Vector{N: len(b), Data: b, Inc: 1},
	), nil
}

// MatMul implements NumericBackend with a single Gemm call, C = 1·A·B + 0·C.
func (Gonum) MatMul(a []float64, m, k int, b []float64, n int) ([]float64, error) {
	if err := checkShape(opMatMul, a, m, k); err != nil {
		return nil, err
	}
	if err := checkShape(opMatMul, b, k, n); err != nil {
		return nil, err
	}
	c := blas64.General{Rows: m, Cols: n, Data: make([]float64, m*n), Stride: n}
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: m, Cols: k, Data: a, Stride: k},
		blas64.General{Rows: k, Cols: n, Data: b, Stride: n},
		0, c)

	return c.Data, nil
}

// Transpose implements NumericBackend.
func (Gonum) Transpose(a []float64, rows, cols int) ([]float64, error) {
	if err := checkShape(opTranspose, a, rows, cols); err != nil {
		return nil, err
	}
	// mat.NewDense aliases its slice; DenseCopyOf materializes the view.
	t := mat.DenseCopyOf(mat.NewDense(rows, cols, a).T())

	return t.RawMatrix().Data, nil
}

// Invert implements NumericBackend. Any gonum failure, including a
// mat.Condition error for an ill-conditioned input, is reported as
// ErrSingularMatrix.
func (Gonum) Invert(a []float64, n int) ([]float64, error) {
	if err := checkShape(opInvert, a, n, n); err != nil {
		return nil, err
	}
	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(n, n, cloneVec(a))); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opInvert, ErrSingularMatrix, err)
	}

	return inv.RawMatrix().Data, nil
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}
