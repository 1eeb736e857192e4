// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication,
// transpose, and scalar scaling. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - LU and Inverse live in impl_lu.go.
//   - All kernels use central validators and wrap sentinels via matrixErrorf.

package matrix

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ZeroSum is the initial value for accumulations and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opMulTo     = "MulTo"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opInverse   = "Inverse"
	opLU        = "LU"
	opSolve     = "Solve"
	opHadamard  = "Hadamard"
	opMatVec    = "MatVec"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes elementwise out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes. A fresh Dense is allocated; operands are not mutated.
//
// Determinism:
//   - Fast-path: single flat slice walk 0..(r*c−1).
//   - Fallback: fixed nested loops i=0..r−1, j=0..c−1.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the new result.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	// Fast path: *Dense with *Dense → single flat loop.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}

			return res, nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var i, j int
	var av, bv float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			res.data[i*cols+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Errors: ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
// Errors: ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: If A and B are *Dense, use i→k→j with row-major strides;
//     otherwise use i→j→k with At.
//
// Behavior highlights:
//   - Every product term is accumulated, zeros included, so NaN and ±Inf in
//     either operand propagate per IEEE-754.
//   - Both paths sum over k in ascending order, so they agree bit-for-bit.
//
// Inputs:
//   - A: left matrix with shape (m × k).
//   - B: right matrix with shape (k × n).
//
// Returns:
//   - Matrix: new Dense C with shape (m × n).
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(m*k*n), Space O(m*n).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	res, err := NewDense(a.Rows(), b.Cols())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Fast-path for two Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			mulDenseRows(res, da, db, 0, da.r)

			return res, nil
		}
	}

	if err = mulGeneric(res, a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return res, nil
}

// MulTo computes dst = A × B into a caller-owned Dense.
// dst must already have shape (a.Rows × b.Cols) and must not be a or b.
// Previous contents of dst are overwritten.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAliasedOperands.
func MulTo(dst, a, b *Dense) error {
	if dst == nil || a == nil || b == nil {
		return matrixErrorf(opMulTo, ErrNilMatrix)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return matrixErrorf(opMulTo, err)
	}
	if dst.r != a.r || dst.c != b.c {
		return matrixErrorf(opMulTo, fmt.Errorf("dst %dx%d, want %dx%d: %w", dst.r, dst.c, a.r, b.c, ErrDimensionMismatch))
	}
	if sharesStorage(dst, a) || sharesStorage(dst, b) {
		return matrixErrorf(opMulTo, ErrAliasedOperands)
	}

	clear(dst.data)
	mulDenseRows(dst, a, b, 0, a.r)

	return nil
}

// MulWith is Mul with options. WithWorkers(n>1) splits the rows of C into
// contiguous blocks computed concurrently; each element is still summed over
// k in ascending order, so the result is identical to Mul.
//
// Non-Dense operands are materialized into Dense copies first so that worker
// goroutines only read from plain slices.
//
// Errors: same as Mul.
func MulWith(a, b Matrix, opts ...Option) (Matrix, error) {
	o := gatherOptions(opts...)
	if o.workers <= 1 {
		return Mul(a, b)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(da.r, db.c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	workers := o.workers
	if workers > da.r {
		workers = da.r
	}
	chunk := (da.r + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < da.r; lo += chunk {
		hi := min(lo+chunk, da.r)
		g.Go(func() error {
			// Each goroutine owns rows [lo,hi) of res exclusively.
			mulDenseRows(res, da, db, lo, hi)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return res, nil
}

// mulDenseRows accumulates rows [lo,hi) of res += a × b using i→k→j order.
// res rows in range must be zero on entry.
func mulDenseRows(res, a, b *Dense, lo, hi int) {
	var (
		i, j, k                        int
		av                             float64
		rowOffsetA, rowOffsetB, rowOut int
	)
	inner, bCols := a.c, b.c
	for i = lo; i < hi; i++ {
		rowOffsetA = i * inner
		rowOut = i * bCols
		for k = 0; k < inner; k++ {
			av = a.data[rowOffsetA+k]
			rowOffsetB = k * bCols
			for j = 0; j < bCols; j++ {
				res.data[rowOut+j] += av * b.data[rowOffsetB+j]
			}
		}
	}
}

// mulGeneric is the interface fallback for Mul (i→j→k, fixed order).
func mulGeneric(res *Dense, a, b Matrix) error {
	var (
		i, j, k         int
		av, bv, current float64
		err             error
	)
	aRows, inner, bCols := a.Rows(), a.Cols(), b.Cols()
	for i = 0; i < aRows; i++ {
		for j = 0; j < bCols; j++ {
			current = ZeroSum
			for k = 0; k < inner; k++ {
				if av, err = a.At(i, k); err != nil {
					return err
				}
				if bv, err = b.At(k, j); err != nil {
					return err
				}
				current += av * bv
			}
			res.data[i*bCols+j] = current
		}
	}

	return nil
}

// asDense returns m itself when it is a *Dense, or a Dense copy otherwise.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	rows, cols := m.Rows(), m.Cols()
	d, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			d.data[i*cols+j] = v
		}
	}

	return d, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ),
// M'[j][i] = M[i][j]. The original matrix is never mutated.
//
// Errors:
//   - ErrNilMatrix. Any non-nil well-formed matrix transposes successfully.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for the returned matrix.
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	// Fast-path: data[i*cols + j] → res.data[j*rows + i]
	if dm, ok := m.(*Dense); ok {
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}

		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// NaN/Inf in alpha or m propagate. Errors: ErrNilMatrix.
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if dm, ok := m.(*Dense); ok {
		for idx := range res.data {
			res.data[idx] = dm.data[idx] * alpha
		}

		return res, nil
	}

	var v float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*cols+j] = v * alpha
		}
	}

	return res, nil
}

// Hadamard computes the elementwise product (a ⊙ b) with a fresh Dense result.
// Hadamard ≠ matrix multiplication; use Mul for A×B.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Hadamard(a, b Matrix) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] * db.data[idx]
			}

			return res, nil
		}
	}

	var av, bv float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			res.data[i*cols+j] = av * bv
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; len(x) == m.Cols().
// Determinism: fixed i→j loop order.
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	rows, cols := m.Rows(), m.Cols()
	y := make([]float64, rows)

	if d, ok := m.(*Dense); ok {
		var base int
		var acc float64
		for i := 0; i < rows; i++ {
			acc = ZeroSum
			base = i * cols
			for j := 0; j < cols; j++ {
				acc += d.data[base+j] * x[j]
			}
			y[i] = acc
		}

		return y, nil
	}

	var mv float64
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if mv, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += mv * x[j]
		}
	}

	return y, nil
}
