// SPDX-License-Identifier: MIT

// Package matrix - LU factorization with partial pivoting and inversion.
//
// Purpose:
//   - Factorize P·A = L·U with row pivoting chosen by largest |a[i][k]|.
//   - Build A⁻¹ column by column from the factors.
//   - Keep every workspace (pivot indices, scratch vectors) local to the call.
//
// Failure policy:
//   - By default a pivot is numerically zero when it is zero, subnormal or
//     NaN (it underflows). WithPivotTolerance(tol > 0) additionally rejects
//     |p| < tol * max|a_ij| over the finite entries of the input.
//   - On failure the kernels return ErrSingularMatrix and a nil result; the
//     input is never handed back.

package matrix

import (
	"fmt"
	"math"
)

// LUFactors holds a pivoted LU factorization P·A = L·U of an n×n matrix.
// L (unit lower) and U (upper) share one row-major buffer; the unit diagonal
// of L is implicit. pivots[k] is the row swapped with row k at step k.
type LUFactors struct {
	n      int
	lu     []float64
	pivots []int
	sign   float64 // +1 or -1, parity of the row permutation
}

// LU computes the factorization P·A = L·U with partial pivoting.
// Implementation:
//   - Stage 1: Validate m (not nil, square); copy it into a private buffer.
//   - Stage 2: For k = 0..n-1 pick the row p ≥ k with the largest |a[p][k]|,
//     swap it into place, record pivots[k] = p, then eliminate below the pivot.
//
// Behavior highlights:
//   - Ties keep the topmost row, so the pivot sequence is deterministic.
//   - The input is never mutated.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingularMatrix.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(m Matrix, opts ...Option) (*LUFactors, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)

	n := m.Rows()
	a, err := copyData(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}

	thresh := pivotThreshold(o.pivotTol, a)
	f := &LUFactors{n: n, lu: a, pivots: make([]int, n), sign: 1}

	var (
		i, j, k, p        int
		best, v, l, pivot float64
		rowK, rowI, rowP  int
	)
	for k = 0; k < n; k++ {
		// Select pivot row.
		p, best = k, math.Abs(a[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if !(best >= thresh) {
			return nil, matrixErrorf(opLU, fmt.Errorf("pivot %d: %w", k, ErrSingularMatrix))
		}
		f.pivots[k] = p

		// Swap rows p and k.
		rowK = k * n
		if p != k {
			rowP = p * n
			for j = 0; j < n; j++ {
				a[rowK+j], a[rowP+j] = a[rowP+j], a[rowK+j]
			}
			f.sign = -f.sign
		}

		// Eliminate below the pivot, storing multipliers in the L part.
		pivot = a[rowK+k]
		for i = k + 1; i < n; i++ {
			rowI = i * n
			l = a[rowI+k] / pivot
			a[rowI+k] = l
			for j = k + 1; j < n; j++ {
				a[rowI+j] -= l * a[rowK+j]
			}
		}
	}

	return f, nil
}

// N returns the order of the factorized matrix.
func (f *LUFactors) N() int { return f.n }

// Pivots returns a copy of the pivot indices (pivots[k] was swapped with k).
func (f *LUFactors) Pivots() []int {
	out := make([]int, len(f.pivots))
	copy(out, f.pivots)

	return out
}

// L returns the unit lower-triangular factor as a new Dense.
func (f *LUFactors) L() *Dense {
	n := f.n
	l := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			l.data[i*n+j] = f.lu[i*n+j]
		}
		l.data[i*n+i] = 1.0
	}

	return l
}

// U returns the upper-triangular factor as a new Dense.
func (f *LUFactors) U() *Dense {
	n := f.n
	u := &Dense{r: n, c: n, data: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			u.data[i*n+j] = f.lu[i*n+j]
		}
	}

	return u
}

// Det returns det(A) = sign(P) · Π U[i,i].
func (f *LUFactors) Det() float64 {
	det := f.sign
	for i := 0; i < f.n; i++ {
		det *= f.lu[i*f.n+i]
	}

	return det
}

// Solve returns x with A·x = b. b is not modified.
// Errors: ErrDimensionMismatch when len(b) != n.
func (f *LUFactors) Solve(b []float64) ([]float64, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	x := make([]float64, f.n)
	copy(x, b)
	f.solveInPlace(x)

	return x, nil
}

// solveInPlace overwrites x (holding b) with A⁻¹·b.
//
// Implementation:
//   - Stage 1: apply the recorded row swaps to x in factorization order.
//   - Stage 2: forward substitution with unit-diagonal L (top-down).
//   - Stage 3: back substitution with U (bottom-up).
func (f *LUFactors) solveInPlace(x []float64) {
	n := f.n
	var i, k, base int
	var sum float64
	for k = 0; k < n; k++ {
		if p := f.pivots[k]; p != k {
			x[k], x[p] = x[p], x[k]
		}
	}
	for i = 0; i < n; i++ {
		sum = x[i]
		base = i * n
		for k = 0; k < i; k++ {
			sum -= f.lu[base+k] * x[k]
		}
		x[i] = sum
	}
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		base = i * n
		for k = i + 1; k < n; k++ {
			sum -= f.lu[base+k] * x[k]
		}
		x[i] = sum / f.lu[base+i]
	}
}

// Inverse computes A⁻¹ via LU with partial pivoting.
// Implementation:
//   - Stage 1: LU(m) → P·A = L·U (fails fast on a numerically zero pivot).
//   - Stage 2: For each column e_col of the identity solve A·x = e_col with
//     one local scratch vector and write x into column col of the result.
//
// Returns:
//   - Matrix: Dense(n×n) containing A⁻¹.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingularMatrix.
//     On any error the result is nil.
//
// Complexity:
//   - Time O(n³), Space O(n²).
//
// Notes:
//   - If you only need A⁻¹·b, call LU once and use Solve instead.
func Inverse(m Matrix, opts ...Option) (Matrix, error) {
	f, err := LU(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := f.n
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	x := make([]float64, n) // per-call workspace
	var col, i int
	for col = 0; col < n; col++ {
		clear(x)
		x[col] = 1.0
		f.solveInPlace(x)
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// copyData returns a fresh row-major copy of m's elements.
func copyData(m Matrix) ([]float64, error) {
	if d, ok := m.(*Dense); ok {
		return d.Data(), nil
	}
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, rows*cols)
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if out[i*cols+j], err = m.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// minNormal is the smallest positive normal float64; smaller pivots underflow.
const minNormal = 0x1p-1022

// pivotThreshold returns the smallest acceptable |pivot| for tol over a.
// Infinite entries do not scale the bound.
func pivotThreshold(tol float64, a []float64) float64 {
	if tol == 0 {
		return minNormal
	}

	return max(minNormal, tol*maxAbsFinite(a))
}

// maxAbsFinite returns max|v_i| over finite entries (0 if there are none).
func maxAbsFinite(v []float64) float64 {
	var best float64
	for _, x := range v {
		if a := math.Abs(x); a > best && !math.IsInf(a, 1) {
			best = a
		}
	}

	return best
}
