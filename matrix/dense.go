// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Bridge flat caller-owned arrays (rows, cols, data) and the Matrix interface.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; NewDenseFrom: O(r*c) copy; At/Set: O(1); Clone/Data: O(r*c).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt   = "At"  // method tag used in error wrappers
	ctxSet  = "Set" // method tag used in error wrappers
	ctxFrom = "NewDenseFrom"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w". The sentinel stays matchable via errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts (> 0)
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills the buffer deterministically.
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom builds an r×c Dense from a row-major flat slice.
// The slice is copied; later writes to data do not affect the matrix.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0 (ErrInvalidDimensions).
//   - Stage 2: validate len(data) == rows*cols (ErrDimensionMismatch).
//   - Stage 3: allocate and copy.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch (both wrapped with "NewDenseFrom").
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(ctxFrom, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, matrixErrorf(ctxFrom, fmt.Errorf("len %d != %d*%d: %w", len(data), rows, cols, ErrDimensionMismatch))
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf}, nil
}

// NewIdentity returns the n×n identity matrix.
// Errors: ErrInvalidDimensions when n <= 0.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return id, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// The method tag is threaded through so At and Set report their own name.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors: ErrOutOfRange wrapped with "Dense.At(row,col)".
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(ctxAt, row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col). Any float64, including NaN and ±Inf, is
// accepted: kernels propagate IEEE-754 values rather than rejecting them.
// Errors: ErrOutOfRange wrapped with "Dense.Set(row,col)".
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(ctxSet, row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy of the Dense matrix.
func (m *Dense) Clone() Matrix {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return &Dense{r: m.r, c: m.c, data: buf}
}

// Data returns a row-major copy of the backing buffer (len == rows*cols).
// This is the bridge back to flat caller-owned arrays.
func (m *Dense) Data() []float64 {
	buf := make([]float64, len(m.data))
	copy(buf, m.data)

	return buf
}

// String implements fmt.Stringer: one bracketed, comma-separated row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// sharesStorage reports whether a and b are backed by the same buffer.
// Dense buffers are never shared between values built by this package, so
// identity of the first element is sufficient.
func sharesStorage(a, b *Dense) bool {
	if a == b {
		return true
	}

	return len(a.data) > 0 && len(b.data) > 0 && &a.data[0] == &b.data[0]
}
