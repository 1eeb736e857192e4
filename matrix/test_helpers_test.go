// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic test fixtures and utilities for kernels.
//   - Keep all data finite and well-formed unless a test targets IEEE behavior.

package matrix_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/katalvlaran/densekit/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing kernels onto their interface fallback paths.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		tb.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// NewFilledDense builds an r×c *Dense from a row-major flat slice.
func NewFilledDense(tb testing.TB, r, c int, vals []float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	if err != nil {
		tb.Fatalf("NewDenseFrom(%d,%d): %v", r, c, err)
	}

	return m
}

// IdentityDense returns the n×n identity or fails the test.
func IdentityDense(tb testing.TB, n int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewIdentity(n)
	if err != nil {
		tb.Fatalf("NewIdentity(%d): %v", n, err)
	}

	return m
}

// RandomFill fills m with deterministic U(-1,1) values, row-major.
func RandomFill(tb testing.TB, m matrix.Matrix, seed int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if err := m.Set(i, j, rng.Float64()*2-1); err != nil {
				tb.Fatalf("Set RandomFill(%d,%d): %v", i, j, err)
			}
		}
	}
}

// DiagDominantDense returns an n×n random matrix with a dominant diagonal,
// which keeps it comfortably invertible.
func DiagDominantDense(tb testing.TB, n int, seed int64) *matrix.Dense {
	tb.Helper()
	m := MustDense(tb, n, n)
	RandomFill(tb, m, seed)
	for i := 0; i < n; i++ {
		v := MustAt(tb, m, i, i)
		MustSet(tb, m, i, i, v+float64(n))
	}

	return m
}

// MustSet writes m[i,j] = v or fails the test.
func MustSet(tb testing.TB, m matrix.Matrix, i, j int, v float64) {
	tb.Helper()
	if err := m.Set(i, j, v); err != nil {
		tb.Fatalf("Set(%d,%d): %v", i, j, err)
	}
}

// MustAt reads m[i,j] or fails the test.
func MustAt(tb testing.TB, m matrix.Matrix, i, j int) float64 {
	tb.Helper()
	v, err := m.At(i, j)
	if err != nil {
		tb.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// CompareExact asserts m equals want element by element (exact float equality).
func CompareExact(t *testing.T, want [][]float64, m matrix.Matrix) {
	t.Helper()
	if m.Rows() != len(want) {
		t.Fatalf("rows: want %d; got %d", len(want), m.Rows())
	}
	for i := range want {
		if m.Cols() != len(want[i]) {
			t.Fatalf("cols: want %d; got %d", len(want[i]), m.Cols())
		}
		for j, w := range want[i] {
			if got := MustAt(t, m, i, j); got != w {
				t.Fatalf("[%d,%d]: want %v; got %v", i, j, w, got)
			}
		}
	}
}

// CompareClose asserts m equals want within atol.
func CompareClose(t *testing.T, want matrix.Matrix, got matrix.Matrix, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	if err != nil {
		t.Fatalf("AllClose: %v", err)
	}
	if !ok {
		t.Fatalf("matrices differ beyond %g:\nwant\n%v\ngot\n%v", atol, want, got)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("want %v; got %v", target, err)
	}
}

// ExpectPanic asserts that fn panics.
func ExpectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}
