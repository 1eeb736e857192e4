// SPDX-License-Identifier: MIT

package backend_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densekit/backend"
	"github.com/katalvlaran/densekit/matrix"
	"github.com/katalvlaran/densekit/vector"
)

const agreeTol = 1e-9

// backends returns every built-in backend, the Reference twice (serial and
// with workers) so the parallel multiply path is covered too.
func backends() []backend.NumericBackend {
	return []backend.NumericBackend{
		backend.NewReference(),
		backend.NewReference(backend.WithWorkers(3)),
		backend.NewGonum(),
	}
}

func forEach(t *testing.T, fn func(t *testing.T, b backend.NumericBackend)) {
	t.Helper()
	for i, b := range backends() {
		t.Run(b.Name()+"/"+string(rune('0'+i)), func(t *testing.T) { fn(t, b) })
	}
}

func randomVec(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64()*2 - 1
	}

	return v
}

func requireClose(t *testing.T, want, got []float64, atol float64) {
	t.Helper()
	ok, err := vector.AllClose(want, got, atol)
	require.NoError(t, err)
	require.True(t, ok, "want %v\n got %v", want, got)
}

func TestScalarOps(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		require.Equal(t, []float64{4, 3}, b.ScalarAdd([]float64{1, 0}, 3))
		require.Equal(t, []float64{2, 0, -6}, b.ScalarMul([]float64{1, 0, -3}, 2))
		require.Equal(t, []float64{0.5, 1.5}, b.ScalarDiv([]float64{1, 3}, 2))
		require.Len(t, b.ScalarAdd(nil, 1), 0)

		inf := b.ScalarDiv([]float64{1, 0}, 0)
		require.True(t, math.IsInf(inf[0], 1))
		require.True(t, math.IsNaN(inf[1]))

		v := randomVec(20, 3)
		requireClose(t, v, b.ScalarAdd(b.ScalarAdd(v, 2.5), -2.5), 1e-12)
	})
}

func TestVectorOps(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		x := []float64{1, 2, 3}
		y := []float64{4, 5, 6}

		sum, err := b.Add(x, y)
		require.NoError(t, err)
		require.Equal(t, []float64{5, 7, 9}, sum)

		prod, err := b.Mul(x, y)
		require.NoError(t, err)
		require.Equal(t, []float64{4, 10, 18}, prod)

		quot, err := b.Div(y, x)
		require.NoError(t, err)
		require.Equal(t, []float64{4, 2.5, 2}, quot)

		d, err := b.Dot([]float64{1, 2}, []float64{3, 4})
		require.NoError(t, err)
		require.Equal(t, 11.0, d)

		d, err = b.Dot(nil, nil)
		require.NoError(t, err)
		require.Zero(t, d)

		require.Equal(t, []float64{1, 2, 3}, x)
	})
}

func TestVectorMismatch(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		short, long := []float64{1}, []float64{1, 2}

		_, err := b.Add(short, long)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)
		_, err = b.Mul(short, long)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)
		_, err = b.Div(short, long)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)
		_, err = b.Dot(short, long)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)
	})
}

func TestMatMul(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		a := []float64{3, 2, 4, 5, 6, 7}
		bm := []float64{10, 20, 30, 30, 40, 50}

		// 2×3 · 3×2
		c, err := b.MatMul(a, 2, 3, bm, 2)
		require.NoError(t, err)
		require.Equal(t, []float64{250, 320, 510, 630}, c)

		// same buffers read as 3×2 · 2×3
		c, err = b.MatMul(a, 3, 2, bm, 3)
		require.NoError(t, err)
		require.Equal(t, []float64{90, 140, 190, 190, 280, 370, 270, 400, 530}, c)

		require.Equal(t, []float64{3, 2, 4, 5, 6, 7}, a)
	})
}

func TestMatMulMismatch(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		a := []float64{1, 2, 3, 4, 5, 6}

		_, err := b.MatMul(a, 2, 3, []float64{1, 2, 3, 4}, 2)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)

		_, err = b.MatMul(a, 4, 2, a, 3)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)

		_, err = b.MatMul(nil, 0, 3, a, 2)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)
	})
}

func TestTranspose(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		tr, err := b.Transpose([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
		require.NoError(t, err)
		require.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr)

		back, err := b.Transpose(tr, 3, 2)
		require.NoError(t, err)
		require.Equal(t, []float64{1, 2, 3, 4, 5, 6}, back)

		_, err = b.Transpose([]float64{1, 2, 3}, 2, 2)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)
	})
}

func TestInvert(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		inv, err := b.Invert([]float64{1, 2, 3, 4}, 2)
		require.NoError(t, err)
		requireClose(t, []float64{-2, 1, 1.5, -0.5}, inv, 1e-12)

		// needs a row swap
		inv, err = b.Invert([]float64{0, 1, 1, 0}, 2)
		require.NoError(t, err)
		requireClose(t, []float64{0, 1, 1, 0}, inv, 1e-12)

		_, err = b.Invert([]float64{1, 2, 3}, 2)
		require.ErrorIs(t, err, backend.ErrDimensionMismatch)
	})
}

func TestInvertIdentityProperty(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		for _, n := range []int{1, 3, 8, 16} {
			a := randomVec(n*n, int64(n))
			for i := 0; i < n; i++ {
				a[i*n+i] += float64(n) // diagonally dominant
			}
			inv, err := b.Invert(a, n)
			require.NoError(t, err)
			prod, err := b.MatMul(a, n, n, inv, n)
			require.NoError(t, err)

			id, err := matrix.NewIdentity(n)
			require.NoError(t, err)
			requireClose(t, id.Data(), prod, agreeTol)
		}
	})
}

func TestInvertSingular(t *testing.T) {
	forEach(t, func(t *testing.T, b backend.NumericBackend) {
		zero := make([]float64, 9)
		inv, err := b.Invert(zero, 3)
		require.ErrorIs(t, err, backend.ErrSingularMatrix)
		require.Nil(t, inv)

		_, err = b.Invert([]float64{1, 2, 2, 4}, 2)
		require.ErrorIs(t, err, backend.ErrSingularMatrix)
	})
}

func TestReferenceKeepsPackageSentinels(t *testing.T) {
	r := backend.NewReference()

	_, err := r.Add([]float64{1}, nil)
	require.ErrorIs(t, err, backend.ErrDimensionMismatch)
	require.ErrorIs(t, err, vector.ErrDimensionMismatch)

	_, err = r.MatMul([]float64{1, 2}, 1, 2, []float64{1, 2}, 2)
	require.ErrorIs(t, err, backend.ErrDimensionMismatch)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = r.Transpose(nil, 0, 0)
	require.ErrorIs(t, err, backend.ErrDimensionMismatch)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = r.Invert(make([]float64, 4), 2)
	require.ErrorIs(t, err, backend.ErrSingularMatrix)
	require.ErrorIs(t, err, matrix.ErrSingularMatrix)
}

func TestReferencePivotTolerance(t *testing.T) {
	nearly := []float64{1, 1, 1, 1 + 1e-14}

	inv, err := backend.NewReference().Invert(nearly, 2)
	require.NoError(t, err)
	require.Len(t, inv, 4)

	_, err = backend.NewReference(backend.WithPivotTolerance(1e-12)).Invert(nearly, 2)
	require.ErrorIs(t, err, backend.ErrSingularMatrix)
	require.ErrorIs(t, err, matrix.ErrSingularMatrix)
}

func TestReferenceOptionPanics(t *testing.T) {
	require.Panics(t, func() { backend.WithWorkers(0) })
	require.Panics(t, func() { backend.WithPivotTolerance(-1) })
	require.Panics(t, func() { backend.WithPivotTolerance(math.NaN()) })
}

func TestBackendsAgree(t *testing.T) {
	ref := backend.NewReference()
	gon := backend.NewGonum()

	a := randomVec(64, 1)
	b := randomVec(64, 2)

	for _, pair := range []struct {
		name string
		r, g func() ([]float64, error)
	}{
		{"Add", func() ([]float64, error) { return ref.Add(a, b) }, func() ([]float64, error) { return gon.Add(a, b) }},
		{"Mul", func() ([]float64, error) { return ref.Mul(a, b) }, func() ([]float64, error) { return gon.Mul(a, b) }},
		{"Div", func() ([]float64, error) { return ref.Div(a, b) }, func() ([]float64, error) { return gon.Div(a, b) }},
		{"MatMul", func() ([]float64, error) { return ref.MatMul(a, 8, 8, b, 8) }, func() ([]float64, error) { return gon.MatMul(a, 8, 8, b, 8) }},
		{"Transpose", func() ([]float64, error) { return ref.Transpose(a, 4, 16) }, func() ([]float64, error) { return gon.Transpose(a, 4, 16) }},
	} {
		t.Run(pair.name, func(t *testing.T) {
			rv, err := pair.r()
			require.NoError(t, err)
			gv, err := pair.g()
			require.NoError(t, err)
			requireClose(t, rv, gv, agreeTol)
		})
	}

	rd, err := ref.Dot(a, b)
	require.NoError(t, err)
	gd, err := gon.Dot(a, b)
	require.NoError(t, err)
	require.InDelta(t, rd, gd, agreeTol)

	requireClose(t, ref.ScalarDiv(a, 3), gon.ScalarDiv(a, 3), 0)

	// Exactly invertible but badly scaled: both backends invert them.
	for _, diag := range [][2]float64{{1e6, 1e-7}, {1e-13, 1}} {
		m := []float64{diag[0], 0, 0, diag[1]}
		want := []float64{1 / diag[0], 0, 0, 1 / diag[1]}
		rinv, err := ref.Invert(m, 2)
		require.NoError(t, err, "reference %v", diag)
		ginv, err := gon.Invert(m, 2)
		require.NoError(t, err, "gonum %v", diag)
		requireRelClose(t, want, rinv, 1e-12)
		requireRelClose(t, want, ginv, 1e-12)
	}
}

// requireRelClose compares element-wise with a tolerance relative to magnitude.
func requireRelClose(t *testing.T, want, got []float64, rtol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.LessOrEqual(t, math.Abs(want[i]-got[i]), rtol*math.Max(math.Abs(want[i]), math.Abs(got[i])),
			"[%d]: want %v got %v", i, want[i], got[i])
	}
}
