// SPDX-License-Identifier: MIT

package conformance

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/densekit/backend"
	"github.com/katalvlaran/densekit/vector"
)

// check is a named property of a backend; fn returns nil when it holds.
type check struct {
	name string
	fn   func(b backend.NumericBackend) error
}

// checks lists the properties in report order.
func (r *Runner) checks() []check {
	cs := []check{
		{"scalar-add-literal", r.scalarAddLiteral},
		{"scalar-add-roundtrip", r.scalarAddRoundTrip},
		{"scalar-div-ieee", r.scalarDivIEEE},
		{"vector-mismatch", r.vectorMismatch},
		{"dot-literal", r.dotLiteral},
		{"dot-symmetric", r.dotSymmetric},
		{"matmul-literal", r.matMulLiteral},
		{"matmul-mismatch", r.matMulMismatch},
		{"transpose-literal", r.transposeLiteral},
		{"transpose-involution", r.transposeInvolution},
		{"invert-literal", r.invertLiteral},
		{"invert-identity", r.invertIdentity},
		{"invert-singular", r.invertSingular},
	}
	if r.against != nil {
		cs = append(cs, check{"cross-" + r.against.Name(), r.crossCheck})
	}

	return cs
}

// rng returns a fresh source per check so results do not depend on scheduling.
func (r *Runner) rng(salt int64) *rand.Rand {
	return rand.New(rand.NewSource(r.seed*131 + salt))
}

func randomVec(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.Float64()*2 - 1
	}

	return v
}

// diagDominant returns a random n×n matrix with |a_ii| > Σ|a_ij|, hence invertible.
func diagDominant(rng *rand.Rand, n int) []float64 {
	a := randomVec(rng, n*n)
	for i := 0; i < n; i++ {
		a[i*n+i] += float64(n) + 1
	}

	return a
}

func identity(n int) []float64 {
	id := make([]float64, n*n)
	for i := 0; i < n; i++ {
		id[i*n+i] = 1
	}

	return id
}

// expectClose fails when got and want differ by more than atol anywhere.
func expectClose(what string, want, got []float64, atol float64) error {
	ok, err := vector.AllClose(want, got, atol)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if !ok {
		return fmt.Errorf("%s: got %v, want %v", what, got, want)
	}

	return nil
}

func expectErr(what string, err, target error) error {
	if !errors.Is(err, target) {
		return fmt.Errorf("%s: got error %v, want %v", what, err, target)
	}

	return nil
}

func (r *Runner) scalarAddLiteral(b backend.NumericBackend) error {
	return expectClose("ScalarAdd([1,0],3)", []float64{4, 3}, b.ScalarAdd([]float64{1, 0}, 3), 0)
}

func (r *Runner) scalarAddRoundTrip(b backend.NumericBackend) error {
	rng := r.rng(1)
	v := randomVec(rng, r.size*r.size)
	s := rng.Float64()*200 - 100

	return expectClose("ScalarAdd(ScalarAdd(v,s),-s)", v, b.ScalarAdd(b.ScalarAdd(v, s), -s), r.tol)
}

func (r *Runner) scalarDivIEEE(b backend.NumericBackend) error {
	out := b.ScalarDiv([]float64{1, -1, 0}, 0)
	if len(out) != 3 || !math.IsInf(out[0], 1) || !math.IsInf(out[1], -1) || !math.IsNaN(out[2]) {
		return fmt.Errorf("ScalarDiv([1,-1,0],0): got %v, want [+Inf -Inf NaN]", out)
	}

	return nil
}

func (r *Runner) vectorMismatch(b backend.NumericBackend) error {
	short, long := []float64{1}, []float64{1, 2}
	ops := []struct {
		what string
		fn   func(a, c []float64) ([]float64, error)
	}{
		{"Add", b.Add},
		{"Mul", b.Mul},
		{"Div", b.Div},
	}
	for _, op := range ops {
		if _, err := op.fn(short, long); !errors.Is(err, backend.ErrDimensionMismatch) {
			return expectErr(op.what, err, backend.ErrDimensionMismatch)
		}
	}
	_, err := b.Dot(short, long)

	return expectErr("Dot", err, backend.ErrDimensionMismatch)
}

func (r *Runner) dotLiteral(b backend.NumericBackend) error {
	d, err := b.Dot([]float64{1, 2}, []float64{3, 4})
	if err != nil {
		return fmt.Errorf("Dot: %w", err)
	}
	if d != 11 {
		return fmt.Errorf("Dot([1,2],[3,4]): got %v, want 11", d)
	}

	return nil
}

func (r *Runner) dotSymmetric(b backend.NumericBackend) error {
	rng := r.rng(2)
	x := randomVec(rng, r.size*r.size)
	y := randomVec(rng, r.size*r.size)
	xy, err := b.Dot(x, y)
	if err != nil {
		return fmt.Errorf("Dot(x,y): %w", err)
	}
	yx, err := b.Dot(y, x)
	if err != nil {
		return fmt.Errorf("Dot(y,x): %w", err)
	}
	if math.Abs(xy-yx) > r.tol {
		return fmt.Errorf("Dot(x,y)=%v != Dot(y,x)=%v", xy, yx)
	}

	return nil
}

func (r *Runner) matMulLiteral(b backend.NumericBackend) error {
	a := []float64{3, 2, 4, 5, 6, 7}
	m := []float64{10, 20, 30, 30, 40, 50}

	c, err := b.MatMul(a, 2, 3, m, 2)
	if err != nil {
		return fmt.Errorf("MatMul 2x3·3x2: %w", err)
	}
	if err = expectClose("MatMul 2x3·3x2", []float64{250, 320, 510, 630}, c, 0); err != nil {
		return err
	}

	c, err = b.MatMul(a, 3, 2, m, 3)
	if err != nil {
		return fmt.Errorf("MatMul 3x2·2x3: %w", err)
	}

	return expectClose("MatMul 3x2·2x3", []float64{90, 140, 190, 190, 280, 370, 270, 400, 530}, c, 0)
}

func (r *Runner) matMulMismatch(b backend.NumericBackend) error {
	_, err := b.MatMul([]float64{1, 2, 3, 4, 5, 6}, 2, 3, []float64{1, 2, 3, 4}, 2)

	return expectErr("MatMul 2x3·2x2", err, backend.ErrDimensionMismatch)
}

func (r *Runner) transposeLiteral(b backend.NumericBackend) error {
	t, err := b.Transpose([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	if err != nil {
		return fmt.Errorf("Transpose: %w", err)
	}

	return expectClose("Transpose 2x3", []float64{1, 4, 2, 5, 3, 6}, t, 0)
}

func (r *Runner) transposeInvolution(b backend.NumericBackend) error {
	rows, cols := r.size, r.size+1
	a := randomVec(r.rng(3), rows*cols)
	t, err := b.Transpose(a, rows, cols)
	if err != nil {
		return fmt.Errorf("Transpose: %w", err)
	}
	tt, err := b.Transpose(t, cols, rows)
	if err != nil {
		return fmt.Errorf("Transpose: %w", err)
	}

	return expectClose("Transpose(Transpose(M))", a, tt, 0)
}

func (r *Runner) invertLiteral(b backend.NumericBackend) error {
	inv, err := b.Invert([]float64{1, 2, 3, 4}, 2)
	if err != nil {
		return fmt.Errorf("Invert [[1,2],[3,4]]: %w", err)
	}
	if err = expectClose("Invert [[1,2],[3,4]]", []float64{-2, 1, 1.5, -0.5}, inv, r.tol); err != nil {
		return err
	}

	inv, err = b.Invert([]float64{0, 1, 1, 0}, 2)
	if err != nil {
		return fmt.Errorf("Invert [[0,1],[1,0]]: %w", err)
	}

	return expectClose("Invert [[0,1],[1,0]]", []float64{0, 1, 1, 0}, inv, r.tol)
}

func (r *Runner) invertIdentity(b backend.NumericBackend) error {
	n := r.size
	a := diagDominant(r.rng(4), n)
	inv, err := b.Invert(a, n)
	if err != nil {
		return fmt.Errorf("Invert: %w", err)
	}
	prod, err := b.MatMul(a, n, n, inv, n)
	if err != nil {
		return fmt.Errorf("MatMul: %w", err)
	}

	return expectClose("M·M⁻¹", identity(n), prod, r.tol)
}

func (r *Runner) invertSingular(b backend.NumericBackend) error {
	n := r.size
	inv, err := b.Invert(make([]float64, n*n), n)
	if inv != nil {
		return errors.New("Invert(0): returned a result for a singular matrix")
	}

	return expectErr("Invert(0)", err, backend.ErrSingularMatrix)
}

// kernelResult is one kernel's output on both backends.
type kernelResult struct {
	what       string
	got, want  []float64
	gErr, wErr error
}

// crossCheck runs every kernel on both backends with the same inputs.
func (r *Runner) crossCheck(b backend.NumericBackend) error {
	o := r.against
	n := r.size
	rng := r.rng(5)
	x := randomVec(rng, n*n)
	y := randomVec(rng, n*n)
	inv := diagDominant(rng, n)
	s := rng.Float64() + 0.5

	results := []kernelResult{
		{what: "ScalarAdd", got: b.ScalarAdd(x, s), want: o.ScalarAdd(x, s)},
		{what: "ScalarMul", got: b.ScalarMul(x, s), want: o.ScalarMul(x, s)},
		{what: "ScalarDiv", got: b.ScalarDiv(x, s), want: o.ScalarDiv(x, s)},
	}
	run := func(what string, fn func(backend.NumericBackend) ([]float64, error)) {
		res := kernelResult{what: what}
		res.got, res.gErr = fn(b)
		res.want, res.wErr = fn(o)
		results = append(results, res)
	}
	run("Add", func(k backend.NumericBackend) ([]float64, error) { return k.Add(x, y) })
	run("Mul", func(k backend.NumericBackend) ([]float64, error) { return k.Mul(x, y) })
	run("Div", func(k backend.NumericBackend) ([]float64, error) { return k.Div(x, y) })
	run("MatMul", func(k backend.NumericBackend) ([]float64, error) { return k.MatMul(x, n, n, y, n) })
	run("Transpose", func(k backend.NumericBackend) ([]float64, error) { return k.Transpose(x, n, n) })
	run("Invert", func(k backend.NumericBackend) ([]float64, error) { return k.Invert(inv, n) })

	for _, res := range results {
		if res.gErr != nil || res.wErr != nil {
			return fmt.Errorf("%s: %v (%s: %v)", res.what, res.gErr, o.Name(), res.wErr)
		}
		if err := expectClose(res.what+" vs "+o.Name(), res.want, res.got, r.tol); err != nil {
			return err
		}
	}

	gd, err := b.Dot(x, y)
	if err != nil {
		return fmt.Errorf("Dot: %w", err)
	}
	wd, err := o.Dot(x, y)
	if err != nil {
		return fmt.Errorf("Dot (%s): %w", o.Name(), err)
	}
	if math.Abs(gd-wd) > r.tol {
		return fmt.Errorf("Dot vs %s: got %v, want %v", o.Name(), gd, wd)
	}

	return nil
}
