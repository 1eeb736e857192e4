// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultPivotTolerance disables the relative pivot test: LU only rejects
	// pivots that are zero, subnormal or NaN.
	DefaultPivotTolerance = 0.0

	// DefaultWorkers runs MulWith sequentially.
	DefaultWorkers = 1
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPivotToleranceInvalid = "matrix: WithPivotTolerance: tol must be finite, non-negative"
	panicWorkersInvalid        = "matrix: WithWorkers: n must be >= 1"
)

// Option mutates internal options. Safe to apply repeatedly (last-writer-wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	pivotTol float64 // >= 0; 0 keeps only the underflow test
	workers  int     // >= 1; DefaultWorkers
}

// PivotTolerance returns the effective relative pivot tolerance.
func (o Options) PivotTolerance() float64 { return o.pivotTol }

// Workers returns the effective worker count for MulWith.
func (o Options) Workers() int { return o.workers }

// WithPivotTolerance sets a relative tolerance used by LU/Inverse to decide
// that a pivot is numerically zero: |p| < tol * max|a_ij| is rejected on top
// of the default underflow test. tol = 0 restores the default.
//
// Panics with a stable message when tol is NaN, ±Inf or negative.
func WithPivotTolerance(tol float64) Option {
	if ValidateTolerance(tol) != nil {
		panic(panicPivotToleranceInvalid)
	}

	return func(o *Options) { o.pivotTol = tol }
}

// WithWorkers sets how many goroutines MulWith may use to compute rows of
// the product. n = 1 keeps the sequential kernel.
//
// Panics with a stable message when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// NewMatrixOptions resolves opts on top of the documented defaults.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user setters in order on top of defaults.
// This is the canonical internal entry used by kernels.
func gatherOptions(user ...Option) Options {
	o := Options{
		pivotTol: DefaultPivotTolerance,
		workers:  DefaultWorkers,
	}
	for _, set := range user {
		if set != nil {
			set(&o) // last-writer-wins
		}
	}

	return o
}
