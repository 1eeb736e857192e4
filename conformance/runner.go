// SPDX-License-Identifier: MIT

package conformance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/densekit/backend"
)

// Defaults used when the matching option is not supplied.
const (
	DefaultTolerance = 1e-9
	DefaultSize      = 16
	DefaultSeed      = 1
)

// ErrNilBackend is returned by Run when no backend is given.
var ErrNilBackend = errors.New("conformance: nil backend")

// Finding is the outcome of a single check.
type Finding struct {
	Name     string
	Passed   bool
	Detail   string // empty when Passed
	Duration time.Duration
}

// Report collects the findings of one Run in check order.
type Report struct {
	Backend  string
	Against  string // empty without WithAgainst
	Findings []Finding
}

// OK reports whether every check passed.
func (r *Report) OK() bool { return len(r.Failed()) == 0 }

// Failed returns the failing findings.
func (r *Report) Failed() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if !f.Passed {
			out = append(out, f)
		}
	}

	return out
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTolerance sets the absolute tolerance of approximate comparisons.
// Panics on NaN, ±Inf or negative tol.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic("conformance: WithTolerance(tol): tol must be finite and >= 0")
	}

	return func(r *Runner) { r.tol = tol }
}

// WithSize sets the dimension n of random vectors (n²) and matrices (n×n).
// Panics if n < 1.
func WithSize(n int) Option {
	if n < 1 {
		panic("conformance: WithSize(n): n must be >= 1")
	}

	return func(r *Runner) { r.size = n }
}

// WithSeed sets the seed of the random inputs.
func WithSeed(seed int64) Option {
	return func(r *Runner) { r.seed = seed }
}

// WithAgainst enables cross-checking every kernel against other.
func WithAgainst(other backend.NumericBackend) Option {
	return func(r *Runner) { r.against = other }
}

// WithConcurrency bounds the number of checks running at once.
// Panics if n < 1.
func WithConcurrency(n int) Option {
	if n < 1 {
		panic("conformance: WithConcurrency(n): n must be >= 1")
	}

	return func(r *Runner) { r.limit = n }
}

// Runner executes the conformance checks. Safe for concurrent use once built.
type Runner struct {
	log     *zap.Logger
	tol     float64
	size    int
	seed    int64
	limit   int
	against backend.NumericBackend
}

// New returns a Runner configured by opts.
func New(opts ...Option) *Runner {
	r := &Runner{
		log:   zap.NewNop(),
		tol:   DefaultTolerance,
		size:  DefaultSize,
		seed:  DefaultSeed,
		limit: runtime.GOMAXPROCS(0),
	}
	for _, set := range opts {
		if set != nil {
			set(r)
		}
	}

	return r
}

// Run executes every check against b and returns the report.
// A failing check is a Finding, not an error; Run fails only on a nil
// backend or when ctx is done before all checks have run.
func (r *Runner) Run(ctx context.Context, b backend.NumericBackend) (*Report, error) {
	if b == nil {
		return nil, ErrNilBackend
	}

	checks := r.checks()
	rep := &Report{Backend: b.Name(), Findings: make([]Finding, len(checks))}
	if r.against != nil {
		rep.Against = r.against.Name()
	}
	log := r.log.With(zap.String("backend", rep.Backend))
	log.Debug("conformance started",
		zap.Int("checks", len(checks)),
		zap.Int("size", r.size),
		zap.Int64("seed", r.seed),
		zap.Float64("tolerance", r.tol))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, c := range checks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			err := c.fn(b)
			f := Finding{Name: c.name, Passed: err == nil, Duration: time.Since(start)}
			if err != nil {
				f.Detail = err.Error()
				log.Warn("check failed", zap.String("check", c.name), zap.Error(err))
			} else {
				log.Debug("check passed", zap.String("check", c.name), zap.Duration("took", f.Duration))
			}
			rep.Findings[i] = f // each goroutine owns index i

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("conformance: %w", err)
	}

	failed := len(rep.Failed())
	log.Info("conformance finished",
		zap.Int("checks", len(checks)),
		zap.Int("failed", failed))

	return rep, nil
}
