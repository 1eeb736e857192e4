// Package backend defines NumericBackend, the pluggable surface through which
// callers run the densekit kernels on flat []float64 buffers, and ships two
// implementations:
//
//   - Reference: the pure-Go kernels of packages vector and matrix.
//   - Gonum: the same operations routed through gonum's floats, blas64 and
//     mat packages.
//
// Matrices on this surface are row-major buffers plus explicit dimensions.
// Every error returned by a backend matches ErrDimensionMismatch or
// ErrSingularMatrix via errors.Is; Reference errors additionally keep the
// originating vector/matrix sentinel in the chain.
//
// Backends are looked up by name through a concurrent registry that is
// pre-populated with "reference" and "gonum":
//
//	b, err := backend.Lookup("gonum")
//	if err != nil {
//		return err
//	}
//	c, err := b.MatMul(a, 2, 3, bm, 2)
package backend
