// Package densekit is a small set of dense numeric kernels over row-major
// float64 data, with a pluggable backend layer.
//
// What is in the box:
//
//	• Vector kernels: scalar add/mul/div, element-wise add/sub/mul/div, dot
//	• Matrix kernels: multiply (optionally row-parallel), transpose,
//	  LU with partial pivoting, solve, determinant, inverse
//	• Backends: a pure-Go reference and a gonum-backed implementation behind
//	  one NumericBackend interface, looked up by name
//	• Conformance: a runner that checks any backend against the kernel contract
//	• CLI: densekit, one subcommand per kernel plus verify
//
// Packages:
//
//	vector/       []float64 kernels, ErrDimensionMismatch
//	matrix/       Dense, Mul/MulWith/Transpose/LU/Inverse and validators
//	backend/      NumericBackend, Reference, Gonum, registry
//	conformance/  property checks and cross-backend comparison
//	cmd/densekit/ command-line front end
//
// Errors are sentinels matched with errors.Is: dimension mismatch for
// incompatible shapes, singular matrix for a failed inversion. Division by
// zero is not an error; it yields ±Inf or NaN per IEEE-754.
//
//	go get github.com/katalvlaran/densekit
package densekit
