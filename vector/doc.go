// Package vector implements the dense vector kernels of densekit:
// scalar-vector arithmetic, element-wise vector-vector arithmetic and the
// dot product, all over plain []float64.
//
// Contract highlights:
//
//   - Scalar kernels (ScalarAdd, ScalarMul, ScalarDiv) never fail; the result
//     has the input's length. Division by a zero scalar yields ±Inf or NaN
//     per IEEE-754, it is not an error.
//   - Vector-vector kernels (Add, Sub, Mul, Div, Dot) require equal lengths
//     and return ErrDimensionMismatch otherwise.
//   - Every kernel returns a freshly allocated slice; the *To variants write
//     into a caller-owned dst instead and may alias an operand.
//   - Accumulation is left-to-right; results are deterministic.
//
// A nil slice is an empty vector.
package vector
