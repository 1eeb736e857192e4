// Package matrix_test provides benchmarks for the matrix kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/katalvlaran/densekit/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM matrix.Matrix
	sinkF float64
)

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			B := MustDense(b, n, n)
			RandomFill(b, A, 1337)
			RandomFill(b, B, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMulWithWorkers(b *testing.B) {
	b.ReportAllocs()
	workers := runtime.GOMAXPROCS(0)
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d/workers=%d", n, workers), func(b *testing.B) {
			A := MustDense(b, n, n)
			B := MustDense(b, n, n)
			RandomFill(b, A, 1337)
			RandomFill(b, B, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.MulWith(A, B, matrix.WithWorkers(workers))
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkTranspose(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := MustDense(b, n, n)
			RandomFill(b, A, 7)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Transpose(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkInverse(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := DiagDominantDense(b, n, 99)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Inverse(A)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkLUDet(b *testing.B) {
	b.ReportAllocs()
	A := DiagDominantDense(b, 128, 5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f, err := matrix.LU(A)
		if err != nil {
			b.Fatal(err)
		}
		sinkF = f.Det()
	}
}
