package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/densekit/backend"
)

// kernelError tags a kernel failure with the exit code for usage errors.
func kernelError(op string, err error) error {
	return errWithCode(fmt.Errorf("%s: %w", op, err), exitError)
}

func newScalarCmd(a *app, use, short string, op func(backend.NumericBackend, []float64, float64) []float64) *cobra.Command {
	var (
		scalar float64
		vec    string
	)
	cmd := &cobra.Command{
		Use:   use + " --scalar S [--v V] [-- v...]",
		Short: short,
		Long: short + `.

The vector is given with --v, as positional values, or both (--v first).
Negative positional values must follow "--".`,
		Example: fmt.Sprintf("  densekit %[1]s --scalar 3 --v -1,2\n  densekit %[1]s --scalar 3 -- -1 2", use),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(vec)
			if err != nil {
				return kernelError(use, fmt.Errorf("--v: %w", err))
			}
			rest, err := parseArgs(args)
			if err != nil {
				return kernelError(use, err)
			}
			v = append(v, rest...)
			a.log.Debug("kernel", zap.String("op", use), zap.Int("len", len(v)), zap.Float64("scalar", scalar))
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatVector(op(a.backend, v, scalar)))

			return err
		},
	}
	cmd.Flags().Float64Var(&scalar, "scalar", 0, "Scalar operand")
	cmd.Flags().StringVar(&vec, "v", "", "Vector, comma-separated")
	_ = cmd.MarkFlagRequired("scalar")

	return cmd
}

// vectorFlags registers the --a and --b operands of a two-vector kernel.
type vectorFlags struct{ a, b string }

func (f *vectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.a, "a", "", "First vector, comma-separated")
	cmd.Flags().StringVar(&f.b, "b", "", "Second vector, comma-separated")
}

func (f *vectorFlags) parse() (x, y []float64, err error) {
	if x, err = parseFloats(f.a); err != nil {
		return nil, nil, fmt.Errorf("--a: %w", err)
	}
	if y, err = parseFloats(f.b); err != nil {
		return nil, nil, fmt.Errorf("--b: %w", err)
	}

	return x, y, nil
}

func newBinaryCmd(a *app, use, short string, op func(backend.NumericBackend, []float64, []float64) ([]float64, error)) *cobra.Command {
	var flags vectorFlags
	cmd := &cobra.Command{
		Use:   use + " --a V --b V",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, y, err := flags.parse()
			if err != nil {
				return kernelError(use, err)
			}
			a.log.Debug("kernel", zap.String("op", use), zap.Int("len", len(x)))
			out, err := op(a.backend, x, y)
			if err != nil {
				return kernelError(use, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatVector(out))

			return err
		},
	}
	flags.register(cmd)

	return cmd
}

func newDotCmd(a *app) *cobra.Command {
	var flags vectorFlags
	cmd := &cobra.Command{
		Use:   "dot --a V --b V",
		Short: "Dot product of two vectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, y, err := flags.parse()
			if err != nil {
				return kernelError("dot", err)
			}
			d, err := a.backend.Dot(x, y)
			if err != nil {
				return kernelError("dot", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%g\n", d)

			return err
		},
	}
	flags.register(cmd)

	return cmd
}

func newMatMulCmd(a *app) *cobra.Command {
	var (
		flags   vectorFlags
		m, k, n int
	)
	cmd := &cobra.Command{
		Use:   "mmul --a A --m M --k K --b B --n N",
		Short: "Multiply A (M×K) by B (K×N), row-major",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, y, err := flags.parse()
			if err != nil {
				return kernelError("mmul", err)
			}
			a.log.Debug("kernel", zap.String("op", "mmul"), zap.Int("m", m), zap.Int("k", k), zap.Int("n", n))
			c, err := a.backend.MatMul(x, m, k, y, n)
			if err != nil {
				return kernelError("mmul", err)
			}

			return printMatrix(cmd, c, m, n)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&m, "m", 0, "Rows of A")
	cmd.Flags().IntVar(&k, "k", 0, "Columns of A, rows of B")
	cmd.Flags().IntVar(&n, "n", 0, "Columns of B")
	for _, name := range []string{"a", "b", "m", "k", "n"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newTransposeCmd(a *app) *cobra.Command {
	var (
		data       string
		rows, cols int
	)
	cmd := &cobra.Command{
		Use:   "transpose --a A --rows R --cols C",
		Short: "Transpose an R×C matrix, row-major",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := parseFloats(data)
			if err != nil {
				return kernelError("transpose", fmt.Errorf("--a: %w", err))
			}
			t, err := a.backend.Transpose(x, rows, cols)
			if err != nil {
				return kernelError("transpose", err)
			}

			return printMatrix(cmd, t, cols, rows)
		},
	}
	cmd.Flags().StringVar(&data, "a", "", "Matrix, comma-separated row-major")
	cmd.Flags().IntVar(&rows, "rows", 0, "Rows")
	cmd.Flags().IntVar(&cols, "cols", 0, "Columns")
	for _, name := range []string{"a", "rows", "cols"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newInvertCmd(a *app) *cobra.Command {
	var (
		data string
		n    int
	)
	cmd := &cobra.Command{
		Use:   "invert --a A --n N",
		Short: "Invert an N×N matrix, row-major",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := parseFloats(data)
			if err != nil {
				return kernelError("invert", fmt.Errorf("--a: %w", err))
			}
			inv, err := a.backend.Invert(x, n)
			if err != nil {
				return kernelError("invert", err)
			}

			return printMatrix(cmd, inv, n, n)
		},
	}
	cmd.Flags().StringVar(&data, "a", "", "Matrix, comma-separated row-major")
	cmd.Flags().IntVar(&n, "n", 0, "Order of the matrix")
	for _, name := range []string{"a", "n"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func printMatrix(cmd *cobra.Command, data []float64, rows, cols int) error {
	s, err := formatMatrix(data, rows, cols)
	if err != nil {
		return kernelError(cmd.Name(), err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), s)

	return err
}
