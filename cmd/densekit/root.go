package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/densekit/backend"
	"github.com/katalvlaran/densekit/internal/config"
	"github.com/katalvlaran/densekit/internal/logging"
)

// app is the state shared by every subcommand once setup has run.
type app struct {
	configPath  string
	backendName string
	debug       bool

	cfg     *config.Config
	log     *zap.Logger // preset by tests; built from config otherwise
	backend backend.NumericBackend
}

func newRootCmd(a *app, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "densekit",
		Short: "Run dense numeric kernels on a chosen backend",
		Long: `densekit runs scalar, element-wise, dot product, matrix multiply,
transpose and inversion kernels on row-major float64 data, using either the
pure-Go reference backend or the gonum backend.

Vectors and matrices are passed as comma-separated values.`,
		Example: `  densekit vsadd --scalar 3 --v 1,0
  densekit vsmul --scalar 2 -- -1,2
  densekit dot --a 1,2 --b 3,4
  densekit mmul --a 3,2,4,5,6,7 --m 2 --k 3 --b 10,20,30,30,40,50 --n 2
  densekit invert --a 1,2,3,4 --n 2 --backend gonum
  densekit verify --backend gonum --against reference`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.backendName, "backend", "", "Backend to run kernels on (default from config, else reference)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newScalarCmd(a, "vsadd", "Add a scalar to every element", backend.NumericBackend.ScalarAdd),
		newScalarCmd(a, "vsmul", "Multiply every element by a scalar", backend.NumericBackend.ScalarMul),
		newScalarCmd(a, "vsdiv", "Divide every element by a scalar", backend.NumericBackend.ScalarDiv),
		newBinaryCmd(a, "vadd", "Element-wise sum of two vectors", backend.NumericBackend.Add),
		newBinaryCmd(a, "vmul", "Element-wise product of two vectors", backend.NumericBackend.Mul),
		newBinaryCmd(a, "vdiv", "Element-wise quotient of two vectors", backend.NumericBackend.Div),
		newDotCmd(a),
		newMatMulCmd(a),
		newTransposeCmd(a),
		newInvertCmd(a),
		newVerifyCmd(a),
		newBackendsCmd(a),
	)

	return root
}

// setup loads configuration, applies flag overrides, builds the logger and
// resolves the backend.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.configPath != "" {
		var err error
		if cfg, err = config.Load(a.configPath); err != nil {
			return errWithCode(err, exitError)
		}
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = a.backendName
	}
	if a.debug {
		cfg.Debug = true
	}
	a.cfg = cfg

	if a.log == nil {
		log, err := logging.New(cfg.Debug)
		if err != nil {
			return errWithCode(fmt.Errorf("logger: %w", err), exitError)
		}
		a.log = log
	}

	b, err := a.resolve(cfg.Backend)
	if err != nil {
		return errWithCode(err, exitError)
	}
	a.backend = b
	a.log.Debug("backend ready",
		zap.String("backend", b.Name()),
		zap.String("command", cmd.Name()),
		zap.String("config", a.configPath))

	return nil
}

// resolve returns the backend named name. The reference backend is built
// from the configured workers and pivot tolerance; others come from the
// registry.
func (a *app) resolve(name string) (backend.NumericBackend, error) {
	if name == backend.ReferenceName {
		return backend.NewReference(
			backend.WithWorkers(a.cfg.Workers),
			backend.WithPivotTolerance(a.cfg.PivotToleranceOrDefault()),
		), nil
	}

	return backend.Lookup(name)
}
