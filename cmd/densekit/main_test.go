package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// runCLI runs the CLI with a silent logger and returns stdout, stderr and
// the exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), &app{log: zap.NewNop()}, args, &stdout, &stderr)

	return stdout.String(), stderr.String(), code
}

func TestScalarCommands(t *testing.T) {
	out, _, code := runCLI(t, "vsadd", "--scalar", "3", "1,0")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[4, 3]\n", out)

	out, _, code = runCLI(t, "vsmul", "--scalar", "-2", "1", "2,3")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[-2, -4, -6]\n", out)

	out, _, code = runCLI(t, "vsdiv", "--scalar", "0", "1,0", "--backend", "gonum")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[+Inf, NaN]\n", out)
}

func TestScalarCommandsNegativeOperands(t *testing.T) {
	out, _, code := runCLI(t, "vsadd", "--scalar", "3", "--v", "-1,2")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[2, 5]\n", out)

	out, _, code = runCLI(t, "vsadd", "--scalar", "3", "--", "-1,2")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[2, 5]\n", out)

	out, _, code = runCLI(t, "vsmul", "--scalar", "2", "--v", "-1", "--", "-3")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[-2, -6]\n", out)

	_, stderr, code := runCLI(t, "vsadd", "--scalar", "3", "--v", "1,y")
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "--v")
}

func TestVectorCommands(t *testing.T) {
	for _, backendName := range []string{"reference", "gonum"} {
		t.Run(backendName, func(t *testing.T) {
			out, _, code := runCLI(t, "vadd", "--a", "1,2", "--b", "3,4", "--backend", backendName)
			require.Equal(t, exitOK, code)
			require.Equal(t, "[4, 6]\n", out)

			out, _, code = runCLI(t, "vmul", "--a", "1,2", "--b", "3,4", "--backend", backendName)
			require.Equal(t, exitOK, code)
			require.Equal(t, "[3, 8]\n", out)

			out, _, code = runCLI(t, "vdiv", "--a", "3,4", "--b", "2,8", "--backend", backendName)
			require.Equal(t, exitOK, code)
			require.Equal(t, "[1.5, 0.5]\n", out)

			out, _, code = runCLI(t, "dot", "--a", "1, 2", "--b", "3, 4", "--backend", backendName)
			require.Equal(t, exitOK, code)
			require.Equal(t, "11\n", out)
		})
	}
}

func TestMatrixCommands(t *testing.T) {
	out, _, code := runCLI(t, "mmul", "--a", "3,2,4,5,6,7", "--m", "2", "--k", "3", "--b", "10,20,30,30,40,50", "--n", "2")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[250, 320]\n[510, 630]\n", out)

	out, _, code = runCLI(t, "transpose", "--a", "1,2,3,4,5,6", "--rows", "2", "--cols", "3")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[1, 4]\n[2, 5]\n[3, 6]\n", out)

	out, _, code = runCLI(t, "invert", "--a", "1,2,3,4", "--n", "2")
	require.Equal(t, exitOK, code)
	require.Equal(t, "[-2, 1]\n[1.5, -0.5]\n", out)
}

func TestKernelErrors(t *testing.T) {
	_, stderr, code := runCLI(t, "vadd", "--a", "1,2", "--b", "3")
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "dimension mismatch")

	_, stderr, code = runCLI(t, "invert", "--a", "0,0,0,0", "--n", "2")
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "singular matrix")

	_, stderr, code = runCLI(t, "dot", "--a", "1,x", "--b", "1,2")
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "--a")

	_, _, code = runCLI(t, "mmul", "--a", "1,2")
	require.Equal(t, exitError, code)

	_, stderr, code = runCLI(t, "dot", "--a", "1", "--b", "1", "--backend", "nope")
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "unknown backend")
}

func TestVerify(t *testing.T) {
	out, _, code := runCLI(t, "verify", "--backend", "gonum", "--against", "reference")
	require.Equal(t, exitOK, code, out)
	require.Contains(t, out, "ok    invert-identity\n")
	require.Contains(t, out, "ok    cross-reference\n")
	require.Contains(t, out, "gonum: 14/14 checks passed\n")
}

func TestBackends(t *testing.T) {
	out, _, code := runCLI(t, "backends")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "  gonum\n")
	require.Contains(t, out, "* reference\n")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "densekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: gonum\nworkers: 2\n"), 0600))

	out, _, code := runCLI(t, "backends", "--config", path)
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "* gonum\n")

	// the flag wins over the file
	out, _, code = runCLI(t, "backends", "--config", path, "--backend", "reference")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "* reference\n")

	_, _, code = runCLI(t, "backends", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Equal(t, exitError, code)
}

func TestRunExitCodes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"dot", "--a", "1,2", "--b", "3,4", "--debug"}, &stdout, &stderr)
	require.Equal(t, exitOK, code)
	require.Equal(t, "11\n", stdout.String())

	stdout.Reset()
	stderr.Reset()
	code = run(context.Background(), []string{"vadd", "--a", "1", "--b", "1,2"}, &stdout, &stderr)
	require.Equal(t, exitError, code)
	require.Contains(t, stderr.String(), "densekit: vadd:")
}

// syncCounter is a zap sink that counts Sync calls.
type syncCounter struct {
	bytes.Buffer
	syncs int
}

func (s *syncCounter) Sync() error {
	s.syncs++
	return nil
}

func TestLoggerSyncedOnEveryPath(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		code int
	}{
		{"success", []string{"dot", "--a", "1", "--b", "2"}, exitOK},
		{"kernel error", []string{"vadd", "--a", "1", "--b", "1,2"}, exitError},
		{"unknown backend", []string{"dot", "--a", "1", "--b", "2", "--backend", "nope"}, exitError},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sink := &syncCounter{}
			core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zapcore.DebugLevel)
			var stdout, stderr bytes.Buffer
			code := execute(context.Background(), &app{log: zap.New(core)}, tc.args, &stdout, &stderr)
			require.Equal(t, tc.code, code)
			require.Equal(t, 1, sink.syncs)
		})
	}
}

func TestParseFloats(t *testing.T) {
	v, err := parseFloats(" 1, -2.5 ,3e2 ")
	require.NoError(t, err)
	require.Equal(t, []float64{1, -2.5, 300}, v)

	v, err = parseFloats("")
	require.NoError(t, err)
	require.Empty(t, v)

	_, err = parseFloats("1,,2")
	require.Error(t, err)
}
