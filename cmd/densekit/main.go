// Package main implements densekit, a command-line front end to the dense
// numeric kernels and their backends.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

const (
	exitOK          = 0
	exitCheckFailed = 1
	exitError       = 2
)

// Set via ldflags during build.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return execute(ctx, &app{}, args, stdout, stderr)
}

// execute runs one command on a and maps the outcome to an exit code.
// The logger is synced on every path; cobra skips post-run hooks on error.
func execute(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a, stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if a.log != nil {
		_ = a.log.Sync()
	}
	if err == nil {
		return exitOK
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(stderr, "densekit:", msg)
	}
	var cErr *codedError
	if errors.As(err, &cErr) {
		return cErr.code
	}

	return exitError
}

func errWithCode(err error, code int) error {
	return &codedError{err: err, code: code}
}

// codedError carries a process exit code; a nil err prints nothing.
type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	return ""
}

func (e *codedError) Unwrap() error { return e.err }
