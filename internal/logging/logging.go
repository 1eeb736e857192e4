// Package logging builds the zap loggers used by the densekit CLI.
package logging

import "go.uber.org/zap"

// New returns a zap logger. When debug is true, uses development config
// (human-readable, debug level); otherwise uses production config (JSON, info level).
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
