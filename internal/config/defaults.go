package config

import "github.com/katalvlaran/densekit/matrix"

// Default values applied by ApplyDefaults or the OrDefault accessors.
const (
	DefaultBackend         = "reference"
	DefaultWorkers         = 1
	DefaultPivotTolerance  = matrix.DefaultPivotTolerance
	DefaultVerifyTolerance = 1e-9
	DefaultVerifySize      = 16
	DefaultVerifySeed      = 1
)

// ApplyDefaults sets default values for any zero values in cfg.
// Pointer fields stay nil; read them through their OrDefault accessors.
func ApplyDefaults(cfg *Config) {
	if cfg.Backend == "" {
		cfg.Backend = DefaultBackend
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Verify.Size == 0 {
		cfg.Verify.Size = DefaultVerifySize
	}
}
