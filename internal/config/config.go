// Package config loads the YAML configuration of the densekit CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/densekit/matrix"
)

// ErrInvalidConfig is returned by Validate for out-of-range values.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds all configuration for the CLI.
type Config struct {
	Debug   bool   `yaml:"debug"`
	Backend string `yaml:"backend"`
	// Workers is the goroutine count of the reference backend's multiply.
	Workers int `yaml:"workers"`
	// PivotTolerance is nil when unset so that an explicit 0 survives defaults.
	PivotTolerance *float64     `yaml:"pivot_tolerance"`
	Verify         VerifyConfig `yaml:"verify"`
}

// VerifyConfig holds the settings of the verify command. Tolerance and Seed
// are nil when unset; 0 is a valid value for both.
type VerifyConfig struct {
	Tolerance *float64 `yaml:"tolerance"`
	Against   string   `yaml:"against"`
	Size      int      `yaml:"size"`
	Seed      *int64   `yaml:"seed"`
}

// ToleranceOrDefault returns verify.tolerance, or DefaultVerifyTolerance when unset.
func (v VerifyConfig) ToleranceOrDefault() float64 {
	if v.Tolerance != nil {
		return *v.Tolerance
	}

	return DefaultVerifyTolerance
}

// SeedOrDefault returns verify.seed, or DefaultVerifySeed when unset.
func (v VerifyConfig) SeedOrDefault() int64 {
	if v.Seed != nil {
		return *v.Seed
	}

	return DefaultVerifySeed
}

// PivotToleranceOrDefault returns the configured pivot tolerance, or
// DefaultPivotTolerance when unset.
func (c *Config) PivotToleranceOrDefault() float64 {
	if c.PivotTolerance != nil {
		return *c.PivotTolerance
	}

	return DefaultPivotTolerance
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a Config with every default applied, for runs without a file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)

	return &cfg
}

// Validate rejects values no kernel option accepts.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers %d: %w", c.Workers, ErrInvalidConfig)
	}
	if t := c.PivotToleranceOrDefault(); !validTolerance(t) {
		return fmt.Errorf("pivot_tolerance %v: %w", t, ErrInvalidConfig)
	}
	if t := c.Verify.ToleranceOrDefault(); !validTolerance(t) {
		return fmt.Errorf("verify.tolerance %v: %w", t, ErrInvalidConfig)
	}
	if c.Verify.Size < 1 {
		return fmt.Errorf("verify.size %d: %w", c.Verify.Size, ErrInvalidConfig)
	}

	return nil
}

func validTolerance(t float64) bool {
	return matrix.ValidateTolerance(t) == nil
}
