// Package config loads the run configuration: which sizes and kernels to
// benchmark and how.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/weiihann/dotbench/harness"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk run configuration.
type Config struct {
	// Powers are exponents k of 2^k sizes, run first.
	Powers []int `yaml:"powers"`
	// Sizes are explicit element counts, run after Powers.
	Sizes []int `yaml:"sizes"`
	// Kernels are registry names; the first is the baseline.
	Kernels   []string `yaml:"kernels"`
	Trials    int      `yaml:"trials"`
	Tolerance float64  `yaml:"tolerance"`
	SeedA     int64    `yaml:"seed_a"`
	SeedB     int64    `yaml:"seed_b"`
	// MaxMemory caps the bytes of both operand vectors of one size.
	// Zero means the system memory size.
	MaxMemory uint64 `yaml:"max_memory"`
	KeepGoing bool   `yaml:"keep_going"`
}

// Default returns the standard run: 2^20, 2^24 and 2^29 with 20 trials,
// comparing gonum against the scalar baseline.
func Default() Config {
	h := harness.DefaultConfig()

	var powers []int
	for _, s := range harness.StandardSizes() {
		powers = append(powers, s.Exponent)
	}

	return Config{
		Powers:    powers,
		Kernels:   []string{"scalar", "gonum"},
		Trials:    h.Trials,
		Tolerance: h.Tolerance,
		SeedA:     h.SeedA,
		SeedB:     h.SeedB,
	}
}

// Load reads the YAML file at path over the defaults. Lists present in
// the file replace the default lists.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidConfig)
	}

	return cfg.Validate()
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if len(c.Powers) == 0 && len(c.Sizes) == 0 {
		return fmt.Errorf("no sizes: %w", ErrInvalidConfig)
	}

	if _, err := c.SizeSpecs(); err != nil {
		return err
	}

	if len(c.Kernels) == 0 {
		return fmt.Errorf("no kernels: %w", ErrInvalidConfig)
	}

	if c.Trials <= 0 {
		return fmt.Errorf("trials %d must be positive: %w", c.Trials, ErrInvalidConfig)
	}

	if !(c.Tolerance > 0) {
		return fmt.Errorf("tolerance %v must be positive: %w", c.Tolerance, ErrInvalidConfig)
	}

	if c.SeedA == c.SeedB {
		return fmt.Errorf("seed_a and seed_b must differ: %w", ErrInvalidConfig)
	}

	return nil
}

// SizeSpecs returns the configured sizes, powers first, in order.
func (c Config) SizeSpecs() ([]harness.SizeSpec, error) {
	out := make([]harness.SizeSpec, 0, len(c.Powers)+len(c.Sizes))

	for _, k := range c.Powers {
		s, err := harness.PowerOfTwo(k)
		if err != nil {
			return nil, fmt.Errorf("powers: %v: %w", err, ErrInvalidConfig)
		}

		out = append(out, s)
	}

	for _, n := range c.Sizes {
		s, err := harness.Elements(n)
		if err != nil {
			return nil, fmt.Errorf("sizes: %v: %w", err, ErrInvalidConfig)
		}

		out = append(out, s)
	}

	return out, nil
}

// Harness returns the orchestrator settings.
func (c Config) Harness() harness.Config {
	return harness.Config{
		Trials:    c.Trials,
		Tolerance: c.Tolerance,
		SeedA:     c.SeedA,
		SeedB:     c.SeedB,
		KeepGoing: c.KeepGoing,
	}
}
