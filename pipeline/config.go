// SPDX-License-Identifier: MIT
// Package: pipeline
//
// config.go - YAML configuration with defaults and validation.

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/mengqhui/kaldi/compose"
	"github.com/mengqhui/kaldi/semiring"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("pipeline: invalid config")

// Config holds every numeric knob of a Stage.
type Config struct {
	// Semiring names the working semiring ("tropical" or "log"); both
	// inputs are cast to it before composition.
	Semiring string `yaml:"semiring"`

	// Delta is the weight-equality slack of determinization and of the
	// log-sum check in epsilon removal.
	Delta float64 `yaml:"delta"`

	// Tolerance is the stochasticity slack.
	Tolerance float64 `yaml:"tolerance"`

	// TestInLog runs stochasticity checks in the log semiring.
	TestInLog bool `yaml:"test_in_log"`

	// MaxStates bounds the determinized output; 0 means unbounded.
	MaxStates int `yaml:"max_states"`

	// DeterminizeInLog determinizes in the log semiring.
	DeterminizeInLog bool `yaml:"determinize_in_log"`

	// SpecialEpsRemoval uses RemoveEpsLocalSpecial.
	SpecialEpsRemoval bool `yaml:"special_eps_removal"`

	// TableCompose uses the table matcher.
	TableCompose bool    `yaml:"table_compose"`
	TableRatio   float64 `yaml:"table_ratio"`
	MinTableSize int     `yaml:"min_table_size"`

	// Concurrency limits RunAll; 0 means one goroutine per job.
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the defaults used by the graph-building recipes:
// log-semiring checks and determinization, log-preserving epsilon removal
// and table composition.
func DefaultConfig() Config {
	return Config{
		Semiring:          "tropical",
		Delta:             semiring.DefaultDelta,
		Tolerance:         0.01,
		TestInLog:         true,
		DeterminizeInLog:  true,
		SpecialEpsRemoval: true,
		TableCompose:      true,
		TableRatio:        compose.DefaultTableRatio,
		MinTableSize:      compose.DefaultMinTableSize,
	}
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	if _, err := semiring.Lookup(c.Semiring); err != nil {
		return fmt.Errorf("%w: semiring: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.Delta <= 0:
		return fmt.Errorf("%w: delta %g must be positive", ErrInvalidConfig, c.Delta)
	case c.Tolerance <= 0:
		return fmt.Errorf("%w: tolerance %g must be positive", ErrInvalidConfig, c.Tolerance)
	case c.MaxStates < 0:
		return fmt.Errorf("%w: max_states %d is negative", ErrInvalidConfig, c.MaxStates)
	case c.TableRatio <= 0 || c.TableRatio > 1:
		return fmt.Errorf("%w: table_ratio %g not in (0,1]", ErrInvalidConfig, c.TableRatio)
	case c.MinTableSize < 1:
		return fmt.Errorf("%w: min_table_size %d < 1", ErrInvalidConfig, c.MinTableSize)
	case c.Concurrency < 0:
		return fmt.Errorf("%w: concurrency %d is negative", ErrInvalidConfig, c.Concurrency)
	}
	return nil
}

// ParseConfig overlays YAML data on DefaultConfig and validates the result.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML file. An empty path or a missing file yields
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("load config file: %w", err)
	}
	return ParseConfig(data)
}
