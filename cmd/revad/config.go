package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrainConfig configures the train command.
type TrainConfig struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	Iterations int     `yaml:"iterations"`
	LR         float64 `yaml:"lr"`
	Momentum   float64 `yaml:"momentum"`
	Seed       int64   `yaml:"seed"`
	Output     string  `yaml:"output"` // SafeTensors file for the learned W; empty skips saving
}

// DefaultTrainConfig returns the settings of the 2×4 regression demo.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Rows:       2,
		Cols:       4,
		Iterations: 10,
		LR:         0.01,
		Seed:       1,
	}
}

// LoadTrainConfig reads a YAML file over the defaults. Keys missing from the
// file keep their default values.
func LoadTrainConfig(path string) (TrainConfig, error) {
	cfg := DefaultTrainConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the configuration describes a runnable demo.
func (c TrainConfig) Validate() error {
	var errs []error
	if c.Rows <= 0 || c.Cols <= 0 {
		errs = append(errs, fmt.Errorf("rows and cols must be positive, got %d×%d", c.Rows, c.Cols))
	}
	if c.Iterations < 0 {
		errs = append(errs, fmt.Errorf("iterations must be non-negative, got %d", c.Iterations))
	}
	if c.LR <= 0 {
		errs = append(errs, fmt.Errorf("lr must be positive, got %v", c.LR))
	}
	if c.Momentum < 0 || c.Momentum >= 1 {
		errs = append(errs, fmt.Errorf("momentum must be in [0, 1), got %v", c.Momentum))
	}
	return errors.Join(errs...)
}
