// Package config provides configuration loading and management for fourierlab.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Grid parameters
	Grid struct {
		// Size is the width and height of the transform grid, a power of two
		Size int `yaml:"size"`
	} `yaml:"grid"`

	// Transform engine parameters
	Transform struct {
		// Backend selects the 1D FFT implementation: gonum, algofft or godsp
		Backend string `yaml:"backend"`

		// Workers is the number of goroutines sharing each row/column pass
		Workers int `yaml:"workers"`
	} `yaml:"transform"`

	// Brush tool parameters
	Brush struct {
		// Tool is the initial tool: inspect, enhance or suppress
		Tool string `yaml:"tool"`

		// Radius of the brush disk in grid cells (1-50)
		Radius int `yaml:"radius"`

		// Strength written by the enhance tool (1.0-5.0)
		Strength float64 `yaml:"strength"`
	} `yaml:"brush"`

	// Preset filter parameters, in grid cells
	Presets struct {
		LowPassRadius  float64 `yaml:"lowPassRadius"`
		HighPassRadius float64 `yaml:"highPassRadius"`
		BandInner      float64 `yaml:"bandInner"`
		BandOuter      float64 `yaml:"bandOuter"`
		StripeOffset   float64 `yaml:"stripeOffset"`
		StripeRadius   float64 `yaml:"stripeRadius"`

		// NotchRadius is used when notching the inspected point and its mirror
		NotchRadius float64 `yaml:"notchRadius"`
	} `yaml:"presets"`

	// Output parameters
	Output struct {
		// Dir is where batch results are written
		Dir string `yaml:"dir"`

		// Format of written images: png or jpeg
		Format string `yaml:"format"`

		// LogLevel is a logrus level name
		LogLevel string `yaml:"logLevel"`

		// SaveBasis writes the basis function of the inspected point
		SaveBasis bool `yaml:"saveBasis"`
	} `yaml:"output"`

	// Viewer parameters
	Viewer struct {
		// Scale multiplies the window size of the interactive viewer
		Scale int `yaml:"scale"`
	} `yaml:"viewer"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Grid.Size = 512

	cfg.Transform.Backend = "gonum"
	cfg.Transform.Workers = runtime.NumCPU()

	cfg.Brush.Tool = "inspect"
	cfg.Brush.Radius = 10
	cfg.Brush.Strength = 2.0

	cfg.Presets.LowPassRadius = 100
	cfg.Presets.HighPassRadius = 50
	cfg.Presets.BandInner = 50
	cfg.Presets.BandOuter = 150
	cfg.Presets.StripeOffset = 30
	cfg.Presets.StripeRadius = 20
	cfg.Presets.NotchRadius = 15

	cfg.Output.Dir = "fourierlab_output"
	cfg.Output.Format = "png"
	cfg.Output.LogLevel = "info"
	cfg.Output.SaveBasis = false

	cfg.Viewer.Scale = 1

	return cfg
}

// Validate checks ranges that the numeric core relies on
func (c *Config) Validate() error {
	if c.Grid.Size <= 0 || c.Grid.Size&(c.Grid.Size-1) != 0 {
		return fmt.Errorf("%w: grid size %d is not a power of two", ErrInvalid, c.Grid.Size)
	}
	if c.Brush.Radius < 1 || c.Brush.Radius > 50 {
		return fmt.Errorf("%w: brush radius %d not in [1,50]", ErrInvalid, c.Brush.Radius)
	}
	if c.Brush.Strength < 1 || c.Brush.Strength > 5 {
		return fmt.Errorf("%w: brush strength %g not in [1,5]", ErrInvalid, c.Brush.Strength)
	}
	if c.Presets.BandInner > c.Presets.BandOuter {
		return fmt.Errorf("%w: band inner radius %g exceeds outer %g", ErrInvalid, c.Presets.BandInner, c.Presets.BandOuter)
	}
	if c.Presets.NotchRadius <= 0 {
		return fmt.Errorf("%w: notch radius %g must be positive", ErrInvalid, c.Presets.NotchRadius)
	}
	if c.Viewer.Scale < 1 {
		return fmt.Errorf("%w: viewer scale %d must be >= 1", ErrInvalid, c.Viewer.Scale)
	}
	return nil
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
