// Package config provides configuration loading and management for the
// distance-transform drivers. It handles loading configuration from YAML
// files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Engine parameters control the GDTFilter itself.
	Engine struct {
		// UseSpacing folds per-axis voxel spacing into the parabola
		// arithmetic when true.
		UseSpacing bool `yaml:"useSpacing"`

		// CreateVoronoiMap enables companion Voronoi-map output.
		CreateVoronoiMap bool `yaml:"createVoronoiMap"`

		// MinimalSpacingPrecision is m in minimalSpacing = 10^-m.
		MinimalSpacingPrecision int `yaml:"minimalSpacingPrecision"`

		// Parallelism is the number of worker goroutines used per sweep
		// pass. 1 runs a pass sequentially.
		Parallelism int `yaml:"parallelism"`
	} `yaml:"engine"`

	// Output parameters.
	Output struct {
		// SaveIntermediaryResults determines whether to save intermediary
		// per-axis-pass results.
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`

	// Test parameters used by the union-of-spheres and test-image drivers.
	Test struct {
		// SphereRadii is a list of radii to generate in the synthetic
		// test volume.
		SphereRadii []float64 `yaml:"sphereRadii"`

		// TestOutputDir is the directory to save generated test volumes
		// and their distance-transform output to.
		TestOutputDir string `yaml:"testOutputDir"`
	} `yaml:"test"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Engine.UseSpacing = true
	cfg.Engine.CreateVoronoiMap = true
	cfg.Engine.MinimalSpacingPrecision = 3
	cfg.Engine.Parallelism = runtime.NumCPU()

	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.Verbose = true

	cfg.Test.SphereRadii = []float64{4, 8, 12}
	cfg.Test.TestOutputDir = "gdt_test_volume"

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
