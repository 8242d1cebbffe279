// Package config loads the optional shipper.yaml pipeline configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dosanma1/shipper-cli/internal/manifest"
	"github.com/dosanma1/shipper-cli/pkg/xos"
)

// FileName is the pipeline configuration file looked up at the project root.
const FileName = "shipper.yaml"

// Default index endpoints (PyPI legacy upload API).
const (
	DefaultProductionURL = "https://upload.pypi.org/legacy/"
	DefaultTestURL       = "https://test.pypi.org/legacy/"
)

// Config represents the shipper.yaml configuration file.
type Config struct {
	// OutputDir is the transient build output directory, relative to the
	// project root.
	OutputDir string `yaml:"output_dir"`

	// Manifest is the package definition path, relative to the project root.
	Manifest string `yaml:"manifest"`

	// Build configures the external packaging toolchain.
	Build BuildConfig `yaml:"build"`

	// Index configures the publish destinations.
	Index IndexConfig `yaml:"index"`
}

// BuildConfig holds packaging toolchain settings.
type BuildConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// IndexConfig holds the package index upload endpoints.
type IndexConfig struct {
	ProductionURL string `yaml:"production_url"`
	TestURL       string `yaml:"test_url"`
}

// Default returns the configuration used when no shipper.yaml exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads shipper.yaml from the project root. A missing file is not an
// error; it yields the default configuration.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Manifest == "" {
		c.Manifest = manifest.FileName
	}
	if c.Build.Command == "" {
		c.Build.Command = "python"
		if len(c.Build.Args) == 0 {
			c.Build.Args = []string{"setup.py", "sdist", "bdist_wheel"}
		}
	}
	if c.Index.ProductionURL == "" {
		c.Index.ProductionURL = DefaultProductionURL
	}
	if c.Index.TestURL == "" {
		c.Index.TestURL = DefaultTestURL
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if filepath.IsAbs(c.OutputDir) {
		return fmt.Errorf("output_dir must be relative to the project root")
	}
	if c.OutputDir == "." || c.OutputDir == "" {
		return fmt.Errorf("output_dir must name a subdirectory")
	}
	if len(c.Build.Args) == 0 {
		return fmt.Errorf("build.args is required when build.command is set")
	}
	return nil
}

// Save writes the config to the project root atomically.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := xos.WriteFile(filepath.Join(root, FileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
