package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dosanma1/shipper-cli/internal/config"
	"github.com/dosanma1/shipper-cli/internal/manifest"
	"github.com/dosanma1/shipper-cli/internal/pipeline"
)

// findProjectRoot finds the project root by looking for the package
// definition in the current directory or any parent.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, manifest.FileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in current directory or any parent directory", manifest.FileName)
}

// newRunContext resolves the project root, configuration, and package
// definition into a pipeline run context.
func newRunContext() (*pipeline.Context, error) {
	root, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("not in a shipper project: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.FileName, err)
	}

	m, err := manifest.Load(filepath.Join(root, cfg.Manifest))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Manifest, err)
	}

	return pipeline.NewContext(cfg, m, root), nil
}
