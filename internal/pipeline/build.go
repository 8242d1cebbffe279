package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dosanma1/shipper-cli/internal/toolchain"
)

// ErrNoArtifacts is returned when the toolchain exits cleanly but the output
// directory holds no distribution files. A build like that must not be
// trusted as a success.
var ErrNoArtifacts = errors.New("build produced no artifacts")

// Builder runs the packaging toolchain in a project directory. It is an
// interface so the pipeline can be tested without invoking a real toolchain.
type Builder interface {
	Build(ctx context.Context, dir string) error
}

// BuildStage invokes the packaging toolchain and records the produced
// artifact set in the run context.
type BuildStage struct {
	Builder Builder
}

// Name implements Stage.
func (*BuildStage) Name() string { return "build" }

// Run implements Stage.
func (s *BuildStage) Run(ctx context.Context, rc *Context) error {
	fmt.Fprintf(rc.Stdout, "📦 Building %s %s...\n", rc.Manifest.Name, rc.Manifest.Version)

	if err := s.Builder.Build(ctx, rc.RootDir); err != nil {
		var buildErr *toolchain.BuildError
		if errors.As(err, &buildErr) {
			translator := toolchain.NewErrorTranslator()
			return fmt.Errorf("%w\n%s", err, translator.Translate(buildErr.Output))
		}
		return err
	}

	artifacts, err := scanArtifacts(rc.OutputDir)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		return fmt.Errorf("%w in %s", ErrNoArtifacts, rc.Config.OutputDir)
	}

	// Every artifact name must embed the package name and version from the
	// package definition.
	for _, artifact := range artifacts {
		if !rc.Manifest.MatchesArtifact(artifact) {
			return fmt.Errorf("artifact %q does not match package %s %s",
				artifact, rc.Manifest.Name, rc.Manifest.Version)
		}
	}

	rc.Artifacts = artifacts

	fmt.Fprintf(rc.Stdout, "   ✓ Produced %d artifact(s)\n", len(artifacts))
	return nil
}

// scanArtifacts lists the regular files in the output directory, skipping
// dotfiles such as a leftover publish receipt.
func scanArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan output directory: %w", err)
	}

	var artifacts []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		artifacts = append(artifacts, entry.Name())
	}

	sort.Strings(artifacts)
	return artifacts, nil
}
