// Package pipeline drives the ordered release stages: clean, build, verify,
// publish. Execution is strictly sequential and fail-fast: the first stage
// that returns an error aborts the run and no later stage executes.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dosanma1/shipper-cli/internal/config"
	"github.com/dosanma1/shipper-cli/internal/manifest"
)

// Stage is one step of the release pipeline. Stages communicate only through
// the shared Context and the filesystem.
type Stage interface {
	// Name identifies the stage in failure reports.
	Name() string

	// Run executes the stage. A non-nil error aborts the pipeline.
	Run(ctx context.Context, rc *Context) error
}

// Context carries the resolved inputs shared by all stages of one run.
type Context struct {
	// Config is the pipeline configuration.
	Config *config.Config

	// Manifest is the package definition being released.
	Manifest *manifest.Manifest

	// RootDir is the absolute project root (where the package definition
	// lives and where the toolchain runs).
	RootDir string

	// OutputDir is the absolute build output directory, exclusively owned
	// by this run.
	OutputDir string

	// Artifacts is the set of artifact file names produced by the build
	// stage, relative to OutputDir.
	Artifacts []string

	// Stdout receives stage status output and the verify stage's archive
	// listings.
	Stdout io.Writer
}

// NewContext builds a run context from the resolved configuration.
func NewContext(cfg *config.Config, m *manifest.Manifest, rootDir string) *Context {
	return &Context{
		Config:    cfg,
		Manifest:  m,
		RootDir:   rootDir,
		OutputDir: filepath.Join(rootDir, cfg.OutputDir),
		Stdout:    os.Stdout,
	}
}

// StageError reports which stage aborted the pipeline.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Runner executes stages in order with fail-fast semantics.
type Runner struct {
	stages []Stage
}

// NewRunner creates a runner over the given ordered stages.
func NewRunner(stages ...Stage) *Runner {
	return &Runner{stages: stages}
}

// Run executes every stage in order. The first failure aborts the run and is
// returned wrapped in a StageError; later stages do not execute. There are
// no retries and no recovery transitions.
func (r *Runner) Run(ctx context.Context, rc *Context) error {
	for _, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			return &StageError{Stage: stage.Name(), Err: err}
		}

		if err := stage.Run(ctx, rc); err != nil {
			return &StageError{Stage: stage.Name(), Err: err}
		}
	}

	return nil
}
