// Package toolchain runs the external packaging toolchain that turns a
// package definition into distribution archives.
package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Executor handles packaging toolchain execution.
type Executor struct {
	path string
	args []string

	stdout io.Writer
	stderr io.Writer
}

// BuildError is returned when the toolchain exits non-zero. Output holds the
// tail of the combined toolchain output for diagnostics.
type BuildError struct {
	Output string
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("packaging toolchain failed: %v", e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// NewExecutor resolves the packaging toolchain binary and returns an executor
// for it. The command must be present on PATH. When verbose is true the
// toolchain's output streams to the terminal as it runs; otherwise it is only
// captured for failure reports.
func NewExecutor(command string, args []string, verbose bool) (*Executor, error) {
	path, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("packaging toolchain %q not found: %w", command, err)
	}

	e := &Executor{
		path:   path,
		args:   args,
		stdout: io.Discard,
		stderr: io.Discard,
	}
	if verbose {
		e.stdout = os.Stdout
		e.stderr = os.Stderr
	}
	return e, nil
}

// SetOutput redirects the toolchain's stdout and stderr streams. Used by
// tests; commands keep the writers chosen at construction.
func (e *Executor) SetOutput(stdout, stderr io.Writer) {
	e.stdout = stdout
	e.stderr = stderr
}

// Build runs the packaging toolchain in dir. The toolchain's combined output
// is captured so a non-zero exit carries its diagnostics in the returned
// BuildError; a verbose executor additionally streams it as it runs.
func (e *Executor) Build(ctx context.Context, dir string) error {
	var captured bytes.Buffer

	cmd := exec.CommandContext(ctx, e.path, e.args...)
	cmd.Dir = dir
	cmd.Stdout = io.MultiWriter(e.stdout, &captured)
	cmd.Stderr = io.MultiWriter(e.stderr, &captured)

	if err := cmd.Run(); err != nil {
		return &BuildError{
			Output: strings.TrimSpace(captured.String()),
			Err:    err,
		}
	}

	return nil
}

// Version returns the toolchain version string.
func (e *Executor) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, e.path, "--version")

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}
