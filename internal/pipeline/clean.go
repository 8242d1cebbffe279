package pipeline

import (
	"context"
	"fmt"
	"os"
)

// CleanStage removes the build output directory so the build stage starts
// from a directory with no stale artifacts. An absent directory is already
// the desired end state, never a failure.
type CleanStage struct{}

// Name implements Stage.
func (CleanStage) Name() string { return "clean" }

// Run implements Stage.
func (CleanStage) Run(_ context.Context, rc *Context) error {
	if _, err := os.Stat(rc.OutputDir); os.IsNotExist(err) {
		fmt.Fprintf(rc.Stdout, "🗑️  Nothing to clean (%s does not exist)\n", rc.Config.OutputDir)
		return nil
	}

	fmt.Fprintf(rc.Stdout, "🗑️  Removing %s...\n", rc.Config.OutputDir)

	if err := os.RemoveAll(rc.OutputDir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", rc.OutputDir, err)
	}

	return nil
}
