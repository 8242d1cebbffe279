package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dosanma1/shipper-cli/internal/archive"
)

// ErrNoMatch is returned when the verify pattern matches no artifacts,
// either because the build produced nothing or the naming does not line up.
var ErrNoMatch = errors.New("no artifacts match the verify pattern")

// VerifyStage opens the built source distribution(s) in listing mode and
// prints their table of contents for manual inspection. It exists to catch
// builds that exit successfully but produce corrupt or empty archives,
// before anything is uploaded.
type VerifyStage struct {
	// Pattern overrides the glob matched against the output directory.
	// Empty means the manifest's version-wildcarded sdist pattern.
	Pattern string
}

// Name implements Stage.
func (*VerifyStage) Name() string { return "verify" }

// Run implements Stage.
func (s *VerifyStage) Run(_ context.Context, rc *Context) error {
	pattern := s.Pattern
	if pattern == "" {
		pattern = rc.Manifest.SdistPattern()
	}

	matches, err := filepath.Glob(filepath.Join(rc.OutputDir, pattern))
	if err != nil {
		return fmt.Errorf("invalid verify pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("%w: %s in %s", ErrNoMatch, pattern, rc.Config.OutputDir)
	}

	for _, match := range matches {
		fmt.Fprintf(rc.Stdout, "🔍 Inspecting %s\n", filepath.Base(match))

		if err := archive.Print(rc.Stdout, match); err != nil {
			return err
		}
	}

	return nil
}
