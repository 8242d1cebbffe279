package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
)

// Uploader publishes one artifact file to the package index. It is an
// interface so the pipeline can be tested without network access.
type Uploader interface {
	URL() string
	Upload(ctx context.Context, path string) error
}

// ReceiptWriter records the uploaded artifact set after a successful publish.
type ReceiptWriter interface {
	Write(dir string, files []string) error
}

// PublishStage uploads every artifact in the output directory to the
// selected index. Uploads stop at the first failure: there is no retry and
// no partial-upload recovery, the operator diagnoses and re-runs.
type PublishStage struct {
	Uploader Uploader

	// Receipts, when set, records the uploaded set in the output directory.
	Receipts ReceiptWriter
}

// Name implements Stage.
func (*PublishStage) Name() string { return "publish" }

// Run implements Stage.
func (s *PublishStage) Run(ctx context.Context, rc *Context) error {
	artifacts := rc.Artifacts
	if len(artifacts) == 0 {
		// Standalone publish run: pick up whatever a previous build left
		// in the output directory.
		var err error
		artifacts, err = scanArtifacts(rc.OutputDir)
		if err != nil {
			return err
		}
	}
	if len(artifacts) == 0 {
		return fmt.Errorf("%w in %s: nothing to publish", ErrNoArtifacts, rc.Config.OutputDir)
	}

	fmt.Fprintf(rc.Stdout, "📤 Uploading %d artifact(s) to %s\n", len(artifacts), s.Uploader.URL())

	for _, artifact := range artifacts {
		if err := s.Uploader.Upload(ctx, filepath.Join(rc.OutputDir, artifact)); err != nil {
			return fmt.Errorf("failed to upload %s: %w", artifact, err)
		}
		fmt.Fprintf(rc.Stdout, "   ✓ Uploaded %s\n", artifact)
	}

	if s.Receipts != nil {
		if err := s.Receipts.Write(rc.OutputDir, artifacts); err != nil {
			return err
		}
	}

	return nil
}
