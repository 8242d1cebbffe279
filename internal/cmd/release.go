package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/shipper-cli/internal/index"
	"github.com/dosanma1/shipper-cli/internal/pipeline"
	"github.com/dosanma1/shipper-cli/internal/toolchain"
)

var (
	releaseTest        bool
	releaseSkipPublish bool
	releaseVerbose     bool
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Run the full release pipeline (clean, build, verify, publish)",
	Long: `Run the four release stages in order with fail-fast semantics:

  1. Clean   - remove the build output directory
  2. Build   - run the packaging toolchain to produce the artifact set
  3. Verify  - list the source distribution's contents without extracting it
  4. Publish - upload every artifact to the package index

The first failing stage aborts the run; no later stage executes. Published
versions are immutable on the index, so re-running with an already published
version fails at the publish stage.

Examples:
  shipper release                 # Publish to the production index
  shipper release --test          # Publish to the test index instead
  shipper release --skip-publish  # Stop after verify (dry run)
  shipper release --verbose       # Stream the toolchain's own output`,
	RunE: runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)
	releaseCmd.Flags().BoolVar(&releaseTest, "test", false, "Publish to the test index instead of production")
	releaseCmd.Flags().BoolVar(&releaseSkipPublish, "skip-publish", false, "Run clean, build, and verify only")
	releaseCmd.Flags().BoolVarP(&releaseVerbose, "verbose", "v", false, "Stream toolchain output during the build stage")
}

func runRelease(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rc, err := newRunContext()
	if err != nil {
		return err
	}

	executor, err := toolchain.NewExecutor(rc.Config.Build.Command, rc.Config.Build.Args, releaseVerbose)
	if err != nil {
		return err
	}

	if releaseVerbose {
		if version, err := executor.Version(ctx); err == nil {
			fmt.Printf("  ℹ️  Toolchain: %s\n", version)
		}
	}

	stages := []pipeline.Stage{
		pipeline.CleanStage{},
		&pipeline.BuildStage{Builder: executor},
		&pipeline.VerifyStage{},
	}

	if !releaseSkipPublish {
		publish, err := newPublishStage(rc, releaseTest)
		if err != nil {
			return err
		}
		stages = append(stages, publish)
	}

	if err := pipeline.NewRunner(stages...).Run(ctx, rc); err != nil {
		return fmt.Errorf("❌ Release failed: %w", err)
	}

	if releaseSkipPublish {
		fmt.Println("✅ Release verified (publish skipped)")
	} else {
		fmt.Println("✅ Release completed successfully!")
	}
	return nil
}

// newPublishStage builds the publish stage against the selected index. The
// destination is mutually exclusive: production by default, the test index
// with --test, never both in one invocation.
func newPublishStage(rc *pipeline.Context, useTest bool) (*pipeline.PublishStage, error) {
	indexURL := rc.Config.Index.ProductionURL
	if useTest {
		indexURL = rc.Config.Index.TestURL
		fmt.Println("🧪 Publishing to the test index")
	}

	creds, err := index.ResolveCredentials(true)
	if err != nil {
		return nil, err
	}

	client := index.NewClient(indexURL, creds, rc.Manifest)
	client.ShowProgress = true

	return &pipeline.PublishStage{
		Uploader: client,
		Receipts: index.NewReceiptWriter(indexURL),
	}, nil
}
