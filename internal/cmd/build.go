package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/shipper-cli/internal/pipeline"
	"github.com/dosanma1/shipper-cli/internal/toolchain"
)

var buildVerbose bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the distribution artifacts",
	Long: `Clean the output directory, then run the packaging toolchain to
produce the source and binary distribution archives.

The clean stage always runs first so the output directory never carries
stale artifacts from a previous version into the new artifact set.`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Stream toolchain output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rc, err := newRunContext()
	if err != nil {
		return err
	}

	executor, err := toolchain.NewExecutor(rc.Config.Build.Command, rc.Config.Build.Args, buildVerbose)
	if err != nil {
		return err
	}

	if buildVerbose {
		if version, err := executor.Version(ctx); err == nil {
			fmt.Printf("  ℹ️  Toolchain: %s\n", version)
		}
	}

	runner := pipeline.NewRunner(
		pipeline.CleanStage{},
		&pipeline.BuildStage{Builder: executor},
	)

	if err := runner.Run(ctx, rc); err != nil {
		return fmt.Errorf("❌ Build failed: %w", err)
	}

	fmt.Println("✅ Build completed successfully!")
	return nil
}
