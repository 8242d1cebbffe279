package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/shipper-cli/internal/pipeline"
)

var verifyPattern string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Inspect the built source distribution",
	Long: `Open the built source distribution in listing mode and print its
table of contents for manual inspection. Nothing is extracted and no
contained code is executed.

The stage fails when the pattern matches no files or when a matched archive
is not a valid compressed tar, which catches builds that exited successfully
but produced unusable output.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyPattern, "pattern", "p", "", "Glob matched against the output directory (default: <name>-*.tar.gz)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	rc, err := newRunContext()
	if err != nil {
		return err
	}

	stage := &pipeline.VerifyStage{Pattern: verifyPattern}
	if err := pipeline.NewRunner(stage).Run(context.Background(), rc); err != nil {
		return fmt.Errorf("❌ Verify failed: %w", err)
	}

	fmt.Println("✅ Artifacts verified")
	return nil
}
