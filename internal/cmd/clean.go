package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/shipper-cli/internal/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the build output directory",
	Long: `Remove the build output directory and everything in it.

Cleaning is idempotent: an absent output directory is already the desired
end state and is not an error.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	rc, err := newRunContext()
	if err != nil {
		return err
	}

	if err := pipeline.NewRunner(pipeline.CleanStage{}).Run(context.Background(), rc); err != nil {
		return err
	}

	fmt.Println("✅ Clean completed successfully")
	return nil
}
