package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dosanma1/shipper-cli/internal/pipeline"
)

var publishTest bool

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the built artifacts to the package index",
	Long: `Upload every artifact in the output directory to the package index.

Credentials are read from SHIPPER_USERNAME/SHIPPER_PASSWORD, a local
.shipper.env file, or an interactive prompt. Uploads are not retried; a
duplicate version is rejected by the index and reported as a failure, since
published artifacts are immutable.

Examples:
  shipper publish          # Upload to the production index
  shipper publish --test   # Upload to the test index instead`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().BoolVar(&publishTest, "test", false, "Publish to the test index instead of production")
}

func runPublish(cmd *cobra.Command, args []string) error {
	rc, err := newRunContext()
	if err != nil {
		return err
	}

	stage, err := newPublishStage(rc, publishTest)
	if err != nil {
		return err
	}

	if err := pipeline.NewRunner(stage).Run(context.Background(), rc); err != nil {
		return fmt.Errorf("❌ Publish failed: %w", err)
	}

	fmt.Println("✅ Artifacts published successfully!")
	return nil
}
