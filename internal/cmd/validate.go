package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dosanma1/shipper-cli/internal/config"
	"github.com/dosanma1/shipper-cli/internal/manifest"
)

//go:embed schemas/package.v1.schema.json
var schemaFS embed.FS

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the package definition",
	Long: `Validates the package definition against its JSON Schema and runs
semantic checks (version syntax, required fields). A definition that fails
validation would also fail the build stage, so this is the cheap way to
check a release before running the pipeline.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	root, err := findProjectRoot()
	if err != nil {
		return fmt.Errorf("not in a shipper project: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", config.FileName, err)
	}

	manifestPath := filepath.Join(root, cfg.Manifest)

	fmt.Printf("🔍 Validating %s...\n", cfg.Manifest)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.Manifest, err)
	}

	// The schema machinery speaks JSON, so validate the YAML document
	// through a decoded Go value.
	var document map[string]interface{}
	if err := yaml.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("failed to parse %s: %w", cfg.Manifest, err)
	}

	schemaBytes, err := schemaFS.ReadFile("schemas/package.v1.schema.json")
	if err != nil {
		return fmt.Errorf("failed to load JSON schema: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		fmt.Println("\n❌ Validation failed with the following errors:")
		fmt.Println()

		for i, desc := range result.Errors() {
			fmt.Printf("%d. %s\n", i+1, desc.String())
			fmt.Printf("   Field: %s\n\n", desc.Field())
		}

		return fmt.Errorf("validation failed with %d errors", len(result.Errors()))
	}

	// Semantic checks beyond the schema.
	if _, err := manifest.Load(manifestPath); err != nil {
		return err
	}

	fmt.Printf("✅ %s is valid!\n", cfg.Manifest)
	return nil
}
