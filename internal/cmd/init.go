package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dosanma1/shipper-cli/internal/config"
	"github.com/dosanma1/shipper-cli/internal/manifest"
	"github.com/dosanma1/shipper-cli/pkg/xos"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Scaffold a shipper project in the current directory",
	Long: `Create a starter package.yaml and shipper.yaml in the current
directory. The package name defaults to the directory name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	name := filepath.Base(cwd)
	if len(args) > 0 {
		name = args[0]
	}

	if !initForce {
		for _, file := range []string{manifest.FileName, config.FileName} {
			if _, err := os.Stat(filepath.Join(cwd, file)); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", file)
			}
		}
	}

	m := &manifest.Manifest{
		Name:    name,
		Version: "0.1.0",
		Readme:  "README.md",
	}
	manifestData, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal package definition: %w", err)
	}

	if err := xos.WriteFile(filepath.Join(cwd, manifest.FileName), manifestData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifest.FileName, err)
	}
	fmt.Printf("   ✓ Created %s\n", manifest.FileName)

	if err := config.Default().Save(cwd); err != nil {
		return err
	}
	fmt.Printf("   ✓ Created %s\n", config.FileName)

	fmt.Printf("✅ Initialized shipper project %q\n", name)
	return nil
}
