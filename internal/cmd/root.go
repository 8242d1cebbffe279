package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shipper",
	Short: "Shipper CLI - Build, verify, and publish package releases",
	Long: `Shipper is a release-packaging pipeline for maintainers.
It turns a versioned source tree into a distributable artifact set and
publishes that set to a package index, in four strictly ordered stages:
clean, build, verify, publish. The first failing stage aborts the run.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

// Commands are registered in their respective files via init().
