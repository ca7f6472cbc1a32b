// Package main provides the paperbatch CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// configPath is the optional YAML config file. Without it, settings
// come from a .env file or the environment.
var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperbatch",
	Short: "Post arXiv papers to a Notion knowledge base",
	Long: `paperbatch collects paper metadata from arXiv and Semantic Scholar,
summarizes the full text with a generative model, and posts the result
to Notion paper and author databases.

A local ledger keeps every run idempotent: papers and authors already
posted are skipped, and failures are recorded with their reason.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.Version = Version
}
