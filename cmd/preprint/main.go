// Package main provides the preprint CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// dbPathFlag overrides the configured database path
var dbPathFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "preprint",
	Short: "Ingest and store arXiv paper metadata",
	Long: `preprint ingests bibliographic records from the arXiv API and stores
them in a local SQLite database keyed by (arxiv_id, version).

Outbound requests are spaced per the arXiv usage policy. All commands
output JSON by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Path to the papers database (overrides config)")
	rootCmd.Version = Version
}
