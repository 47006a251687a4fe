package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/preprint/internal/paper"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import papers from a JSON file",
	Long: `Import externally supplied paper records, bypassing the arXiv API.

The file holds a JSON array of paper objects. Records are saved exactly
as given, keyed by (arxiv_id, version); a missing version defaults to v1
and existing records with the same key are replaced.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", args[0], err)
	}

	var papers []paper.Paper
	if err := json.Unmarshal(data, &papers); err != nil {
		exitWithError(ExitError, "parsing %s: %v", args[0], err)
	}

	db := openBackend()
	defer db.Close()

	saved := 0
	for i := range papers {
		if papers[i].ArXivID == "" {
			exitWithError(ExitError, "record %d has no arxiv_id", i)
		}
		if papers[i].Version == "" {
			papers[i].Version = "v1"
		}
		if err := db.Save(&papers[i]); err != nil {
			exitWithError(ExitError, "saving %s: %v", papers[i].UniqueKey(), err)
		}
		saved++
	}

	if humanOutput {
		fmt.Printf("imported %d paper(s)\n", saved)
		return nil
	}

	return outputJSON(StatusResponse{Status: "imported", Count: saved})
}
