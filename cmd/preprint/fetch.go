package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/matsen/preprint/internal/pdfid"
	"github.com/spf13/cobra"
)

var fetchPDFFlag string

func init() {
	fetchCmd.Flags().StringVar(&fetchPDFFlag, "pdf", "", "Resolve the arXiv id from a local PDF instead of an argument")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [id]",
	Short: "Fetch a paper by arXiv id and store it",
	Long: `Fetch a single paper's metadata from the arXiv API and store it.

A trailing version tag selects the version recorded locally:

  preprint fetch 2301.00001
  preprint fetch 2301.00001v2
  preprint fetch --pdf paper.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	id := ""
	if len(args) == 1 {
		id = args[0]
	}

	if fetchPDFFlag != "" {
		extracted, err := pdfid.ExtractID(fetchPDFFlag)
		if err != nil {
			exitWithError(ExitError, "reading PDF: %v", err)
		}
		if extracted == "" {
			exitWithError(ExitNotFound, "no arXiv id found in %s", fetchPDFFlag)
		}
		id = extracted
	}

	if id == "" {
		exitWithError(ExitError, "an arXiv id or --pdf is required")
	}

	db := openBackend()
	defer db.Close()

	adapter := newAdapter(db)
	p, err := adapter.Fetch(context.Background(), id)
	if err != nil {
		exitWithError(ExitRemoteError, "fetching %s: %v", id, err)
	}
	if p == nil {
		exitWithError(ExitNotFound, "paper not found: %s", id)
	}

	if humanOutput {
		printPaperDetail(p)
	} else {
		outputJSON(p)
	}

	return nil
}
