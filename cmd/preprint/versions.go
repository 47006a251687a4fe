package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(versionsCmd)
}

var versionsCmd = &cobra.Command{
	Use:   "versions <arxiv-id>",
	Short: "List all stored versions of a paper",
	Long: `List every stored version of a paper, ordered by version ascending.

Example:
  preprint versions 2301.00001`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func runVersions(cmd *cobra.Command, args []string) error {
	db := openBackend()
	defer db.Close()

	papers, err := db.Versions(args[0])
	if err != nil {
		exitWithError(ExitError, "listing versions: %v", err)
	}

	if humanOutput {
		for i := range papers {
			printPaperLine(i, &papers[i])
		}
		return nil
	}

	return outputJSON(PapersResponse{Papers: papers, Count: len(papers)})
}
