package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <unique-key>",
	Short: "Get a stored paper by unique key",
	Long: `Get a single stored paper by its unique key (arxiv_id plus version).

Example:
  preprint get 2301.00001v2`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	db := openBackend()
	defer db.Close()

	p, err := db.Get(args[0])
	if err != nil {
		exitWithError(ExitError, "getting paper: %v", err)
	}
	if p == nil {
		exitWithError(ExitNotFound, "paper not found: %s", args[0])
	}

	if humanOutput {
		printPaperDetail(p)
	} else {
		outputJSON(p)
	}

	return nil
}
