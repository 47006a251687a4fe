package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchMaxFlag        int
	searchCategoriesFlag []string
)

func init() {
	searchCmd.Flags().IntVar(&searchMaxFlag, "max", 10, "Maximum number of results")
	searchCmd.Flags().StringSliceVar(&searchCategoriesFlag, "category", nil, "Restrict to arXiv categories (repeatable)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search arXiv and store the results",
	Long: `Search the arXiv API by free text, newest submissions first, and store
every result.

Example:
  preprint search "sparse attention" --max 20 --category cs.LG --category cs.AI`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	db := openBackend()
	defer db.Close()

	adapter := newAdapter(db)
	papers, err := adapter.Search(context.Background(), args[0], searchMaxFlag, searchCategoriesFlag)
	if err != nil {
		exitWithError(ExitRemoteError, "searching: %v", err)
	}

	if humanOutput {
		for i := range papers {
			printPaperLine(i, &papers[i])
		}
		return nil
	}

	return outputJSON(PapersResponse{Papers: papers, Count: len(papers)})
}
