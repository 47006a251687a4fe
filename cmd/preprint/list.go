package main

import (
	"github.com/matsen/preprint/internal/storage"
	"github.com/spf13/cobra"
)

var (
	listLimitFlag  int
	listOffsetFlag int
	listSortFlag   string
	listOrderFlag  string
)

func init() {
	listCmd.Flags().IntVar(&listLimitFlag, "limit", storage.DefaultListLimit, "Maximum number of papers")
	listCmd.Flags().IntVar(&listOffsetFlag, "offset", 0, "Number of papers to skip")
	listCmd.Flags().StringVar(&listSortFlag, "sort", storage.SortByCreated, "Sort field: created_at, title, published, updated, arxiv_id")
	listCmd.Flags().StringVar(&listOrderFlag, "order", storage.OrderDesc, "Sort order: asc or desc")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored papers",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db := openBackend()
	defer db.Close()

	papers, err := db.List(storage.ListOptions{
		Limit:  listLimitFlag,
		Offset: listOffsetFlag,
		SortBy: listSortFlag,
		Order:  listOrderFlag,
	})
	if err != nil {
		exitWithError(ExitError, "listing papers: %v", err)
	}

	if humanOutput {
		for i := range papers {
			printPaperLine(i, &papers[i])
		}
		return nil
	}

	return outputJSON(PapersResponse{Papers: papers, Count: len(papers)})
}
