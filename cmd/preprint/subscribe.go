package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/matsen/preprint/internal/paper"
	"github.com/spf13/cobra"
)

var subscribeMaxFlag int

func init() {
	subscribeCmd.Flags().IntVar(&subscribeMaxFlag, "max", 100, "Maximum number of feed entries to poll")
	rootCmd.AddCommand(subscribeCmd)
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <category>",
	Short: "Poll a category feed for papers not yet stored",
	Long: `Poll the arXiv listing for a category, newest first, and store the
entries not already in the database. Only the newly discovered papers
are reported.

Example:
  preprint subscribe cs.AI --max 50`,
	Args: cobra.ExactArgs(1),
	RunE: runSubscribe,
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	db := openBackend()
	defer db.Close()

	adapter := newAdapter(db)

	onNew := func(p paper.Paper) {
		if humanOutput {
			fmt.Printf("new: %s  %s\n", p.UniqueKey(), truncateString(p.Title, listTitleMaxLen))
		}
	}

	papers, err := adapter.Subscribe(context.Background(), args[0], onNew, subscribeMaxFlag)
	if err != nil {
		exitWithError(ExitRemoteError, "polling %s: %v", args[0], err)
	}

	if humanOutput {
		fmt.Printf("%d new paper(s)\n", len(papers))
		return nil
	}

	return outputJSON(PapersResponse{Papers: papers, Count: len(papers)})
}
