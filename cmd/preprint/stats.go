package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(countCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	db := openBackend()
	defer db.Close()

	stats, err := db.Stats()
	if err != nil {
		exitWithError(ExitError, "computing stats: %v", err)
	}

	if humanOutput {
		fmt.Printf("Papers:  %d\n", stats.TotalPapers)
		fmt.Printf("Size:    %s\n", formatBytes(stats.SizeBytes))
		if len(stats.Categories) > 0 {
			fmt.Println("Top categories:")
			for _, c := range stats.Categories {
				fmt.Printf("  %-16s %d\n", c.Name, c.Count)
			}
		}
		return nil
	}

	return outputJSON(stats)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show paper counts for every category",
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	db := openBackend()
	defer db.Close()

	counts, err := db.CategoryStats()
	if err != nil {
		exitWithError(ExitError, "computing category stats: %v", err)
	}

	if humanOutput {
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-16s %d\n", name, counts[name])
		}
		return nil
	}

	return outputJSON(counts)
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the total number of stored papers",
	RunE:  runCount,
}

func runCount(cmd *cobra.Command, args []string) error {
	db := openBackend()
	defer db.Close()

	n, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting papers: %v", err)
	}

	if humanOutput {
		fmt.Println(n)
		return nil
	}

	return outputJSON(StatusResponse{Status: "ok", Count: n})
}
