package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <unique-key>",
	Short: "Delete a stored paper by unique key",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	db := openBackend()
	defer db.Close()

	removed, err := db.Delete(args[0])
	if err != nil {
		exitWithError(ExitError, "deleting paper: %v", err)
	}
	if !removed {
		exitWithError(ExitNotFound, "paper not found: %s", args[0])
	}

	if humanOutput {
		fmt.Printf("deleted %s\n", args[0])
		return nil
	}

	return outputJSON(StatusResponse{Status: "deleted", Key: args[0]})
}
