package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve-data <filename> <destination-path>",
	Short: "Retrieve an archived file by name",
	Long: `Retrieve an archived file and write it to the destination path.

The destination must not already exist; nothing is overwritten.

Examples:
  backuper-cli retrieve-data notes.txt ./notes-restored.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runRetrieve,
}

func runRetrieve(_ *cobra.Command, args []string) error {
	name := args[0]
	destPath := args[1]

	client, err := getClient()
	if err != nil {
		return reportError(err)
	}

	slog.Debug("retrieving file", "name", name, "dest", destPath)

	result, err := client.Retrieve(context.Background(), name, destPath)
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatRetrieve(os.Stdout, result)
}
