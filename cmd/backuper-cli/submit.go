package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit-data <filename> <source-path>",
	Short: "Submit a file to the archive",
	Long: `Submit a local file to the archive under the given name.

The file is hashed locally (SHA-256) before upload and streamed to the
server, which splits it into data and parity shards.

Examples:
  backuper-cli submit-data notes.txt ./notes.txt
  backuper-cli submit-data db-dump -s backups.example.net:44987 ./dump.sql`,
	Args: cobra.ExactArgs(2),
	RunE: runSubmit,
}

func runSubmit(_ *cobra.Command, args []string) error {
	name := args[0]
	sourcePath := args[1]

	client, err := getClient()
	if err != nil {
		return reportError(err)
	}

	slog.Debug("submitting file", "name", name, "path", sourcePath)

	result, err := client.Submit(context.Background(), name, sourcePath)
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatSubmit(os.Stdout, result)
}
