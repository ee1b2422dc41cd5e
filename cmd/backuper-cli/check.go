package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check-data <filename>",
	Short: "Check the integrity of an archived file",
	Long: `Query the archive for the health report of a single file: last
modification time, shard health and the stored shard hashes.

Examples:
  backuper-cli check-data notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func runCheck(_ *cobra.Command, args []string) error {
	name := args[0]

	client, err := getClient()
	if err != nil {
		return reportError(err)
	}

	slog.Debug("checking file", "name", name)

	report, err := client.Check(context.Background(), name)
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatCheck(os.Stdout, report)
}
