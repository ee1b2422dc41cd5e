package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var repairCmd = &cobra.Command{
	Use:   "repair-data <filename>",
	Short: "Repair damaged shards of an archived file",
	Long: `Ask the archive to rebuild any damaged shards for a file from the
surviving data and parity shards.

Examples:
  backuper-cli repair-data notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runRepair,
}

func runRepair(_ *cobra.Command, args []string) error {
	name := args[0]

	client, err := getClient()
	if err != nil {
		return reportError(err)
	}

	slog.Debug("repairing file", "name", name)

	report, err := client.Repair(context.Background(), name)
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatRepair(os.Stdout, report)
}
