package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list-data",
	Short: "List all archived files",
	Long: `List the names of all files stored in the archive.

Examples:
  backuper-cli list-data
  backuper-cli list-data --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return reportError(err)
	}

	listing, err := client.List(context.Background())
	if err != nil {
		return reportError(err)
	}

	return getFormatter().FormatList(os.Stdout, listing)
}
