package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/brtiers/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded yet. Run 'brtiers rates' or 'brtiers weighted' to add one.")
		return nil
	}
	report.PrintRunList(os.Stdout, runs)
	return nil
}
