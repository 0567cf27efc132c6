package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/brtiers/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the snapshot",
	Long: `Run an arbitrary SQL query against the snapshot and print results as a table.

Schema overview:
  runs(id, kind, mode, created_at, source, countries, brs, records)
  rate_records(run_id, country, br, full_downtier, downtier, uptier, full_uptier, count)
  weighted_records(run_id, country, br, weighted, win_rate, vehicle, count)
  vehicle_winrates(run_id, vehicle, country, br, win_rate, games, victories, defeats,
    match_mode, unit_class, unit_move_type)

br is stored as a REAL with one decimal: WHERE br = 3.7`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}
