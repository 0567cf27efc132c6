package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/brtiers/internal/model"
	"github.com/pable/brtiers/internal/report"
	"github.com/pable/brtiers/internal/storage"
)

var (
	showView     string
	showCountry  string
	showVehicles bool
)

var showCmd = &cobra.Command{
	Use:   "show <run-id-prefix>",
	Short: "Show a recorded run as a BR x Country table",
	Long: `Show a recorded run. Rates runs default to the full-downtier view, weighted
runs to the weighted view; --view count works for both.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showView, "view", "", "full-downtier, downtier, uptier, full-uptier, weighted or count")
	showCmd.Flags().StringVar(&showCountry, "country", "", "only show this country (e.g. usa or country_usa)")
	showCmd.Flags().BoolVar(&showVehicles, "vehicles", false, "also list the vehicle win rates of a weighted run")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openSnapshot()
	if err != nil {
		return err
	}
	defer db.Close()
	return showRun(os.Stdout, db, args[0], showView, showCountry, showVehicles)
}

// showRun prints the run matching prefix. An empty view picks the run's default.
func showRun(w io.Writer, db *storage.DB, prefix, view, country string, vehicles bool) error {
	run, err := db.GetRunByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run found with id prefix %q", prefix)
	}
	if country != "" {
		country = model.CountryDisplayName(country)
	}

	v := report.ViewFullDowntier
	if run.Kind == model.RunWeighted {
		v = report.ViewWeighted
	}
	if view != "" {
		if v, err = report.ParseView(view); err != nil {
			return err
		}
	}

	report.PrintRunSummary(w, *run)
	switch run.Kind {
	case model.RunRates:
		if v == report.ViewWeighted {
			return fmt.Errorf("run %s holds rates; the weighted view needs a weighted run", prefix)
		}
		recs, err := db.GetRateRecords(run.ID)
		if err != nil {
			return fmt.Errorf("get rate records: %w", err)
		}
		report.PrintRatePivot(w, recs, v, country)
	case model.RunWeighted:
		if v != report.ViewWeighted && v != report.ViewCount {
			return fmt.Errorf("run %s holds weighted scores; use --view weighted or count", prefix)
		}
		recs, err := db.GetWeightedRecords(run.ID)
		if err != nil {
			return fmt.Errorf("get weighted records: %w", err)
		}
		report.PrintWeightedPivot(w, recs, v, country)
		if vehicles {
			wins, err := db.GetVehicleWinRates(run.ID)
			if err != nil {
				return fmt.Errorf("get vehicle win rates: %w", err)
			}
			fmt.Fprintln(w)
			report.PrintWinRateTable(w, wins)
		}
	default:
		return fmt.Errorf("run %s has unknown kind %q", run.ID, run.Kind)
	}
	return nil
}
