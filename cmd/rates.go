package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/brtiers/internal/model"
	"github.com/pable/brtiers/internal/pipeline"
)

var (
	ratesMode     string
	ratesMinCount int
	ratesNoDB     bool
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Compute tier rates per country and BR",
	Long: `Build the play-count table for each mode, derive the full-downtier, downtier,
uptier and full-uptier rates of every country/BR pair and write the CSVs and
heatmaps to <out>/<MODE>/.`,
	Args: cobra.NoArgs,
	RunE: runRates,
}

func init() {
	ratesCmd.Flags().StringVar(&ratesMode, "mode", "all", "match mode: all, nrb, grb or arb")
	ratesCmd.Flags().IntVar(&ratesMinCount, "min-count", 0, "blank heatmap cells with fewer bracket plays")
	ratesCmd.Flags().BoolVar(&ratesNoDB, "no-db", false, "do not record the run in the snapshot")
}

func runRates(cmd *cobra.Command, args []string) error {
	modes, err := selectModes(ratesMode)
	if err != nil {
		return err
	}
	opts := pipeline.Options{MinCount: ratesMinCount}
	return runModes(os.Stdout, modes, ratesNoDB, func(mode model.MatchMode) (modeRun, error) {
		res, err := pipeline.RunRates(cfg, mode, opts, log)
		if err != nil {
			return nil, err
		}
		return res, nil
	})
}
