package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/brtiers/internal/model"
	"github.com/pable/brtiers/internal/pipeline"
)

var (
	weightedMode     string
	weightedMinCount int
	weightedNoDB     bool
)

var weightedCmd = &cobra.Command{
	Use:   "weighted",
	Short: "Score each country and BR by tier spread and win rate",
	Long: `Join each mode's tier rates with historical vehicle win rates and write the
weighted desirability scores, the win rate table and a heatmap to
<out>/<MODE>/. Positive scores mean favourable matchmaking at a winning BR.`,
	Args: cobra.NoArgs,
	RunE: runWeighted,
}

func init() {
	weightedCmd.Flags().StringVar(&weightedMode, "mode", "all", "match mode: all, nrb, grb or arb")
	weightedCmd.Flags().IntVar(&weightedMinCount, "min-count", 0, "blank heatmap cells with fewer bracket plays")
	weightedCmd.Flags().BoolVar(&weightedNoDB, "no-db", false, "do not record the run in the snapshot")
}

func runWeighted(cmd *cobra.Command, args []string) error {
	modes, err := selectModes(weightedMode)
	if err != nil {
		return err
	}
	opts := pipeline.Options{MinCount: weightedMinCount}
	return runModes(os.Stdout, modes, weightedNoDB, func(mode model.MatchMode) (modeRun, error) {
		res, err := pipeline.RunWeighted(cfg, mode, opts, log)
		if err != nil {
			return nil, err
		}
		return res, nil
	})
}
