// Package pipeline runs one batch per match mode: load the feeds, compute
// rates or weighted scores, render every artifact and record the run.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pable/brtiers/internal/aggregator"
	"github.com/pable/brtiers/internal/config"
	"github.com/pable/brtiers/internal/model"
	"github.com/pable/brtiers/internal/report"
	"github.com/pable/brtiers/internal/scoring"
	"github.com/pable/brtiers/internal/source"
	"github.com/pable/brtiers/internal/storage"
)

type Options struct {
	// MinCount masks heatmap cells whose bracket saw fewer plays.
	MinCount int
}

type RatesResult struct {
	Run     model.RunInfo
	Table   *model.PlayCountTable
	Records []model.RateRecord
}

type WeightedResult struct {
	Run      model.RunInfo
	Table    *model.PlayCountTable
	Records  []model.WeightedRecord
	WinRates []model.VehicleWinStat
	Summary  scoring.ExtractSummary
}

func newRun(kind model.RunKind, mode model.MatchMode, src string, t *model.PlayCountTable, records int) model.RunInfo {
	return model.RunInfo{
		ID:        uuid.NewString(),
		Kind:      kind,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
		Source:    src,
		Countries: len(t.Rows),
		BRs:       len(t.BRs),
		Records:   records,
	}
}

// loadRates reads the mode's section and aggregates it.
func loadRates(cfg *config.Config, mode model.MatchMode) (*model.PlayCountTable, []model.RateRecord, error) {
	data, err := source.ReadFile(cfg.StatsPath)
	if err != nil {
		return nil, nil, err
	}
	sec, err := source.Section(data, mode)
	if err != nil {
		return nil, nil, err
	}
	table, err := aggregator.BuildTable(sec)
	if err != nil {
		return nil, nil, fmt.Errorf("build table: %w", err)
	}
	recs, err := aggregator.AggregateRates(table)
	if err != nil {
		return nil, nil, fmt.Errorf("aggregate rates: %w", err)
	}
	return table, recs, nil
}

// RunRates writes the play-count table, the rate records and one heatmap per
// tier view into <output>/<MODE>/.
func RunRates(cfg *config.Config, mode model.MatchMode, opts Options, log zerolog.Logger) (*RatesResult, error) {
	table, recs, err := loadRates(cfg, mode)
	if err != nil {
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	log.Debug().Stringer("mode", mode).Int("countries", len(table.Rows)).Int("brs", len(table.BRs)).Msg("rates aggregated")

	st, err := newStage(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	if err := writeRates(st, mode, table, recs, opts); err != nil {
		st.discard()
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	if err := st.commit(cfg.ModeDir(mode.String())); err != nil {
		st.discard()
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	log.Info().Stringer("mode", mode).Int("files", len(st.files)).Str("dir", cfg.ModeDir(mode.String())).Msg("rates written")

	return &RatesResult{
		Run:     newRun(model.RunRates, mode, cfg.StatsPath, table, len(recs)),
		Table:   table,
		Records: recs,
	}, nil
}

func writeRates(st *stage, mode model.MatchMode, table *model.PlayCountTable, recs []model.RateRecord, opts Options) error {
	name := mode.String()
	if err := st.write(name+"playcount.csv", func(w io.Writer) error { return report.WritePlayCounts(w, table) }); err != nil {
		return err
	}
	if err := st.write(name+"rates.csv", func(w io.Writer) error { return report.WriteRates(w, recs) }); err != nil {
		return err
	}
	for _, v := range report.RateViews {
		h := report.RateHeatmap(recs, v, name+" "+v.Column()+" Rates", opts.MinCount)
		if err := h.Save(st.path(report.HeatmapFileName(h.Title))); err != nil {
			return err
		}
	}
	return nil
}

// RunWeighted joins the mode's rates with historical win rates and writes the
// play counts, the win rates, the weighted scores and their heatmap.
func RunWeighted(cfg *config.Config, mode model.MatchMode, opts Options, log zerolog.Logger) (*WeightedResult, error) {
	table, rates, err := loadRates(cfg, mode)
	if err != nil {
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	wins, sum, err := loadWinRates(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	recs := scoring.ScoreWeighted(rates, wins, mode)

	st, err := newStage(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	if err := writeWeighted(st, mode, table, recs, wins, opts); err != nil {
		st.discard()
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	if err := st.commit(cfg.ModeDir(mode.String())); err != nil {
		st.discard()
		return nil, fmt.Errorf("mode %s: %w", mode, err)
	}
	log.Info().Stringer("mode", mode).Int("files", len(st.files)).Str("dir", cfg.ModeDir(mode.String())).Msg("weighted scores written")

	return &WeightedResult{
		Run:      newRun(model.RunWeighted, mode, cfg.StatsPath, table, len(recs)),
		Table:    table,
		Records:  recs,
		WinRates: wins,
		Summary:  sum,
	}, nil
}

func loadWinRates(cfg *config.Config, log zerolog.Logger) ([]model.VehicleWinStat, scoring.ExtractSummary, error) {
	statsData, err := source.ReadFile(cfg.VehicleStatsPath)
	if err != nil {
		return nil, scoring.ExtractSummary{}, err
	}
	hist, err := source.Historical(statsData)
	if err != nil {
		return nil, scoring.ExtractSummary{}, err
	}
	infoData, err := source.ReadFile(cfg.VehicleInfoPath)
	if err != nil {
		return nil, scoring.ExtractSummary{}, err
	}
	meta, err := source.Metadata(infoData)
	if err != nil {
		return nil, scoring.ExtractSummary{}, err
	}
	wins, sum := scoring.ExtractWinRates(hist, meta, log)
	return wins, sum, nil
}

func writeWeighted(st *stage, mode model.MatchMode, table *model.PlayCountTable, recs []model.WeightedRecord, wins []model.VehicleWinStat, opts Options) error {
	name := mode.String()
	if err := st.write(name+"playcount.csv", func(w io.Writer) error { return report.WritePlayCounts(w, table) }); err != nil {
		return err
	}
	if err := st.write("historical_winrates.csv", func(w io.Writer) error { return report.WriteWinRates(w, wins) }); err != nil {
		return err
	}
	if err := st.write(name+"weighted.csv", func(w io.Writer) error { return report.WriteWeighted(w, recs) }); err != nil {
		return err
	}
	h := report.WeightedHeatmap(recs, name+" Weighted", opts.MinCount)
	return h.Save(st.path(report.HeatmapFileName(h.Title)))
}

// Print reports the run on w.
func (r *RatesResult) Print(w io.Writer) {
	report.PrintRunSummary(w, r.Run)
}

// Print reports the run, how the win rate join went and the weighted pivot.
func (r *WeightedResult) Print(w io.Writer) {
	report.PrintRunSummary(w, r.Run)
	s := r.Summary
	report.PrintExtractSummary(w, s.Emitted, s.MissingMetadata, s.InvalidBR, s.UndefinedMode)
	report.PrintWeightedPivot(w, r.Records, report.ViewWeighted, "")
}

// Save records a rates run in the snapshot.
func (r *RatesResult) Save(db *storage.DB) error {
	if err := db.SaveRates(r.Run, r.Records); err != nil {
		return fmt.Errorf("save %s run: %w", r.Run.Mode, err)
	}
	return nil
}

// Save records a weighted run and its win rates in the snapshot.
func (r *WeightedResult) Save(db *storage.DB) error {
	if err := db.SaveWeighted(r.Run, r.Records, r.WinRates); err != nil {
		return fmt.Errorf("save %s run: %w", r.Run.Mode, err)
	}
	return nil
}
