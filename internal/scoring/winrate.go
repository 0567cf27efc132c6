package scoring

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pable/brtiers/internal/model"
	"github.com/pable/brtiers/internal/source"
)

// classifyOrder is the keyword scan order for non-air vehicles; first hit wins.
var classifyOrder = []model.MatchMode{model.ModeGRB, model.ModeNRB}

// ClassifyMatchMode maps a unit movement type to its mode. The exact move
// type "air" is ARB; otherwise the first mode whose keyword is a substring of
// the move type wins. Anything else is ModeUnknown with ErrUndefinedMatchMode.
func ClassifyMatchMode(moveType string) (model.MatchMode, error) {
	mt := strings.ToLower(strings.TrimSpace(moveType))
	if mt == "air" {
		return model.ModeARB, nil
	}
	for _, m := range classifyOrder {
		for _, kw := range m.Keywords() {
			if strings.Contains(mt, kw) {
				return m, nil
			}
		}
	}
	return model.ModeUnknown, fmt.Errorf("%w: move type %q", model.ErrUndefinedMatchMode, moveType)
}

// WinRate returns victories / (victories + defeats), or 0 with no decided games.
func WinRate(victories, defeats int) float64 {
	total := victories + defeats
	if total <= 0 {
		return 0
	}
	return float64(victories) / float64(total)
}

// ExtractSummary counts what happened to each feed entry.
type ExtractSummary struct {
	Emitted         int
	MissingMetadata int
	InvalidBR       int
	UndefinedMode   int // emitted, tagged ModeUnknown
}

// ExtractWinRates joins the historical feed against vehicle metadata.
// Vehicles without metadata or with an unreadable BR are skipped with a
// warning. Vehicles whose move type matches no mode are kept as ModeUnknown
// so they never join a mode's rates.
func ExtractWinRates(stats []source.HistoricalStat, meta map[string]source.VehicleInfo, log zerolog.Logger) ([]model.VehicleWinStat, ExtractSummary) {
	var (
		out []model.VehicleWinStat
		sum ExtractSummary
	)
	for _, s := range stats {
		info, ok := meta[s.Name]
		if !ok {
			sum.MissingMetadata++
			log.Warn().Err(model.ErrMissingMetadata).Str("vehicle", s.Name).Msg("skipping vehicle")
			continue
		}

		br, err := model.ParseBR(info.BattleRatingHistorical)
		if err != nil {
			sum.InvalidBR++
			log.Warn().Err(err).Str("vehicle", s.Name).Msg("skipping vehicle")
			continue
		}

		mode, err := ClassifyMatchMode(info.UnitMoveType)
		if err != nil {
			sum.UndefinedMode++
			log.Warn().Err(err).Str("vehicle", s.Name).Msg("vehicle tagged with unknown mode")
		}

		out = append(out, model.VehicleWinStat{
			Vehicle:      s.Name,
			Country:      model.CountryDisplayName(info.Country),
			BR:           br,
			WinRate:      WinRate(s.Victories, s.Defeats),
			Games:        s.Games,
			Victories:    s.Victories,
			Defeats:      s.Defeats,
			MatchMode:    mode,
			UnitClass:    strings.ToLower(info.UnitClass),
			UnitMoveType: strings.ToLower(info.UnitMoveType),
		})
		sum.Emitted++
	}
	return out, sum
}
