package scoring

import "github.com/pable/brtiers/internal/model"

// Tier weights of the skew factor: full downtier is the best outcome, full
// uptier the worst.
const (
	weightFullDowntier = 1.0
	weightDowntier     = 0.5
	weightUptier       = -0.5
	weightFullUptier   = -1.0
)

const (
	winRateBaseline = 0.5
	winRateScale    = 10.0
)

// SkewScore rates a tier distribution from +1 (always full downtier) to -1
// (always full uptier).
func SkewScore(r model.TierRates) float64 {
	return r.FullDowntier*weightFullDowntier +
		r.Downtier*weightDowntier +
		r.Uptier*weightUptier +
		r.FullUptier*weightFullUptier
}

// Weighted combines the tier skew with a win rate centred on 50%.
// A zero win rate means no data and scores 0.
func Weighted(r model.TierRates, winRate float64) float64 {
	if winRate == 0 {
		return 0
	}
	return SkewScore(r) * ((winRate - winRateBaseline) * winRateScale)
}

type winKey struct {
	country string
	br      model.BR
}

// better reports whether a should represent its (country, BR) over b:
// a vehicle with decided games beats one without, then more games, then
// more decided games, then name order.
func better(a, b model.VehicleWinStat) bool {
	if ha, hb := a.Victories+a.Defeats > 0, b.Victories+b.Defeats > 0; ha != hb {
		return ha
	}
	if a.Games != b.Games {
		return a.Games > b.Games
	}
	if da, db := a.Victories+a.Defeats, b.Victories+b.Defeats; da != db {
		return da > db
	}
	return a.Vehicle < b.Vehicle
}

// indexWinRates picks one representative vehicle per (country, BR) for mode.
func indexWinRates(wins []model.VehicleWinStat, mode model.MatchMode) map[winKey]model.VehicleWinStat {
	idx := make(map[winKey]model.VehicleWinStat)
	for _, w := range wins {
		if w.MatchMode != mode || mode == model.ModeUnknown {
			continue
		}
		k := winKey{w.Country, w.BR}
		if cur, ok := idx[k]; !ok || better(w, cur) {
			idx[k] = w
		}
	}
	return idx
}

// ScoreWeighted produces one WeightedRecord per rate record, in the same order.
func ScoreWeighted(rates []model.RateRecord, wins []model.VehicleWinStat, mode model.MatchMode) []model.WeightedRecord {
	idx := indexWinRates(wins, mode)

	out := make([]model.WeightedRecord, 0, len(rates))
	for _, r := range rates {
		rec := model.WeightedRecord{
			Country: r.Country,
			BR:      r.BR,
			Count:   r.Count,
		}
		if w, ok := idx[winKey{r.Country, r.BR}]; ok {
			rec.Vehicle = w.Vehicle
			rec.WinRate = w.WinRate
			rec.Weighted = Weighted(r.TierRates, w.WinRate)
		}
		out = append(out, rec)
	}
	return out
}
