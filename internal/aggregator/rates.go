package aggregator

import "github.com/pable/brtiers/internal/model"

// CalculateRates returns the tier fractions for a vehicle at b given one
// country's per-BR play counts, plus the bracket total. Missing BRs count as
// zero; an empty bracket yields all-zero rates.
func CalculateRates(counts map[model.BR]int, b model.BR) (model.TierRates, int, error) {
	mates, err := Bracket(b)
	if err != nil {
		return model.TierRates{}, 0, err
	}

	self := counts[b]
	down := counts[mates[0]]
	up := counts[mates[1]]
	fullUp := counts[mates[2]]

	total := self + down + up + fullUp
	if total == 0 {
		return model.TierRates{}, 0, nil
	}

	t := float64(total)
	return model.TierRates{
		FullDowntier: float64(self) / t,
		Downtier:     float64(down) / t,
		Uptier:       float64(up) / t,
		FullUptier:   float64(fullUp) / t,
	}, total, nil
}
