package aggregator

import (
	"fmt"

	"github.com/pable/brtiers/internal/model"
)

// AggregateRates computes one RateRecord for every (country, BR) pair of the
// table, countries first then BR ascending. A BR outside the .0/.3/.7 scale
// aborts the whole batch.
func AggregateRates(t *model.PlayCountTable) ([]model.RateRecord, error) {
	if t == nil {
		return nil, fmt.Errorf("nil PlayCountTable")
	}

	// Validate up front so no partial result is ever produced.
	for _, br := range t.BRs {
		if _, err := Bracket(br); err != nil {
			return nil, err
		}
	}

	out := make([]model.RateRecord, 0, len(t.Rows)*len(t.BRs))
	for _, row := range t.Rows {
		for _, br := range t.BRs {
			rates, total, err := CalculateRates(row.Counts, br)
			if err != nil {
				return nil, fmt.Errorf("country %s: %w", row.Country, err)
			}
			out = append(out, model.RateRecord{
				Country:   row.Country,
				BR:        br,
				TierRates: rates,
				Count:     total,
			})
		}
	}
	return out, nil
}
