package aggregator

import (
	"fmt"
	"sort"

	"github.com/pable/brtiers/internal/model"
)

// BuildTable turns one mode's raw section into a dense play-count table.
// The BR columns are the union of every country's keys, so a country with no
// plays at some BR still gets a zero cell for it.
func BuildTable(section model.RawSection) (*model.PlayCountTable, error) {
	brSet := make(map[model.BR]struct{})
	rows := make([]model.CountryRow, 0, len(section))

	for id, byBR := range section {
		row := model.CountryRow{
			CountryID: id,
			Country:   model.CountryDisplayName(id),
			Counts:    make(map[model.BR]int, len(byBR)),
		}
		for key, n := range byBR {
			br, err := model.ParseBR(key)
			if err != nil {
				return nil, fmt.Errorf("country %s: %w", id, err)
			}
			brSet[br] = struct{}{}
			// "3.7" and "3.70" land on the same column.
			row.Counts[br] += n
		}
		rows = append(rows, row)
	}

	brs := make([]model.BR, 0, len(brSet))
	for br := range brSet {
		brs = append(brs, br)
	}
	sort.Slice(brs, func(i, j int) bool { return brs[i] < brs[j] })

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Country != rows[j].Country {
			return rows[i].Country < rows[j].Country
		}
		return rows[i].CountryID < rows[j].CountryID
	})
	// Records are keyed by display name downstream.
	for i := 1; i < len(rows); i++ {
		if rows[i].Country == rows[i-1].Country {
			return nil, fmt.Errorf("%w: %q from %s and %s", model.ErrDuplicateCountry,
				rows[i].Country, rows[i-1].CountryID, rows[i].CountryID)
		}
	}

	// Fill the dense grid.
	for _, row := range rows {
		for _, br := range brs {
			if _, ok := row.Counts[br]; !ok {
				row.Counts[br] = 0
			}
		}
	}

	return &model.PlayCountTable{BRs: brs, Rows: rows}, nil
}
