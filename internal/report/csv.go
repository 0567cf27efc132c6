package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pable/brtiers/internal/model"
)

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WritePlayCounts writes Country plus one column per BR.
func WritePlayCounts(w io.Writer, t *model.PlayCountTable) error {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, 0, len(t.BRs)+1)
		rec = append(rec, row.Country)
		for _, br := range t.BRs {
			rec = append(rec, strconv.Itoa(row.Counts[br]))
		}
		rows = append(rows, rec)
	}
	return writeAll(w, t.Header(), rows)
}

// WriteRates writes one line per rate record.
func WriteRates(w io.Writer, recs []model.RateRecord) error {
	header := []string{"Country", "BR", "Full Downtier", "Downtier", "Uptier", "Full Uptier", "Count"}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Country,
			r.BR.String(),
			formatFloat(r.FullDowntier),
			formatFloat(r.Downtier),
			formatFloat(r.Uptier),
			formatFloat(r.FullUptier),
			strconv.Itoa(r.Count),
		})
	}
	return writeAll(w, header, rows)
}

// WriteWeighted writes one line per weighted record.
func WriteWeighted(w io.Writer, recs []model.WeightedRecord) error {
	header := []string{"Country", "BR", "Weighted", "WinRate", "Vehicle", "Count"}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Country,
			r.BR.String(),
			formatFloat(r.Weighted),
			formatFloat(r.WinRate),
			r.Vehicle,
			strconv.Itoa(r.Count),
		})
	}
	return writeAll(w, header, rows)
}

// WriteWinRates writes the joined historical win rates.
func WriteWinRates(w io.Writer, wins []model.VehicleWinStat) error {
	header := []string{"Vehicle", "Country", "BR", "WinRate", "Games", "Victories", "Defeats", "BattleType", "UnitClass", "UnitMoveType"}
	rows := make([][]string, 0, len(wins))
	for _, v := range wins {
		rows = append(rows, []string{
			v.Vehicle,
			v.Country,
			v.BR.String(),
			formatFloat(v.WinRate),
			strconv.Itoa(v.Games),
			strconv.Itoa(v.Victories),
			strconv.Itoa(v.Defeats),
			v.MatchMode.String(),
			v.UnitClass,
			v.UnitMoveType,
		})
	}
	return writeAll(w, header, rows)
}
