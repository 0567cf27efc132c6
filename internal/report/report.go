package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/brtiers/internal/model"
)

var (
	cPositive = color.New(color.FgGreen)
	cNegative = color.New(color.FgRed)
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintRunSummary prints a one-line header for a stored or freshly computed run.
func PrintRunSummary(w io.Writer, r model.RunInfo) {
	id := r.ID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(w, "\nMode: %s  |  Kind: %s  |  Countries: %d  |  BRs: %d  |  Records: %d  |  Run: %s\n\n",
		r.Mode, r.Kind, r.Countries, r.BRs, r.Records, id)
}

// PrintRunList prints stored runs, newest first as given.
func PrintRunList(w io.Writer, runs []model.RunInfo) {
	table := newTable(w)
	table.Header("RUN", "KIND", "MODE", "CREATED", "COUNTRIES", "BRS", "RECORDS", "SOURCE")
	for _, r := range runs {
		table.Append(
			r.ID[:min(8, len(r.ID))],
			string(r.Kind),
			r.Mode.String(),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(r.Countries),
			strconv.Itoa(r.BRs),
			strconv.Itoa(r.Records),
			r.Source,
		)
	}
	table.Render()
}

// pivot arranges cells as BR rows x Country columns, preserving first-seen order.
type pivot struct {
	countries []string
	brs       []model.BR
	cells     map[model.BR]map[string]string
}

func (p *pivot) set(country string, br model.BR, cell string) {
	if p.cells == nil {
		p.cells = make(map[model.BR]map[string]string)
	}
	row, ok := p.cells[br]
	if !ok {
		row = make(map[string]string)
		p.cells[br] = row
		p.brs = append(p.brs, br)
	}
	if !contains(p.countries, country) {
		p.countries = append(p.countries, country)
	}
	row[country] = cell
}

func (p *pivot) render(w io.Writer) {
	table := newTable(w)
	header := make([]any, 0, len(p.countries)+1)
	header = append(header, "BR")
	for _, c := range p.countries {
		header = append(header, c)
	}
	table.Header(header...)

	for _, br := range p.brs {
		row := make([]any, 0, len(p.countries)+1)
		row = append(row, br.String())
		for _, c := range p.countries {
			cell, ok := p.cells[br][c]
			if !ok {
				cell = "—"
			}
			row = append(row, cell)
		}
		table.Append(row...)
	}
	table.Render()
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// PrintRatePivot prints one view of the rate records as a BR x Country table.
// If country is non-empty only that column is shown.
func PrintRatePivot(w io.Writer, recs []model.RateRecord, v View, country string) {
	var p pivot
	for _, r := range recs {
		if country != "" && r.Country != country {
			continue
		}
		p.set(r.Country, r.BR, FormatValue(RateValue(r, v), v))
	}
	p.render(w)
}

// PrintWeightedPivot prints weighted scores, green when favourable and red
// when not. Cells without a matched vehicle show "—".
func PrintWeightedPivot(w io.Writer, recs []model.WeightedRecord, v View, country string) {
	var p pivot
	for _, r := range recs {
		if country != "" && r.Country != country {
			continue
		}
		var cell string
		switch {
		case v == ViewCount:
			cell = strconv.Itoa(r.Count)
		case r.Vehicle == "":
			cell = "—"
		case r.Weighted > 0:
			cell = cPositive.Sprint(FormatValue(r.Weighted, ViewWeighted))
		case r.Weighted < 0:
			cell = cNegative.Sprint(FormatValue(r.Weighted, ViewWeighted))
		default:
			cell = FormatValue(r.Weighted, ViewWeighted)
		}
		p.set(r.Country, r.BR, cell)
	}
	p.render(w)
}

// PrintExtractSummary reports how the historical feed joined against metadata.
func PrintExtractSummary(w io.Writer, emitted, missingMeta, invalidBR, undefinedMode int) {
	fmt.Fprintf(w, "Win rates: %d vehicles", emitted)
	if missingMeta > 0 {
		fmt.Fprintf(w, ", %d without metadata", missingMeta)
	}
	if invalidBR > 0 {
		fmt.Fprintf(w, ", %d with unreadable BR", invalidBR)
	}
	if undefinedMode > 0 {
		fmt.Fprintf(w, ", %d with unknown mode", undefinedMode)
	}
	fmt.Fprintln(w)
}

// PrintWinRateTable lists the per-vehicle win rates stored with a weighted run.
func PrintWinRateTable(w io.Writer, wins []model.VehicleWinStat) {
	table := newTable(w)
	table.Header("VEHICLE", "COUNTRY", "BR", "MODE", "WIN%", "GAMES", "W", "L", "CLASS")
	for _, s := range wins {
		table.Append(
			s.Vehicle,
			s.Country,
			s.BR.String(),
			s.MatchMode.String(),
			fmt.Sprintf("%.1f", s.WinRate*100),
			strconv.Itoa(s.Games),
			strconv.Itoa(s.Victories),
			strconv.Itoa(s.Defeats),
			s.UnitClass,
		)
	}
	table.Render()
}

// PrintQueryResult prints raw query output as a table followed by a row count.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
