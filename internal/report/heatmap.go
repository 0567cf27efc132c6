package report

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/pable/brtiers/internal/model"
)

// Heatmap is a BR x Country grid ready to render. Values[r][c] holds the cell
// for BRs[r] and Countries[c]; NaN cells are left blank.
type Heatmap struct {
	Title     string
	View      View
	Countries []string
	BRs       []model.BR
	Values    [][]float64
}

// HeatmapFileName derives the PNG name from a title:
// "NRB Full Downtier Rates" -> "nrb_full_downtier_rates_heatmap.png".
func HeatmapFileName(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_") + "_heatmap.png"
}

// newGrid lays out countries and BRs in first-seen order (records arrive
// sorted) and fills every cell with NaN.
func newGrid(title string, v View, n int, keys func(i int) (string, model.BR)) (*Heatmap, map[string]int, map[model.BR]int) {
	h := &Heatmap{Title: title, View: v}
	colOf := make(map[string]int)
	rowOf := make(map[model.BR]int)
	for i := 0; i < n; i++ {
		country, br := keys(i)
		if _, ok := colOf[country]; !ok {
			colOf[country] = len(h.Countries)
			h.Countries = append(h.Countries, country)
		}
		if _, ok := rowOf[br]; !ok {
			rowOf[br] = len(h.BRs)
			h.BRs = append(h.BRs, br)
		}
	}
	h.Values = make([][]float64, len(h.BRs))
	for r := range h.Values {
		h.Values[r] = make([]float64, len(h.Countries))
		for c := range h.Values[r] {
			h.Values[r][c] = math.NaN()
		}
	}
	return h, colOf, rowOf
}

// RateHeatmap pivots rate records for one view. Cells whose bracket has
// fewer than minCount plays are masked.
func RateHeatmap(recs []model.RateRecord, v View, title string, minCount int) *Heatmap {
	h, colOf, rowOf := newGrid(title, v, len(recs), func(i int) (string, model.BR) {
		return recs[i].Country, recs[i].BR
	})
	for _, r := range recs {
		if r.Count < minCount {
			continue
		}
		h.Values[rowOf[r.BR]][colOf[r.Country]] = RateValue(r, v)
	}
	return h
}

// WeightedHeatmap pivots weighted records.
func WeightedHeatmap(recs []model.WeightedRecord, title string, minCount int) *Heatmap {
	h, colOf, rowOf := newGrid(title, ViewWeighted, len(recs), func(i int) (string, model.BR) {
		return recs[i].Country, recs[i].BR
	})
	for _, r := range recs {
		if r.Count < minCount {
			continue
		}
		h.Values[rowOf[r.BR]][colOf[r.Country]] = r.Weighted
	}
	return h
}

// Range returns the colour scale bounds: [0,1] for percentage views,
// otherwise the finite data range widened so it is never empty.
func (h *Heatmap) Range() (lo, hi float64) {
	if h.View.Percent() {
		return 0, 1
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range h.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if hi-lo < 1e-9 {
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

// Dims, Z, X and Y implement plotter.GridXYZ. The lowest BR is drawn on top.
func (h *Heatmap) Dims() (c, r int) { return len(h.Countries), len(h.BRs) }
func (h *Heatmap) Z(c, r int) float64 { return h.Values[r][c] }
func (h *Heatmap) X(c int) float64 { return float64(c) }
func (h *Heatmap) Y(r int) float64 { return float64(len(h.BRs) - 1 - r) }

// Plot builds the gonum plot with annotated cells.
func (h *Heatmap) Plot() (*plot.Plot, error) {
	if len(h.Countries) == 0 || len(h.BRs) == 0 {
		return nil, fmt.Errorf("heatmap %q: no data", h.Title)
	}

	p := plot.New()
	p.Title.Text = h.Title
	p.X.Label.Text = "Country"
	p.Y.Label.Text = "Battle Rating"

	hm := plotter.NewHeatMap(h, palette.Heat(16, 1))
	hm.Min, hm.Max = h.Range()
	hm.NaN = color.White
	p.Add(hm)

	var (
		xys    plotter.XYs
		labels []string
	)
	for r := range h.BRs {
		for c := range h.Countries {
			v := h.Values[r][c]
			if math.IsNaN(v) {
				continue
			}
			xys = append(xys, plotter.XY{X: h.X(c), Y: h.Y(r)})
			labels = append(labels, FormatValue(v, h.View))
		}
	}
	if len(xys) > 0 {
		l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, fmt.Errorf("heatmap labels: %w", err)
		}
		for i := range l.TextStyle {
			l.TextStyle[i].XAlign = text.XCenter
			l.TextStyle[i].YAlign = text.YCenter
		}
		p.Add(l)
	}

	xTicks := make([]plot.Tick, len(h.Countries))
	for c, name := range h.Countries {
		xTicks[c] = plot.Tick{Value: h.X(c), Label: name}
	}
	yTicks := make([]plot.Tick, len(h.BRs))
	for r, br := range h.BRs {
		yTicks[r] = plot.Tick{Value: h.Y(r), Label: br.String()}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	return p, nil
}

// Save renders the heatmap to path; the format follows the extension.
func (h *Heatmap) Save(path string) error {
	p, err := h.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(15*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save heatmap %s: %w", path, err)
	}
	return nil
}
