package report

import (
	"fmt"
	"strings"

	"github.com/pable/brtiers/internal/model"
)

// View selects which value of a record is shown in a pivot or heatmap.
type View int

const (
	ViewFullDowntier View = iota
	ViewDowntier
	ViewUptier
	ViewFullUptier
	ViewCount
	ViewWeighted
)

// RateViews are the four tier views rendered for every rates run.
var RateViews = []View{ViewFullDowntier, ViewDowntier, ViewUptier, ViewFullUptier}

// Column is the CSV column / heatmap label of the view.
func (v View) Column() string {
	switch v {
	case ViewFullDowntier:
		return "Full Downtier"
	case ViewDowntier:
		return "Downtier"
	case ViewUptier:
		return "Uptier"
	case ViewFullUptier:
		return "Full Uptier"
	case ViewCount:
		return "Count"
	case ViewWeighted:
		return "Weighted"
	default:
		return "?"
	}
}

func (v View) String() string {
	return strings.ReplaceAll(strings.ToLower(v.Column()), " ", "-")
}

// Percent reports whether values of this view are fractions shown as percentages.
func (v View) Percent() bool {
	return v <= ViewFullUptier
}

// ParseView accepts the String form, e.g. "full-downtier".
func ParseView(s string) (View, error) {
	for v := ViewFullDowntier; v <= ViewWeighted; v++ {
		if strings.EqualFold(s, v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view %q (want full-downtier, downtier, uptier, full-uptier, count or weighted)", s)
}

// RateValue extracts the view's value from a rate record.
func RateValue(r model.RateRecord, v View) float64 {
	switch v {
	case ViewFullDowntier:
		return r.FullDowntier
	case ViewDowntier:
		return r.Downtier
	case ViewUptier:
		return r.Uptier
	case ViewFullUptier:
		return r.FullUptier
	case ViewCount:
		return float64(r.Count)
	default:
		return 0
	}
}

// FormatValue renders a cell the way tables and heatmaps show it.
func FormatValue(val float64, v View) string {
	switch {
	case v.Percent():
		return fmt.Sprintf("%.0f%%", val*100)
	case v == ViewCount:
		return fmt.Sprintf("%.0f", val)
	default:
		return fmt.Sprintf("%.2f", val)
	}
}
