package report

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pable/brtiers/internal/model"
)

func sampleRates() []model.RateRecord {
	return []model.RateRecord{
		{Country: "A", BR: 30, TierRates: model.TierRates{FullDowntier: 1}, Count: 100},
		{Country: "A", BR: 33, Count: 0},
		{Country: "B", BR: 30, TierRates: model.TierRates{Downtier: 1}, Count: 50},
		{Country: "B", BR: 33, TierRates: model.TierRates{FullDowntier: 0.5, Uptier: 0.25, FullUptier: 0.25}, Count: 8},
	}
}

func readCSV(t *testing.T, b *bytes.Buffer) [][]string {
	t.Helper()
	recs, err := csv.NewReader(b).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return recs
}

// ---- CSV ----

func TestWritePlayCounts(t *testing.T) {
	tbl := &model.PlayCountTable{
		BRs: []model.BR{30, 33},
		Rows: []model.CountryRow{
			{Country: "A", Counts: map[model.BR]int{30: 100, 33: 0}},
			{Country: "B", Counts: map[model.BR]int{30: 0, 33: 50}},
		},
	}
	var buf bytes.Buffer
	if err := WritePlayCounts(&buf, tbl); err != nil {
		t.Fatalf("WritePlayCounts: %v", err)
	}
	got := readCSV(t, &buf)
	want := [][]string{{"Country", "3.0", "3.3"}, {"A", "100", "0"}, {"B", "0", "50"}}
	if len(got) != len(want) {
		t.Fatalf("want %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if strings.Join(got[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("line %d: want %v, got %v", i, want[i], got[i])
		}
	}
}

func TestWriteRates(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRates(&buf, sampleRates()); err != nil {
		t.Fatalf("WriteRates: %v", err)
	}
	got := readCSV(t, &buf)
	if len(got) != 5 {
		t.Fatalf("want header + 4 lines, got %d", len(got))
	}
	if strings.Join(got[0], ",") != "Country,BR,Full Downtier,Downtier,Uptier,Full Uptier,Count" {
		t.Errorf("unexpected header: %v", got[0])
	}
	if strings.Join(got[4], ",") != "B,3.3,0.5,0,0.25,0.25,8" {
		t.Errorf("unexpected last line: %v", got[4])
	}
}

func TestWriteWeightedAndWinRates(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWeighted(&buf, []model.WeightedRecord{
		{Country: "Usa", BR: 37, Weighted: -1.25, WinRate: 0.4, Vehicle: "us_m4a1", Count: 12},
	})
	if err != nil {
		t.Fatalf("WriteWeighted: %v", err)
	}
	got := readCSV(t, &buf)
	if strings.Join(got[1], ",") != "Usa,3.7,-1.25,0.4,us_m4a1,12" {
		t.Errorf("unexpected weighted line: %v", got[1])
	}

	buf.Reset()
	err = WriteWinRates(&buf, []model.VehicleWinStat{
		{Vehicle: "us_ah1", Country: "Usa", BR: 90, WinRate: 0.75, Games: 4, Victories: 3, Defeats: 1, MatchMode: model.ModeUnknown, UnitMoveType: "helicopter"},
	})
	if err != nil {
		t.Fatalf("WriteWinRates: %v", err)
	}
	got = readCSV(t, &buf)
	if got[1][7] != "Unknown" || got[1][3] != "0.75" {
		t.Errorf("unexpected win rate line: %v", got[1])
	}
}

// ---- Views ----

func TestParseView(t *testing.T) {
	for v := ViewFullDowntier; v <= ViewWeighted; v++ {
		got, err := ParseView(v.String())
		if err != nil || got != v {
			t.Errorf("ParseView(%s): got %v, %v", v, got, err)
		}
	}
	if _, err := ParseView("sideways"); err == nil {
		t.Error("expected error for unknown view")
	}
	if ViewFullUptier.String() != "full-uptier" {
		t.Errorf("unexpected view name %s", ViewFullUptier)
	}
}

func TestFormatValue(t *testing.T) {
	if got := FormatValue(0.254, ViewUptier); got != "25%" {
		t.Errorf("percent: got %s", got)
	}
	if got := FormatValue(12, ViewCount); got != "12" {
		t.Errorf("count: got %s", got)
	}
	if got := FormatValue(-0.9375, ViewWeighted); got != "-0.94" {
		t.Errorf("weighted: got %s", got)
	}
}

// ---- Heatmaps ----

func TestHeatmapFileName(t *testing.T) {
	if got := HeatmapFileName("NRB Full Downtier Rates"); got != "nrb_full_downtier_rates_heatmap.png" {
		t.Errorf("unexpected file name %s", got)
	}
}

func TestRateHeatmap_GridAndMask(t *testing.T) {
	h := RateHeatmap(sampleRates(), ViewFullDowntier, "T", 10)
	c, r := h.Dims()
	if c != 2 || r != 2 {
		t.Fatalf("dims: want 2x2, got %dx%d", c, r)
	}
	if h.Countries[0] != "A" || h.BRs[1] != 33 {
		t.Errorf("unexpected layout: %v %v", h.Countries, h.BRs)
	}
	if h.Z(0, 0) != 1 {
		t.Errorf("A/3.0: want 1, got %f", h.Z(0, 0))
	}
	// A/3.3 (count 0) and B/3.3 (count 8) fall under the mask.
	if !math.IsNaN(h.Z(0, 1)) || !math.IsNaN(h.Z(1, 1)) {
		t.Errorf("expected masked cells, got %f and %f", h.Z(0, 1), h.Z(1, 1))
	}
	// Lowest BR is drawn on top.
	if h.Y(0) != 1 || h.Y(1) != 0 {
		t.Errorf("unexpected Y layout: %f %f", h.Y(0), h.Y(1))
	}
	if lo, hi := h.Range(); lo != 0 || hi != 1 {
		t.Errorf("percent range: want [0,1], got [%f,%f]", lo, hi)
	}
}

func TestWeightedHeatmap_Range(t *testing.T) {
	h := WeightedHeatmap([]model.WeightedRecord{
		{Country: "A", BR: 30, Weighted: -2, Count: 1},
		{Country: "B", BR: 30, Weighted: 3, Count: 1},
	}, "W", 0)
	if lo, hi := h.Range(); lo != -2 || hi != 3 {
		t.Errorf("want [-2,3], got [%f,%f]", lo, hi)
	}

	flat := WeightedHeatmap([]model.WeightedRecord{{Country: "A", BR: 30, Count: 1}}, "W", 0)
	if lo, hi := flat.Range(); hi <= lo {
		t.Errorf("flat range must be widened, got [%f,%f]", lo, hi)
	}
}

func TestHeatmapSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), HeatmapFileName("NRB Downtier Rates"))
	h := RateHeatmap(sampleRates(), ViewDowntier, "NRB Downtier Rates", 0)
	if err := h.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Size() == 0 {
		t.Error("empty PNG")
	}
}

func TestHeatmapPlot_Empty(t *testing.T) {
	h := RateHeatmap(nil, ViewDowntier, "empty", 0)
	if _, err := h.Plot(); err == nil {
		t.Error("expected error for empty heatmap")
	}
}

// ---- Terminal tables ----

func TestPrintRatePivot(t *testing.T) {
	var buf bytes.Buffer
	PrintRatePivot(&buf, sampleRates(), ViewFullDowntier, "")
	out := buf.String()
	for _, want := range []string{"BR", "A", "B", "3.0", "3.3", "100%", "50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("pivot output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintRatePivot(&buf, sampleRates(), ViewCount, "B")
	if strings.Contains(buf.String(), "100") {
		t.Errorf("country filter leaked A's count:\n%s", buf.String())
	}
}

func TestPrintWeightedPivot(t *testing.T) {
	var buf bytes.Buffer
	PrintWeightedPivot(&buf, []model.WeightedRecord{
		{Country: "Usa", BR: 37, Weighted: 1.5, Vehicle: "v1", Count: 3},
		{Country: "Usa", BR: 40, Count: 3},
	}, ViewWeighted, "")
	out := buf.String()
	if !strings.Contains(out, "1.50") || !strings.Contains(out, "—") {
		t.Errorf("unexpected weighted pivot:\n%s", out)
	}
}

func TestPrintWinRateTable(t *testing.T) {
	var buf bytes.Buffer
	PrintWinRateTable(&buf, []model.VehicleWinStat{
		{Vehicle: "us_m4", Country: "Usa", BR: 30, WinRate: 0.75, Games: 4, Victories: 3, Defeats: 1, MatchMode: model.ModeGRB, UnitClass: "exp_tank"},
	})
	out := buf.String()
	for _, want := range []string{"us_m4", "GRB", "75.0", "3.0", "exp_tank"} {
		if !strings.Contains(out, want) {
			t.Errorf("win rate table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintQueryResult(t *testing.T) {
	var buf bytes.Buffer
	PrintQueryResult(&buf, []string{"country", "count"}, [][]string{{"Usa", "7"}})
	if out := buf.String(); !strings.Contains(out, "Usa") || !strings.Contains(out, "(1 rows)") {
		t.Errorf("unexpected query output:\n%s", out)
	}

	buf.Reset()
	PrintQueryResult(&buf, []string{"country"}, nil)
	if buf.String() != "(no rows)\n" {
		t.Errorf("want no-rows marker, got %q", buf.String())
	}
}
