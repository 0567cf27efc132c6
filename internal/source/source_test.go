package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pable/brtiers/internal/model"
)

const statsJSON = `{
  "Ship Realistic": {
    "country_usa": {"3.0": {"playCount": 12}, "3.3": {"playCount": 4, "winRate": 0.5}},
    "country_japan": {"3.7": {"playCount": 9}}
  },
  "Tank Realistic": {
    "country_germany": {"6.7": {"playCount": 100}}
  }
}`

func TestSection(t *testing.T) {
	sec, err := Section([]byte(statsJSON), model.ModeNRB)
	if err != nil {
		t.Fatalf("Section: %v", err)
	}
	if len(sec) != 2 {
		t.Fatalf("want 2 countries, got %d", len(sec))
	}
	if sec["country_usa"]["3.0"] != 12 || sec["country_usa"]["3.3"] != 4 {
		t.Errorf("usa counts: %v", sec["country_usa"])
	}
	if sec["country_japan"]["3.7"] != 9 {
		t.Errorf("japan counts: %v", sec["country_japan"])
	}
}

func TestSection_Missing(t *testing.T) {
	_, err := Section([]byte(statsJSON), model.ModeARB)
	if !errors.Is(err, model.ErrMissingSection) {
		t.Errorf("want ErrMissingSection, got %v", err)
	}
}

func TestSection_UnknownMode(t *testing.T) {
	_, err := Section([]byte(statsJSON), model.ModeUnknown)
	if !errors.Is(err, model.ErrUnknownMode) {
		t.Errorf("want ErrUnknownMode, got %v", err)
	}
}

func TestHistorical(t *testing.T) {
	data := []byte(`{"vehicle_stats": {"historical": [
		{"name": "us_m4a1", "games": 10, "victories": 6, "defeats": 4},
		{"name": "germ_pzkpfw_iv", "games": 3}
	]}}`)
	stats, err := Historical(data)
	if err != nil {
		t.Fatalf("Historical: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("want 2 stats, got %d", len(stats))
	}
	if stats[0] != (HistoricalStat{Name: "us_m4a1", Games: 10, Victories: 6, Defeats: 4}) {
		t.Errorf("unexpected first stat: %+v", stats[0])
	}
	if stats[1].Victories != 0 || stats[1].Defeats != 0 {
		t.Errorf("missing counts should default to 0: %+v", stats[1])
	}
}

func TestHistorical_Missing(t *testing.T) {
	_, err := Historical([]byte(`{"vehicle_stats": {"arcade": []}}`))
	if !errors.Is(err, model.ErrMissingSection) {
		t.Errorf("want ErrMissingSection, got %v", err)
	}
}

func TestMetadata(t *testing.T) {
	data := []byte(`{
		"us_m4a1": {"country": "country_usa", "battleRatingHistorical": 3.7, "unitClass": "exp_tank", "unitMoveType": "tank"},
		"ijn_kongo": {"country": "country_japan", "battleRatingHistorical": "5.3", "unitMoveType": "ship"}
	}`)
	meta, err := Metadata(data)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	m4 := meta["us_m4a1"]
	if m4.BattleRatingHistorical != "3.7" || m4.UnitMoveType != "tank" || m4.Country != "country_usa" {
		t.Errorf("unexpected m4a1 metadata: %+v", m4)
	}
	if meta["ijn_kongo"].BattleRatingHistorical != "5.3" {
		t.Errorf("string BR not kept: %+v", meta["ijn_kongo"])
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(good, []byte(statsJSON), 0644)
	os.WriteFile(bad, []byte(`{"Ship Realistic": `), 0644)

	if _, err := ReadFile(good); err != nil {
		t.Errorf("ReadFile(good): %v", err)
	}
	if _, err := ReadFile(bad); err == nil {
		t.Error("expected error for truncated JSON")
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
