// Package source reads the three JSON feeds: per-mode play counts, the
// historical per-vehicle stats and the static vehicle metadata.
package source

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/pable/brtiers/internal/model"
)

// HistoricalStat is one entry of vehicle_stats.historical.
type HistoricalStat struct {
	Name      string
	Games     int
	Victories int
	Defeats   int
}

// VehicleInfo is the static metadata for one vehicle.
type VehicleInfo struct {
	Country                string
	BattleRatingHistorical string
	UnitClass              string
	UnitMoveType           string
}

// ReadFile loads path and checks it holds valid JSON.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("read %s: invalid JSON", path)
	}
	return data, nil
}

// Section extracts the play counts of one mode from the stats feed. It fails
// with model.ErrMissingSection if the mode's top-level key is absent.
func Section(data []byte, mode model.MatchMode) (model.RawSection, error) {
	name := mode.Section()
	if name == "" {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownMode, mode)
	}

	// Look the key up by iteration: section names contain spaces and the
	// feed is not ours, so avoid path syntax for them.
	var sec gjson.Result
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			sec = value
			return false
		}
		return true
	})
	if !sec.Exists() {
		return nil, fmt.Errorf("%w: %q", model.ErrMissingSection, name)
	}
	if !sec.IsObject() {
		return nil, fmt.Errorf("section %q: expected object, got %s", name, sec.Type)
	}

	out := make(model.RawSection)
	sec.ForEach(func(country, byBR gjson.Result) bool {
		counts := make(map[string]int)
		byBR.ForEach(func(br, entry gjson.Result) bool {
			counts[br.String()] = int(entry.Get("playCount").Int())
			return true
		})
		out[country.String()] = counts
		return true
	})
	return out, nil
}

// Historical reads the vehicle_stats.historical array.
func Historical(data []byte) ([]HistoricalStat, error) {
	hist := gjson.GetBytes(data, "vehicle_stats.historical")
	if !hist.Exists() {
		return nil, fmt.Errorf("%w: %q", model.ErrMissingSection, "vehicle_stats.historical")
	}
	if !hist.IsArray() {
		return nil, fmt.Errorf("vehicle_stats.historical: expected array, got %s", hist.Type)
	}

	var out []HistoricalStat
	for _, v := range hist.Array() {
		out = append(out, HistoricalStat{
			Name:      v.Get("name").String(),
			Games:     int(v.Get("games").Int()),
			Victories: int(v.Get("victories").Int()),
			Defeats:   int(v.Get("defeats").Int()),
		})
	}
	return out, nil
}

// Metadata reads the vehicle metadata feed keyed by vehicle name.
// battleRatingHistorical may be a number or a string in the feed; both are
// kept as text so the exact decimal can be parsed later.
func Metadata(data []byte) (map[string]VehicleInfo, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("vehicle metadata: expected object, got %s", root.Type)
	}

	out := make(map[string]VehicleInfo)
	root.ForEach(func(name, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		br := v.Get("battleRatingHistorical")
		brText := br.String()
		if br.Type == gjson.Number {
			brText = br.Raw
		}
		out[name.String()] = VehicleInfo{
			Country:                v.Get("country").String(),
			BattleRatingHistorical: brText,
			UnitClass:              v.Get("unitClass").String(),
			UnitMoveType:           v.Get("unitMoveType").String(),
		}
		return true
	})
	return out, nil
}
