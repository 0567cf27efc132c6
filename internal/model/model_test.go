package model

import (
	"errors"
	"testing"
)

func TestParseBR(t *testing.T) {
	cases := []struct {
		in   string
		want BR
	}{
		{"3.0", 30},
		{"3.7", 37},
		{"10.3", 103},
		{"1", 10},
		{" 4.3 ", 43},
		{"3.70", 37},
		{"3.65", 37}, // half away from zero
		{"3.6999999", 37},
	}
	for _, c := range cases {
		got, err := ParseBR(c.in)
		if err != nil {
			t.Errorf("ParseBR(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseBR(%q): want %d, got %d", c.in, c.want, got)
		}
	}
}

func TestParseBR_Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "-1.0"} {
		if _, err := ParseBR(s); !errors.Is(err, ErrInvalidBR) {
			t.Errorf("ParseBR(%q): want ErrInvalidBR, got %v", s, err)
		}
	}
}

func TestBRFromFloatAndString(t *testing.T) {
	// 3.3 + 0.4 drifts in float64; rounding to tenths must absorb it.
	if got := BRFromFloat(3.3 + 0.4); got != 37 {
		t.Errorf("BRFromFloat(3.3+0.4): want 37, got %d", got)
	}
	if s := BR(100).String(); s != "10.0" {
		t.Errorf("String: want 10.0, got %s", s)
	}
	if s := BR(7).String(); s != "0.7" {
		t.Errorf("String: want 0.7, got %s", s)
	}
	if f := BR(43).Float(); f != 4.3 {
		t.Errorf("Float: want 4.3, got %f", f)
	}
	if d := BR(47).Frac(); d != 7 {
		t.Errorf("Frac: want 7, got %d", d)
	}
}

func TestCountryDisplayName(t *testing.T) {
	cases := map[string]string{
		"country_usa":     "Usa",
		"country_germany": "Germany",
		"USSR":            "Ussr",
		"country_britain": "Britain",
		"plain":           "Plain",
	}
	for in, want := range cases {
		if got := CountryDisplayName(in); got != want {
			t.Errorf("CountryDisplayName(%q): want %q, got %q", in, want, got)
		}
	}
}

func TestParseMatchMode(t *testing.T) {
	for _, m := range AllModes {
		got, err := ParseMatchMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMatchMode(%s): got %v, %v", m, got, err)
		}
	}
	if got, err := ParseMatchMode(" grb "); err != nil || got != ModeGRB {
		t.Errorf("ParseMatchMode(grb): got %v, %v", got, err)
	}
	if _, err := ParseMatchMode("SB"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMatchMode(SB): want ErrUnknownMode, got %v", err)
	}
}

func TestMatchModeSections(t *testing.T) {
	want := map[MatchMode]string{
		ModeNRB: "Ship Realistic",
		ModeGRB: "Tank Realistic",
		ModeARB: "Air Realistic",
	}
	for m, s := range want {
		if m.Section() != s {
			t.Errorf("%s.Section(): want %q, got %q", m, s, m.Section())
		}
	}
	if ModeUnknown.Section() != "" || ModeUnknown.String() != "Unknown" {
		t.Error("ModeUnknown should have no section and print as Unknown")
	}
}

func TestTierRatesSum(t *testing.T) {
	r := TierRates{FullDowntier: 0.5, Downtier: 0.25, FullUptier: 0.25}
	if r.Sum() != 1 {
		t.Errorf("Sum: want 1, got %f", r.Sum())
	}
}
