package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrMissingSection     = errors.New("missing section")
	ErrInvalidBracket     = errors.New("invalid bracket")
	ErrUndefinedMatchMode = errors.New("undefined match mode")
	ErrMissingMetadata    = errors.New("missing vehicle metadata")
	ErrInvalidBR          = errors.New("invalid battle rating")
	ErrUnknownMode        = errors.New("unknown match mode")
	ErrDuplicateCountry   = errors.New("duplicate country name")
)

// BR is a battle rating in tenths (3.7 is stored as 37). Integer tenths keep
// map lookups and bracket arithmetic exact.
type BR int

// ParseBR parses decimal text such as "3.7" or "10.0". Values with more than
// one fractional digit are rounded half away from zero.
func ParseBR(s string) (BR, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidBR, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidBR, s)
	}
	return BR(d.Round(1).Shift(1).IntPart()), nil
}

// BRFromFloat rounds f to the nearest tenth.
func BRFromFloat(f float64) BR {
	return BR(math.Round(f * 10))
}

// Float returns the rating as a float64, e.g. 3.7.
func (b BR) Float() float64 { return float64(b) / 10 }

// Frac returns the fractional digit of the rating.
func (b BR) Frac() int { return int(b % 10) }

func (b BR) String() string {
	return fmt.Sprintf("%d.%d", int(b)/10, int(b)%10)
}

// CountryDisplayName turns a country id such as "country_usa" into "Usa".
func CountryDisplayName(id string) string {
	parts := strings.Split(id, "_")
	return cases.Title(language.Und).String(parts[len(parts)-1])
}

// MatchMode is one of the three realistic battle modes.
type MatchMode int

const (
	ModeUnknown MatchMode = iota
	ModeNRB
	ModeGRB
	ModeARB
)

// AllModes lists the valid modes in processing order.
var AllModes = []MatchMode{ModeNRB, ModeGRB, ModeARB}

func (m MatchMode) String() string {
	switch m {
	case ModeNRB:
		return "NRB"
	case ModeGRB:
		return "GRB"
	case ModeARB:
		return "ARB"
	default:
		return "Unknown"
	}
}

// Section is the top-level key of the play-count feed holding this mode's data.
func (m MatchMode) Section() string {
	switch m {
	case ModeNRB:
		return "Ship Realistic"
	case ModeGRB:
		return "Tank Realistic"
	case ModeARB:
		return "Air Realistic"
	default:
		return ""
	}
}

// Keywords are the movement-type substrings that classify a vehicle into
// this mode. ARB has none: it matches the exact move type "air".
func (m MatchMode) Keywords() []string {
	switch m {
	case ModeGRB:
		return []string{"tank", "heavy_tank", "wheeled_vehicle"}
	case ModeNRB:
		return []string{"ship", "slow_ship", "fast_ship"}
	default:
		return nil
	}
}

// ParseMatchMode accepts "nrb", "GRB", etc.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NRB":
		return ModeNRB, nil
	case "GRB":
		return ModeGRB, nil
	case "ARB":
		return ModeARB, nil
	}
	return ModeUnknown, fmt.Errorf("%w: %q (want NRB, GRB or ARB)", ErrUnknownMode, s)
}

// ---- Raw inputs ----

// RawSection maps country id -> BR text -> play count for one mode.
type RawSection map[string]map[string]int

// ---- Tables ----

type CountryRow struct {
	CountryID string
	Country   string // display name
	Counts    map[BR]int
}

// PlayCountTable is the dense country x BR play-count table for one mode.
type PlayCountTable struct {
	BRs  []BR // sorted union of every country's BR keys
	Rows []CountryRow
}

// Header returns the CSV header: "Country" then one column per BR.
func (t *PlayCountTable) Header() []string {
	h := make([]string, 0, len(t.BRs)+1)
	h = append(h, "Country")
	for _, br := range t.BRs {
		h = append(h, br.String())
	}
	return h
}

// TierRates are the fractions of bracket matches at each tier offset.
type TierRates struct {
	FullDowntier float64
	Downtier     float64
	Uptier       float64
	FullUptier   float64
}

// Sum is 1 when the bracket had plays and 0 otherwise.
func (r TierRates) Sum() float64 {
	return r.FullDowntier + r.Downtier + r.Uptier + r.FullUptier
}

type RateRecord struct {
	Country string
	BR      BR
	TierRates
	Count int // total plays across the four bracket BRs
}

type VehicleWinStat struct {
	Vehicle      string
	Country      string
	BR           BR
	WinRate      float64
	Games        int
	Victories    int
	Defeats      int
	MatchMode    MatchMode
	UnitClass    string
	UnitMoveType string
}

type WeightedRecord struct {
	Country  string
	BR       BR
	Weighted float64
	WinRate  float64
	Vehicle  string // vehicle whose win rate was used; empty if none matched
	Count    int
}

// ---- Stored runs ----

// RunKind distinguishes tier-rate runs from weighted-score runs.
type RunKind string

const (
	RunRates    RunKind = "rates"
	RunWeighted RunKind = "weighted"
)

// RunInfo describes one recorded batch for one mode.
type RunInfo struct {
	ID        string
	Kind      RunKind
	Mode      MatchMode
	CreatedAt time.Time
	Source    string // stats feed path
	Countries int
	BRs       int
	Records   int
}
