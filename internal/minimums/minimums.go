// Package minimums resolves the weather floor that governed a flight: the
// insurance-mandated minimum ceiling and visibility plus maximum wind and
// crosswind for a given pilot tier, flight area, and takeoff context.
package minimums

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/halcyonair/skyaudit/internal/pilots"
)

// Rule categories, matched by tier subsumption rather than equality.
const (
	CategoryStudent    = "Student"
	CategoryCertified  = "Certified"
	CategoryFiftyHours = "50 Hours"
	CategoryDual       = "Dual"
)

// Flight areas. A rule's area may be more general than the flight's.
const (
	AreaPattern      = "Pattern"
	AreaPractice     = "Practice Area"
	AreaLocal        = "Local"
	AreaCrossCountry = "Cross Country"
	AreaAny          = "Any"
)

// Rule is one row of the minimums table. Ceiling is in feet, visibility in
// statute miles, wind and crosswind in knots.
type Rule struct {
	Category   string
	Conditions string // VMC or IMC
	Area       string
	TimeOfDay  string // Day or Night
	Ceiling    float64
	Visibility float64
	Wind       float64
	Crosswind  float64
}

// Table is the school's minimums table, header row excluded.
type Table []Rule

// Minimums is the aggregated bound for a flight: the least required ceiling
// and visibility and the greatest allowed wind and crosswind across every
// matching rule. A pilot flying under any one applicable rule need only
// satisfy that rule, so the applicable floor is the loosest of all matches.
type Minimums struct {
	Ceiling    float64 `json:"ceiling"`
	Visibility float64 `json:"visibility"`
	Wind       float64 `json:"wind"`
	Crosswind  float64 `json:"crosswind"`
}

// areaSubsumes maps a flight's area to the rule areas that cover it.
var areaSubsumes = map[string][]string{
	AreaPattern:      {AreaPattern, AreaLocal, AreaAny},
	AreaPractice:     {AreaPractice, AreaLocal, AreaAny},
	AreaCrossCountry: {AreaCrossCountry, AreaAny},
}

// areaMatches reports whether a rule declared for ruleArea covers a flight
// in flightArea.
func areaMatches(flightArea, ruleArea string) bool {
	for _, candidate := range areaSubsumes[flightArea] {
		if ruleArea == candidate {
			return true
		}
	}
	return false
}

// categoryMatches reports whether a rule category applies to a pilot of the
// given tier. Dual rules require an instructor on board but apply to any
// tier, including invalid and novice. "50 Hours" is an exact tier, not a
// floor. Uninstructed flights can never claim a Dual rule.
func categoryMatches(cert pilots.Certification, instructed bool, category string) bool {
	switch category {
	case CategoryDual:
		return instructed
	case CategoryStudent:
		return cert >= pilots.CertStudent
	case CategoryCertified:
		return cert >= pilots.CertCertified
	case CategoryFiftyHours:
		return cert == pilots.CertFiftyHours
	default:
		return false
	}
}

// Resolve selects every rule matching the flight context and aggregates the
// matches into the most permissive bound. It returns nil when no rule
// matches (for example an uninstructed novice): absence of an applicable
// rule is "no bound", not a trivially permissive one.
func (t Table) Resolve(cert pilots.Certification, area string, instructed, vfr, daytime bool) *Minimums {
	conditions := "IMC"
	if vfr {
		conditions = "VMC"
	}
	timeOfDay := "Night"
	if daytime {
		timeOfDay = "Day"
	}

	var result *Minimums
	for _, rule := range t {
		if rule.Conditions != conditions || rule.TimeOfDay != timeOfDay {
			continue
		}
		if !categoryMatches(cert, instructed, rule.Category) {
			continue
		}
		if !areaMatches(area, rule.Area) {
			continue
		}

		if result == nil {
			result = &Minimums{
				Ceiling:    rule.Ceiling,
				Visibility: rule.Visibility,
				Wind:       rule.Wind,
				Crosswind:  rule.Crosswind,
			}
			continue
		}
		if rule.Ceiling < result.Ceiling {
			result.Ceiling = rule.Ceiling
		}
		if rule.Visibility < result.Visibility {
			result.Visibility = rule.Visibility
		}
		if rule.Wind > result.Wind {
			result.Wind = rule.Wind
		}
		if rule.Crosswind > result.Crosswind {
			result.Crosswind = rule.Crosswind
		}
	}
	return result
}

// ParseRow converts a CSV record (CATEGORY, CONDITIONS, AREA, TIME, CEILING,
// VISIBILITY, WIND, CROSSWIND) into a Rule.
func ParseRow(record []string) (Rule, error) {
	if len(record) != 8 {
		return Rule{}, fmt.Errorf("minimums row has %d columns, want 8", len(record))
	}

	values := make([]float64, 4)
	for i, raw := range record[4:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Rule{}, fmt.Errorf("minimums column %d: %w", i+5, err)
		}
		values[i] = v
	}

	return Rule{
		Category:   strings.TrimSpace(record[0]),
		Conditions: strings.TrimSpace(record[1]),
		Area:       strings.TrimSpace(record[2]),
		TimeOfDay:  strings.TrimSpace(record[3]),
		Ceiling:    values[0],
		Visibility: values[1],
		Wind:       values[2],
		Crosswind:  values[3],
	}, nil
}
