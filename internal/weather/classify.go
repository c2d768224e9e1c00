package weather

import (
	"time"

	"github.com/halcyonair/skyaudit/internal/minimums"
	"github.com/halcyonair/skyaudit/internal/timeutil"
)

// Conversion factors
const (
	FeetPerStatuteMile = 5280.0  // Feet per statute mile
	KnotsPerMPS        = 1.94384 // Knots per meter-per-second
)

// Violation reasons returned by Classify.
const (
	ReasonCeiling    = "Ceiling"
	ReasonVisibility = "Visibility"
	ReasonWinds      = "Winds"
	ReasonWeather    = "Weather"
	ReasonUnknown    = "Unknown"
)

// BadVisibility reports whether the visibility measurement violates the
// required minimum (in statute miles). The reading's own minimum sub-field
// is preferred over the prevailing value when present; readings in feet are
// converted to statute miles. An unavailable reading always violates.
func BadVisibility(v Visibility, minimum float64) bool {
	if v.Unavailable {
		return true
	}

	measurement := v.Prevailing
	if v.Minimum != nil {
		measurement = *v.Minimum
	}
	if v.Units == "FT" {
		measurement /= FeetPerStatuteMile
	}

	return minimum > measurement
}

// BadWinds reports whether the wind measurement violates the allowed
// maximum wind or crosswind (both in knots). The worse of speed and gusts
// is the wind figure; readings in meters per second are converted to knots.
// Calm winds never violate; an unavailable reading always does.
func BadWinds(w Wind, maxWind, maxCross float64) bool {
	if w.Calm {
		return false
	}
	if w.Unavailable {
		return true
	}

	wind := w.Speed
	if w.Gusts != nil && *w.Gusts > wind {
		wind = *w.Gusts
	}
	cross := 0.0
	if w.Crosswind != nil {
		cross = *w.Crosswind
	}
	if w.Units == "MPS" {
		wind *= KnotsPerMPS
		cross *= KnotsPerMPS
	}

	return wind > maxWind || cross > maxCross
}

// BadCeiling reports whether the sky measurement violates the required
// minimum ceiling (in feet). The ceiling is the lowest layer typed broken,
// overcast, or indefinite ceiling; a sky with no such layer has no ceiling
// and cannot violate. A clear sky never violates; an unavailable reading
// always does.
func BadCeiling(s Sky, minimum float64) bool {
	if s.Clear {
		return false
	}
	if s.Unavailable {
		return true
	}

	lowest := 0.0
	found := false
	for _, layer := range s.Layers {
		switch layer.Type {
		case LayerBroken, LayerOvercast, LayerIndefinite:
			if !found || layer.Height < lowest {
				lowest = layer.Height
				found = true
			}
		}
	}
	if !found {
		return false
	}

	return lowest < minimum
}

// ReportAt returns the most recent observation at or before takeoff.
//
// An observation keyed by the exact ISO representation of takeoff wins
// outright. Otherwise the series is scanned for the greatest timestamp
// strictly before takeoff. Nil is returned when the series holds nothing at
// or before takeoff, or no key parses.
func ReportAt(takeoff time.Time, series Series) *Report {
	if report, ok := series[takeoff.Format(time.RFC3339)]; ok {
		return &report
	}

	var bestKey string
	var bestTime time.Time
	for key := range series {
		t, ok := timeutil.ParseTime(key, nil)
		if !ok {
			continue
		}
		if t.Before(takeoff) && (bestKey == "" || t.After(bestTime)) {
			bestKey, bestTime = key, t
		}
	}
	if bestKey == "" {
		return nil
	}

	report := series[bestKey]
	return &report
}

// Classify evaluates an observation against a minimums bound and names the
// violated dimension: ReasonCeiling, ReasonVisibility, or ReasonWinds for a
// single failure, ReasonWeather for two or more, ReasonUnknown for a
// missing observation, and the empty string when the flight was fine.
func Classify(report *Report, bounds minimums.Minimums) string {
	if report == nil {
		return ReasonUnknown
	}

	var failures []string
	if BadCeiling(report.Sky, bounds.Ceiling) {
		failures = append(failures, ReasonCeiling)
	}
	if BadVisibility(report.Visibility, bounds.Visibility) {
		failures = append(failures, ReasonVisibility)
	}
	if BadWinds(report.Wind, bounds.Wind, bounds.Crosswind) {
		failures = append(failures, ReasonWinds)
	}

	switch len(failures) {
	case 0:
		return ""
	case 1:
		return failures[0]
	default:
		return ReasonWeather
	}
}
