package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonair/skyaudit/internal/minimums"
)

func f(v float64) *float64 { return &v }

func TestBadVisibility(t *testing.T) {
	tests := []struct {
		name       string
		visibility Visibility
		minimum    float64
		want       bool
	}{
		{"unavailable always violates", Visibility{Unavailable: true}, 0.5, true},
		{"prevailing above minimum", Visibility{Prevailing: 10, Units: "SM"}, 5, false},
		{"prevailing below minimum", Visibility{Prevailing: 3, Units: "SM"}, 5, true},
		{"minimum sub-field preferred", Visibility{Prevailing: 21120, Minimum: f(1400), Maximum: f(21120), Units: "FT"}, 1, true},
		{"minimum sub-field satisfies a lower bound", Visibility{Prevailing: 21120, Minimum: f(1400), Maximum: f(21120), Units: "FT"}, 0.25, false},
		{"5280 feet is exactly one statute mile", Visibility{Prevailing: 5280, Units: "FT"}, 1, false},
		{"just under a mile in feet", Visibility{Prevailing: 5279, Units: "FT"}, 1, true},
		{"equal measurement is not a violation", Visibility{Prevailing: 5, Units: "SM"}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BadVisibility(tt.visibility, tt.minimum))
		})
	}
}

func TestBadWinds(t *testing.T) {
	tests := []struct {
		name     string
		wind     Wind
		maxWind  float64
		maxCross float64
		want     bool
	}{
		{"calm never violates", Wind{Calm: true}, 0, 0, false},
		{"unavailable always violates", Wind{Unavailable: true}, 50, 50, true},
		{"within both limits", Wind{Speed: 12, Crosswind: f(10), Gusts: f(18), Units: "KT"}, 20, 10, false},
		{"gusts exceed the wind limit", Wind{Speed: 12, Crosswind: f(3), Gusts: f(18), Units: "KT"}, 15, 5, true},
		{"crosswind alone violates", Wind{Speed: 12, Crosswind: f(10), Gusts: f(18), Units: "KT"}, 20, 5, true},
		{"either dimension alone is enough", Wind{Speed: 12, Crosswind: f(10), Gusts: f(18), Units: "KT"}, 15, 5, true},
		{"gusts below speed are ignored", Wind{Speed: 12, Crosswind: f(2), Gusts: f(8), Units: "KT"}, 12, 5, false},
		{"no gusts reported", Wind{Speed: 16, Crosswind: f(2), Units: "KT"}, 15, 5, true},
		{"no crosswind reported", Wind{Speed: 10, Units: "KT"}, 15, 5, false},
		{"ten mps is just over 19.4 knots", Wind{Speed: 10, Units: "MPS"}, 19.4, 50, true},
		{"ten mps is under 19.5 knots", Wind{Speed: 10, Units: "MPS"}, 19.5, 50, false},
		{"mps crosswind converted too", Wind{Speed: 5, Crosswind: f(3), Units: "MPS"}, 50, 5.8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BadWinds(tt.wind, tt.maxWind, tt.maxCross))
		})
	}
}

func TestBadCeiling(t *testing.T) {
	layers := func(l ...CloudLayer) Sky { return Sky{Layers: l} }

	tests := []struct {
		name    string
		sky     Sky
		minimum float64
		want    bool
	}{
		{"clear never violates", Sky{Clear: true}, 10000, false},
		{"unavailable always violates", Sky{Unavailable: true}, 0, true},
		{"scattered clouds form no ceiling", layers(
			CloudLayer{Type: "scattered", Height: 700, Units: "FT"},
		), 2000, false},
		{"overcast below minimum", layers(
			CloudLayer{Cover: "clouds", Type: "scattered", Height: 700, Units: "FT"},
			CloudLayer{Type: "overcast", Height: 1200, Units: "FT"},
		), 2000, true},
		{"overcast above minimum", layers(
			CloudLayer{Cover: "clouds", Type: "scattered", Height: 700, Units: "FT"},
			CloudLayer{Type: "overcast", Height: 1200, Units: "FT"},
		), 1000, false},
		{"lowest qualifying layer decides", layers(
			CloudLayer{Type: "broken", Height: 800, Units: "FT"},
			CloudLayer{Type: "overcast", Height: 3000, Units: "FT"},
		), 1000, true},
		{"indefinite ceiling counts", layers(
			CloudLayer{Type: "indefinite ceiling", Height: 500, Units: "FT"},
		), 1000, true},
		{"ceiling equal to minimum is fine", layers(
			CloudLayer{Type: "broken", Height: 2000, Units: "FT"},
		), 2000, false},
		{"no layers at all", Sky{}, 2000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BadCeiling(tt.sky, tt.minimum))
		})
	}
}

func TestReportAt(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	series := Series{
		"2017-04-21T07:00:00-04:00": {Code: "0700"},
		"2017-04-21T08:00:00-04:00": {Code: "0800"},
		"2017-04-21T10:00:00-04:00": {Code: "1000"},
	}

	t.Run("exact key match wins", func(t *testing.T) {
		report := ReportAt(time.Date(2017, 4, 21, 8, 0, 0, 0, loc), series)
		require.NotNil(t, report)
		assert.Equal(t, "0800", report.Code)
	})

	t.Run("falls back to most recent prior observation", func(t *testing.T) {
		report := ReportAt(time.Date(2017, 4, 21, 9, 0, 0, 0, loc), series)
		require.NotNil(t, report)
		assert.Equal(t, "0800", report.Code)
	})

	t.Run("nothing at or before takeoff", func(t *testing.T) {
		assert.Nil(t, ReportAt(time.Date(2017, 4, 21, 6, 0, 0, 0, loc), series))
	})

	t.Run("empty series", func(t *testing.T) {
		assert.Nil(t, ReportAt(time.Date(2017, 4, 21, 8, 0, 0, 0, loc), Series{}))
	})

	t.Run("unparseable keys are skipped", func(t *testing.T) {
		junk := Series{"yesterday-ish": {Code: "junk"}}
		assert.Nil(t, ReportAt(time.Date(2017, 4, 21, 8, 0, 0, 0, loc), junk))
	})
}

func TestClassify(t *testing.T) {
	bounds := minimums.Minimums{Ceiling: 2000, Visibility: 5, Wind: 20, Crosswind: 8}

	clearReport := func() *Report {
		return &Report{
			Visibility: Visibility{Prevailing: 10, Units: "SM"},
			Wind:       Wind{Speed: 10, Crosswind: f(2), Units: "KT"},
			Sky:        Sky{Clear: true},
		}
	}

	t.Run("missing report is unknown", func(t *testing.T) {
		assert.Equal(t, ReasonUnknown, Classify(nil, bounds))
	})

	t.Run("fine weather yields no violation", func(t *testing.T) {
		assert.Equal(t, "", Classify(clearReport(), bounds))
	})

	t.Run("single dimension failures", func(t *testing.T) {
		ceiling := clearReport()
		ceiling.Sky = Sky{Layers: []CloudLayer{{Type: "overcast", Height: 1200, Units: "FT"}}}
		assert.Equal(t, ReasonCeiling, Classify(ceiling, bounds))

		visibility := clearReport()
		visibility.Visibility = Visibility{Prevailing: 2, Units: "SM"}
		assert.Equal(t, ReasonVisibility, Classify(visibility, bounds))

		winds := clearReport()
		winds.Wind = Wind{Speed: 25, Crosswind: f(2), Units: "KT"}
		assert.Equal(t, ReasonWinds, Classify(winds, bounds))
	})

	t.Run("multiple failures collapse to weather", func(t *testing.T) {
		report := clearReport()
		report.Visibility = Visibility{Prevailing: 2, Units: "SM"}
		report.Wind = Wind{Speed: 25, Crosswind: f(2), Units: "KT"}
		assert.Equal(t, ReasonWeather, Classify(report, bounds))
	})

	t.Run("idempotent", func(t *testing.T) {
		report := clearReport()
		first := Classify(report, bounds)
		assert.Equal(t, first, Classify(report, bounds))
	})
}
