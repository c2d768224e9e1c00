// Package weather models point-in-time weather observations and classifies
// them against a resolved minimums bound.
//
// Each measurement in an observation is independently either a sentinel
// string ("unavailable", and "calm" for winds or "clear" for sky) or a
// structured record, so the types here are tagged variants decoded from
// either JSON form.
package weather

import (
	"encoding/json"
	"fmt"
)

// Sentinel strings used by the observation feed.
const (
	sentinelUnavailable = "unavailable"
	sentinelCalm        = "calm"
	sentinelClear       = "clear"
)

// Cloud layer types that constitute a ceiling.
const (
	LayerBroken     = "broken"
	LayerOvercast   = "overcast"
	LayerIndefinite = "indefinite ceiling"
)

// Visibility is a visibility measurement. Either Unavailable is true, or
// Prevailing/Units are set with Minimum and Maximum optional. Units are
// "SM" (statute miles) or "FT" (feet).
type Visibility struct {
	Unavailable bool
	Prevailing  float64
	Minimum     *float64
	Maximum     *float64
	Units       string
}

// UnmarshalJSON decodes either the "unavailable" sentinel or a measurement
// object.
func (v *Visibility) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		if sentinel == sentinelUnavailable {
			*v = Visibility{Unavailable: true}
			return nil
		}
		return fmt.Errorf("unknown visibility sentinel %q", sentinel)
	}

	var measured struct {
		Prevailing float64  `json:"prevailing"`
		Minimum    *float64 `json:"minimum"`
		Maximum    *float64 `json:"maximum"`
		Units      string   `json:"units"`
	}
	if err := json.Unmarshal(data, &measured); err != nil {
		return fmt.Errorf("visibility measurement: %w", err)
	}
	*v = Visibility{
		Prevailing: measured.Prevailing,
		Minimum:    measured.Minimum,
		Maximum:    measured.Maximum,
		Units:      measured.Units,
	}
	return nil
}

// Wind is a wind measurement. Exactly one of Calm, Unavailable, or a
// measured record (Speed/Units set, Gusts and Crosswind optional) applies.
// Units are "KT" (knots) or "MPS" (meters per second).
type Wind struct {
	Calm        bool
	Unavailable bool
	Speed       float64
	Gusts       *float64
	Crosswind   *float64
	Units       string
}

// UnmarshalJSON decodes the "calm"/"unavailable" sentinels or a measurement
// object.
func (w *Wind) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		switch sentinel {
		case sentinelCalm:
			*w = Wind{Calm: true}
			return nil
		case sentinelUnavailable:
			*w = Wind{Unavailable: true}
			return nil
		}
		return fmt.Errorf("unknown wind sentinel %q", sentinel)
	}

	var measured struct {
		Speed     float64  `json:"speed"`
		Gusts     *float64 `json:"gusts"`
		Crosswind *float64 `json:"crosswind"`
		Units     string   `json:"units"`
	}
	if err := json.Unmarshal(data, &measured); err != nil {
		return fmt.Errorf("wind measurement: %w", err)
	}
	*w = Wind{
		Speed:     measured.Speed,
		Gusts:     measured.Gusts,
		Crosswind: measured.Crosswind,
		Units:     measured.Units,
	}
	return nil
}

// CloudLayer is a single reported cloud layer. Height units are feet.
type CloudLayer struct {
	Cover  string  `json:"cover,omitempty"`
	Type   string  `json:"type"`
	Height float64 `json:"height"`
	Units  string  `json:"units"`
}

// Sky is a sky/ceiling measurement: the "clear"/"unavailable" sentinels or
// a list of cloud layers.
type Sky struct {
	Clear       bool
	Unavailable bool
	Layers      []CloudLayer
}

// UnmarshalJSON decodes the sentinels or the layer list.
func (s *Sky) UnmarshalJSON(data []byte) error {
	var sentinel string
	if err := json.Unmarshal(data, &sentinel); err == nil {
		switch sentinel {
		case sentinelClear:
			*s = Sky{Clear: true}
			return nil
		case sentinelUnavailable:
			*s = Sky{Unavailable: true}
			return nil
		}
		return fmt.Errorf("unknown sky sentinel %q", sentinel)
	}

	var layers []CloudLayer
	if err := json.Unmarshal(data, &layers); err != nil {
		return fmt.Errorf("sky layers: %w", err)
	}
	*s = Sky{Layers: layers}
	return nil
}

// Temperature is an air temperature reading, kept for completeness; the
// audit itself does not evaluate it.
type Temperature struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// Report is a single point-in-time weather observation.
type Report struct {
	Visibility  Visibility   `json:"visibility"`
	Wind        Wind         `json:"wind"`
	Sky         Sky          `json:"sky"`
	Temperature *Temperature `json:"temperature,omitempty"`
	Weather     []string     `json:"weather,omitempty"`
	Code        string       `json:"code,omitempty"`
}

// Series is a day's (or year's) worth of observations keyed by ISO-8601
// timestamp strings. Observations are sparse and not aligned to takeoffs.
type Series map[string]Report
