// Package timeutil resolves the temporal context of a flight: parsing the
// loosely formatted timestamps found in school records and deciding whether
// an instant falls between sunrise and sunset.
package timeutil

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// zonedLayouts are tried first; a match means the text carries an explicit
// UTC offset, which is always kept regardless of any fallback location.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

// naiveLayouts cover timestamps without zone information.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses a timestamp string, failing softly: the second result is
// false for unparseable input, never an error.
//
// If the text carries an explicit zone offset, that zone is kept
// unconditionally. Otherwise the fallback location is applied when non-nil;
// to copy the zone from another timestamp, pass ref.Location(). A nil
// fallback leaves zone-less input in UTC.
func ParseTime(text string, fallback *time.Location) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}

	loc := fallback
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// SunTimes holds the sunrise and sunset for a single calendar day,
// as 24-hour "HH:MM" strings in the table's declared zone.
type SunTimes struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// Daycycle is a sunrise/sunset table keyed by year and then "mm-dd",
// with a declared IANA time zone shared by every entry.
type Daycycle struct {
	Timezone string
	Years    map[string]map[string]SunTimes

	loc *time.Location
}

// NewDaycycle builds a daycycle table from a declared zone and year map.
func NewDaycycle(timezone string, years map[string]map[string]SunTimes) (*Daycycle, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Daycycle{Timezone: timezone, Years: years, loc: loc}, nil
}

// Location returns the table's declared time zone.
func (d *Daycycle) Location() *time.Location {
	return d.loc
}

// UnmarshalJSON decodes the daycycle document, in which the "timezone" key
// is a sibling of the year keys:
//
//	{
//	    "timezone": "America/New_York",
//	    "2017": {
//	        "01-01": {"sunrise": "07:38", "sunset": "16:42"},
//	        ...
//	    }
//	}
func (d *Daycycle) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	years := make(map[string]map[string]SunTimes, len(raw))
	timezone := ""
	for key, value := range raw {
		if key == "timezone" {
			if err := json.Unmarshal(value, &timezone); err != nil {
				return fmt.Errorf("daycycle timezone: %w", err)
			}
			continue
		}
		var days map[string]SunTimes
		if err := json.Unmarshal(value, &days); err != nil {
			return fmt.Errorf("daycycle year %s: %w", key, err)
		}
		years[key] = days
	}

	if timezone == "" {
		return fmt.Errorf("daycycle document has no timezone")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("daycycle timezone: %w", err)
	}

	d.Timezone = timezone
	d.Years = years
	d.loc = loc
	return nil
}

// Daytime reports whether t falls strictly between sunrise and sunset on
// t's wall-clock date in the table's zone. The boundary instants themselves
// count as night. The second result is false when the table has no entry
// for t's year or date, in which case the first result is meaningless.
func (d *Daycycle) Daytime(t time.Time) (bool, bool) {
	t = t.In(d.loc)
	days, ok := d.Years[t.Format("2006")]
	if !ok {
		return false, false
	}
	sun, ok := days[t.Format("01-02")]
	if !ok {
		return false, false
	}

	date := t.Format("2006-01-02")
	sunrise, ok := ParseTime(date+"T"+sun.Sunrise, d.loc)
	if !ok {
		return false, false
	}
	sunset, ok := ParseTime(date+"T"+sun.Sunset, d.loc)
	if !ok {
		return false, false
	}

	return t.After(sunrise) && t.Before(sunset), true
}
