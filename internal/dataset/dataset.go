// Package dataset loads an audit bundle from a directory of school records.
//
// A dataset directory contains five files: daycycle.json (sunrise/sunset),
// weather.json (hourly observations), minimums.csv (the insurance-mandated
// minimums), students.csv (the pilot roster), and lessons.csv (takeoffs and
// landings). The loader assumes well-formed tables: a wrong column count is
// a hard error, not something to repair.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/halcyonair/skyaudit/internal/audit"
	"github.com/halcyonair/skyaudit/internal/config"
	"github.com/halcyonair/skyaudit/internal/minimums"
	"github.com/halcyonair/skyaudit/internal/pilots"
	"github.com/halcyonair/skyaudit/internal/timeutil"
	"github.com/halcyonair/skyaudit/internal/weather"
)

// Load reads every file of a dataset directory into an audit bundle.
func Load(dir string, cfg config.AuditConfig) (*audit.Bundle, error) {
	var daycycle timeutil.Daycycle
	if err := readJSON(filepath.Join(dir, cfg.DaycycleFile), &daycycle); err != nil {
		return nil, err
	}

	var series weather.Series
	if err := readJSON(filepath.Join(dir, cfg.WeatherFile), &series); err != nil {
		return nil, err
	}

	table, err := readMinimums(filepath.Join(dir, cfg.MinimumsFile))
	if err != nil {
		return nil, err
	}

	roster, err := readRoster(filepath.Join(dir, cfg.RosterFile))
	if err != nil {
		return nil, err
	}

	lessons, err := readLessons(filepath.Join(dir, cfg.LessonsFile))
	if err != nil {
		return nil, err
	}

	return &audit.Bundle{
		Daycycle: &daycycle,
		Weather:  series,
		Minimums: table,
		Roster:   roster,
		Lessons:  lessons,
	}, nil
}

// readJSON decodes a JSON file into v.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readCSV returns the records of a CSV file with the header row stripped.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", filepath.Base(path))
	}
	return records[1:], nil
}

// readMinimums loads the minimums table.
func readMinimums(path string) (minimums.Table, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	table := make(minimums.Table, 0, len(records))
	for i, record := range records {
		rule, err := minimums.ParseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filepath.Base(path), i+2, err)
		}
		table = append(table, rule)
	}
	return table, nil
}

// readRoster loads the pilot roster. Columns: ID, LASTNAME, FIRSTNAME,
// JOINED, SOLO, LICENSE, 50 HOURS, INSTRUMENT, ADVANCED, MULTIENGINE.
func readRoster(path string) (pilots.Roster, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	roster := make(pilots.Roster, 0, len(records))
	for i, record := range records {
		if len(record) != 10 {
			return nil, fmt.Errorf("%s row %d has %d columns, want 10", filepath.Base(path), i+2, len(record))
		}
		roster = append(roster, pilots.Pilot{
			ID:          record[0],
			LastName:    record[1],
			FirstName:   record[2],
			Joined:      record[3],
			Solo:        record[4],
			License:     record[5],
			FiftyHours:  record[6],
			Instrument:  record[7],
			Advanced:    record[8],
			Multiengine: record[9],
		})
	}
	return roster, nil
}

// readLessons loads the lessons table. Columns: STUDENT, AIRPLANE,
// INSTRUCTOR, TAKEOFF, LANDING, FILED, AREA.
func readLessons(path string) ([]audit.Lesson, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	lessons := make([]audit.Lesson, 0, len(records))
	for i, record := range records {
		if len(record) != 7 {
			return nil, fmt.Errorf("%s row %d has %d columns, want 7", filepath.Base(path), i+2, len(record))
		}
		lessons = append(lessons, audit.Lesson{
			PilotID:    record[0],
			Airplane:   record[1],
			Instructor: record[2],
			Takeoff:    record[3],
			Landing:    record[4],
			Filed:      record[5],
			Area:       record[6],
		})
	}
	return lessons, nil
}
