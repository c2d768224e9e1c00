// Package report writes audit results out for the school's records office.
package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/halcyonair/skyaudit/internal/audit"
)

// Header matches the column layout of the lessons table plus the violation
// reason.
var Header = []string{"STUDENT", "AIRPLANE", "INSTRUCTOR", "TAKEOFF", "LANDING", "FILED", "AREA", "REASON"}

// Row flattens a violation into CSV column order.
func Row(v audit.Violation) []string {
	return []string{
		v.PilotID,
		v.Airplane,
		v.Instructor,
		v.Takeoff,
		v.Landing,
		v.Filed,
		v.Area,
		v.Reason,
	}
}

// WriteCSV writes the violations, with header, to the given file path.
func WriteCSV(violations []audit.Violation, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, v := range violations {
		if err := writer.Write(Row(v)); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}
