package audit

import (
	"github.com/halcyonair/skyaudit/internal/minimums"
	"github.com/halcyonair/skyaudit/internal/pilots"
	"github.com/halcyonair/skyaudit/internal/timeutil"
	"github.com/halcyonair/skyaudit/internal/weather"
)

// Bundle holds the five reference tables for one audit run, fully loaded
// before evaluation begins. Nothing in the audit mutates it.
type Bundle struct {
	Daycycle *timeutil.Daycycle
	Weather  weather.Series
	Minimums minimums.Table
	Roster   pilots.Roster
	Lessons  []Lesson
}

// Lesson is a single takeoff/landing record from the lessons table.
// Timestamps are kept raw; the auditor parses them per evaluation.
type Lesson struct {
	PilotID    string `json:"student"`
	Airplane   string `json:"airplane"`
	Instructor string `json:"instructor,omitempty"`
	Takeoff    string `json:"takeoff"`
	Landing    string `json:"landing"`
	Filed      string `json:"filed"` // VFR or IFR
	Area       string `json:"area"`
}

// Instructed reports whether an instructor was on board.
func (l Lesson) Instructed() bool {
	return l.Instructor != ""
}

// VFR reports whether the flight was filed under visual flight rules.
func (l Lesson) VFR() bool {
	return l.Filed == "VFR"
}

// Violation is an annotated copy of a lesson that broke the minimums in
// force at takeoff. Reason is one of the weather.Reason* values.
type Violation struct {
	Lesson
	Reason string `json:"reason"`
}
