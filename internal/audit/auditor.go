// Package audit runs the compliance audit: for every lesson it resolves the
// takeoff's temporal context, the pilot's tier, the governing minimums, and
// the weather in force, and flags the takeoffs that broke the rules.
package audit

import (
	"github.com/halcyonair/skyaudit/internal/pilots"
	"github.com/halcyonair/skyaudit/internal/timeutil"
	"github.com/halcyonair/skyaudit/internal/weather"
	"github.com/halcyonair/skyaudit/pkg/logger"
)

// Auditor evaluates lesson records against the reference tables.
type Auditor struct {
	logger *logger.Logger
}

// New creates a new auditor
func New(logger *logger.Logger) *Auditor {
	return &Auditor{
		logger: logger.Named("auditor"),
	}
}

// WeatherViolations returns the annotated list of lessons that violated the
// weather minimums in force at the moment of takeoff, in lesson order.
//
// Lessons the audit cannot evaluate are excluded rather than flagged: a
// takeoff that won't parse, a pilot id missing from the roster, a year
// missing from the daycycle table, or a flight context no minimums rule
// covers (such as an uninstructed novice). A lesson whose weather report is
// missing IS flagged, with reason Unknown. No lesson's failure aborts the
// rest of the run.
func (a *Auditor) WeatherViolations(bundle *Bundle) []Violation {
	violations := []Violation{}

	for _, lesson := range bundle.Lessons {
		violation, ok := a.evaluate(bundle, lesson)
		if !ok {
			continue
		}
		if violation.Reason != "" {
			violations = append(violations, violation)
		}
	}

	a.logger.Info("Audit complete",
		logger.Int("lessons", len(bundle.Lessons)),
		logger.Int("violations", len(violations)),
	)

	return violations
}

// evaluate runs the decision pipeline for one lesson. The second result is
// false when the lesson cannot be evaluated at all.
func (a *Auditor) evaluate(bundle *Bundle, lesson Lesson) (Violation, bool) {
	takeoff, ok := timeutil.ParseTime(lesson.Takeoff, bundle.Daycycle.Location())
	if !ok {
		a.logger.Warn("Skipping lesson with unparseable takeoff",
			logger.String("pilot", lesson.PilotID),
			logger.String("takeoff", lesson.Takeoff),
		)
		return Violation{}, false
	}

	pilot, ok := bundle.Roster.Lookup(lesson.PilotID)
	if !ok {
		a.logger.Warn("Skipping lesson with unknown pilot",
			logger.String("pilot", lesson.PilotID),
		)
		return Violation{}, false
	}

	cert := pilots.Classify(takeoff, pilot)

	daytime, ok := bundle.Daycycle.Daytime(takeoff)
	if !ok {
		a.logger.Warn("Skipping lesson outside daycycle table",
			logger.String("pilot", lesson.PilotID),
			logger.Time("takeoff", takeoff),
		)
		return Violation{}, false
	}

	bounds := bundle.Minimums.Resolve(cert, lesson.Area, lesson.Instructed(), lesson.VFR(), daytime)
	if bounds == nil {
		// No applicable rule is not itself a violation.
		return Violation{}, false
	}

	report := weather.ReportAt(takeoff, bundle.Weather)
	reason := weather.Classify(report, *bounds)

	if reason != "" {
		a.logger.Debug("Violation found",
			logger.String("pilot", lesson.PilotID),
			logger.Time("takeoff", takeoff),
			logger.String("certification", cert.String()),
			logger.String("reason", reason),
		)
	}

	return Violation{Lesson: lesson, Reason: reason}, true
}
