// Package pilots derives a pilot's certification tier at an arbitrary
// instant from the milestone dates recorded in the school roster.
//
// A pilot's qualification is not a stored property: the same pilot may be a
// student for one flight and certified for the next, so the tier is
// recomputed for every takeoff. Ratings and endorsements past the 50-hour
// mark (instrument, advanced, multiengine) matter for other audits but do
// not raise the insurance tier any further.
package pilots

import (
	"time"

	"github.com/halcyonair/skyaudit/internal/timeutil"
)

// Certification is a pilot's qualification tier, totally ordered.
type Certification int

const (
	// CertInvalid means the flight predates the pilot joining the school
	CertInvalid Certification = iota - 1
	// CertNovice is a pilot that has joined but not yet soloed
	CertNovice
	// CertStudent is a pilot that has soloed but holds no license
	CertStudent
	// CertCertified is a licensed pilot with under 50 hours post license
	CertCertified
	// CertFiftyHours is a licensed pilot 50 hours past their license
	CertFiftyHours
)

// String returns the tier name used in logs.
func (c Certification) String() string {
	switch c {
	case CertNovice:
		return "Novice"
	case CertStudent:
		return "Student"
	case CertCertified:
		return "Certified"
	case CertFiftyHours:
		return "50 Hours"
	default:
		return "Invalid"
	}
}

// Pilot is a single roster record. Milestone timestamps are kept as the raw
// strings read from the roster; absent milestones are empty strings. Where
// present, milestones are non-decreasing in the order listed.
type Pilot struct {
	ID        string
	LastName  string
	FirstName string

	Joined      string
	Solo        string
	License     string
	FiftyHours  string
	Instrument  string
	Advanced    string
	Multiengine string
}

// milestones returns the timestamps in certification order.
func (p Pilot) milestones() []string {
	return []string{p.Joined, p.Solo, p.License, p.FiftyHours, p.Instrument, p.Advanced, p.Multiengine}
}

// tierForMilestone maps a milestone position to the tier it confers.
// Everything at or past the 50-hour mark stays at CertFiftyHours.
func tierForMilestone(index int) Certification {
	switch index {
	case 0:
		return CertNovice
	case 1:
		return CertStudent
	case 2:
		return CertCertified
	default:
		return CertFiftyHours
	}
}

// Classify returns the pilot's certification tier at the time of takeoff.
//
// The tier is decided by the latest milestone whose timestamp does not
// exceed takeoff. A takeoff before the joined date (or with no parseable
// joined date at all) is CertInvalid. Zone-less milestone timestamps are
// read in the takeoff's own zone.
func Classify(takeoff time.Time, p Pilot) Certification {
	joined, ok := timeutil.ParseTime(p.Joined, takeoff.Location())
	if !ok || takeoff.Before(joined) {
		return CertInvalid
	}

	result := CertInvalid
	for i, raw := range p.milestones() {
		t, ok := timeutil.ParseTime(raw, takeoff.Location())
		if !ok {
			continue
		}
		if !takeoff.Before(t) {
			result = tierForMilestone(i)
		}
	}
	return result
}

// Roster is the list of pilot records for the school, in file order.
type Roster []Pilot

// Lookup returns the record with the given pilot id.
// The second result is false when the id is absent.
func (r Roster) Lookup(id string) (Pilot, bool) {
	for _, p := range r {
		if p.ID == id {
			return p, true
		}
	}
	return Pilot{}, false
}
