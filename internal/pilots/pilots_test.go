package pilots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

// fullCareer has every milestone on record.
var fullCareer = Pilot{
	ID:          "S00324",
	LastName:    "Aguirre",
	FirstName:   "Dana",
	Joined:      "2015-02-04",
	Solo:        "2015-07-19",
	License:     "2016-03-12",
	FiftyHours:  "2016-09-01",
	Instrument:  "2017-02-14",
	Advanced:    "2017-06-30",
	Multiengine: "2017-11-02",
}

func TestClassify(t *testing.T) {
	loc := newYork(t)
	at := func(value string) time.Time {
		parsed, err := time.ParseInLocation("2006-01-02", value, loc)
		require.NoError(t, err)
		return parsed.Add(12 * time.Hour)
	}

	t.Run("tier follows the latest milestone", func(t *testing.T) {
		tests := []struct {
			name    string
			takeoff string
			want    Certification
		}{
			{"before joining", "2015-01-01", CertInvalid},
			{"joined but not soloed", "2015-05-01", CertNovice},
			{"soloed", "2015-12-01", CertStudent},
			{"licensed", "2016-05-01", CertCertified},
			{"past fifty hours", "2016-10-01", CertFiftyHours},
			{"instrument rating does not raise the tier", "2017-03-01", CertFiftyHours},
			{"multiengine does not raise the tier", "2018-01-01", CertFiftyHours},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, Classify(at(tt.takeoff), fullCareer))
			})
		}
	})

	t.Run("soloed then licensed", func(t *testing.T) {
		// Soloed 2016-06-01, licensed 2017-01-01: a 2016-12-01 takeoff is
		// still a student flight.
		pilot := Pilot{ID: "S00212", Joined: "2016-01-15", Solo: "2016-06-01", License: "2017-01-01"}
		assert.Equal(t, CertStudent, Classify(at("2016-12-01"), pilot))
	})

	t.Run("absent milestones are skipped", func(t *testing.T) {
		pilot := Pilot{ID: "S00977", Joined: "2016-01-15", Solo: "2016-06-01"}
		assert.Equal(t, CertStudent, Classify(at("2019-01-01"), pilot))
	})

	t.Run("missing joined date means invalid", func(t *testing.T) {
		pilot := Pilot{ID: "S00403", Solo: "2016-06-01"}
		assert.Equal(t, CertInvalid, Classify(at("2017-01-01"), pilot))
	})

	t.Run("tier is monotone in takeoff time", func(t *testing.T) {
		previous := CertInvalid
		for day := time.Date(2015, 1, 1, 12, 0, 0, 0, loc); day.Year() < 2019; day = day.AddDate(0, 0, 7) {
			tier := Classify(day, fullCareer)
			assert.GreaterOrEqual(t, tier, previous, "tier regressed at %s", day)
			previous = tier
		}
	})
}

func TestCertificationString(t *testing.T) {
	assert.Equal(t, "Invalid", CertInvalid.String())
	assert.Equal(t, "Novice", CertNovice.String())
	assert.Equal(t, "Student", CertStudent.String())
	assert.Equal(t, "Certified", CertCertified.String())
	assert.Equal(t, "50 Hours", CertFiftyHours.String())
}

func TestRosterLookup(t *testing.T) {
	roster := Roster{
		{ID: "S00212", LastName: "Baker"},
		{ID: "S00324", LastName: "Aguirre"},
	}

	t.Run("found", func(t *testing.T) {
		pilot, ok := roster.Lookup("S00324")
		require.True(t, ok)
		assert.Equal(t, "Aguirre", pilot.LastName)
	})

	t.Run("missing", func(t *testing.T) {
		_, ok := roster.Lookup("S99999")
		assert.False(t, ok)
	})
}
