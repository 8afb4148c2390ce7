package domain

import (
	"math"
	"time"
)

// Column names read from the sighting export.
const (
	ColDateTime        = "Date_time"
	ColSeason          = "Season"
	ColCountryCode     = "Country_Code"
	ColCountry         = "Country"
	ColRegion          = "Region"
	ColLocale          = "Locale"
	ColLatitude        = "latitude"
	ColLongitude       = "longitude"
	ColShape           = "UFO_shape"
	ColDurationSeconds = "length_of_encounter_seconds"
	ColDuration        = "Encounter_Duration"
	ColDescription     = "Description"
	ColHour            = "Hour"
)

// RawRow is one row as produced by a data loader: column name to raw string.
// A missing column reads as the empty string.
type RawRow map[string]string

// SightingRecord is the typed, immutable form of a RawRow. Every derived field
// is a pure function of the raw columns it came from.
type SightingRecord struct {
	// ID is a deterministic hash of the row's identifying columns.
	ID string

	// Timestamp is the zero time when Date_time could not be parsed.
	Timestamp time.Time

	// Latitude, Longitude and DurationSeconds are NaN when unparseable.
	Latitude        float64
	Longitude       float64
	DurationSeconds float64

	// Duration is the encounter duration as reported, e.g. "10 minutes".
	Duration string

	Shape       string
	CountryCode string
	Country     string
	Region      string
	Locale      string
	Description string

	// Season is one of Spring, Summer, Fall, Winter, or empty when neither
	// the Season column nor the timestamp could supply it.
	Season string

	// Hour is 0-23, or -1 when the timestamp is invalid.
	Hour int

	// DayOfWeek is Sunday..Saturday, or empty when the timestamp is invalid.
	DayOfWeek string

	// ReportedHour is the export's own Hour column, NaN when missing.
	ReportedHour float64
}

// HasTimestamp reports whether the record's timestamp parsed successfully.
// Calendar-derived fields are only meaningful when it returns true.
func (r SightingRecord) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// HasValidCoordinates reports whether the record can be placed on a map.
func (r SightingRecord) HasValidCoordinates() bool {
	return ValidCoordinates(r.Latitude, r.Longitude)
}

// Year returns the calendar year of the sighting and false when the timestamp
// is invalid.
func (r SightingRecord) Year() (int, bool) {
	if !r.HasTimestamp() {
		return 0, false
	}
	return r.Timestamp.Year(), true
}

// ReportedHourKey returns the export's Hour column as an integer hour. Missing
// or fractional values report false.
func (r SightingRecord) ReportedHourKey() (int, bool) {
	h := r.ReportedHour
	if math.IsNaN(h) || h != math.Trunc(h) {
		return 0, false
	}
	return int(h), true
}
