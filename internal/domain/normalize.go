package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Values without a zone are read as
// wall-clock time in UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// Normalize converts raw rows into sighting records, one per row, in order.
// It never fails.
func Normalize(rows []RawRow) []SightingRecord {
	out := make([]SightingRecord, len(rows))
	for i, row := range rows {
		out[i] = NormalizeRow(row)
	}
	return out
}

// NormalizeRow converts a single raw row. Parse failures become the zero time
// or NaN; the row is never rejected.
func NormalizeRow(row RawRow) SightingRecord {
	ts := parseTimestamp(row[ColDateTime])

	rec := SightingRecord{
		ID:              generateID(row),
		Timestamp:       ts,
		Latitude:        parseFloatOrNaN(row[ColLatitude]),
		Longitude:       parseFloatOrNaN(row[ColLongitude]),
		DurationSeconds: parseFloatOrNaN(row[ColDurationSeconds]),
		Duration:        row[ColDuration],
		Shape:           row[ColShape],
		CountryCode:     row[ColCountryCode],
		Country:         row[ColCountry],
		Region:          row[ColRegion],
		Locale:          row[ColLocale],
		Description:     row[ColDescription],
		Season:          deriveSeason(row[ColSeason], ts),
		Hour:            -1,
		ReportedHour:    parseFloatOrNaN(row[ColHour]),
	}
	if !ts.IsZero() {
		rec.Hour = ts.Hour()
		rec.DayOfWeek = DayOfWeek(int(ts.Weekday()))
	}
	return rec
}

// parseTimestamp returns the zero time when no layout matches.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseFloatOrNaN parses a string as float64, returning NaN on failure.
// Infinities are also mapped to NaN so only finite values or NaN escape.
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// deriveSeason keeps a supplied season name and falls back to the timestamp.
func deriveSeason(supplied string, ts time.Time) string {
	supplied = strings.TrimSpace(supplied)
	if IsSeason(supplied) {
		return supplied
	}
	return SeasonOf(ts)
}

// generateID hashes the raw identifying columns. Identical rows share an ID;
// consumers that need uniqueness must disambiguate.
func generateID(row RawRow) string {
	input := strings.Join([]string{
		row[ColDateTime],
		row[ColLatitude],
		row[ColLongitude],
		row[ColShape],
		row[ColDescription],
	}, "|")
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:8])
}
