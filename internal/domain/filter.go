package domain

import (
	"errors"
	"fmt"
	"strings"
)

// "All" sentinels that disable a predicate.
const (
	AllShapes    = "All Shapes"
	AllCountries = "All Countries"
	AllSeasons   = "All Seasons"
)

// ErrUnknownField is returned for a filter field no predicate exists for.
var ErrUnknownField = errors.New("unknown filter field")

// Field names a filterable record attribute.
type Field string

// Filterable fields.
const (
	FieldShape   Field = "shape"
	FieldCountry Field = "country"
	FieldSeason  Field = "season"
)

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldShape, FieldCountry, FieldSeason:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
}

// AllLabel returns the sentinel label that disables the field's predicate.
func (f Field) AllLabel() string {
	switch f {
	case FieldShape:
		return AllShapes
	case FieldCountry:
		return AllCountries
	case FieldSeason:
		return AllSeasons
	default:
		return ""
	}
}

// Value returns the record's value for the field.
func (f Field) Value(r SightingRecord) string {
	switch f {
	case FieldShape:
		return r.Shape
	case FieldCountry:
		return r.CountryCode
	case FieldSeason:
		return r.Season
	default:
		return ""
	}
}

// FilterSelection is one chart's current dropdown state. It is a value:
// changing a field returns a new selection.
type FilterSelection struct {
	Shape       string `json:"shape"`
	CountryCode string `json:"country"`
	Season      string `json:"season"`
}

// DefaultSelection selects everything.
func DefaultSelection() FilterSelection {
	return FilterSelection{
		Shape:       AllShapes,
		CountryCode: AllCountries,
		Season:      AllSeasons,
	}
}

// Get returns the selected label for a field.
func (s FilterSelection) Get(f Field) string {
	switch f {
	case FieldShape:
		return s.Shape
	case FieldCountry:
		return s.CountryCode
	case FieldSeason:
		return s.Season
	default:
		return ""
	}
}

// With returns a copy of s with field set to label.
func (s FilterSelection) With(f Field, label string) (FilterSelection, error) {
	switch f {
	case FieldShape:
		s.Shape = label
	case FieldCountry:
		s.CountryCode = label
	case FieldSeason:
		s.Season = label
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return s, nil
}

// Matches applies the conjunction of the active predicates. A field holding
// its "All" sentinel (or nothing) is skipped; the rest are exact matches.
func (s FilterSelection) Matches(r SightingRecord) bool {
	for _, f := range []Field{FieldShape, FieldCountry, FieldSeason} {
		sel := s.Get(f)
		if sel == "" || sel == f.AllLabel() {
			continue
		}
		if f.Value(r) != sel {
			return false
		}
	}
	return true
}

// Filter returns the records matching sel as a new slice. The input is never
// modified, so clearing a filter and filtering again reproduces the original.
func Filter(records []SightingRecord, sel FilterSelection) []SightingRecord {
	out := make([]SightingRecord, 0, len(records))
	for _, r := range records {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// DistinctValues returns the distinct non-blank values of a field across
// records, in first-seen order.
func DistinctValues(records []SightingRecord, f Field) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		v := f.Value(r)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
