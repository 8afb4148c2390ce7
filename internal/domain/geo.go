package domain

import "math"

// ValidCoordinates reports whether lat/lon are finite and inside physical
// bounds: |lat| <= 90 and |lon| <= 180. NaN compares false against every
// bound, so unparseable coordinates are rejected.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return math.Abs(lat) <= 90 && math.Abs(lon) <= 180
}

// PartitionGeo splits records into those that can be mapped and those that
// cannot. Input order is preserved in both outputs.
func PartitionGeo(records []SightingRecord) (valid, invalid []SightingRecord) {
	valid = make([]SightingRecord, 0, len(records))
	for _, r := range records {
		if r.HasValidCoordinates() {
			valid = append(valid, r)
		} else {
			invalid = append(invalid, r)
		}
	}
	return valid, invalid
}
