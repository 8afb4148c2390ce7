package domain

import "sort"

// Key functions shared by the dimensions below.

func yearKey(r SightingRecord) (int, bool) { return r.Year() }

func weekdayKey(r SightingRecord) (string, bool) {
	return r.DayOfWeek, r.DayOfWeek != ""
}

func hourKey(r SightingRecord) (int, bool) {
	return r.Hour, r.HasTimestamp()
}

// seasonOfTimestampKey classifies by the timestamp, not the Season column.
func seasonOfTimestampKey(r SightingRecord) (string, bool) {
	s := SeasonOf(r.Timestamp)
	return s, s != ""
}

// YearCounts is the sparse year dimension: observed years only, ascending.
func YearCounts(records []SightingRecord) []Bucket[int] {
	buckets := Aggregate(records, yearKey).Buckets()
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}

// WeekdayCounts always returns 7 buckets, Sunday through Saturday.
func WeekdayCounts(records []SightingRecord) []Bucket[string] {
	return Aggregate(records, weekdayKey).Ordered(WeekdayOrder())
}

// HourCounts always returns 24 buckets, hour 0 through 23.
func HourCounts(records []SightingRecord) []Bucket[int] {
	return Aggregate(records, hourKey).Ordered(HourOrder())
}

// SeasonCounts always returns 4 buckets in SeasonOrder. Seasons are derived
// from each record's timestamp.
func SeasonCounts(records []SightingRecord) []Bucket[string] {
	return Aggregate(records, seasonOfTimestampKey).Ordered(SeasonOrder)
}

// DayHourCounts groups by weekday, then by the export's Hour column. Records
// without a usable Hour value are excluded.
func DayHourCounts(records []SightingRecord) *Nested[string, int] {
	return AggregateNested(records, weekdayKey, SightingRecord.ReportedHourKey)
}

// BucketTotal sums the counts of a bucket list.
func BucketTotal[K comparable](buckets []Bucket[K]) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}
