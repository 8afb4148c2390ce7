package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioRecords() []SightingRecord {
	return Normalize([]RawRow{
		{ColDateTime: "2023-06-01 14:00", ColShape: "Circle", ColCountryCode: "US"},
		{ColDateTime: "2023-12-25 03:00", ColShape: "Disk", ColCountryCode: "US"},
	})
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	records := Normalize([]RawRow{
		{ColShape: "Disk"}, {ColShape: "Circle"}, {ColShape: "Disk"}, {ColShape: "Light"},
	})

	c := Aggregate(records, func(r SightingRecord) (string, bool) { return r.Shape, true })

	assert.Equal(t, []string{"Disk", "Circle", "Light"}, c.Keys())
	assert.Equal(t, 2, c.Get("Disk"))
	assert.Equal(t, 0, c.Get("Orb"))
	assert.Equal(t, 4, c.Total())
	assert.Equal(t, 2, c.Max())
	assert.Equal(t, 3, c.Len())
}

func TestAggregate_SkipsUnderivableKeys(t *testing.T) {
	records := Normalize([]RawRow{
		{ColDateTime: "2020-01-01"},
		{ColDateTime: "bad"},
		{ColDateTime: "2020-05-05"},
	})

	years := YearCounts(records)

	assert.Equal(t, []Bucket[int]{{Key: 2020, Count: 2}}, years)
}

func TestCounts_OrderedFillsDomain(t *testing.T) {
	c := Aggregate(scenarioRecords(), weekdayKey)

	buckets := c.Ordered([]string{"Monday", "Thursday"})

	assert.Equal(t, []Bucket[string]{{"Monday", 1}, {"Thursday", 1}}, buckets)
}

func TestYearCounts_SparseAndSorted(t *testing.T) {
	records := Normalize([]RawRow{
		{ColDateTime: "2001-03-01"},
		{ColDateTime: "1999-03-01"},
		{ColDateTime: "2001-07-01"},
	})

	got := YearCounts(records)

	want := []Bucket[int]{{1999, 1}, {2001, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("YearCounts mismatch (-want +got):\n%s", diff)
	}
}

func TestFixedDomainCompleteness(t *testing.T) {
	for name, records := range map[string][]SightingRecord{
		"empty":    nil,
		"scenario": scenarioRecords(),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Len(t, WeekdayCounts(records), 7)
			assert.Len(t, SeasonCounts(records), 4)
			assert.Len(t, HourCounts(records), 24)
		})
	}

	weekdays := WeekdayCounts(nil)
	assert.Equal(t, "Sunday", weekdays[0].Key)
	assert.Equal(t, "Saturday", weekdays[6].Key)
}

func TestEndToEndScenario(t *testing.T) {
	records := scenarioRecords()

	seasons := SeasonCounts(records)
	wantSeasons := []Bucket[string]{{Winter, 1}, {Spring, 0}, {Summer, 1}, {Fall, 0}}
	if diff := cmp.Diff(wantSeasons, seasons); diff != "" {
		t.Errorf("SeasonCounts mismatch (-want +got):\n%s", diff)
	}

	hours := HourCounts(records)
	require.Len(t, hours, 24)
	for _, b := range hours {
		switch b.Key {
		case 14, 3:
			assert.Equal(t, 1, b.Count, "hour %d", b.Key)
		default:
			assert.Equal(t, 0, b.Count, "hour %d", b.Key)
		}
	}
}

func TestAggregationSumInvariant(t *testing.T) {
	records := Normalize([]RawRow{
		{ColDateTime: "2023-06-01 14:00", ColShape: "Circle", ColCountryCode: "USA", ColSeason: "Summer"},
		{ColDateTime: "2023-12-25 03:00", ColShape: "Disk", ColCountryCode: "USA"},
		{ColDateTime: "2022-04-11 22:10", ColShape: "Circle", ColCountryCode: "CAN"},
		{ColDateTime: "2021-10-31 21:45", ColShape: "Light", ColCountryCode: "GBR"},
		{ColDateTime: "2021-02-14 05:05", ColShape: "Circle", ColCountryCode: "USA"},
	})

	selections := []FilterSelection{
		DefaultSelection(),
		{Shape: "Circle", CountryCode: AllCountries, Season: AllSeasons},
		{Shape: AllShapes, CountryCode: "USA", Season: AllSeasons},
		{Shape: "Circle", CountryCode: "USA", Season: Summer},
		{Shape: "Nothing", CountryCode: AllCountries, Season: AllSeasons},
	}

	for _, sel := range selections {
		filtered := Filter(records, sel)
		n := len(filtered)

		assert.Equal(t, n, BucketTotal(YearCounts(filtered)), "year %+v", sel)
		assert.Equal(t, n, BucketTotal(WeekdayCounts(filtered)), "weekday %+v", sel)
		assert.Equal(t, n, BucketTotal(HourCounts(filtered)), "hour %+v", sel)
		assert.Equal(t, n, BucketTotal(SeasonCounts(filtered)), "season %+v", sel)
	}
}

func TestFilterIndependence(t *testing.T) {
	records := scenarioRecords()
	unfiltered := HourCounts(Filter(records, DefaultSelection()))

	sel, err := DefaultSelection().With(FieldShape, "Circle")
	require.NoError(t, err)
	circle := HourCounts(Filter(records, sel))
	assert.Equal(t, 1, BucketTotal(circle))

	sel, err = sel.With(FieldShape, AllShapes)
	require.NoError(t, err)
	cleared := HourCounts(Filter(records, sel))

	if diff := cmp.Diff(unfiltered, cleared); diff != "" {
		t.Errorf("clearing the filter changed the aggregation (-want +got):\n%s", diff)
	}
}

func TestDayHourCounts(t *testing.T) {
	records := Normalize([]RawRow{
		{ColDateTime: "2024-01-08 09:00", ColHour: "9"},
		{ColDateTime: "2024-01-08 09:30", ColHour: "9"},
		{ColDateTime: "2024-01-07 23:00", ColHour: "23"},
		{ColDateTime: "2024-01-07 23:00"},
		{ColDateTime: "2024-01-07 23:00", ColHour: "1.5"},
		{ColDateTime: "invalid", ColHour: "4"},
	})

	n := DayHourCounts(records)

	assert.Equal(t, []string{"Monday", "Sunday"}, n.Outer())
	assert.Equal(t, 2, n.Get("Monday", 9))
	assert.Equal(t, 1, n.Get("Sunday", 23))
	assert.Equal(t, 0, n.Get("Tuesday", 9))
	assert.Equal(t, 3, n.Total())
	assert.Equal(t, 2, n.Max())
}
