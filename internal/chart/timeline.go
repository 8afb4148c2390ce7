package chart

import (
	"fmt"
	"strconv"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
)

const (
	timelineRadius = 4
	timelineFill   = "#69b3a2"
)

// Timeline plots sightings per year as a scatter over the observed years.
type Timeline struct{}

// NewTimeline returns the year scatter dimension.
func NewTimeline() *Timeline { return &Timeline{} }

func (*Timeline) Title() string { return "Sightings per Year" }

func (*Timeline) Fields() []domain.Field {
	return []domain.Field{domain.FieldShape, domain.FieldCountry, domain.FieldSeason}
}

// Layout maps years onto x over their observed extent and counts onto y.
func (t *Timeline) Layout(records []domain.SightingRecord, plot Plot) Frame {
	buckets := domain.YearCounts(records)

	f := Frame{
		Title:  t.Title(),
		XLabel: "Year",
		YLabel: "Sightings",
	}

	minYear, maxYear := 0, 0
	if len(buckets) > 0 {
		minYear, maxYear = buckets[0].Key, buckets[len(buckets)-1].Key
	}
	maxCount := 0
	for _, b := range buckets {
		maxCount = max(maxCount, b.Count)
	}

	x := NewLinear(float64(minYear), float64(maxYear), 0, plot.Width)
	y := NewLinear(0, float64(max(maxCount, 1)), 0, plot.Height)

	f.Domains = []Domain{
		{Axis: "x", Min: float64(minYear), Max: float64(maxYear)},
		{Axis: "y", Min: 0, Max: float64(maxCount)},
	}

	for _, b := range buckets {
		f.Elements = append(f.Elements, Element{
			Key:     strconv.Itoa(b.Key),
			Kind:    KindCircle,
			X:       x.Map(float64(b.Key)),
			Y:       float64(plot.Height) - y.Map(float64(b.Count)),
			Radius:  timelineRadius,
			Fill:    timelineFill,
			Label:   strconv.Itoa(b.Key),
			Value:   float64(b.Count),
			Tooltip: fmt.Sprintf("Year: %d\nSightings: %d", b.Key, b.Count),
		})
	}

	f.XTicks = yearTicks(buckets, x)
	f.YTicks = countTicks(maxCount, y, plot.Height)
	return f
}

// yearTicks labels at most ten evenly spread observed years.
func yearTicks(buckets []domain.Bucket[int], x Linear) []Tick {
	if len(buckets) == 0 {
		return nil
	}
	stride := max(1, (len(buckets)+9)/10)
	var ticks []Tick
	for i := 0; i < len(buckets); i += stride {
		year := buckets[i].Key
		ticks = append(ticks, Tick{Pos: x.Map(float64(year)), Label: strconv.Itoa(year)})
	}
	return ticks
}

// countTicks labels the y axis of a count chart. y maps counts upward from
// the bottom of the plot.
func countTicks(maxCount int, y Linear, height int) []Tick {
	values := niceTicks(maxCount, 5)
	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Pos: float64(height) - y.Map(float64(v)), Label: strconv.Itoa(v)}
	}
	return ticks
}
