package chart

import (
	"fmt"
	"strconv"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
)

const (
	bandPadding = 0.1
	barFill     = "#4682b4"
)

// category is one labelled count of a fixed-domain dimension.
type category struct {
	label string
	count int
}

// Bars draws one bar per key of a fixed-domain dimension: every key of the
// domain gets a bar, at zero height when nothing matched.
type Bars struct {
	title   string
	xLabel  string
	aggr    func([]domain.SightingRecord) []category
	tooltip func(label string, count int) string
}

// NewWeekdayBars counts sightings per weekday, Sunday through Saturday.
func NewWeekdayBars() *Bars {
	return &Bars{
		title:  "Sightings by Day of Week",
		xLabel: "Day",
		aggr: func(records []domain.SightingRecord) []category {
			return stringCategories(domain.WeekdayCounts(records))
		},
		tooltip: func(label string, count int) string {
			return fmt.Sprintf("Day: %s\nSightings: %d", label, count)
		},
	}
}

// NewHourBars counts sightings per hour of day, 0 through 23.
func NewHourBars() *Bars {
	return &Bars{
		title:  "Sightings by Time of Day",
		xLabel: "Hour",
		aggr: func(records []domain.SightingRecord) []category {
			buckets := domain.HourCounts(records)
			out := make([]category, len(buckets))
			for i, b := range buckets {
				out[i] = category{label: strconv.Itoa(b.Key), count: b.Count}
			}
			return out
		},
		tooltip: func(label string, count int) string {
			h, _ := strconv.Atoi(label)
			return fmt.Sprintf("Time: %02d:00\nSightings: %d", h, count)
		},
	}
}

// NewSeasonBars counts sightings per season, Winter through Fall.
func NewSeasonBars() *Bars {
	return &Bars{
		title:  "Sightings by Season",
		xLabel: "Season",
		aggr: func(records []domain.SightingRecord) []category {
			return stringCategories(domain.SeasonCounts(records))
		},
		tooltip: func(label string, count int) string {
			return fmt.Sprintf("Season: %s\nSightings: %d", label, count)
		},
	}
}

func stringCategories(buckets []domain.Bucket[string]) []category {
	out := make([]category, len(buckets))
	for i, b := range buckets {
		out[i] = category{label: b.Key, count: b.Count}
	}
	return out
}

func (b *Bars) Title() string { return b.title }

func (*Bars) Fields() []domain.Field {
	return []domain.Field{domain.FieldShape, domain.FieldCountry}
}

// Layout places the bars on a padded band scale and scales heights to the
// largest count. With no matches every bar has zero height.
func (b *Bars) Layout(records []domain.SightingRecord, plot Plot) Frame {
	cats := b.aggr(records)

	keys := make([]string, len(cats))
	maxCount := 0
	for i, c := range cats {
		keys[i] = c.label
		maxCount = max(maxCount, c.count)
	}

	x := NewBand(keys, 0, float64(plot.Width), bandPadding)
	y := NewLinear(0, float64(max(maxCount, 1)), 0, plot.Height)

	f := Frame{
		Title:  b.title,
		XLabel: b.xLabel,
		YLabel: "Sightings",
		Domains: []Domain{
			{Axis: "x", Bands: keys},
			{Axis: "y", Min: 0, Max: float64(maxCount)},
		},
	}

	for _, c := range cats {
		left, _ := x.Pos(c.label)
		h := y.Map(float64(c.count))
		f.Elements = append(f.Elements, Element{
			Key:     c.label,
			Kind:    KindRect,
			X:       left,
			Y:       float64(plot.Height) - h,
			Width:   x.Bandwidth(),
			Height:  h,
			Fill:    barFill,
			Label:   c.label,
			Value:   float64(c.count),
			Tooltip: b.tooltip(c.label, c.count),
		})
		f.XTicks = append(f.XTicks, Tick{Pos: left + x.Bandwidth()/2, Label: c.label})
	}
	f.YTicks = countTicks(maxCount, y, plot.Height)
	return f
}
