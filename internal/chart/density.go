package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	densitySteps    = 240 // tenths of an hour across the day
	densityLowFill  = "#e8f5e9"
	densityHighFill = "#2e7d32"
)

// DensityMargin leaves room for weekday row labels.
var DensityMargin = Box{Top: 20, Right: 20, Bottom: 50, Left: 80}

// densityRows is the row order, Monday first.
var densityRows = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Density draws a weekday by hour-of-day heat strip. Counts are grouped by
// weekday and the export's Hour column, then linearly interpolated between
// neighbouring integer hours in tenth-of-an-hour steps.
type Density struct{}

// NewDensity returns the day by hour density dimension.
func NewDensity() *Density { return &Density{} }

func (*Density) Title() string { return "Sightings by Day and Hour" }

func (*Density) Fields() []domain.Field {
	return []domain.Field{domain.FieldShape, domain.FieldCountry}
}

// Layout always lays out all seven weekday rows but emits cells only for
// days present in the data.
func (d *Density) Layout(records []domain.SightingRecord, plot Plot) Frame {
	nested := domain.DayHourCounts(records)

	present := make(map[string]bool)
	for _, day := range nested.Outer() {
		present[day] = true
	}

	maxCount := nested.Max()
	y := NewBand(densityRows, 0, float64(plot.Height), bandPadding)
	x := NewLinear(0, 24, 0, plot.Width)
	cellWidth := float64(plot.Width) / densitySteps

	f := Frame{
		Title:  d.Title(),
		XLabel: "Hour of Day",
		Domains: []Domain{
			{Axis: "x", Min: 0, Max: 24},
			{Axis: "y", Bands: y.Keys()},
			{Axis: "color", Min: 0, Max: float64(maxCount)},
		},
	}

	for _, day := range densityRows {
		top, _ := y.Pos(day)
		f.YTicks = append(f.YTicks, Tick{Pos: top + y.Bandwidth()/2, Label: day})
		if !present[day] {
			continue
		}
		for i := 0; i <= densitySteps; i++ {
			hour := float64(i) / 10
			v := interpolateCount(nested, day, hour)
			f.Elements = append(f.Elements, Element{
				Key:     fmt.Sprintf("%s-%d", day, i),
				Kind:    KindRect,
				X:       x.Map(hour),
				Y:       top,
				Width:   cellWidth,
				Height:  y.Bandwidth(),
				Fill:    densityColor(v, maxCount),
				Label:   day,
				Value:   v,
				Tooltip: fmt.Sprintf("Day: %s\nTime: %s\nSightings: %.1f", day, clockLabel(hour), v),
			})
		}
	}
	for h := 0; h <= 24; h += 3 {
		f.XTicks = append(f.XTicks, Tick{Pos: x.Map(float64(h)), Label: clockLabel(float64(h))})
	}
	return f
}

// interpolateCount blends the counts at the surrounding integer hours.
func interpolateCount(n *domain.Nested[string, int], day string, hour float64) float64 {
	h0 := math.Floor(hour)
	h1 := math.Ceil(hour)
	c0 := float64(n.Get(day, int(h0)))
	if h0 == h1 {
		return c0
	}
	c1 := float64(n.Get(day, int(h1)))
	return c0 + (c1-c0)*(hour-h0)
}

// densityColor blends the low and high fills by v/maxCount.
func densityColor(v float64, maxCount int) string {
	t := 0.0
	if maxCount > 0 {
		t = math.Max(0, math.Min(1, v/float64(maxCount)))
	}
	lo := drawing.ColorFromHex(strings.TrimPrefix(densityLowFill, "#"))
	hi := drawing.ColorFromHex(strings.TrimPrefix(densityHighFill, "#"))
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return fmt.Sprintf("#%02x%02x%02x", lerp(lo.R, hi.R), lerp(lo.G, hi.G), lerp(lo.B, hi.B))
}

func clockLabel(hour float64) string {
	minutes := int(math.Round(hour * 60))
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
