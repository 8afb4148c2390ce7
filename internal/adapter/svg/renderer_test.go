package svg

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame() chart.Frame {
	return chart.Frame{
		Title:  "Sightings by Season",
		XLabel: "Season",
		YLabel: "Sightings",
		Width:  400,
		Height: 300,
		Margin: chart.DefaultMargin,
		XTicks: []chart.Tick{{Pos: 40, Label: "Winter"}, {Pos: 120, Label: "Spring"}},
		YTicks: []chart.Tick{{Pos: 230, Label: "0"}, {Pos: 0, Label: "2"}},
		Elements: []chart.Element{
			{Key: "Winter", Kind: chart.KindRect, X: 10, Y: 0, Width: 60, Height: 230, Fill: "#4682b4"},
			{Key: "Spring", Kind: chart.KindRect, X: 90, Y: 230, Width: 60, Height: 0, Fill: "#4682b4"},
			{Key: "2004", Kind: chart.KindCircle, X: 200, Y: 100, Radius: 4, Fill: "#69b3a2"},
			{Key: "abc", Kind: chart.KindMarker, X: 250, Y: 50, Radius: 3, Fill: "not-a-color"},
		},
	}
}

func TestRenderer_SVG(t *testing.T) {
	r := NewSVG()
	var buf bytes.Buffer

	require.NoError(t, r.Draw(&buf, testFrame()))

	out := buf.String()
	assert.Equal(t, "image/svg+xml", r.ContentType())
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Sightings by Season")
	assert.Contains(t, out, "Winter")
	assert.Contains(t, out, "<circle")
}

func TestRenderer_PNG(t *testing.T) {
	r := NewPNG()
	var buf bytes.Buffer

	require.NoError(t, r.Draw(&buf, testFrame()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
	assert.Equal(t, "image/png", r.ContentType())
}

func TestRenderer_EmptyFrameSize(t *testing.T) {
	err := NewSVG().Draw(&bytes.Buffer{}, chart.Frame{})
	assert.Error(t, err)
}

func TestForFormat(t *testing.T) {
	r, err := ForFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", r.ContentType())

	r, err = ForFormat("png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", r.ContentType())

	_, err = ForFormat("gif")
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c := parseColor("#2e7d32")
	assert.Equal(t, uint8(0x2e), c.R)
	assert.Equal(t, uint8(0x7d), c.G)
	assert.Equal(t, uint8(0x32), c.B)

	gray := parseColor("")
	assert.Equal(t, uint8(0x99), gray.R)
}
