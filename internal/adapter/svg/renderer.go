package svg

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/chart"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	titleFontSize = 14
	labelFontSize = 11
	tickFontSize  = 9
	tickLength    = 5
)

var (
	axisColor  = drawing.ColorFromHex("555555")
	textColor  = drawing.ColorFromHex("222222")
	background = drawing.ColorWhite
)

// Renderer draws chart frames with a go-chart renderer. It implements
// chart.Backend.
type Renderer struct {
	provider    gochart.RendererProvider
	contentType string
}

// NewSVG returns a vector backend.
func NewSVG() *Renderer {
	return &Renderer{provider: gochart.SVG, contentType: "image/svg+xml"}
}

// NewPNG returns a raster backend.
func NewPNG() *Renderer {
	return &Renderer{provider: gochart.PNG, contentType: "image/png"}
}

// ForFormat resolves a file extension to a backend.
func ForFormat(format string) (*Renderer, error) {
	switch strings.ToLower(format) {
	case "svg":
		return NewSVG(), nil
	case "png":
		return NewPNG(), nil
	default:
		return nil, fmt.Errorf("unsupported render format %q", format)
	}
}

func (r *Renderer) ContentType() string { return r.contentType }

// Draw paints the background, elements, axes, and labels, then writes the
// encoded image to w.
func (r *Renderer) Draw(w io.Writer, f chart.Frame) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", f.Width, f.Height)
	}
	rr, err := r.provider(f.Width, f.Height)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	rr.SetFont(font)

	fillRect(rr, 0, 0, float64(f.Width), float64(f.Height), background)

	ox, oy := float64(f.Margin.Left), float64(f.Margin.Top)
	for _, el := range f.Elements {
		drawElement(rr, el, ox, oy)
	}

	plotW := float64(f.Width - f.Margin.Left - f.Margin.Right)
	plotH := float64(f.Height - f.Margin.Top - f.Margin.Bottom)
	drawAxes(rr, f, ox, oy, plotW, plotH)
	drawLabels(rr, f, ox, oy, plotW, plotH)

	if err := rr.Save(w); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	return nil
}

func drawElement(rr gochart.Renderer, el chart.Element, ox, oy float64) {
	color := parseColor(el.Fill)
	switch el.Kind {
	case chart.KindRect:
		if el.Width <= 0 || el.Height <= 0 {
			return
		}
		fillRect(rr, ox+el.X, oy+el.Y, el.Width, el.Height, color)
	case chart.KindCircle, chart.KindMarker:
		rr.ResetStyle()
		rr.SetFillColor(color)
		rr.SetStrokeColor(color.WithAlpha(255))
		rr.SetStrokeWidth(1)
		rr.Circle(el.Radius, px(ox+el.X), px(oy+el.Y))
		rr.FillStroke()
	}
}

func fillRect(rr gochart.Renderer, x, y, w, h float64, color drawing.Color) {
	rr.ResetStyle()
	rr.SetFillColor(color)
	rr.MoveTo(px(x), px(y))
	rr.LineTo(px(x+w), px(y))
	rr.LineTo(px(x+w), px(y+h))
	rr.LineTo(px(x), px(y+h))
	rr.Close()
	rr.Fill()
}

func drawAxes(rr gochart.Renderer, f chart.Frame, ox, oy, plotW, plotH float64) {
	if len(f.XTicks) == 0 && len(f.YTicks) == 0 {
		return
	}
	rr.ResetStyle()
	rr.SetStrokeColor(axisColor)
	rr.SetStrokeWidth(1)
	rr.MoveTo(px(ox), px(oy+plotH))
	rr.LineTo(px(ox+plotW), px(oy+plotH))
	rr.Stroke()
	rr.MoveTo(px(ox), px(oy))
	rr.LineTo(px(ox), px(oy+plotH))
	rr.Stroke()

	rr.SetFontColor(textColor)
	rr.SetFontSize(tickFontSize)
	for _, t := range f.XTicks {
		x := ox + t.Pos
		rr.MoveTo(px(x), px(oy+plotH))
		rr.LineTo(px(x), px(oy+plotH+tickLength))
		rr.Stroke()
		tw := rr.MeasureText(t.Label).Width()
		rr.Text(t.Label, px(x)-tw/2, px(oy+plotH+tickLength+tickFontSize+2))
	}
	for _, t := range f.YTicks {
		y := oy + t.Pos
		rr.MoveTo(px(ox-tickLength), px(y))
		rr.LineTo(px(ox), px(y))
		rr.Stroke()
		tw := rr.MeasureText(t.Label).Width()
		rr.Text(t.Label, px(ox-tickLength-2)-tw, px(y+tickFontSize/2))
	}
}

func drawLabels(rr gochart.Renderer, f chart.Frame, ox, oy, plotW, plotH float64) {
	rr.SetFontColor(textColor)

	if f.Title != "" {
		rr.SetFontSize(titleFontSize)
		tw := rr.MeasureText(f.Title).Width()
		rr.Text(f.Title, px(ox+plotW/2)-tw/2, px(oy-4))
	}

	rr.SetFontSize(labelFontSize)
	if f.XLabel != "" {
		tw := rr.MeasureText(f.XLabel).Width()
		rr.Text(f.XLabel, px(ox+plotW/2)-tw/2, f.Height-8)
	}
	if f.YLabel != "" {
		tw := rr.MeasureText(f.YLabel).Width()
		rr.SetTextRotation(gochart.DegreesToRadians(270))
		rr.Text(f.YLabel, labelFontSize+4, px(oy+plotH/2)+tw/2)
		rr.ClearTextRotation()
	}
}

// parseColor reads "#rrggbb"; anything else is drawn gray.
func parseColor(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return drawing.ColorFromHex("999999")
	}
	return drawing.ColorFromHex(hex)
}

func px(v float64) int {
	return int(math.Round(v))
}
