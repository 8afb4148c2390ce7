package chart

import "io"

// Kind identifies how a backend draws an element.
type Kind string

// Element kinds.
const (
	KindCircle Kind = "circle"
	KindRect   Kind = "rect"
	KindMarker Kind = "marker"
)

// Element is one keyed visual mark. Geometry is in plot coordinates, with
// the origin at the top-left of the plot area.
type Element struct {
	Key     string  `json:"key"`
	Kind    Kind    `json:"kind"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Fill    string  `json:"fill"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Tooltip string  `json:"tooltip,omitempty"`
}

// Box holds per-side margins in pixels.
type Box struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Tick is one labelled axis position in plot coordinates.
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Domain is the input extent of one scale, continuous or banded.
type Domain struct {
	Axis  string   `json:"axis"`
	Min   float64  `json:"min"`
	Max   float64  `json:"max"`
	Bands []string `json:"bands,omitempty"`
}

// Plot is the drawable area inside a surface's margins.
type Plot struct {
	Width  int
	Height int
}

// Frame is one complete draw instruction set for a surface.
type Frame struct {
	Title    string    `json:"title"`
	XLabel   string    `json:"x_label,omitempty"`
	YLabel   string    `json:"y_label,omitempty"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Margin   Box       `json:"margin"`
	Domains  []Domain  `json:"domains"`
	XTicks   []Tick    `json:"x_ticks,omitempty"`
	YTicks   []Tick    `json:"y_ticks,omitempty"`
	Elements []Element `json:"elements"`
}

// Backend draws a retained frame to w.
type Backend interface {
	Draw(w io.Writer, f Frame) error
	ContentType() string
}
