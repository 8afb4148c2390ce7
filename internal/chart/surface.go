package chart

// Default surface geometry.
const (
	DefaultHeight = 400
)

// DefaultMargin is used by every view except density, which needs room for
// weekday labels.
var DefaultMargin = Box{Top: 20, Right: 20, Bottom: 50, Left: 60}

// Diff reports how a render changed the retained element set.
type Diff struct {
	Entered []string `json:"entered"`
	Updated []string `json:"updated"`
	Exited  []string `json:"exited"`
}

// Surface is a retained-mode drawing target sized to its container. Render
// replaces the retained frame and reports the keyed enter/update/exit diff.
type Surface struct {
	container string
	width     int
	height    int
	margin    Box
	frame     Frame
	retained  map[string]Element
}

// NewSurface sizes a surface to a container's width and a fixed height.
func NewSurface(container string, width, height int, margin Box) *Surface {
	return &Surface{
		container: container,
		width:     width,
		height:    height,
		margin:    margin,
		retained:  make(map[string]Element),
	}
}

// Container returns the name of the container the surface is bound to.
func (s *Surface) Container() string {
	return s.container
}

// Plot returns the area inside the margins.
func (s *Surface) Plot() Plot {
	return Plot{
		Width:  max(0, s.width-s.margin.Left-s.margin.Right),
		Height: max(0, s.height-s.margin.Top-s.margin.Bottom),
	}
}

// Render retains f and diffs its elements by key against the previous frame.
// Elements whose keys disappeared exit, keys seen before are updated in
// place, new keys enter.
func (s *Surface) Render(f Frame) Diff {
	f.Width, f.Height, f.Margin = s.width, s.height, s.margin

	var d Diff
	next := make(map[string]Element, len(f.Elements))
	for _, el := range f.Elements {
		if _, ok := s.retained[el.Key]; ok {
			d.Updated = append(d.Updated, el.Key)
		} else {
			d.Entered = append(d.Entered, el.Key)
		}
		next[el.Key] = el
	}
	for _, el := range s.frame.Elements {
		if _, ok := next[el.Key]; !ok {
			d.Exited = append(d.Exited, el.Key)
		}
	}

	s.frame = f
	s.retained = next
	return d
}

// Frame returns the retained frame.
func (s *Surface) Frame() Frame {
	f := s.frame
	f.Elements = append([]Element(nil), s.frame.Elements...)
	f.Domains = append([]Domain(nil), s.frame.Domains...)
	return f
}
