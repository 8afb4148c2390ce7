package dashboard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingContainer is returned when a view's container is not on the page.
var ErrMissingContainer = errors.New("container not found")

// DefaultWidth is the container width used when none is configured.
const DefaultWidth = 960

// Container names, one per view.
const (
	ContainerTimeline = "timeline-chart"
	ContainerMap      = "map"
	ContainerWeekday  = "day-chart"
	ContainerHour     = "time-chart"
	ContainerSeason   = "season-chart"
	ContainerDensity  = "miranda-chart"
)

// Page is the set of containers views can be drawn into, with their widths.
type Page struct {
	widths map[string]int
	order  []string
}

// DefaultPage has every view's container at DefaultWidth.
func DefaultPage() Page {
	p := Page{widths: make(map[string]int)}
	for _, c := range []string{
		ContainerTimeline, ContainerMap, ContainerWeekday,
		ContainerHour, ContainerSeason, ContainerDensity,
	} {
		p.add(c, DefaultWidth)
	}
	return p
}

// ParsePage reads a comma-separated container list of the form
// "name:width,name". A name without a width gets DefaultWidth. An empty
// string yields DefaultPage.
func ParsePage(s string) (Page, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultPage(), nil
	}

	p := Page{widths: make(map[string]int)}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, widthStr, hasWidth := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return Page{}, fmt.Errorf("invalid container %q: empty name", part)
		}
		width := DefaultWidth
		if hasWidth {
			n, err := strconv.Atoi(strings.TrimSpace(widthStr))
			if err != nil || n <= 0 {
				return Page{}, fmt.Errorf("invalid container %q: width must be a positive integer", part)
			}
			width = n
		}
		p.add(name, width)
	}
	return p, nil
}

func (p *Page) add(name string, width int) {
	if _, ok := p.widths[name]; !ok {
		p.order = append(p.order, name)
	}
	p.widths[name] = width
}

// Width returns the current width of a container.
func (p Page) Width(container string) (int, error) {
	w, ok := p.widths[container]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingContainer, container)
	}
	return w, nil
}

// Containers returns the container names in declaration order.
func (p Page) Containers() []string {
	return append([]string(nil), p.order...)
}
