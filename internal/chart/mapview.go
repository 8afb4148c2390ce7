package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/observability"
)

const (
	// DescriptionLimit is the marker text budget before truncation.
	DescriptionLimit = 100
	markerFill       = "#e6550d"
	markerRadius     = 3
)

// ErrUnknownMarker is returned for a marker ID the map never drew.
var ErrUnknownMarker = errors.New("unknown marker")

var popupTemplate = template.Must(template.New("popup").Parse(
	`<div class="sighting-popup">` +
		`<strong>Date:</strong> {{.Date}}<br>` +
		`<strong>Shape:</strong> {{.Shape}}<br>` +
		`<strong>Duration:</strong> {{.Duration}}<br>` +
		`<strong>Description:</strong> <span class="description">{{.Description}}</span>` +
		`{{if .Truncated}} <a href="#" class="read-more" data-marker="{{.ID}}">Read more</a>{{end}}` +
		`</div>`))

// Marker is one plotted sighting with its popup content.
type Marker struct {
	ID          string  `json:"id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Date        string  `json:"date"`
	Shape       string  `json:"shape"`
	Duration    string  `json:"duration"`
	Description string  `json:"description"`
	Truncated   bool    `json:"truncated"`
	Popup       string  `json:"popup"`

	full string
}

// MapMarkers places every geospatially valid sighting on an equirectangular
// world projection. Records failing the coordinate guard are left out.
type MapMarkers struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	markers map[string]Marker
}

// NewMapMarkers returns the map dimension.
func NewMapMarkers(logger *slog.Logger, metrics *observability.Metrics) *MapMarkers {
	return &MapMarkers{
		logger:  logger.With("view", "map"),
		metrics: metrics,
		markers: make(map[string]Marker),
	}
}

func (*MapMarkers) Title() string { return "Sighting Locations" }

// Fields is empty: the map has no dropdowns.
func (*MapMarkers) Fields() []domain.Field { return nil }

// Layout builds one marker per valid record. A marker that cannot be built
// is logged and skipped without aborting the rest.
func (m *MapMarkers) Layout(records []domain.SightingRecord, plot Plot) Frame {
	valid, invalid := domain.PartitionGeo(records)
	if len(invalid) > 0 {
		m.logger.Debug("records excluded from map", "invalid_coordinates", len(invalid))
	}

	x := NewLinear(-180, 180, 0, plot.Width)
	y := NewLinear(-90, 90, 0, plot.Height)

	f := Frame{
		Title: m.Title(),
		Domains: []Domain{
			{Axis: "longitude", Min: -180, Max: 180},
			{Axis: "latitude", Min: -90, Max: 90},
		},
	}

	m.markers = make(map[string]Marker, len(valid))
	for _, rec := range valid {
		key := m.uniqueKey(rec.ID)
		mk, err := buildMarker(key, rec)
		if err != nil {
			m.logger.Warn("marker construction failed", "sighting_id", rec.ID, "error", err)
			m.metrics.MarkerFailures.Inc()
			continue
		}
		m.markers[key] = mk
		f.Elements = append(f.Elements, Element{
			Key:     key,
			Kind:    KindMarker,
			X:       x.Map(rec.Longitude),
			Y:       float64(plot.Height) - y.Map(rec.Latitude),
			Radius:  markerRadius,
			Fill:    markerFill,
			Label:   rec.Shape,
			Value:   1,
			Tooltip: mk.Popup,
		})
	}
	return f
}

// Marker returns a drawn marker. With full set, the description is the
// untruncated text and the popup is rebuilt around it.
func (m *MapMarkers) Marker(id string, full bool) (Marker, error) {
	mk, ok := m.markers[id]
	if !ok {
		return Marker{}, fmt.Errorf("%w: %q", ErrUnknownMarker, id)
	}
	if !full || !mk.Truncated {
		return mk, nil
	}
	mk.Description = mk.full
	mk.Truncated = false
	popup, err := renderPopup(mk)
	if err != nil {
		return Marker{}, err
	}
	mk.Popup = popup
	return mk, nil
}

// uniqueKey suffixes IDs shared by identical rows.
func (m *MapMarkers) uniqueKey(id string) string {
	key := id
	for n := 2; ; n++ {
		if _, taken := m.markers[key]; !taken {
			return key
		}
		key = id + "-" + strconv.Itoa(n)
	}
}

func buildMarker(key string, rec domain.SightingRecord) (Marker, error) {
	desc, truncated := truncate(rec.Description, DescriptionLimit)
	mk := Marker{
		ID:          key,
		Latitude:    rec.Latitude,
		Longitude:   rec.Longitude,
		Date:        formatDate(rec),
		Shape:       rec.Shape,
		Duration:    rec.Duration,
		Description: desc,
		Truncated:   truncated,
		full:        rec.Description,
	}
	popup, err := renderPopup(mk)
	if err != nil {
		return Marker{}, err
	}
	mk.Popup = popup
	return mk, nil
}

func renderPopup(mk Marker) (string, error) {
	var buf bytes.Buffer
	if err := popupTemplate.Execute(&buf, mk); err != nil {
		return "", fmt.Errorf("render popup: %w", err)
	}
	return buf.String(), nil
}

func formatDate(rec domain.SightingRecord) string {
	if !rec.HasTimestamp() {
		return "Invalid Date"
	}
	return rec.Timestamp.Format("1/2/2006")
}

// truncate cuts s to limit runes and appends "...".
func truncate(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	return string([]rune(s)[:limit]) + "...", true
}
