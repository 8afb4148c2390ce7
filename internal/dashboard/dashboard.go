package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/chart"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/observability"
)

var (
	// ErrUnknownView is returned for a view name the dashboard does not define.
	ErrUnknownView = errors.New("unknown view")
	// ErrNotLoaded is returned until the data set has been published.
	ErrNotLoaded = errors.New("dataset not loaded")
	// ErrAlreadyLoaded is returned by a second Publish.
	ErrAlreadyLoaded = errors.New("dataset already loaded")
)

// View names.
const (
	ViewTimeline = "timeline"
	ViewMap      = "map"
	ViewWeekday  = "weekday"
	ViewHour     = "hour"
	ViewSeason   = "season"
	ViewDensity  = "density"
)

type viewDef struct {
	name      string
	container string
	margin    chart.Box
	dimension func(d *Dashboard) chart.Dimension
}

var viewDefs = []viewDef{
	{ViewTimeline, ContainerTimeline, chart.DefaultMargin, func(*Dashboard) chart.Dimension { return chart.NewTimeline() }},
	{ViewMap, ContainerMap, chart.DefaultMargin, func(d *Dashboard) chart.Dimension { return d.markers }},
	{ViewWeekday, ContainerWeekday, chart.DefaultMargin, func(*Dashboard) chart.Dimension { return chart.NewWeekdayBars() }},
	{ViewHour, ContainerHour, chart.DefaultMargin, func(*Dashboard) chart.Dimension { return chart.NewHourBars() }},
	{ViewSeason, ContainerSeason, chart.DefaultMargin, func(*Dashboard) chart.Dimension { return chart.NewSeasonBars() }},
	{ViewDensity, ContainerDensity, chart.DensityMargin, func(*Dashboard) chart.Dimension { return chart.NewDensity() }},
}

// ViewNames returns every view the dashboard defines, in bootstrap order.
func ViewNames() []string {
	names := make([]string, len(viewDefs))
	for i, def := range viewDefs {
		names[i] = def.name
	}
	return names
}

// Dataset is the immutable normalized record set shared by every view.
type Dataset struct {
	ID       uuid.UUID
	Records  []domain.SightingRecord
	LoadedAt time.Time
}

// Dashboard owns the chart views and routes every event through a single
// Dispatcher. All fields below the dispatcher are only touched on its
// goroutine.
type Dashboard struct {
	page       Page
	dispatcher *Dispatcher
	geocoder   domain.Geocoder
	logger     *slog.Logger
	metrics    *observability.Metrics
	ready      atomic.Bool

	dataset *Dataset
	views   map[string]*chart.View
	failed  map[string]error
	markers *chart.MapMarkers
	widgets *widgetRegistry
}

// New creates a dashboard for the given page. Pass a nil geocoder to disable
// place lookups on marker details.
func New(page Page, dispatcher *Dispatcher, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *Dashboard {
	return &Dashboard{
		page:       page,
		dispatcher: dispatcher,
		geocoder:   geocoder,
		logger:     logger,
		metrics:    metrics,
		views:      make(map[string]*chart.View),
		failed:     make(map[string]error),
		markers:    chart.NewMapMarkers(logger, metrics),
		widgets:    newWidgetRegistry(),
	}
}

// Publish hands the loaded data set to the dashboard. It implements the
// pipeline's sink.
func (d *Dashboard) Publish(ctx context.Context, records []domain.SightingRecord) error {
	return d.Bootstrap(ctx, records)
}

// Bootstrap builds and initializes every view against one shared copy of
// records. A view whose container is missing or whose initialization fails
// is logged and skipped; the others still come up.
func (d *Dashboard) Bootstrap(ctx context.Context, records []domain.SightingRecord) error {
	return d.dispatcher.Do(ctx, func() error {
		if d.dataset != nil {
			return ErrAlreadyLoaded
		}
		d.dataset = &Dataset{
			ID:       uuid.New(),
			Records:  slices.Clip(slices.Clone(records)),
			LoadedAt: domain.Now(),
		}

		for _, def := range viewDefs {
			if err := d.initView(def); err != nil {
				d.failed[def.name] = err
				d.metrics.ViewInitFailures.WithLabelValues(def.name).Inc()
				d.logger.Error("view initialization failed",
					"view", def.name,
					"container", def.container,
					"error", err,
				)
			}
		}

		d.ready.Store(true)
		d.metrics.DatasetLoaded.Set(1)
		d.logger.Info("dashboard ready",
			"dataset_id", d.dataset.ID,
			"records", len(d.dataset.Records),
			"views", len(d.views),
			"failed_views", len(d.failed),
		)
		return nil
	})
}

func (d *Dashboard) initView(def viewDef) error {
	width, err := d.page.Width(def.container)
	if err != nil {
		return err
	}
	surface := chart.NewSurface(def.container, width, chart.DefaultHeight, def.margin)
	v := chart.NewView(def.name, def.dimension(d), surface, d.logger, d.metrics)
	if err := v.Init(d.dataset.Records, d.widgets); err != nil {
		return fmt.Errorf("init view: %w", err)
	}
	d.views[def.name] = v
	return nil
}

// view resolves a view name. Must run on the dispatcher.
func (d *Dashboard) view(name string) (*chart.View, error) {
	if !slices.Contains(ViewNames(), name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	if d.dataset == nil {
		return nil, ErrNotLoaded
	}
	if err, ok := d.failed[name]; ok {
		return nil, fmt.Errorf("view %s unavailable: %w", name, err)
	}
	return d.views[name], nil
}

// Select is a dropdown change event: it sets field to label on one view and
// returns the view's state after the redraw.
func (d *Dashboard) Select(ctx context.Context, viewName, field, label string) (chart.Snapshot, error) {
	f, err := domain.ParseField(field)
	if err != nil {
		return chart.Snapshot{}, err
	}

	var snap chart.Snapshot
	err = d.dispatcher.Do(ctx, func() error {
		v, err := d.view(viewName)
		if err != nil {
			return err
		}
		if err := d.widgets.change(viewName, f, label); err != nil {
			return err
		}
		snap = v.Snapshot()
		return nil
	})
	return snap, err
}

// Snapshot returns one view's current state.
func (d *Dashboard) Snapshot(ctx context.Context, viewName string) (chart.Snapshot, error) {
	var snap chart.Snapshot
	err := d.dispatcher.Do(ctx, func() error {
		v, err := d.view(viewName)
		if err != nil {
			return err
		}
		snap = v.Snapshot()
		return nil
	})
	return snap, err
}

// Render draws a view's retained frame with backend.
func (d *Dashboard) Render(ctx context.Context, viewName string, w io.Writer, backend chart.Backend) error {
	snap, err := d.Snapshot(ctx, viewName)
	if err != nil {
		return err
	}
	if err := backend.Draw(w, snap.Frame); err != nil {
		return fmt.Errorf("draw %s: %w", viewName, err)
	}
	return nil
}

// ViewStatus summarizes one view in an Overview.
type ViewStatus struct {
	Name      string                 `json:"name"`
	Container string                 `json:"container"`
	State     string                 `json:"state"`
	Selection domain.FilterSelection `json:"selection"`
	Error     string                 `json:"error,omitempty"`
}

// Overview describes the loaded data set and every view.
type Overview struct {
	DatasetID string       `json:"dataset_id"`
	LoadedAt  time.Time    `json:"loaded_at"`
	Records   int          `json:"records"`
	Views     []ViewStatus `json:"views"`
}

// Overview returns the dashboard-wide status.
func (d *Dashboard) Overview(ctx context.Context) (Overview, error) {
	var ov Overview
	err := d.dispatcher.Do(ctx, func() error {
		if d.dataset == nil {
			return ErrNotLoaded
		}
		ov = Overview{
			DatasetID: d.dataset.ID.String(),
			LoadedAt:  d.dataset.LoadedAt,
			Records:   len(d.dataset.Records),
		}
		for _, def := range viewDefs {
			st := ViewStatus{Name: def.name, Container: def.container}
			if err, ok := d.failed[def.name]; ok {
				st.State = chart.Uninitialized.String()
				st.Error = err.Error()
			} else {
				v := d.views[def.name]
				st.State = v.State().String()
				st.Selection = v.Selection()
			}
			ov.Views = append(ov.Views, st)
		}
		return nil
	})
	return ov, err
}

// MarkerDetail is a map marker, optionally expanded, with its place name.
type MarkerDetail struct {
	chart.Marker
	Place string `json:"place,omitempty"`
}

// MarkerDetail returns one map marker. With full set the description is the
// untruncated text and, when geocoding is enabled, the coordinates are
// resolved to a place name. Lookup failures leave Place empty.
func (d *Dashboard) MarkerDetail(ctx context.Context, id string, full bool) (MarkerDetail, error) {
	var mk chart.Marker
	err := d.dispatcher.Do(ctx, func() error {
		if _, err := d.view(ViewMap); err != nil {
			return err
		}
		var err error
		mk, err = d.markers.Marker(id, full)
		return err
	})
	if err != nil {
		return MarkerDetail{}, err
	}

	detail := MarkerDetail{Marker: mk}
	if full {
		rec := domain.SightingRecord{ID: mk.ID, Latitude: mk.Latitude, Longitude: mk.Longitude}
		if place, ok := domain.LookupPlace(ctx, rec, d.geocoder, d.logger); ok {
			detail.Place = place.FormattedAddress
		}
	}
	return detail, nil
}

// CheckReadiness reports ErrNotLoaded until the data set has been published.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if !d.ready.Load() {
		return ErrNotLoaded
	}
	return nil
}
