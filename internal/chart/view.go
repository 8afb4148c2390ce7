package chart

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/observability"
)

var (
	// ErrUnknownOption is returned when a dropdown is set to a label it does
	// not offer.
	ErrUnknownOption = errors.New("unknown dropdown option")
	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = errors.New("view already initialized")
	// ErrNotInitialized is returned for a change event before Init.
	ErrNotInitialized = errors.New("view not initialized")
)

// State is a view's lifecycle state.
type State int

// View states. There is no terminal state.
const (
	Uninitialized State = iota
	Rendered
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Rendered:
		return "rendered"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Dimension is the per-view strategy: which dropdowns it offers, and how a
// filtered record set becomes a frame.
type Dimension interface {
	Title() string
	Fields() []domain.Field
	Layout(records []domain.SightingRecord, plot Plot) Frame
}

// Widgets builds a view's dropdowns and calls each OnChange with the selected
// label whenever the user changes it. AddSelects registers every select or,
// on error, none of them.
type Widgets interface {
	AddSelects(view string, selects []Select) error
}

// Dropdown is one filter selector and its fixed option list.
type Dropdown struct {
	Field   domain.Field `json:"field"`
	Options []string     `json:"options"`
}

// Select is a dropdown bound to its change callback.
type Select struct {
	Dropdown
	OnChange func(label string) error
}

// View owns one visualization, its filter selection, and its surface.
// A view is not safe for concurrent use; callers serialize access.
type View struct {
	name      string
	dim       Dimension
	surface   *Surface
	logger    *slog.Logger
	metrics   *observability.Metrics
	records   []domain.SightingRecord
	selection domain.FilterSelection
	dropdowns []Dropdown
	state     State
	lastDiff  Diff
}

// NewView creates an uninitialized view.
func NewView(name string, dim Dimension, surface *Surface, logger *slog.Logger, metrics *observability.Metrics) *View {
	return &View{
		name:      name,
		dim:       dim,
		surface:   surface,
		logger:    logger.With("view", name),
		metrics:   metrics,
		selection: domain.DefaultSelection(),
	}
}

// Name returns the view's name.
func (v *View) Name() string { return v.name }

// State returns the current lifecycle state.
func (v *View) State() State { return v.state }

// Selection returns the current filter selection.
func (v *View) Selection() domain.FilterSelection { return v.selection }

// Init builds the dropdowns from the full record set, registers them with
// widgets, and performs the initial draw with every filter at "All".
// A failed registration leaves the view Uninitialized and Init may be retried.
func (v *View) Init(records []domain.SightingRecord, widgets Widgets) error {
	if v.state != Uninitialized {
		return ErrAlreadyInitialized
	}

	fields := v.dim.Fields()
	dropdowns := make([]Dropdown, 0, len(fields))
	selects := make([]Select, 0, len(fields))
	for _, f := range fields {
		dd := Dropdown{Field: f, Options: dropdownOptions(records, f)}
		dropdowns = append(dropdowns, dd)
		selects = append(selects, Select{
			Dropdown: dd,
			OnChange: func(label string) error { return v.OnChange(f, label) },
		})
	}
	if err := widgets.AddSelects(v.name, selects); err != nil {
		return fmt.Errorf("add %s dropdowns: %w", v.name, err)
	}
	v.records = records
	v.dropdowns = dropdowns

	v.redraw()
	v.state = Rendered
	v.logger.Info("view initialized",
		"container", v.surface.Container(),
		"records", len(records),
		"elements", len(v.lastDiff.Entered),
	)
	return nil
}

// OnChange applies a dropdown change and redraws from the full record set.
func (v *View) OnChange(field domain.Field, label string) error {
	if v.state != Rendered {
		return ErrNotInitialized
	}
	dd, ok := v.dropdown(field)
	if !ok {
		return fmt.Errorf("%w: view %s has no %q dropdown", domain.ErrUnknownField, v.name, field)
	}
	if !slices.Contains(dd.Options, label) {
		return fmt.Errorf("%w: %q for %s", ErrUnknownOption, label, field)
	}

	sel, err := v.selection.With(field, label)
	if err != nil {
		return err
	}
	v.selection = sel
	v.metrics.FilterChanges.WithLabelValues(v.name, string(field)).Inc()
	v.redraw()

	v.logger.Debug("filter changed",
		"field", field,
		"value", label,
		"entered", len(v.lastDiff.Entered),
		"updated", len(v.lastDiff.Updated),
		"exited", len(v.lastDiff.Exited),
	)
	return nil
}

// Dropdowns returns copies of the view's dropdowns.
func (v *View) Dropdowns() []Dropdown {
	out := make([]Dropdown, len(v.dropdowns))
	for i, dd := range v.dropdowns {
		out[i] = Dropdown{Field: dd.Field, Options: slices.Clone(dd.Options)}
	}
	return out
}

// Snapshot captures the view's state for callers outside the view's owner.
func (v *View) Snapshot() Snapshot {
	return Snapshot{
		View:      v.name,
		Container: v.surface.Container(),
		State:     v.state.String(),
		Selection: v.selection,
		Dropdowns: v.Dropdowns(),
		Frame:     v.surface.Frame(),
		LastDiff:  v.lastDiff,
	}
}

// Snapshot is a point-in-time copy of a view.
type Snapshot struct {
	View      string                 `json:"view"`
	Container string                 `json:"container"`
	State     string                 `json:"state"`
	Selection domain.FilterSelection `json:"selection"`
	Dropdowns []Dropdown             `json:"dropdowns"`
	Frame     Frame                  `json:"frame"`
	LastDiff  Diff                   `json:"last_diff"`
}

func (v *View) dropdown(f domain.Field) (Dropdown, bool) {
	for _, dd := range v.dropdowns {
		if dd.Field == f {
			return dd, true
		}
	}
	return Dropdown{}, false
}

// redraw re-derives everything from the unfiltered records.
func (v *View) redraw() {
	start := domain.Now()

	filtered := domain.Filter(v.records, v.selection)
	frame := v.dim.Layout(filtered, v.surface.Plot())
	if frame.Title == "" {
		frame.Title = v.dim.Title()
	}
	v.lastDiff = v.surface.Render(frame)

	v.metrics.Redraws.WithLabelValues(v.name).Inc()
	v.metrics.RedrawDuration.WithLabelValues(v.name).Observe(domain.Now().Sub(start).Seconds())
}

// dropdownOptions is the "All" sentinel followed by the field's values. The
// season list is canonical; the others come from the full data set.
func dropdownOptions(records []domain.SightingRecord, f domain.Field) []string {
	opts := []string{f.AllLabel()}
	if f == domain.FieldSeason {
		return append(opts, domain.SeasonOptions...)
	}
	return append(opts, domain.DistinctValues(records, f)...)
}
