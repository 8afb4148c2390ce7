package chart

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/observability"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sighting normalizes a raw row built from the given columns.
func sighting(date, shape, country string, extra ...string) domain.SightingRecord {
	row := domain.RawRow{
		domain.ColDateTime:    date,
		domain.ColShape:       shape,
		domain.ColCountryCode: country,
	}
	for i := 0; i+1 < len(extra); i += 2 {
		row[extra[i]] = extra[i+1]
	}
	return domain.NormalizeRow(row)
}

var errRejected = errors.New("select rejected")

// fakeWidgets records every dropdown registration. A batch containing the
// reject field is refused whole.
type fakeWidgets struct {
	selects map[string]map[domain.Field][]string
	change  map[string]map[domain.Field]func(string) error
	reject  domain.Field
}

func newFakeWidgets() *fakeWidgets {
	return &fakeWidgets{
		selects: make(map[string]map[domain.Field][]string),
		change:  make(map[string]map[domain.Field]func(string) error),
	}
}

func (w *fakeWidgets) AddSelects(view string, selects []Select) error {
	for _, s := range selects {
		if s.Field == w.reject {
			return fmt.Errorf("%w: %s", errRejected, s.Field)
		}
	}
	if w.selects[view] == nil {
		w.selects[view] = make(map[domain.Field][]string)
		w.change[view] = make(map[domain.Field]func(string) error)
	}
	for _, s := range selects {
		w.selects[view][s.Field] = s.Options
		w.change[view][s.Field] = s.OnChange
	}
	return nil
}

func newTestView(t *testing.T, name string, dim Dimension, records []domain.SightingRecord) (*View, *fakeWidgets) {
	t.Helper()
	surface := NewSurface(name+"-chart", 960, DefaultHeight, DefaultMargin)
	v := NewView(name, dim, surface, discardLogger(), observability.NewMetricsForTesting())
	w := newFakeWidgets()
	require.NoError(t, v.Init(records, w))
	return v, w
}

func elementByKey(t *testing.T, f Frame, key string) Element {
	t.Helper()
	for _, el := range f.Elements {
		if el.Key == key {
			return el
		}
	}
	t.Fatalf("no element with key %q", key)
	return Element{}
}
