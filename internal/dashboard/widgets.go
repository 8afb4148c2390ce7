package dashboard

import (
	"fmt"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/chart"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
)

type selectWidget struct {
	options  []string
	onChange func(string) error
}

// widgetRegistry stands in for the page's dropdown elements: views register
// selectors on it and change events are routed back through it.
type widgetRegistry struct {
	selects map[string]map[domain.Field]selectWidget
}

func newWidgetRegistry() *widgetRegistry {
	return &widgetRegistry{selects: make(map[string]map[domain.Field]selectWidget)}
}

func (r *widgetRegistry) AddSelects(view string, selects []chart.Select) error {
	seen := make(map[domain.Field]bool, len(selects))
	for _, s := range selects {
		_, registered := r.selects[view][s.Field]
		if registered || seen[s.Field] {
			return fmt.Errorf("duplicate %s dropdown for view %s", s.Field, view)
		}
		seen[s.Field] = true
	}

	if r.selects[view] == nil {
		r.selects[view] = make(map[domain.Field]selectWidget)
	}
	for _, s := range selects {
		r.selects[view][s.Field] = selectWidget{options: s.Options, onChange: s.OnChange}
	}
	return nil
}

// change fires a dropdown's change callback.
func (r *widgetRegistry) change(view string, field domain.Field, label string) error {
	w, ok := r.selects[view][field]
	if !ok {
		return fmt.Errorf("%w: view %s has no %q dropdown", domain.ErrUnknownField, view, field)
	}
	return w.onChange(label)
}
