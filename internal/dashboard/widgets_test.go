package dashboard

import (
	"testing"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/chart"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSelect(field domain.Field, calls *[]string) chart.Select {
	return chart.Select{
		Dropdown: chart.Dropdown{Field: field, Options: []string{"All"}},
		OnChange: func(label string) error {
			*calls = append(*calls, string(field)+"="+label)
			return nil
		},
	}
}

func TestWidgetRegistry_AddSelects(t *testing.T) {
	tests := []struct {
		name     string
		existing []domain.Field
		batch    []domain.Field
		wantErr  bool
		want     []domain.Field
	}{
		{"empty registry", nil, []domain.Field{domain.FieldShape, domain.FieldCountry}, false, []domain.Field{domain.FieldShape, domain.FieldCountry}},
		{"no selects", nil, nil, false, nil},
		{"duplicate within batch", nil, []domain.Field{domain.FieldShape, domain.FieldShape}, true, nil},
		{"clashes with registered", []domain.Field{domain.FieldSeason}, []domain.Field{domain.FieldShape, domain.FieldSeason}, true, []domain.Field{domain.FieldSeason}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls []string
			r := newWidgetRegistry()
			for _, f := range tt.existing {
				require.NoError(t, r.AddSelects("hour", []chart.Select{testSelect(f, &calls)}))
			}

			batch := make([]chart.Select, 0, len(tt.batch))
			for _, f := range tt.batch {
				batch = append(batch, testSelect(f, &calls))
			}
			err := r.AddSelects("hour", batch)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			got := make([]domain.Field, 0, len(r.selects["hour"]))
			for f := range r.selects["hour"] {
				got = append(got, f)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestWidgetRegistry_ChangeRoutesToCallback(t *testing.T) {
	var calls []string
	r := newWidgetRegistry()
	require.NoError(t, r.AddSelects("weekday", []chart.Select{testSelect(domain.FieldCountry, &calls)}))

	require.NoError(t, r.change("weekday", domain.FieldCountry, "CA"))
	assert.Equal(t, []string{"country=CA"}, calls)
	assert.ErrorIs(t, r.change("weekday", domain.FieldShape, "Disk"), domain.ErrUnknownField)
}
