package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	reverseCalls int
	result       domain.Place
	err          error
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.Place, error) {
	m.reverseCalls++
	return m.result, m.err
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_ReverseCacheHit(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.Place{FormattedAddress: "Roswell, New Mexico, United States"},
	}
	metrics := testMetrics()
	cached := NewCachedGeocoder(inner, 10, metrics)

	_, err := cached.ReverseGeocode(context.Background(), 33.3943, -104.5230)
	require.NoError(t, err)

	r2, err := cached.ReverseGeocode(context.Background(), 33.3943, -104.5230)
	require.NoError(t, err)
	assert.Equal(t, "Roswell, New Mexico, United States", r2.FormattedAddress)

	assert.Equal(t, 1, inner.reverseCalls, "should only call inner once")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")))
}

func TestCachedGeocoder_DifferentKeysMiss(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.Place{FormattedAddress: "Somewhere"},
	}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), 33.39, -104.52)
	_, _ = cached.ReverseGeocode(context.Background(), 47.61, -122.33)

	assert.Equal(t, 2, inner.reverseCalls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), 0, -160)
	_, _ = cached.ReverseGeocode(context.Background(), 0, -160)

	assert.Equal(t, 2, inner.reverseCalls)
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("rate limited")}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 1, 1)
	require.Error(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 1, 1)
	require.Error(t, err)

	assert.Equal(t, 2, inner.reverseCalls)
}

func TestCachedGeocoder_KeyPrecision(t *testing.T) {
	inner := &countingGeocoder{result: domain.Place{FormattedAddress: "Marfa, Texas, United States"}}
	cached := NewCachedGeocoder(inner, 10, testMetrics())

	_, _ = cached.ReverseGeocode(context.Background(), 30.3094, -104.0206)
	_, _ = cached.ReverseGeocode(context.Background(), 30.30940000001, -104.0206)
	_, _ = cached.ReverseGeocode(context.Background(), 30.309401, -104.0206)

	assert.Equal(t, 2, inner.reverseCalls, "sub-micro-degree differences share an entry")
}

// --- lru unit tests ---

func TestLRU(t *testing.T) {
	tests := []struct {
		name    string
		limit   int
		ops     func(c *lru[string, int])
		present map[string]int
		absent  []string
	}{
		{
			name:  "get after put",
			limit: 3,
			ops: func(c *lru[string, int]) {
				c.put("a", 1)
				c.put("b", 2)
			},
			present: map[string]int{"a": 1, "b": 2},
			absent:  []string{"missing"},
		},
		{
			name:  "evicts least recently used",
			limit: 2,
			ops: func(c *lru[string, int]) {
				c.put("a", 1)
				c.put("b", 2)
				c.put("c", 3)
			},
			present: map[string]int{"b": 2, "c": 3},
			absent:  []string{"a"},
		},
		{
			name:  "get promotes entry",
			limit: 2,
			ops: func(c *lru[string, int]) {
				c.put("a", 1)
				c.put("b", 2)
				c.get("a")
				c.put("c", 3)
			},
			present: map[string]int{"a": 1, "c": 3},
			absent:  []string{"b"},
		},
		{
			name:  "put replaces value",
			limit: 2,
			ops: func(c *lru[string, int]) {
				c.put("a", 1)
				c.put("a", 2)
			},
			present: map[string]int{"a": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newLRU[string, int](tt.limit)
			tt.ops(c)

			assert.Len(t, c.items, len(tt.present))
			assert.Equal(t, len(tt.present), c.order.Len())
			for k, want := range tt.present {
				got, ok := c.get(k)
				assert.True(t, ok, k)
				assert.Equal(t, want, got, k)
			}
			for _, k := range tt.absent {
				_, ok := c.get(k)
				assert.False(t, ok, k)
			}
		})
	}
}
