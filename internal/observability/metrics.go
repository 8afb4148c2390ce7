package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ufo_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// data load and the chart views.
type Metrics struct {
	// Data load metrics.
	RowsExtracted      prometheus.Counter
	RecordsLoaded      prometheus.Counter
	InvalidTimestamps  prometheus.Counter
	InvalidCoordinates prometheus.Counter
	ExtractErrors      prometheus.Counter
	BatchSize          prometheus.Histogram
	LoadDuration       prometheus.Histogram
	DatasetLoaded      prometheus.Gauge

	// Chart view metrics.
	Redraws          *prometheus.CounterVec   // labels: view
	RedrawDuration   *prometheus.HistogramVec // labels: view
	FilterChanges    *prometheus.CounterVec   // labels: view, field
	ViewInitFailures *prometheus.CounterVec   // labels: view
	MarkerFailures   prometheus.Counter

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RowsExtracted,
		m.RecordsLoaded,
		m.InvalidTimestamps,
		m.InvalidCoordinates,
		m.ExtractErrors,
		m.BatchSize,
		m.LoadDuration,
		m.DatasetLoaded,
		m.Redraws,
		m.RedrawDuration,
		m.FilterChanges,
		m.ViewInitFailures,
		m.MarkerFailures,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_extracted_total",
			Help:      "Raw rows read from the data source.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "Normalized sighting records published to the dashboard.",
		}),
		InvalidTimestamps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_timestamps_total",
			Help:      "Records whose Date_time could not be parsed.",
		}),
		InvalidCoordinates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_coordinates_total",
			Help:      "Records excluded from the map by the coordinate guard.",
		}),
		ExtractErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extract_errors_total",
			Help:      "Failed batch reads from the data source.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of raw rows per extracted batch.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000, 5000},
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of the one-time data load, extract through publish.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_loaded",
			Help:      "1 once the sighting data set has been published to the views.",
		}),
		Redraws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redraws_total",
			Help:      "Aggregate-and-draw cycles by chart view.",
		}, []string{"view"}),
		RedrawDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "redraw_duration_seconds",
			Help:      "Duration of one filter, aggregate, and diff-render cycle.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"view"}),
		FilterChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_changes_total",
			Help:      "Dropdown change events by chart view and field.",
		}, []string{"view", "field"}),
		ViewInitFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_init_failures_total",
			Help:      "Chart views that could not be initialized.",
		}, []string{"view"}),
		MarkerFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "marker_failures_total",
			Help:      "Map markers that could not be constructed.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when marker geocoding is enabled, 0 otherwise.",
		}),
	}
}
