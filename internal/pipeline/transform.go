package pipeline

import (
	"context"
	"log/slog"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/observability"
)

// SightingTransformer implements Transformer with the domain normalizer and
// records data quality metrics for each batch.
type SightingTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a SightingTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *SightingTransformer {
	return &SightingTransformer{
		logger:  logger,
		metrics: metrics,
	}
}

// Transform normalizes a batch. It never fails: unparseable values become
// sentinels and are only counted here.
func (t *SightingTransformer) Transform(_ context.Context, rows []domain.RawRow) []domain.SightingRecord {
	records := domain.Normalize(rows)

	var badTime, badGeo int
	for _, r := range records {
		if !r.HasTimestamp() {
			badTime++
		}
		if !r.HasValidCoordinates() {
			badGeo++
		}
	}
	t.metrics.InvalidTimestamps.Add(float64(badTime))
	t.metrics.InvalidCoordinates.Add(float64(badGeo))

	if badTime > 0 || badGeo > 0 {
		t.logger.Debug("normalized batch with invalid values",
			"rows", len(rows),
			"invalid_timestamps", badTime,
			"invalid_coordinates", badGeo,
		)
	}
	return records
}
