package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/observability"
)

var (
	// ErrNotReady is reported by CheckReadiness while the load is running.
	ErrNotReady = errors.New("pipeline has not published the data set yet")
	// ErrLoadFailed is reported by CheckReadiness once Run has given up.
	ErrLoadFailed = errors.New("data load failed")
)

// BatchExtractor reads up to batchSize raw rows from the source. It returns
// io.EOF once the source is exhausted; rows returned alongside io.EOF are
// still valid.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawRow, error)
}

// Committer is implemented by extractors that acknowledge consumed rows once
// the data set has been published.
type Committer interface {
	Commit(ctx context.Context) error
}

// Transformer converts raw rows into sighting records.
type Transformer interface {
	Transform(ctx context.Context, rows []domain.RawRow) []domain.SightingRecord
}

// Sink receives the complete normalized data set exactly once.
type Sink interface {
	Publish(ctx context.Context, records []domain.SightingRecord) error
}

// Pipeline orchestrates the one-time extract, normalize, publish load.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	sink        Sink
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	failure     atomic.Pointer[error]
	batchSize   int
	maxRetries  int
}

// New creates a Pipeline. maxRetries bounds consecutive failed extracts;
// zero or less retries forever.
func New(e BatchExtractor, t Transformer, s Sink, logger *slog.Logger, metrics *observability.Metrics, batchSize, maxRetries int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		sink:        s,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
		maxRetries:  maxRetries,
	}
}

// CheckReadiness returns nil once the data set has been published,
// ErrLoadFailed (wrapping the cause) after a failed load, and ErrNotReady
// otherwise.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.ready.Load() {
		return nil
	}
	if cause := p.failure.Load(); cause != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, *cause)
	}
	return ErrNotReady
}

func (p *Pipeline) fail(err error) error {
	p.failure.Store(&err)
	return err
}

// Run loads the source to exhaustion and publishes the result. It returns
// nil without publishing when ctx is cancelled first.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("data load started", "batch_size", p.batchSize)
	start := time.Now()

	records, err := p.extractAll(ctx)
	if err != nil {
		return p.fail(err)
	}
	if ctx.Err() != nil {
		p.logger.Info("data load stopping", "reason", ctx.Err())
		return nil
	}

	if err := p.sink.Publish(ctx, records); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return p.fail(fmt.Errorf("publish data set: %w", err))
	}
	p.metrics.RecordsLoaded.Add(float64(len(records)))

	if c, ok := p.extractor.(Committer); ok {
		if err := c.Commit(ctx); err != nil {
			p.logger.Warn("commit failed", "error", err)
		}
	}

	p.ready.Store(true)
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.logger.Info("data load complete",
		"records", len(records),
		"duration", time.Since(start),
	)
	return nil
}

// extractAll reads batches until the source reports io.EOF, normalizing each
// batch as it arrives.
func (p *Pipeline) extractAll(ctx context.Context) ([]domain.SightingRecord, error) {
	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second
	failures := 0

	var records []domain.SightingRecord
	for {
		if ctx.Err() != nil {
			return records, nil
		}

		rows, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if len(rows) > 0 {
			p.metrics.RowsExtracted.Add(float64(len(rows)))
			p.metrics.BatchSize.Observe(float64(len(rows)))
			records = append(records, p.transformer.Transform(ctx, rows)...)
		}

		switch {
		case errors.Is(err, io.EOF):
			return records, nil
		case err != nil:
			if ctx.Err() != nil {
				return records, nil
			}
			failures++
			p.metrics.ExtractErrors.Inc()
			p.logger.Error("extract batch failed", "error", err, "attempt", failures)
			if p.maxRetries > 0 && failures > p.maxRetries {
				return nil, fmt.Errorf("extract batch after %d attempts: %w", failures, err)
			}
			if !retry.SleepWithContext(ctx, backoff) {
				return records, nil
			}
			backoff = retry.NextBackoff(backoff, maxBackoff)
		default:
			failures = 0
			backoff = 200 * time.Millisecond
		}
	}
}
