package kafka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/config"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Reader consumes sighting rows from a Kafka topic, one JSON object per
// message. It implements pipeline.BatchExtractor and pipeline.Committer.
// The topic counts as exhausted once no message arrives within the idle
// timeout.
type Reader struct {
	reader      *kafkago.Reader
	idleTimeout time.Duration
	logger      *slog.Logger
	pending     []kafkago.Message
}

// NewReader creates a consumer-group reader for the configured source topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaSourceTopic,
		GroupID:     cfg.KafkaGroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	return &Reader{reader: r, idleTimeout: cfg.KafkaIdleTimeout, logger: logger}
}

// ExtractBatch fetches up to batchSize messages. Messages that are not JSON
// objects are logged and skipped; their offsets are still committed.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawRow, error) {
	rows := make([]domain.RawRow, 0, batchSize)
	for len(rows) < batchSize {
		fetchCtx, cancel := context.WithTimeout(ctx, r.idleTimeout)
		msg, err := r.reader.FetchMessage(fetchCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return rows, ctx.Err()
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return rows, io.EOF
			}
			return rows, fmt.Errorf("fetch message: %w", err)
		}

		r.pending = append(r.pending, msg)
		row, err := decodeRow(msg.Value)
		if err != nil {
			r.logger.Warn("skipping undecodable message",
				"error", err,
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
			)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Commit acknowledges every message fetched since the last commit.
func (r *Reader) Commit(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.reader.CommitMessages(ctx, r.pending...); err != nil {
		return fmt.Errorf("commit %d messages: %w", len(r.pending), err)
	}
	r.pending = nil
	return nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

// decodeRow flattens a JSON object into a RawRow. Scalars keep their JSON
// text form, null becomes empty, and nested values are re-encoded.
func decodeRow(value []byte) (domain.RawRow, error) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode sighting: %w", err)
	}
	if obj == nil {
		return nil, errors.New("decode sighting: not a JSON object")
	}

	row := make(domain.RawRow, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case nil:
			row[k] = ""
		case string:
			row[k] = val
		case json.Number:
			row[k] = val.String()
		case bool:
			row[k] = strconv.FormatBool(val)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return nil, fmt.Errorf("encode field %s: %w", k, err)
			}
			row[k] = string(b)
		}
	}
	return row, nil
}
