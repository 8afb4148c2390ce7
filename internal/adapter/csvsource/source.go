package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
)

// Source reads sighting rows from a CSV export with a header line.
// It implements pipeline.BatchExtractor.
type Source struct {
	reader  *csv.Reader
	closer  io.Closer
	header  []string
	logger  *slog.Logger
	skipped int
}

// Open opens a CSV file and reads its header.
func Open(path string, logger *slog.Logger) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	s, err := NewSource(f, logger)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

// NewSource reads the header from r. Rows of any width are accepted: missing
// trailing columns read as empty and extra columns are ignored.
func NewSource(r io.Reader, logger *slog.Logger) (*Source, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read csv header: empty input")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	return &Source{reader: cr, header: header, logger: logger}, nil
}

// Header returns the column names.
func (s *Source) Header() []string {
	return append([]string(nil), s.header...)
}

// Skipped returns the number of malformed lines dropped so far.
func (s *Source) Skipped() int {
	return s.skipped
}

// ExtractBatch reads up to batchSize rows. Malformed lines are logged and
// skipped. It returns io.EOF, possibly together with the final rows, once the
// file is exhausted.
func (s *Source) ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawRow, error) {
	rows := make([]domain.RawRow, 0, batchSize)
	for len(rows) < batchSize {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		record, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			s.skipped++
			s.logger.Warn("skipping malformed csv line", "line", parseErr.StartLine, "error", parseErr.Err)
			continue
		}
		if err != nil {
			return rows, fmt.Errorf("read csv: %w", err)
		}

		rows = append(rows, s.toRow(record))
	}
	return rows, nil
}

func (s *Source) toRow(record []string) domain.RawRow {
	row := make(domain.RawRow, len(s.header))
	for i, col := range s.header {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
