// Command validate loads a sighting export the way the dashboard does and
// checks the normalized records and every aggregation against the invariants
// the charts depend on: one record per row, fixed-domain dimensions, totals
// that add up, and filters that partition the data.
//
// Usage:
//
//	go run ./cmd/validate --csv data/ufo-sightings-transformed.csv
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	goflags "github.com/jessevdk/go-flags"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/adapter/csvsource"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
)

type options struct {
	CSV       string `long:"csv" description:"path to the sighting CSV export" required:"true"`
	BatchSize int    `long:"batch-size" default:"1000" description:"rows read per batch"`
	Verbose   bool   `short:"v" long:"verbose" description:"log skipped rows"`
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	var opts options
	if _, err := goflags.Parse(&opts); err != nil {
		var flagErr *goflags.Error
		if errors.As(err, &flagErr) && flagErr.Type == goflags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if code := run(opts); code != 0 {
		os.Exit(code)
	}
}

func run(opts options) int {
	level := "error"
	if opts.Verbose {
		level = "warn"
	}
	logger := sharedobs.NewLogger(level, "text")

	fmt.Println("=== UFO Sighting Data Validation ===")
	fmt.Println()

	src, err := csvsource.Open(opts.CSV, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	defer src.Close()

	rows, err := readAll(src, opts.BatchSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read %s: %v\n", opts.CSV, err)
		return 1
	}
	records := domain.Normalize(rows)

	phases := []*phase{
		validateHeader(src.Header()),
		validateNormalization(rows, records),
		validateDimensions(records),
		validateFilters(records),
		validateGeo(records),
	}

	printSummary(records, src.Skipped())

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func readAll(src *csvsource.Source, batchSize int) ([]domain.RawRow, error) {
	var rows []domain.RawRow
	for {
		batch, err := src.ExtractBatch(context.Background(), batchSize)
		rows = append(rows, batch...)
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func printSummary(records []domain.SightingRecord, skipped int) {
	invalidTS, invalidGeo := 0, 0
	for _, r := range records {
		if !r.HasTimestamp() {
			invalidTS++
		}
		if !r.HasValidCoordinates() {
			invalidGeo++
		}
	}
	fmt.Printf("Records: %d normalized, %d malformed rows skipped\n", len(records), skipped)
	fmt.Printf("         %d invalid timestamps, %d unmappable coordinates\n", invalidTS, invalidGeo)
	fmt.Printf("         %d shapes, %d countries\n",
		len(domain.DistinctValues(records, domain.FieldShape)),
		len(domain.DistinctValues(records, domain.FieldCountry)))
}

// ── Phase 1: Header ──

var requiredColumns = []string{
	domain.ColDateTime, domain.ColSeason, domain.ColCountryCode, domain.ColLatitude,
	domain.ColLongitude, domain.ColShape, domain.ColDescription, domain.ColHour,
}

func validateHeader(header []string) *phase {
	p := &phase{name: "Phase 1: Header columns"}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, c := range requiredColumns {
		if !present[c] {
			p.errorf("missing column %q", c)
		}
	}
	return p
}

// ── Phase 2: Normalization ──

func validateNormalization(rows []domain.RawRow, records []domain.SightingRecord) *phase {
	p := &phase{name: "Phase 2: Normalization"}

	if len(rows) != len(records) {
		p.errorf("%d rows normalized into %d records", len(rows), len(records))
		return p
	}
	for i, r := range records {
		line := i + 2
		if r.HasTimestamp() {
			if r.Hour < 0 || r.Hour > 23 {
				p.errorf("line %d: hour %d out of range", line, r.Hour)
			}
			if want := domain.DayOfWeek(int(r.Timestamp.Weekday())); r.DayOfWeek != want {
				p.errorf("line %d: day of week %q, timestamp says %q", line, r.DayOfWeek, want)
			}
		} else if r.Hour != -1 || r.DayOfWeek != "" {
			p.errorf("line %d: invalid timestamp but hour=%d day=%q", line, r.Hour, r.DayOfWeek)
		}
		if r.Season != "" && !domain.IsSeason(r.Season) {
			p.errorf("line %d: unknown season %q", line, r.Season)
		}
		if again := domain.NormalizeRow(rows[i]); again.ID != r.ID {
			p.errorf("line %d: id not deterministic", line)
		}
	}
	return p
}

// ── Phase 3: Dimensions ──

func validateDimensions(records []domain.SightingRecord) *phase {
	p := &phase{name: "Phase 3: Aggregation invariants"}

	timed := 0
	for _, r := range records {
		if r.HasTimestamp() {
			timed++
		}
	}

	weekdays := domain.WeekdayCounts(records)
	hours := domain.HourCounts(records)
	seasons := domain.SeasonCounts(records)
	years := domain.YearCounts(records)

	if len(weekdays) != 7 {
		p.errorf("weekday dimension has %d buckets, want 7", len(weekdays))
	}
	if len(hours) != 24 {
		p.errorf("hour dimension has %d buckets, want 24", len(hours))
	}
	if len(seasons) != 4 {
		p.errorf("season dimension has %d buckets, want 4", len(seasons))
	}

	for name, total := range map[string]int{
		"weekday": domain.BucketTotal(weekdays),
		"hour":    domain.BucketTotal(hours),
		"season":  domain.BucketTotal(seasons),
		"year":    domain.BucketTotal(years),
	} {
		if total != timed {
			p.errorf("%s counts sum to %d, want %d records with a timestamp", name, total, timed)
		}
	}

	for i := 1; i < len(years); i++ {
		if years[i].Key <= years[i-1].Key {
			p.errorf("years not ascending at %d", years[i].Key)
		}
	}

	density := domain.DayHourCounts(records)
	withHour := 0
	for _, r := range records {
		if _, ok := r.ReportedHourKey(); ok && r.DayOfWeek != "" {
			withHour++
		}
	}
	if density.Total() != withHour {
		p.errorf("day x hour cells sum to %d, want %d", density.Total(), withHour)
	}
	return p
}

// ── Phase 4: Filters ──

func validateFilters(records []domain.SightingRecord) *phase {
	p := &phase{name: "Phase 4: Filter partitions"}

	if n := len(domain.Filter(records, domain.DefaultSelection())); n != len(records) {
		p.errorf("default selection keeps %d of %d records", n, len(records))
	}

	for _, f := range []domain.Field{domain.FieldShape, domain.FieldCountry, domain.FieldSeason} {
		sum := 0
		for _, v := range domain.DistinctValues(records, f) {
			sel, err := domain.DefaultSelection().With(f, v)
			if err != nil {
				p.errorf("%s=%q: %v", f, v, err)
				continue
			}
			sum += len(domain.Filter(records, sel))
		}
		blank := 0
		for _, r := range records {
			if strings.TrimSpace(f.Value(r)) == "" {
				blank++
			}
		}
		if sum+blank != len(records) {
			p.errorf("%s filters cover %d records plus %d blank, want %d", f, sum, blank, len(records))
		}
	}
	return p
}

// ── Phase 5: Geo ──

func validateGeo(records []domain.SightingRecord) *phase {
	p := &phase{name: "Phase 5: Coordinate partition"}

	valid, invalid := domain.PartitionGeo(records)
	if len(valid)+len(invalid) != len(records) {
		p.errorf("partition has %d+%d records, want %d", len(valid), len(invalid), len(records))
	}
	for _, r := range valid {
		if !domain.ValidCoordinates(r.Latitude, r.Longitude) {
			p.errorf("record %s mapped with invalid coordinates (%v, %v)", r.ID, r.Latitude, r.Longitude)
		}
	}
	return p
}
