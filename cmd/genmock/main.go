// Command genmock writes a deterministic mock sighting export for local runs
// and tests. The same seed always produces the same file. A share of rows is
// deliberately malformed so the dashboard's invalid-data paths get exercised.
// With --brokers set, the rows are also published to Kafka for the kafka
// data source.
//
// Usage:
//
//	go run ./cmd/genmock --out data/mock/ufo-sightings.csv --rows 2000 --seed 42
//	go run ./cmd/genmock --out data/mock/ufo-sightings.csv --brokers localhost:9092
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	goflags "github.com/jessevdk/go-flags"
	kafkaadapter "github.com/nickhafer/ufo-sightings-dashboard/internal/adapter/kafka"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
)

type options struct {
	Out         string   `long:"out" description:"output CSV path" required:"true"`
	Rows        int      `long:"rows" default:"1000" description:"number of rows to generate"`
	Seed        uint64   `long:"seed" default:"42" description:"random seed"`
	InvalidRate float64  `long:"invalid-rate" default:"0.05" description:"share of rows with a malformed date or coordinates"`
	Brokers     []string `long:"brokers" description:"kafka brokers to publish the rows to (repeatable)"`
	Topic       string   `long:"topic" default:"ufo-sightings" description:"kafka topic"`
}

var columns = []string{
	domain.ColDateTime, domain.ColSeason, domain.ColCountryCode, domain.ColCountry,
	domain.ColRegion, domain.ColLocale, domain.ColLatitude, domain.ColLongitude,
	domain.ColShape, domain.ColDurationSeconds, domain.ColDuration,
	domain.ColDescription, domain.ColHour,
}

var (
	startDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	spanDays  = int(time.Date(2014, time.December, 31, 0, 0, 0, 0, time.UTC).Sub(startDate).Hours() / 24)
)

type place struct {
	code, country, region, locale string
	lat, lon                      float64
}

var places = []place{
	{"USA", "United States", "Arizona", "Phoenix", 33.45, -112.07},
	{"USA", "United States", "Washington", "Seattle", 47.61, -122.33},
	{"USA", "United States", "Texas", "Austin", 30.27, -97.74},
	{"USA", "United States", "New York", "Buffalo", 42.89, -78.88},
	{"CAN", "Canada", "British Columbia", "Vancouver", 49.28, -123.12},
	{"CAN", "Canada", "Ontario", "Toronto", 43.65, -79.38},
	{"GBR", "United Kingdom", "England", "London", 51.51, -0.13},
	{"AUS", "Australia", "Victoria", "Melbourne", -37.81, 144.96},
	{"MEX", "Mexico", "Jalisco", "Guadalajara", 20.66, -103.35},
}

var shapes = []string{"Light", "Circle", "Triangle", "Fireball", "Disk", "Sphere", "Oval", "Cigar", "Formation", "Unknown"}

var descriptions = []string{
	"Bright light hovering silently above the tree line before moving off to the north.",
	"Three lights in a triangular formation moved slowly across the sky and then vanished.",
	"Orange glowing object pulsed several times, stopped, then accelerated away at high speed with no sound at all.",
	"Saw a metallic disk reflecting sunlight over the lake.",
	"Object changed color from white to red to green while remaining stationary for several minutes, witnessed by my whole family from the back porch.",
}

var malformed = []func(r domain.RawRow){
	func(r domain.RawRow) { r[domain.ColDateTime] = "unknown" },
	func(r domain.RawRow) { r[domain.ColLatitude] = "n/a" },
	func(r domain.RawRow) { r[domain.ColLatitude] = "123.4" },
	func(r domain.RawRow) { r[domain.ColLongitude] = "" },
	func(r domain.RawRow) { r[domain.ColHour] = "" },
}

func main() {
	var opts options
	if _, err := goflags.Parse(&opts); err != nil {
		var flagErr *goflags.Error
		if errors.As(err, &flagErr) && flagErr.Type == goflags.ErrHelp {
			return
		}
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	if opts.Rows <= 0 {
		return errors.New("--rows must be positive")
	}
	if opts.InvalidRate < 0 || opts.InvalidRate > 1 {
		return errors.New("--invalid-rate must be between 0 and 1")
	}

	rows := generate(opts.Rows, opts.Seed, opts.InvalidRate)

	if err := writeCSV(opts.Out, rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	log.Printf("wrote %d rows: %s", len(rows), opts.Out)

	if len(opts.Brokers) > 0 {
		if err := publish(opts.Brokers, opts.Topic, rows); err != nil {
			return fmt.Errorf("publishing to kafka: %w", err)
		}
		log.Printf("published %d rows to %s", len(rows), opts.Topic)
	}

	printStats(domain.Normalize(rows))
	return nil
}

func generate(n int, seed uint64, invalidRate float64) []domain.RawRow {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rows := make([]domain.RawRow, n)
	for i := range rows {
		rows[i] = generateRow(rng)
		if rng.Float64() < invalidRate {
			malformed[rng.IntN(len(malformed))](rows[i])
		}
	}
	return rows
}

func generateRow(rng *rand.Rand) domain.RawRow {
	ts := startDate.
		AddDate(0, 0, rng.IntN(spanDays)).
		Add(time.Duration(rng.IntN(24*60)) * time.Minute)
	p := places[rng.IntN(len(places))]
	secs := 5 * (1 + rng.IntN(720))

	return domain.RawRow{
		domain.ColDateTime:        ts.Format("2006-01-02 15:04:05"),
		domain.ColSeason:          domain.SeasonOf(ts),
		domain.ColCountryCode:     p.code,
		domain.ColCountry:         p.country,
		domain.ColRegion:          p.region,
		domain.ColLocale:          p.locale,
		domain.ColLatitude:        strconv.FormatFloat(p.lat+rng.NormFloat64()*0.3, 'f', 4, 64),
		domain.ColLongitude:       strconv.FormatFloat(p.lon+rng.NormFloat64()*0.3, 'f', 4, 64),
		domain.ColShape:           shapes[rng.IntN(len(shapes))],
		domain.ColDurationSeconds: strconv.Itoa(secs),
		domain.ColDuration:        durationText(secs),
		domain.ColDescription:     descriptions[rng.IntN(len(descriptions))],
		domain.ColHour:            strconv.Itoa(ts.Hour()),
	}
}

func durationText(secs int) string {
	switch {
	case secs < 60:
		return fmt.Sprintf("%d seconds", secs)
	case secs < 3600:
		return fmt.Sprintf("%d minutes", secs/60)
	default:
		return fmt.Sprintf("%d hours", secs/3600)
	}
}

func writeCSV(path string, rows []domain.RawRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, c := range columns {
			record[i] = row[c]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func publish(brokers []string, topic string, rows []domain.RawRow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	w := kafkaadapter.NewWriter(brokers, topic, sharedobs.NewLogger("info", "text"))
	defer w.Close()
	return w.PublishRows(ctx, rows)
}

type keyCount struct {
	key   string
	count int
}

func printStats(records []domain.SightingRecord) {
	valid, invalid := domain.PartitionGeo(records)
	invalidTS := 0
	for _, r := range records {
		if !r.HasTimestamp() {
			invalidTS++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(records))
	fmt.Printf("Invalid timestamps: %d\n", invalidTS)
	fmt.Printf("Mappable: %d, unmappable: %d\n", len(valid), len(invalid))

	fmt.Print("By season:")
	for _, b := range domain.SeasonCounts(records) {
		fmt.Printf(" %s=%d", b.Key, b.Count)
	}
	fmt.Println()

	fmt.Print("By weekday:")
	for _, b := range domain.WeekdayCounts(records) {
		fmt.Printf(" %s=%d", b.Key[:3], b.Count)
	}
	fmt.Println()

	shapeCounts := domain.Aggregate(records, func(r domain.SightingRecord) (string, bool) {
		return r.Shape, r.Shape != ""
	})
	sc := make([]keyCount, 0, shapeCounts.Len())
	for _, b := range shapeCounts.Buckets() {
		sc = append(sc, keyCount{b.Key, b.Count})
	}
	sort.Slice(sc, func(i, j int) bool {
		if sc[i].count != sc[j].count {
			return sc[i].count > sc[j].count
		}
		return sc[i].key < sc[j].key
	})
	fmt.Printf("Shapes (%d):", len(sc))
	for _, s := range sc {
		fmt.Printf(" %s=%d", s.key, s.count)
	}
	fmt.Println()
}
