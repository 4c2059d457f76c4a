package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/go.geojson"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/andina-geo/geocoder/store"
)

// DefaultBatchSize is the batch size used when a caller doesn't pick
// one.
const DefaultBatchSize = 1000

// checkpointEvery is how many batches elapse between checkpoint writes.
const checkpointEvery = 10

// Ingester reads a line-delimited GeoJSON file and upserts its
// features into a store.Store in batches.
type Ingester struct {
	store          store.Store
	batchSize      int
	skip           int
	noCount        bool
	checkpointPath string
	rateLimiter    *rate.Limiter

	// RunID correlates log lines and metrics across one ingestion run.
	RunID uuid.UUID
}

// Option configures an Ingester.
type Option func(*Ingester)

// WithBatchSize overrides DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(i *Ingester) {
		if n > 0 {
			i.batchSize = n
		}
	}
}

// WithSkip drops the first n lines before ingesting, for resuming from
// a checkpoint.
func WithSkip(n int) Option {
	return func(i *Ingester) { i.skip = n }
}

// WithNoCount skips the up-front line count used for ETA/progress
// reporting.
func WithNoCount(noCount bool) Option {
	return func(i *Ingester) { i.noCount = noCount }
}

// WithCheckpointPath overrides the default checkpoint file location.
func WithCheckpointPath(path string) Option {
	return func(i *Ingester) { i.checkpointPath = path }
}

// WithRateLimit paces batch upserts to at most batchesPerSecond,
// smoothing load on the store during a large import.
func WithRateLimit(batchesPerSecond float64) Option {
	return func(i *Ingester) {
		if batchesPerSecond > 0 {
			i.rateLimiter = rate.NewLimiter(rate.Limit(batchesPerSecond), 1)
		}
	}
}

// DefaultCheckpointPath is the default checkpoint file location.
const DefaultCheckpointPath = "./import_checkpoint.txt"

// New constructs an Ingester against s.
func New(s store.Store, options ...Option) *Ingester {
	i := &Ingester{
		store:          s,
		batchSize:      DefaultBatchSize,
		checkpointPath: DefaultCheckpointPath,
		RunID:          uuid.New(),
	}
	for _, opt := range options {
		opt(i)
	}
	return i
}

// Run ingests path, returning final Stats. A per-batch store error is
// counted and does not abort the run; the returned error is non-nil
// only when the file cannot be counted, opened or scanned, or when ctx
// is cancelled mid-run.
func (ing *Ingester) Run(ctx context.Context, path string) (Stats, error) {
	stats := Stats{started: timeNow()}

	if !ing.noCount {
		total, err := countLines(path)
		if err != nil {
			return stats, fmt.Errorf("ingest: count lines: %w", err)
		}
		stats.Total = total
	}

	f, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	batch := make([]store.Address, 0, ing.batchSize)
	batchesSinceCheckpoint := 0

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if ing.rateLimiter != nil {
			if err := ing.rateLimiter.Wait(ctx); err != nil {
				return err
			}
		}
		if err := ing.store.UpsertBatch(ctx, batch); err != nil {
			stats.Errors += len(batch)
		} else {
			stats.Inserted += len(batch)
		}
		batch = batch[:0]

		batchesSinceCheckpoint++
		if batchesSinceCheckpoint >= checkpointEvery {
			_ = WriteCheckpoint(ing.checkpointPath, ing.skip+stats.Processed)
			batchesSinceCheckpoint = 0
		}
		return nil
	}

	for scanner.Scan() {
		lineNo++
		if lineNo <= ing.skip {
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		addr, ok, err := parseFeatureLine(line)
		stats.Processed++
		if err != nil {
			stats.Errors++
			continue
		}
		if !ok {
			continue
		}
		batch = append(batch, addr)

		if len(batch) >= ing.batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}

		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("ingest: scan %s: %w", path, err)
	}

	if err := flush(); err != nil {
		return stats, err
	}

	return stats, nil
}

// parseFeatureLine parses one GeoJSON Feature line into a store.Address.
// ok is false for a line that parses as valid JSON but should be
// silently skipped (not type "Feature", or missing coordinates); err
// is non-nil only for genuinely malformed JSON.
func parseFeatureLine(line string) (store.Address, bool, error) {
	var feature geojson.Feature
	if err := json.Unmarshal([]byte(line), &feature); err != nil {
		return store.Address{}, false, fmt.Errorf("ingest: unmarshal feature: %w", err)
	}
	if feature.Type != "Feature" {
		return store.Address{}, false, nil
	}
	if feature.Geometry == nil || feature.Geometry.Type != geojson.GeometryPoint || len(feature.Geometry.Point) < 2 {
		return store.Address{}, false, nil
	}

	lon, lat := feature.Geometry.Point[0], feature.Geometry.Point[1]
	lonDec := decimalOf(lon)
	latDec := decimalOf(lat)

	addr := store.Address{
		Fingerprint: stringProp(feature.Properties, "hash"),
		Number:      stringProp(feature.Properties, "number"),
		Street:      stringProp(feature.Properties, "street"),
		Unit:        stringProp(feature.Properties, "unit"),
		City:        stringProp(feature.Properties, "city"),
		District:    stringProp(feature.Properties, "district"),
		Region:      stringProp(feature.Properties, "region"),
		Postcode:    stringProp(feature.Properties, "postcode"),
		ExternalID:  stringProp(feature.Properties, "id"),
		Accuracy:    stringProp(feature.Properties, "accuracy"),
		Longitude:   lonDec,
		Latitude:    latDec,
	}
	return addr, true, nil
}

// stringProp reads a string-typed property, returning nil for an
// absent, non-string, or zero-length value — zero-length strings
// become absent.
func stringProp(props map[string]interface{}, key string) *string {
	if props == nil {
		return nil
	}
	v, ok := props[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	buf := make([]byte, 64*1024)
	for {
		n, err := f.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				count++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

func timeNow() time.Time { return time.Now() }

// decimalOf rounds a float coordinate to 7 fractional digits when
// crossing into the store's fixed-point representation.
func decimalOf(f float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(f).Round(7))
}
