package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andina-geo/geocoder/ingest"
	"github.com/andina-geo/geocoder/store"
)

type recordingStore struct {
	upserted  []store.Address
	failNext  bool
	failCalls int
}

func (r *recordingStore) UpsertBatch(ctx context.Context, batch []store.Address) error {
	if r.failNext {
		r.failCalls++
		r.failNext = false
		return assertErr
	}
	r.upserted = append(r.upserted, batch...)
	return nil
}
func (r *recordingStore) FindByFingerprint(ctx context.Context, fingerprint string) (store.Address, bool, error) {
	return store.Address{}, false, nil
}
func (r *recordingStore) FindByCity(ctx context.Context, city string, limit int) ([]store.Address, error) {
	return nil, nil
}
func (r *recordingStore) FindByStreet(ctx context.Context, street string, limit int) ([]store.Address, error) {
	return nil, nil
}
func (r *recordingStore) FindByRegion(ctx context.Context, region string, limit int) ([]store.Address, error) {
	return nil, nil
}
func (r *recordingStore) FindByCityStreetNumber(ctx context.Context, city, street, number string) ([]store.Address, error) {
	return nil, nil
}
func (r *recordingStore) FindByCoordinates(ctx context.Context, longitude, latitude float64) ([]store.Address, error) {
	return nil, nil
}
func (r *recordingStore) SearchExact(ctx context.Context, city, street, region string, limit int) ([]store.Address, error) {
	return nil, nil
}
func (r *recordingStore) SearchFuzzy(ctx context.Context, city, streetSubstring, region string, limit int) ([]store.Address, error) {
	return nil, nil
}

var assertErr = errBatchFailed{}

type errBatchFailed struct{}

func (errBatchFailed) Error() string { return "batch failed" }

const sampleGeoJSON = `{"type":"Feature","properties":{"hash":"abc123","number":"57","street":"KR 43","unit":"","city":"Jardín","district":"","region":"ANT","postcode":"","id":"ext-1","accuracy":"ROOFTOP"},"geometry":{"type":"Point","coordinates":[-75.82,5.59]}}
{"type":"Feature","properties":{"hash":"def456","number":"100","street":"KR 43","city":"Jardín","region":"ANT"},"geometry":{"type":"Point","coordinates":[-75.815,5.595]}}

{"type":"NotAFeature","properties":{}}
{"type":"Feature","properties":{"number":"1"},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}}
not valid json at all
`

func writeTempGeoJSON(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "addresses.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleGeoJSON), 0o644))
	return path
}

func TestIngesterParsesAndUpsertsFeatures(t *testing.T) {
	path := writeTempGeoJSON(t)
	s := &recordingStore{}
	ing := ingest.New(s, ingest.WithBatchSize(10), ingest.WithCheckpointPath(filepath.Join(t.TempDir(), "checkpoint.txt")))

	stats, err := ing.Run(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Errors, "the malformed JSON line counts as an error")
	assert.Equal(t, 2, stats.Inserted, "two valid Point features upsert")
	require.Len(t, s.upserted, 2)
	assert.Equal(t, "Jardín", *s.upserted[0].City)
	assert.Equal(t, "ext-1", *s.upserted[0].ExternalID)
	assert.Nil(t, s.upserted[0].Unit, "empty-string properties become absent")
}

func TestIngesterSkipsLines(t *testing.T) {
	path := writeTempGeoJSON(t)
	s := &recordingStore{}
	ing := ingest.New(s, ingest.WithSkip(1), ingest.WithCheckpointPath(filepath.Join(t.TempDir(), "checkpoint.txt")))

	stats, err := ing.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Inserted, "skipping the first line drops the first feature")
}

func TestIngesterCountsBatchFailureWithoutAborting(t *testing.T) {
	path := writeTempGeoJSON(t)
	s := &recordingStore{failNext: true}
	ing := ingest.New(s, ingest.WithBatchSize(1), ingest.WithCheckpointPath(filepath.Join(t.TempDir(), "checkpoint.txt")))

	stats, err := ing.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.failCalls)
	assert.Greater(t, stats.Errors, 0)
}

func TestCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.txt")

	n, err := ingest.ReadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "a missing checkpoint reads as zero")

	require.NoError(t, ingest.WriteCheckpoint(path, 42))
	n, err = ingest.ReadCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	require.NoError(t, ingest.RemoveCheckpoint(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStatsProgressAndETAUnknownWithoutTotal(t *testing.T) {
	s := ingest.Stats{}
	assert.Equal(t, -1.0, s.ProgressPercent())
	assert.Equal(t, int64(0), int64(s.ETA()))
}
