package search_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andina-geo/geocoder/internal/search"
	"github.com/andina-geo/geocoder/store"
)

// fakeStore implements store.Store with scripted exact/fuzzy results,
// enough to drive the tiering logic in isolation from any database.
type fakeStore struct {
	exact      []store.Address
	exactErr   error
	fuzzy      []store.Address
	fuzzyErr   error
	exactCalls int
	fuzzyCalls int

	exactRegion string
}

func (f *fakeStore) UpsertBatch(ctx context.Context, batch []store.Address) error { return nil }
func (f *fakeStore) FindByFingerprint(ctx context.Context, fingerprint string) (store.Address, bool, error) {
	return store.Address{}, false, nil
}
func (f *fakeStore) FindByCity(ctx context.Context, city string, limit int) ([]store.Address, error) {
	return nil, nil
}
func (f *fakeStore) FindByStreet(ctx context.Context, street string, limit int) ([]store.Address, error) {
	return nil, nil
}
func (f *fakeStore) FindByRegion(ctx context.Context, region string, limit int) ([]store.Address, error) {
	return nil, nil
}
func (f *fakeStore) FindByCityStreetNumber(ctx context.Context, city, street, number string) ([]store.Address, error) {
	return nil, nil
}
func (f *fakeStore) FindByCoordinates(ctx context.Context, longitude, latitude float64) ([]store.Address, error) {
	return nil, nil
}
func (f *fakeStore) SearchExact(ctx context.Context, city, street, region string, limit int) ([]store.Address, error) {
	f.exactCalls++
	f.exactRegion = region
	return f.exact, f.exactErr
}
func (f *fakeStore) SearchFuzzy(ctx context.Context, city, streetSubstring, region string, limit int) ([]store.Address, error) {
	f.fuzzyCalls++
	return f.fuzzy, f.fuzzyErr
}

func addrAt(number string, lon, lat float64) store.Address {
	n := number
	return store.Address{
		Number:    &n,
		Longitude: decimal.NewNullDecimal(decimal.NewFromFloat(lon)),
		Latitude:  decimal.NewNullDecimal(decimal.NewFromFloat(lat)),
	}
}

func TestSearchStreetsUsesExactTierWhenNonEmpty(t *testing.T) {
	fs := &fakeStore{exact: []store.Address{addrAt("57", -74.08, 4.65)}}
	s := search.New(fs)

	got, err := s.SearchStreets(context.Background(), "KR 43", "BOGOTA", "CO")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, fs.exactCalls)
	assert.Equal(t, 0, fs.fuzzyCalls, "fuzzy tier must not run when exact tier has results")
}

func TestSearchStreetsFallsBackToFuzzyTier(t *testing.T) {
	fs := &fakeStore{
		exact: nil,
		fuzzy: []store.Address{addrAt("60", -74.08, 4.65)},
	}
	s := search.New(fs)

	got, err := s.SearchStreets(context.Background(), "KR 43", "BOGOTA", "CO")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, fs.exactCalls)
	assert.Equal(t, 1, fs.fuzzyCalls)
}

func TestSearchStreetsDefaultsRegion(t *testing.T) {
	fs := &fakeStore{}
	s := search.New(fs)
	_, err := s.SearchStreets(context.Background(), "KR 43", "BOGOTA", "")
	require.NoError(t, err)
	assert.Equal(t, search.DefaultRegion, fs.exactRegion)
}

func TestStreetCentroidAveragesCoordinates(t *testing.T) {
	fs := &fakeStore{
		exact: []store.Address{
			addrAt("10", -74.0, 4.0),
			addrAt("20", -74.2, 4.2),
		},
	}
	s := search.New(fs)

	lon, lat, ok, err := s.StreetCentroid(context.Background(), "KR 43", "BOGOTA", "CO")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -74.1, lon, 1e-9)
	assert.InDelta(t, 4.1, lat, 1e-9)
}

func TestStreetCentroidNoCandidatesIsNotOK(t *testing.T) {
	fs := &fakeStore{}
	s := search.New(fs)

	_, _, ok, err := s.StreetCentroid(context.Background(), "KR 43", "BOGOTA", "CO")
	require.NoError(t, err)
	assert.False(t, ok)
}
