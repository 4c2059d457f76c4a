package search

import (
	"context"
	"fmt"

	"github.com/andina-geo/geocoder/store"
)

// DefaultRegion is used when a request omits one (spec.md §4.3).
const DefaultRegion = "ANT"

// CandidateCap bounds both search tiers at 100 rows — an explicit
// trade-off between match quality and query cost (spec.md §4.3).
const CandidateCap = 100

// Searcher implements component E against a store.Store.
type Searcher struct {
	store store.Store
}

func New(s store.Store) *Searcher {
	return &Searcher{store: s}
}

// SearchStreets runs the two-tier lookup: exact match, then (only if
// tier one is empty) a fuzzy ILIKE match over the street column.
func (s *Searcher) SearchStreets(ctx context.Context, streetNameFull, city, region string) ([]store.Address, error) {
	if region == "" {
		region = DefaultRegion
	}

	exact, err := s.store.SearchExact(ctx, city, streetNameFull, region, CandidateCap)
	if err != nil {
		return nil, fmt.Errorf("search: exact tier: %w", err)
	}
	if len(exact) > 0 {
		return exact, nil
	}

	fuzzy, err := s.store.SearchFuzzy(ctx, city, streetNameFull, region, CandidateCap)
	if err != nil {
		return nil, fmt.Errorf("search: fuzzy tier: %w", err)
	}
	return fuzzy, nil
}

// StreetCentroid returns the arithmetic mean of every candidate
// coordinate on streetNameFull within city/region, regardless of house
// number, used as component I's fallback when no segment can be
// matched. ok is false when there are no addresses with coordinates.
func (s *Searcher) StreetCentroid(ctx context.Context, streetNameFull, city, region string) (lon, lat float64, ok bool, err error) {
	if region == "" {
		region = DefaultRegion
	}

	candidates, searchErr := s.store.SearchExact(ctx, city, streetNameFull, region, CandidateCap)
	if searchErr != nil {
		return 0, 0, false, fmt.Errorf("search: centroid exact tier: %w", searchErr)
	}
	if len(candidates) == 0 {
		candidates, searchErr = s.store.SearchFuzzy(ctx, city, streetNameFull, region, CandidateCap)
		if searchErr != nil {
			return 0, 0, false, fmt.Errorf("search: centroid fuzzy tier: %w", searchErr)
		}
	}

	var sumLon, sumLat float64
	var n int
	for _, c := range candidates {
		cLon, cLat, hasCoords := c.Coordinates()
		if !hasCoords {
			continue
		}
		sumLon += cLon
		sumLat += cLat
		n++
	}
	if n == 0 {
		return 0, 0, false, nil
	}
	return sumLon / float64(n), sumLat / float64(n), true, nil
}
