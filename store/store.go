package store

import "context"

// Store is the persistence contract the ingester and the geocoding
// pipeline depend on. Every method may suspend on I/O — store queries
// and batch writes are the pipeline's only suspension points.
type Store interface {
	// UpsertBatch inserts or updates every row in batch, keyed by
	// Fingerprint, updating every value column on conflict. A nil or
	// empty Fingerprint row is always inserted fresh — the unique index
	// only applies when a fingerprint is present.
	UpsertBatch(ctx context.Context, batch []Address) error

	// FindByFingerprint looks up a single address by its unique
	// fingerprint. Returns ok=false, not an error, when absent.
	FindByFingerprint(ctx context.Context, fingerprint string) (addr Address, ok bool, err error)

	// FindByCity returns up to limit addresses in the given city.
	FindByCity(ctx context.Context, city string, limit int) ([]Address, error)

	// FindByStreet returns up to limit addresses on the given street
	// (exact match on the normalized street column).
	FindByStreet(ctx context.Context, street string, limit int) ([]Address, error)

	// FindByRegion returns up to limit addresses in the given region.
	FindByRegion(ctx context.Context, region string, limit int) ([]Address, error)

	// FindByCityStreetNumber returns addresses matching all three
	// fields exactly.
	FindByCityStreetNumber(ctx context.Context, city, street, number string) ([]Address, error)

	// FindByCoordinates returns addresses at exactly the given
	// (longitude, latitude) pair — an exact-match lookup over the
	// composite coordinate index, not a radius search; reverse
	// geocoding is out of scope for this store.
	FindByCoordinates(ctx context.Context, longitude, latitude float64) ([]Address, error)

	// SearchExact is the first search tier: city = c AND street = s AND
	// region = r AND coordinates present, ordered by number, capped at
	// limit.
	SearchExact(ctx context.Context, city, street, region string, limit int) ([]Address, error)

	// SearchFuzzy is the second search tier, tried only when the exact
	// tier is empty: the same filter with street ILIKE %s%, ordered by
	// number, capped at limit.
	SearchFuzzy(ctx context.Context, city, streetSubstring, region string, limit int) ([]Address, error)
}
