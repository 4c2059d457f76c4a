// Package store is the persistence contract for reference addresses:
// a keyed upsert by fingerprint, and lookups by fingerprint, city,
// street, region, (city, street, number), and (longitude, latitude).
// PostgresStore is the only implementation; Store is an interface so
// the geocoding pipeline (which only ever reads) and the ingester
// (which only ever upserts) can each depend on the narrower view they
// need, and so tests can substitute a fake.
//
// Schema and connection-pool construction belong to an external
// database-administration process; this package only issues queries
// against a pool handed to it.
package store
