// Package search implements component E: the two-tier candidate lookup
// over the reference address store, and the street-centroid fallback.
// It never touches SQL directly — every query is delegated to a
// store.Store, so a fake store is enough to test the tiering logic.
package search
