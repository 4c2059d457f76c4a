// Package geocoder is the service façade over the Colombian
// street-address geocoding pipeline: parse, search, match,
// interpolate, generate, offset. It orchestrates the internal/parser,
// internal/search, internal/match, internal/interpolate, and
// internal/generate packages against a store.Store. This package reads
// the store only through the store.Store interface and depends on
// neither the database driver nor any HTTP transport.
package geocoder
