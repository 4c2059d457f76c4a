// Package ingest bulk-loads reference addresses from a line-delimited
// GeoJSON file into a store.Store, with resumable checkpointing and
// run statistics.
package ingest
