// Package geo provides the pure geographic primitives the geocoding
// pipeline is built on: great-circle distance, initial bearing, the
// destination point along a bearing, and a scalar clamp. Nothing in this
// package performs I/O.
package geo
