package generate

import (
	"fmt"
	"math"

	"github.com/andina-geo/geocoder/internal/geo"
	"github.com/andina-geo/geocoder/internal/interpolate"
	"github.com/andina-geo/geocoder/internal/match"
)

// DefaultOffsetMeters is the perpendicular offset applied when a
// caller does not supply one (spec.md §4.6).
const DefaultOffsetMeters = 10.0

// Linear computes the planar linear interpolation between a segment's
// endpoints at fraction p (spec.md §4.6). ok is false if either
// endpoint lacks coordinates.
func Linear(seg match.Segment, p float64) (geo.Point, bool) {
	startLon, startLat, startOK := seg.Start.Coordinates()
	endLon, endLat, endOK := seg.End.Coordinates()
	if !startOK || !endOK {
		return geo.Point{}, false
	}

	return geo.Point{
		Lat: startLat + p*(endLat-startLat),
		Lon: startLon + p*(endLon-startLon),
	}, true
}

// Centroid is interpolation at p=0.5 (spec.md §4.6).
func Centroid(seg match.Segment) (geo.Point, bool) {
	return Linear(seg, 0.5)
}

// Offset displaces point perpendicular to the segment's direction, by
// distanceMeters, toward side (spec.md §4.6). When seg is degenerate
// the segment's bearing is undefined (both endpoints coincide); the
// offset is still computed, but callers should not rely on the
// resulting side being meaningful in that case. A side other than
// Right or Left (such as "") displaces the point along the segment's
// bearing itself rather than perpendicular to it.
func Offset(seg match.Segment, point geo.Point, side interpolate.Side, distanceMeters float64) (geo.Point, bool) {
	startLon, startLat, startOK := seg.Start.Coordinates()
	endLon, endLat, endOK := seg.End.Coordinates()
	if !startOK || !endOK {
		return geo.Point{}, false
	}

	bearing := geo.InitialBearing(
		geo.Point{Lat: startLat, Lon: startLon},
		geo.Point{Lat: endLat, Lon: endLon},
	)

	var perpendicular float64
	switch side {
	case interpolate.Right:
		perpendicular = bearing + 90
	case interpolate.Left:
		perpendicular = bearing - 90
	default:
		perpendicular = bearing
	}
	perpendicular = math.Mod(perpendicular+360, 360)

	return geo.Destination(point, perpendicular, distanceMeters), true
}

// Describe renders a short diagnostic string for a generated point as
// "(lon, lat)" with 7 fractional digits.
func Describe(p geo.Point) string {
	return fmt.Sprintf("(%.7f, %.7f)", p.Lon, p.Lat)
}
