package geocoder

import (
	"github.com/andina-geo/geocoder/internal/interpolate"
	"github.com/andina-geo/geocoder/internal/match"
	"github.com/andina-geo/geocoder/internal/parser"
)

// AccuracyTag classifies how a Result's coordinate (if any) was
// produced.
type AccuracyTag string

const (
	Interpolated   AccuracyTag = "INTERPOLATED"
	RangeMatch     AccuracyTag = "RANGE_MATCH"
	StreetCentroid AccuracyTag = "STREET_CENTROID"
	CityCentroid   AccuracyTag = "CITY_CENTROID"
	ParseFailed    AccuracyTag = "PARSE_FAILED"
	NoStreetMatch  AccuracyTag = "NO_STREET_MATCH"
	NoMatch        AccuracyTag = "NO_MATCH"
	Error          AccuracyTag = "ERROR"
)

// Side re-exports the interpolator's side tag so callers of this
// package never need to import internal/interpolate directly.
type Side = interpolate.Side

const (
	Left  = interpolate.Left
	Right = interpolate.Right
)

// Request is one geocoding input. An empty Region or a zero
// OffsetMeters takes the client's default ("ANT" and 10 unless changed
// with WithDefaultRegion or WithDefaultOffset).
type Request struct {
	Address      string
	City         string
	Region       string
	OffsetMeters float64
}

// Result is the geocoding service's output. Lat/Lon are nil unless
// Success; Side is empty unless a concrete side was determined
// (STREET_CENTROID and CITY_CENTROID never set one).
type Result struct {
	Success bool

	Lat *float64
	Lon *float64

	AccuracyTag AccuracyTag
	Side        Side

	MatchedStreet string
	Message       string

	ParsedComponents *parser.Components
	Segment          *match.Segment
}

func floatPtr(f float64) *float64 { return &f }
