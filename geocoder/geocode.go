package geocoder

import (
	"context"
	"fmt"

	"github.com/andina-geo/geocoder/internal/generate"
	"github.com/andina-geo/geocoder/internal/interpolate"
	"github.com/andina-geo/geocoder/internal/match"
	"github.com/andina-geo/geocoder/internal/parser"
)

// Geocode runs the full PARSING → SEARCHING → MATCHING →
// INTERPOLATING → GENERATING → OFFSETTING state machine for a single
// request. The returned error is non-nil only when the request never
// entered the pipeline at all (e.g. the caller's context was already
// done); every in-pipeline failure is reported as a Result with
// Success=false, never as a Go error.
func (c *Client) Geocode(ctx context.Context, req Request) (Result, error) {
	if err := c.wait(ctx); err != nil {
		return Result{}, err
	}

	region := req.Region
	if region == "" {
		region = c.defaultRegion
	}
	offsetMeters := req.OffsetMeters
	if offsetMeters == 0 {
		offsetMeters = c.defaultOffset
	}

	parseReq := c.reporter.NewRequest("PARSING")
	comps, parsed := parser.Parse(req.Address)
	if !parsed {
		parseReq.EndRequest(ctx, nil, string(ParseFailed), req.City)
		return Result{Success: false, AccuracyTag: ParseFailed, Message: "address did not match the expected grammar"}, nil
	}
	parseReq.EndRequest(ctx, nil, "", req.City)

	searchReq := c.reporter.NewRequest("SEARCHING")
	candidates, err := c.searcher.SearchStreets(ctx, comps.FullStreetName(), req.City, region)
	if err != nil {
		searchReq.EndRequest(ctx, err, string(Error), req.City)
		return Result{Success: false, AccuracyTag: Error, Message: err.Error(), ParsedComponents: &comps}, nil
	}
	if len(candidates) == 0 {
		searchReq.EndRequest(ctx, nil, string(NoStreetMatch), req.City)
		return Result{Success: false, AccuracyTag: NoStreetMatch, ParsedComponents: &comps}, nil
	}
	searchReq.EndRequest(ctx, nil, "", req.City)

	matchReq := c.reporter.NewRequest("MATCHING")
	seg, segOK := match.FindSegment(candidates, comps.FullNumber())
	matchReq.EndRequest(ctx, nil, "", req.City)

	if !segOK {
		return c.fallbackResult(ctx, comps, req.City, region)
	}

	interpReq := c.reporter.NewRequest("INTERPOLATING")
	interp, interpOK := interpolate.Interpolate(seg, comps.FullNumber())
	if !interpOK {
		// Unparseable target number: recovered internally, treated as p=0.
		interp = interpolate.Result{Fraction: 0, Side: Left}
	}
	interpReq.EndRequest(ctx, nil, "", req.City)

	generateReq := c.reporter.NewRequest("GENERATING")
	point, genOK := generate.Linear(seg, interp.Fraction)
	if !genOK {
		generateReq.EndRequest(ctx, fmt.Errorf("segment missing coordinates"), string(Error), req.City)
		return Result{Success: false, AccuracyTag: Error, Message: "matched segment is missing coordinates", ParsedComponents: &comps, Segment: &seg}, nil
	}
	generateReq.EndRequest(ctx, nil, "", req.City)

	offsetReq := c.reporter.NewRequest("OFFSETTING")
	side := interp.Side
	if seg.UndefinedBearing {
		side = ""
	}
	offsetPoint, offsetOK := generate.Offset(seg, point, side, offsetMeters)
	if !offsetOK {
		offsetPoint = point
	}
	offsetReq.EndRequest(ctx, nil, "", req.City)

	tag := Interpolated
	switch {
	case seg.UndefinedBearing:
		tag = RangeMatch
	case interp.Clamped:
		tag = RangeMatch
	}

	return Result{
		Success:          true,
		Lat:              floatPtr(offsetPoint.Lat),
		Lon:              floatPtr(offsetPoint.Lon),
		AccuracyTag:      tag,
		Side:             side,
		MatchedStreet:    comps.FullStreetName(),
		ParsedComponents: &comps,
		Segment:          &seg,
	}, nil
}

// fallbackResult handles the case where no segment could be matched.
// With fallbacks enabled, fall back to the street centroid; otherwise
// (or if the centroid is also unavailable) report NO_MATCH.
func (c *Client) fallbackResult(ctx context.Context, comps parser.Components, city, region string) (Result, error) {
	if !c.fallbacks {
		return Result{Success: false, AccuracyTag: NoMatch, ParsedComponents: &comps}, nil
	}

	lon, lat, ok, err := c.searcher.StreetCentroid(ctx, comps.FullStreetName(), city, region)
	if err != nil {
		return Result{Success: false, AccuracyTag: Error, Message: err.Error(), ParsedComponents: &comps}, nil
	}
	if !ok {
		return Result{Success: false, AccuracyTag: NoMatch, ParsedComponents: &comps}, nil
	}

	return Result{
		Success:          true,
		Lat:              floatPtr(lat),
		Lon:              floatPtr(lon),
		AccuracyTag:      StreetCentroid,
		MatchedStreet:    comps.FullStreetName(),
		ParsedComponents: &comps,
	}, nil
}

// GeocodeMany runs Geocode over every request in order, returning
// results 1:1 with no reordering and no early termination. The
// client's default region and offset apply to any request that omits
// its own.
func (c *Client) GeocodeMany(ctx context.Context, requests []Request) ([]Result, error) {
	results := make([]Result, len(requests))
	for i, req := range requests {
		r, err := c.Geocode(ctx, req)
		if err != nil {
			return results, err
		}
		results[i] = r
	}
	return results, nil
}
