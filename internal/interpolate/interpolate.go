package interpolate

import (
	"github.com/andina-geo/geocoder/internal/geo"
	"github.com/andina-geo/geocoder/internal/match"
	"github.com/andina-geo/geocoder/internal/parser"
	"github.com/andina-geo/geocoder/store"
)

// Side is which side of the street the interpolated point falls on,
// per Colombian house-numbering convention.
type Side string

const (
	Left  Side = "LEFT"
	Right Side = "RIGHT"
)

// Result is component G's output (spec.md §3.4): a fraction along the
// segment, a side, and whether the fraction had to be clamped into
// [0,1] — the caller uses Clamped to decide whether INTERPOLATED should
// be downgraded to RANGE_MATCH (spec.md §9, "clamping beyond end of
// range").
type Result struct {
	Fraction float64
	Side     Side
	IsOdd    bool
	Clamped  bool
}

// Interpolate computes p = (t-s)/(e-s) using concatenated-digit forms
// of target, start, and end numbers (spec.md §4.5). A degenerate
// segment yields p=0. ok is false when the target number cannot be
// parsed at all.
func Interpolate(seg match.Segment, targetNumber string) (Result, bool) {
	t, ok := parser.ExtractDigitRun(targetNumber)
	if !ok {
		return Result{}, false
	}

	side := Left
	if t%2 != 0 {
		side = Right
	}

	if seg.Degenerate {
		return Result{Fraction: 0, Side: side, IsOdd: t%2 != 0}, true
	}

	startNum := addressNumber(seg.Start)
	endNum := addressNumber(seg.End)
	s, sOK := parser.ExtractDigitRun(startNum)
	e, eOK := parser.ExtractDigitRun(endNum)
	if !sOK || !eOK || s == e {
		return Result{Fraction: 0, Side: side, IsOdd: t%2 != 0}, true
	}

	p := float64(t-s) / float64(e-s)
	clamped := p < 0 || p > 1
	p = geo.Clamp(p, 0, 1)

	return Result{Fraction: p, Side: side, IsOdd: t%2 != 0, Clamped: clamped}, true
}

func addressNumber(a store.Address) string {
	if a.Number != nil {
		return *a.Number
	}
	return ""
}
