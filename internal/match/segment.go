package match

import (
	"sort"

	"github.com/andina-geo/geocoder/internal/parser"
	"github.com/andina-geo/geocoder/store"
)

// Segment is a street segment to interpolate across: Start and End are
// reference addresses, Degenerate is true when Start and End are the
// same point (spec.md §3.3) — interpolation collapses to p=0.
//
// UndefinedBearing is set only when the segment came from the
// nearest-fallback branch collapsing to a single total candidate
// (spec.md §9, "single-candidate nearest fallback"): there the segment
// has no second point at all to derive a bearing from, as opposed to an
// exact-hit segment, which is also degenerate but still has real
// neighbours in the candidate list and is treated as a normal
// INTERPOLATED result (spec.md §8 scenario 3).
type Segment struct {
	Start            store.Address
	End              store.Address
	Degenerate       bool
	UndefinedBearing bool
}

type candidate struct {
	addr store.Address
	n    int
}

// FindSegment implements component F (spec.md §4.4): parse the target
// number, sort parseable candidates by leading integer, then try an
// exact hit, an enclosing pair, and finally nearest-neighbour fallback.
// ok is false when the candidate list is empty or the target is
// unparseable.
func FindSegment(candidates []store.Address, targetNumber string) (seg Segment, ok bool) {
	t, parsedOK := parser.ExtractLeadingInt(targetNumber)
	if !parsedOK {
		return Segment{}, false
	}

	sorted := sortedCandidates(candidates)
	if len(sorted) == 0 {
		return Segment{}, false
	}

	if hit, found := exactHit(sorted, t); found {
		return Segment{Start: hit, End: hit, Degenerate: true}, true
	}

	if pair, found := enclosingPair(sorted, t); found {
		return pair, true
	}

	return nearestFallback(sorted, t), true
}

func sortedCandidates(addrs []store.Address) []candidate {
	out := make([]candidate, 0, len(addrs))
	for _, a := range addrs {
		if a.Number == nil {
			continue
		}
		n, ok := parser.ExtractLeadingInt(*a.Number)
		if !ok {
			continue
		}
		out = append(out, candidate{addr: a, n: n})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].n < out[j].n })
	return out
}

func exactHit(sorted []candidate, t int) (store.Address, bool) {
	for _, c := range sorted {
		if c.n == t {
			return c.addr, true
		}
	}
	return store.Address{}, false
}

func enclosingPair(sorted []candidate, t int) (Segment, bool) {
	for i := 0; i < len(sorted)-1; i++ {
		a, b := sorted[i], sorted[i+1]
		if a.n <= t && t <= b.n {
			return Segment{Start: a.addr, End: b.addr}, true
		}
	}
	return Segment{}, false
}

// nearestFallback picks the candidate closest to t by integer distance
// (ties go to the earlier index) and pairs it with its neighbour on the
// side containing points: the next candidate unless it is the last one,
// in which case the previous candidate. A single-candidate list yields
// a degenerate segment.
func nearestFallback(sorted []candidate, t int) Segment {
	if len(sorted) == 1 {
		return Segment{Start: sorted[0].addr, End: sorted[0].addr, Degenerate: true, UndefinedBearing: true}
	}

	best := 0
	bestDist := abs(sorted[0].n - t)
	for i := 1; i < len(sorted); i++ {
		d := abs(sorted[i].n - t)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best < len(sorted)-1 {
		return Segment{Start: sorted[best].addr, End: sorted[best+1].addr}
	}
	return Segment{Start: sorted[best-1].addr, End: sorted[best].addr}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
