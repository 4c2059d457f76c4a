package ingest

import "time"

// Stats are the run statistics an ingestion surfaces: observable, but
// not part of any wire contract.
type Stats struct {
	Total     int // 0 if --no-count was used and the total is unknown
	Processed int
	Inserted  int
	Errors    int
	started   time.Time
}

// Elapsed is the wall-clock time since the run started.
func (s Stats) Elapsed() time.Duration {
	if s.started.IsZero() {
		return 0
	}
	return time.Since(s.started)
}

// ProgressPercent is Processed/Total as a percentage, or -1 if Total is
// unknown (so callers can distinguish "0%" from "unknown").
func (s Stats) ProgressPercent() float64 {
	if s.Total <= 0 {
		return -1
	}
	return 100 * float64(s.Processed) / float64(s.Total)
}

// ETA linearly extrapolates remaining time from the observed rate.
// Returns 0 if Total is unknown or nothing has been processed yet.
func (s Stats) ETA() time.Duration {
	if s.Total <= 0 || s.Processed <= 0 {
		return 0
	}
	elapsed := s.Elapsed()
	rate := float64(s.Processed) / elapsed.Seconds()
	if rate <= 0 {
		return 0
	}
	remaining := s.Total - s.Processed
	return time.Duration(float64(remaining)/rate) * time.Second
}
