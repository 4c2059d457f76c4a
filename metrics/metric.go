// Package metrics reports pipeline-phase timings and outcomes for the
// geocoding service. Reporter/Request mirror the teacher's HTTP-request
// instrumentation shape, retagged for a pipeline that has no transport
// of its own: NewRequest is opened per phase (PARSING, SEARCHING,
// MATCHING, INTERPOLATING, GENERATING, OFFSETTING) and EndRequest
// records the phase's outcome instead of an HTTP status code.
package metrics

import "context"

type Reporter interface {
	NewRequest(phase string) Request
}

type Request interface {
	EndRequest(ctx context.Context, err error, accuracyTag string, city string)
}

type NoOpReporter struct{}

func (n NoOpReporter) NewRequest(phase string) Request {
	return noOpRequest{}
}

type noOpRequest struct{}

func (n noOpRequest) EndRequest(ctx context.Context, err error, accuracyTag string, city string) {}
