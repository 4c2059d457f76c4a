package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	latencyMeasure = stats.Int64("geocoder/measure/phase/latency", "Latency in msecs", stats.UnitMilliseconds)

	phaseKey       = tag.MustNewKey("phase")
	accuracyTagKey = tag.MustNewKey("accuracy_tag")
	errorKey       = tag.MustNewKey("error")
	cityKey        = tag.MustNewKey("city")

	Count = &view.View{
		Name:        "geocoder/phase/count",
		Description: "Pipeline phase invocation counts",
		TagKeys:     []tag.Key{phaseKey, accuracyTagKey, errorKey, cityKey},
		Measure:     latencyMeasure,
		Aggregation: view.Count(),
	}

	Latency = &view.View{
		Name:        "geocoder/phase/latency",
		Description: "Time spent in each pipeline phase",
		TagKeys:     []tag.Key{phaseKey, accuracyTagKey, errorKey, cityKey},
		Measure:     latencyMeasure,
		Aggregation: view.Distribution(1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000),
	}
)

func RegisterViews() error {
	return view.Register(Latency, Count)
}

type OpenCensusReporter struct{}

func (o OpenCensusReporter) NewRequest(phase string) Request {
	return &openCensusRequest{
		phase: phase,
		start: time.Now().UnixNano() / int64(time.Millisecond),
	}
}

type openCensusRequest struct {
	phase string
	start int64
}

func (o *openCensusRequest) EndRequest(ctx context.Context, err error, accuracyTag string, city string) {
	now := time.Now().UnixNano() / int64(time.Millisecond)
	duration := now - o.start
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	stats.RecordWithTags(ctx, []tag.Mutator{
		tag.Upsert(phaseKey, o.phase),
		tag.Upsert(accuracyTagKey, accuracyTag),
		tag.Upsert(errorKey, errStr),
		tag.Upsert(cityKey, city),
	}, latencyMeasure.M(duration))
}
