package geocoder

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"github.com/andina-geo/geocoder/internal/search"
	"github.com/andina-geo/geocoder/metrics"
	"github.com/andina-geo/geocoder/store"
)

// Client is the geocoding service façade over a Store. Construct one
// with New and a set of Options.
type Client struct {
	store    store.Store
	searcher *search.Searcher

	defaultRegion string
	defaultOffset float64
	fallbacks     bool

	reporter    metrics.Reporter
	rateLimiter *rate.Limiter
}

// Option is the type of constructor options for New(...).
type Option func(*Client) error

var defaultRequestsPerSecond rate.Limit = 50

// New constructs a Client backed by s. The street-centroid fallback
// path is enabled by default.
func New(s store.Store, options ...Option) (*Client, error) {
	c := &Client{
		store:         s,
		searcher:      search.New(s),
		defaultRegion: search.DefaultRegion,
		defaultOffset: 10.0,
		fallbacks:     true,
		reporter:      metrics.NoOpReporter{},
		rateLimiter:   rate.NewLimiter(defaultRequestsPerSecond, int(defaultRequestsPerSecond)),
	}
	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.store == nil {
		return nil, errors.New("geocoder: store is required")
	}
	return c, nil
}

// WithDefaultRegion overrides the region used when a Request omits one.
func WithDefaultRegion(region string) Option {
	return func(c *Client) error {
		if region == "" {
			return errors.New("geocoder: default region must not be empty")
		}
		c.defaultRegion = region
		return nil
	}
}

// WithDefaultOffset overrides the perpendicular offset (metres) used
// when a Request's OffsetMeters is zero.
func WithDefaultOffset(meters float64) Option {
	return func(c *Client) error {
		if meters < 0 {
			return errors.New("geocoder: default offset must be non-negative")
		}
		c.defaultOffset = meters
		return nil
	}
}

// WithFallbacks toggles the centroid fallback: when disabled, a match
// failure always surfaces as NO_MATCH rather than falling through to
// STREET_CENTROID.
func WithFallbacks(enabled bool) Option {
	return func(c *Client) error {
		c.fallbacks = enabled
		return nil
	}
}

// WithMetricReporter attaches a metrics.Reporter; NoOpReporter is used
// if this option is never supplied.
func WithMetricReporter(r metrics.Reporter) Option {
	return func(c *Client) error {
		if r == nil {
			return errors.New("geocoder: metric reporter must not be nil")
		}
		c.reporter = r
		return nil
	}
}

// WithRateLimit limits geocode requests to requestsPerSecond,
// replacing the teacher client's bursty channel limiter with
// golang.org/x/time/rate so the limit can be shared across goroutines
// without a background refill loop.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *Client) error {
		if requestsPerSecond <= 0 {
			return errors.New("geocoder: requests per second must be positive")
		}
		burst := int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.rateLimiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
		return nil
	}
}

func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
