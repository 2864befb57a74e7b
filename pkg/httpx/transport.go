// Package httpx provides small HTTP client helpers shared by code that talks
// to external provider APIs.
package httpx

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the client-side request pacing parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// ProviderLimit paces bulk reads against external directory APIs. Okta's
// default org limit is 600 requests per minute for most management
// endpoints; staying at half of that leaves headroom for other consumers.
var ProviderLimit = RateLimitConfig{
	RequestsPerWindow: 300,
	Window:            time.Minute,
	Burst:             30,
}

// rateLimitedTransport blocks before each request until the limiter grants a
// token, honouring the request context while waiting.
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// NewRateLimitedClient returns an http.Client whose requests are paced to the
// given config. Long paginated fetches use this so provider APIs never see
// request storms.
func NewRateLimitedClient(config RateLimitConfig, timeout time.Duration) *http.Client {
	perSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()

	return &http.Client{
		Timeout: timeout,
		Transport: &rateLimitedTransport{
			base:    http.DefaultTransport,
			limiter: rate.NewLimiter(rate.Limit(perSecond), config.Burst),
		},
	}
}
