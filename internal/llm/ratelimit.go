package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// newLimiter builds the request limiter shared by a client's Complete and
// Chat paths. rps <= 0 disables limiting (nil limiter).
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// waitLimiter blocks until the limiter admits a request or ctx is done.
func waitLimiter(ctx context.Context, l *rate.Limiter) error {
	if l == nil {
		return nil
	}
	return l.Wait(ctx)
}
