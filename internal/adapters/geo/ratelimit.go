package geo

import (
	"context"
	"sync"
	"time"
)

// ProviderLimiter enforces a minimum interval between calls to a single
// provider. Nominatim's usage policy requires at most ~1 request per
// second per client, so callers wait out the remainder of the interval
// before each call.
//
// The mutex is held through the wait so that concurrent requests queue
// rather than racing past the interval check.
type ProviderLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func NewProviderLimiter(interval time.Duration) *ProviderLimiter {
	return &ProviderLimiter{interval: interval}
}

// Wait blocks until the politeness interval since the previous call has
// elapsed, or returns early when ctx is cancelled.
func (l *ProviderLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if remaining := l.interval - time.Since(l.last); remaining > 0 {
		timer := time.NewTimer(remaining)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	l.last = time.Now()
	return nil
}
