package resilience

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

const (
	retryInitialDelay = 100 * time.Millisecond
	retryMaxDelay     = 2 * time.Second
)

// Retry calls fn up to attempts times, doubling the delay between tries
// with +-10% jitter. It stops early when ctx is done.
func Retry(ctx context.Context, name string, attempts int, fn func(context.Context) error) error {
	if attempts <= 0 {
		attempts = 1
	}
	log := logger.FromContext(ctx).With("operation", name)
	delay := retryInitialDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(ctx); err == nil {
			if attempt > 1 {
				log.Info("succeeded after retry", "attempt", attempt)
			}
			return nil
		}
		if attempt == attempts {
			break
		}
		wait := jitter(delay)
		log.Warn("attempt failed, retrying", "attempt", attempt, "max_attempts", attempts, "error", err, "next_delay", wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return fmt.Errorf("%s: retry aborted: %w", name, ctx.Err())
		}
		delay = min(delay*2, retryMaxDelay)
	}
	return fmt.Errorf("%s: all %d attempts failed: %w", name, attempts, err)
}

func jitter(d time.Duration) time.Duration {
	return d + time.Duration(float64(d)*0.1*(2*rand.Float64()-1))
}
