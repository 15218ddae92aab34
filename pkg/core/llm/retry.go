package llm

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"
)

// DefaultMaxAttempts is how many times a rate-limited call is tried before
// giving up.
const DefaultMaxAttempts = 3

// Indirection for tests: production sleeps, tests count.
var (
	sleep  = sleepCtx
	jitter = func() time.Duration { return time.Duration(rand.Float64() * float64(time.Second)) }
)

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// backoff returns the base wait before retry attempt i (0-based): 2^(i+1.5)
// seconds, so roughly 2.8s then 5.7s between the three attempts.
func backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt)+1.5) * float64(time.Second))
}

// CallWithRetry runs fn up to maxAttempts times, backing off between attempts
// only when the failure classifies as rate limiting. Any other error, or
// context cancellation during the wait, is returned immediately. The zero
// value of T comes back alongside the final error.
func CallWithRetry[T any](ctx context.Context, maxAttempts int, fn func(context.Context) (T, error)) (T, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var zero T
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if Classify(err) != ErrRateLimited {
			return zero, err
		}
		lastErr = err
		if attempt == maxAttempts-1 {
			break
		}
		wait := backoff(attempt) + jitter()
		log.Printf("[LLM] Rate limited (attempt %d/%d), retrying in %.1fs: %v",
			attempt+1, maxAttempts, wait.Seconds(), err)
		if err := sleep(ctx, wait); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}
