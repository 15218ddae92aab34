package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

// stub out the waits so retry tests run instantly
func stubSleep(t *testing.T) *int {
	t.Helper()
	count := 0
	origSleep, origJitter := sleep, jitter
	sleep = func(ctx context.Context, d time.Duration) error {
		count++
		return nil
	}
	jitter = func() time.Duration { return 0 }
	t.Cleanup(func() {
		sleep = origSleep
		jitter = origJitter
	})
	return &count
}

func TestCallWithRetryRecoversFromRateLimit(t *testing.T) {
	sleeps := stubSleep(t)

	calls := 0
	result, err := CallWithRetry(context.Background(), 3, func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("429 too many requests")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result != "ok" || calls != 3 {
		t.Errorf("Expected ok after 3 calls, got %q after %d", result, calls)
	}
	// Two failures -> two waits
	if *sleeps != 2 {
		t.Errorf("Expected 2 sleeps, got %d", *sleeps)
	}
}

func TestCallWithRetryExhaustsAttempts(t *testing.T) {
	sleeps := stubSleep(t)

	calls := 0
	_, err := CallWithRetry(context.Background(), 3, func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("quota exceeded")
	})
	if err == nil {
		t.Fatal("Expected terminal error")
	}
	if calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
	// No wait after the final attempt
	if *sleeps != 2 {
		t.Errorf("Expected 2 sleeps, got %d", *sleeps)
	}
}

func TestCallWithRetryFailsFastOnOtherErrors(t *testing.T) {
	sleeps := stubSleep(t)

	calls := 0
	_, err := CallWithRetry(context.Background(), 3, func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("invalid request")
	})
	if err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 || *sleeps != 0 {
		t.Errorf("Non-rate-limit errors must not retry: %d calls, %d sleeps", calls, *sleeps)
	}
}

func TestBackoffSchedule(t *testing.T) {
	// 2^1.5 ~= 2.83s, 2^2.5 ~= 5.66s
	if d := backoff(0); d < 2800*time.Millisecond || d > 2900*time.Millisecond {
		t.Errorf("First wait out of range: %v", d)
	}
	if d := backoff(1); d < 5600*time.Millisecond || d > 5700*time.Millisecond {
		t.Errorf("Second wait out of range: %v", d)
	}
}

func TestClassify(t *testing.T) {
	rateLimited := []error{
		errors.New("got HTTP 429"),
		errors.New("quota exceeded for project"),
		errors.New("RESOURCE_EXHAUSTED"),
		&googleapi.Error{Code: 429, Message: "rate limited"},
		fmt.Errorf("call failed: %w", &googleapi.Error{Code: 429}),
	}
	for _, err := range rateLimited {
		if Classify(err) != ErrRateLimited {
			t.Errorf("Expected rate-limited classification for %v", err)
		}
	}

	other := []error{
		nil,
		errors.New("connection refused"),
		&googleapi.Error{Code: 400, Message: "bad request"},
	}
	for _, err := range other {
		if Classify(err) != ErrOther {
			t.Errorf("Expected other classification for %v", err)
		}
	}
}
