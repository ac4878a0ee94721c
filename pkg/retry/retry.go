// pkg/retry/retry.go
package retry

import (
	"context"
	"time"
)

// Policy bounds how long a transient failure is tolerated before escalation.
// It is process-wide configuration consumed by whoever wraps an operation;
// the policy itself knows nothing about the operation it guards.
type Policy struct {
	// Attempts is the total attempt budget, including the first call.
	// Values below 1 are treated as 1.
	Attempts int
	// Interval is the delay between consecutive attempts.
	Interval time.Duration
}

// DefaultPolicy matches the engine defaults in internal/config.
var DefaultPolicy = Policy{Attempts: 3, Interval: 300 * time.Millisecond}

// Do invokes op until it succeeds or the attempt budget is exhausted.
// Every attempt is a fresh invocation; no state is carried between attempts,
// so op must be safe to re-run. On exhaustion the last observed error is
// returned. Context cancellation aborts the inter-attempt delay and is
// returned immediately.
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, p.Interval); err != nil {
				return zero, err
			}
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return zero, lastErr
}

// DoVoid is the result-less counterpart of Do.
func DoVoid(ctx context.Context, p Policy, op func(context.Context) error) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
