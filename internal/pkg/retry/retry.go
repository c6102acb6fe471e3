package retry

import (
	"context"
	"math/rand"
	"time"

	"github.com/TemirB/order-pipeline/internal/config"
)

// Do calls fn until it succeeds, the attempts are spent or ctx is done.
// Delays grow exponentially from policy.Base up to policy.Max, with jitter.
// onRetry, when set, is told about every failed attempt that will be retried.
func Do(ctx context.Context, policy config.Retry, fn func(context.Context) error, onRetry func(attempt int, err error, delay time.Duration)) error {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}
	d := policy.Base
	if d <= 0 {
		d = 100 * time.Millisecond
	}
	var err error

	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 1; ; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if i >= attempts {
			return err
		}

		delay := d
		if policy.JitterFactor > 0 {
			jitter := 1 + policy.JitterFactor*(2*r.Float64()-1)
			delay = time.Duration(float64(delay) * jitter)
		}
		if policy.Max > 0 && delay > policy.Max {
			delay = policy.Max
		}
		if onRetry != nil {
			onRetry(i, err, delay)
		}

		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}

		d *= 2
		if policy.Max > 0 && d > policy.Max {
			d = policy.Max
		}
	}
}
