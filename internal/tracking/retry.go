// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracking

import (
	"context"
	"math"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// busy retries. Tests override this to avoid real sleeps.
var RetryBaseDelay = 50 * time.Millisecond

const defaultMaxRetries = 5

// WithRetry runs op and retries while it fails with SQLite's busy/locked
// condition, backing off exponentially: 50 ms, 100 ms, 200 ms, 400 ms,
// 800 ms. Busy means the statement did not run, so reissuing is safe.
//
// When maxRetries is 0 the default (5) is used. Non-busy errors return
// immediately. If the context is cancelled during a backoff wait the
// function returns ctx.Err(); after exhausting retries the last busy
// error is returned.
func WithRetry(ctx context.Context, maxRetries int, op func() error) error {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		err := op()
		if err == nil || !IsBusy(err) {
			return err
		}

		if attempt >= maxRetries {
			return err
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}
