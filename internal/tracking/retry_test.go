// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Use a tiny base delay so tests finish quickly.
	RetryBaseDelay = 1 * time.Millisecond
}

func busyErr() error {
	return sqlite3.Error{Code: sqlite3.ErrBusy}
}

func TestWithRetry_ImmediateSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 5, func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 5, func() error {
		calls++
		if calls <= 2 {
			return busyErr()
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 3, func() error {
		calls++
		return busyErr()
	})
	assert.True(t, IsBusy(err))
	// 1 initial + 3 retries = 4 total calls.
	assert.Equal(t, 4, calls)
}

func TestWithRetry_DefaultMaxRetries(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 0, func() error {
		calls++
		return busyErr()
	})
	assert.True(t, IsBusy(err))
	// 1 initial + 5 default retries = 6 total calls.
	assert.Equal(t, 6, calls)
}

func TestWithRetry_NonBusyErrorPassesThrough(t *testing.T) {
	calls := 0
	sentinel := errors.New("schema broken")
	err := WithRetry(context.Background(), 5, func() error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ContextCancelled(t *testing.T) {
	// Use a longer base delay so the context cancels during the wait.
	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := WithRetry(ctx, 5, func() error { return busyErr() })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
