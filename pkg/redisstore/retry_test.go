package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_ReturnsLastError(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 2, func() error {
		calls++
		return errors.New("down")
	})
	assert.EqualError(t, err, "down")
	assert.Equal(t, 2, calls)
}

func TestRetry_NoBackoffAfterFinalAttempt(t *testing.T) {
	start := time.Now()
	err := retry(context.Background(), 1, func() error { return errors.New("down") })
	assert.EqualError(t, err, "down")
	assert.Less(t, time.Since(start), 40*time.Millisecond)
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, 5, func() error {
		calls++
		return errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2f3e-8a41-4c1e-9a0e-3f8e2d7b1a90")
	assert.Equal(t, "statuspage:org:6f1c2f3e-8a41-4c1e-9a0e-3f8e2d7b1a90:status", StatusKey(id))
	assert.Equal(t, "statuspage:org:6f1c2f3e-8a41-4c1e-9a0e-3f8e2d7b1a90:timeline:30", TimelineKey(id, 30))
	assert.Equal(t, "statuspage:subdomain:acme", SubdomainKey("acme"))
}
