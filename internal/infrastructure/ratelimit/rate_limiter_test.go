package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustsAndReportsRetry(t *testing.T) {
	bucket := NewTokenBucket(2, 1, time.Minute)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)

	allowed, retryAfter := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiterKeysByUserAndAction(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 5; i++ {
		allowed, _ := rl.Allow("u1", "checkout")
		assert.True(t, allowed)
	}
	allowed, _ := rl.Allow("u1", "checkout")
	assert.False(t, allowed)

	// A different user and a different action each get their own bucket.
	allowed, _ = rl.Allow("u2", "checkout")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("u1", "send_message")
	assert.True(t, allowed)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter()
	rl.Allow("u1", "checkout")

	rl.buckets["u1:checkout"].lastRefill = time.Now().Add(-2 * time.Hour)
	rl.Cleanup()

	assert.Empty(t, rl.buckets)
}
