package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newLocal(burst int) (*LocalRateLimitService, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewLocalRateLimitService(burst)
	s.now = clock.now
	return s, clock
}

func TestLocalRateLimitService_CountsAttemptsUntilLimit(t *testing.T) {
	ctx := context.Background()
	s, _ := newLocal(5)

	for i := 0; i < 3; i++ {
		ok, err := s.CheckLimit(ctx, "ip:1.2.3.4", 3, 15*time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "attempt %d", i)
		require.NoError(t, s.Increment(ctx, "ip:1.2.3.4", 15*time.Minute))
	}

	attempts, err := s.GetAttempts(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	ok, err := s.CheckLimit(ctx, "ip:1.2.3.4", 3, 15*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.CheckLimit(ctx, "ip:5.6.7.8", 3, 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalRateLimitService_RefillsOverWindow(t *testing.T) {
	ctx := context.Background()
	s, clock := newLocal(2)

	_, _ = s.CheckLimit(ctx, "user:1", 2, time.Minute)
	require.NoError(t, s.Increment(ctx, "user:1", time.Minute))
	require.NoError(t, s.Increment(ctx, "user:1", time.Minute))

	ok, _ := s.CheckLimit(ctx, "user:1", 2, time.Minute)
	assert.False(t, ok)

	clock.advance(31 * time.Second)
	ok, _ = s.CheckLimit(ctx, "user:1", 2, time.Minute)
	assert.True(t, ok)

	clock.advance(time.Minute)
	attempts, _ := s.GetAttempts(ctx, "user:1")
	assert.Zero(t, attempts)
}

func TestLocalRateLimitService_BlockExpires(t *testing.T) {
	ctx := context.Background()
	s, clock := newLocal(5)

	require.NoError(t, s.Block(ctx, "ip:1.2.3.4", 30*time.Minute, "too many"))

	blocked, err := s.IsBlocked(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, blocked)

	clock.advance(30 * time.Minute)
	blocked, err = s.IsBlocked(ctx, "ip:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestLocalRateLimitService_SweepDropsIdleBuckets(t *testing.T) {
	ctx := context.Background()
	s, clock := newLocal(5)

	require.NoError(t, s.Increment(ctx, "ip:old", time.Minute))
	clock.advance(2 * time.Minute)
	require.NoError(t, s.Increment(ctx, "ip:new", time.Minute))

	_, ok := s.buckets["ip:old"]
	assert.False(t, ok)
	_, ok = s.buckets["ip:new"]
	assert.True(t, ok)
}
