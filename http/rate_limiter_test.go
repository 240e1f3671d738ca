package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestRateLimiter_RefillsAfterWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(2, time.Minute, clock.now)

	ok, _ := rl.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)

	ok, wait := rl.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, wait)

	// Other clients have their own bucket.
	ok, _ = rl.Allow("5.6.7.8")
	assert.True(t, ok)

	clock.t = clock.t.Add(45 * time.Second)
	ok, wait = rl.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 15*time.Second, wait)

	clock.t = clock.t.Add(15 * time.Second)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestRateLimiter_CleanupDropsIdleClients(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(1, time.Minute, clock.now)

	rl.Allow("1.2.3.4")
	clock.t = clock.t.Add(2 * time.Hour)
	rl.Allow("5.6.7.8")
	rl.cleanup()

	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "5.6.7.8")
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	rl.Stop()
}
