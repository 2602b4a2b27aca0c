package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLimiter_SameClientSharesLimiter(t *testing.T) {
	rl := NewClientRateLimiter(DefaultRateLimiterConfig())

	first := rl.getLimiter("10.0.0.1")
	second := rl.getLimiter("10.0.0.1")

	assert.Same(t, first, second)
	assert.Equal(t, 1, rl.Stats()["active_clients"])
}

func TestGetLimiter_ClientsAreIndependent(t *testing.T) {
	cfg := DefaultRateLimiterConfig()
	cfg.RequestsPerSecond = 1
	cfg.BurstSize = 1
	rl := NewClientRateLimiter(cfg)

	require.True(t, rl.getLimiter("10.0.0.1").Allow())
	assert.False(t, rl.getLimiter("10.0.0.1").Allow())

	// A different client keeps its own bucket.
	assert.True(t, rl.getLimiter("10.0.0.2").Allow())
}

func TestCleanup_RemovesStaleEntriesOnly(t *testing.T) {
	rl := NewClientRateLimiter(DefaultRateLimiterConfig())

	rl.getLimiter("10.0.0.1")
	rl.getLimiter("10.0.0.2")

	rl.mu.Lock()
	rl.limiters["10.0.0.1"].lastSeen = time.Now().Add(-rl.entryTTL - time.Minute)
	rl.mu.Unlock()

	rl.cleanup()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	assert.NotContains(t, rl.limiters, "10.0.0.1")
	assert.Contains(t, rl.limiters, "10.0.0.2")
}
