package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	first := rl.GetLimiter("10.0.0.1")
	assert.Same(t, first, rl.GetLimiter("10.0.0.1"))

	now = now.Add(idleAfter + time.Second)
	rl.GetLimiter("10.0.0.2")

	assert.NotContains(t, rl.clients, "10.0.0.1")
	assert.Contains(t, rl.clients, "10.0.0.2")
	assert.NotSame(t, first, rl.GetLimiter("10.0.0.1"))
}
