package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// DigestLimiter caps how many Gemini digest requests the service makes per
// day. Zero max means unlimited. Counters reset on a rolling 24h window.
type DigestLimiter struct {
	mu        sync.Mutex
	count     int
	max       int
	resetTime time.Time
}

func NewDigestLimiter(max int) *DigestLimiter {
	return &DigestLimiter{
		max:       max,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reports whether another digest request fits in today's budget.
func (rl *DigestLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()
	return rl.max <= 0 || rl.count < rl.max
}

// Use consumes one request from the budget.
func (rl *DigestLimiter) Use() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()
	if rl.max > 0 && rl.count >= rl.max {
		return fmt.Errorf("digest rate limit exceeded (%d/%d)", rl.count, rl.max)
	}

	rl.count++
	return nil
}

// GetStats returns the current usage for /metrics.
func (rl *DigestLimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"digest_used":  rl.count,
		"digest_limit": rl.max,
		"reset_time":   rl.resetTime.Format(time.RFC3339),
	}
}

func (rl *DigestLimiter) checkReset() {
	if time.Now().After(rl.resetTime) {
		rl.count = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
