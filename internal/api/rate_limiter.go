package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultWriteRPS     = 5
	defaultWriteBurst   = 30
	limiterIdleInterval = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// userRateLimiter keeps one token bucket per user. Idle buckets are dropped
// on access, at most once per idle interval.
type userRateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	visitors  map[uint]*visitor
	lastPrune time.Time
	now       func() time.Time
}

func newUserRateLimiter(rps float64, burst int) *userRateLimiter {
	if rps <= 0 {
		rps = defaultWriteRPS
	}
	if burst <= 0 {
		burst = defaultWriteBurst
	}
	return &userRateLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		visitors: make(map[uint]*visitor),
		now:      time.Now,
	}
}

func (limiter *userRateLimiter) allow(userID uint) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	now := limiter.now()
	limiter.pruneLocked(now)

	current, exists := limiter.visitors[userID]
	if !exists {
		current = &visitor{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.visitors[userID] = current
	}
	current.lastSeen = now
	return current.limiter.AllowN(now, 1)
}

func (limiter *userRateLimiter) pruneLocked(now time.Time) {
	if now.Sub(limiter.lastPrune) < limiterIdleInterval {
		return
	}
	for userID, entry := range limiter.visitors {
		if now.Sub(entry.lastSeen) > limiterIdleInterval {
			delete(limiter.visitors, userID)
		}
	}
	limiter.lastPrune = now
}

func (limiter *userRateLimiter) size() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.visitors)
}
