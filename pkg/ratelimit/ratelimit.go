package ratelimit

import (
	"errors"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

var ErrLimitExceeded = errors.New("rate limit exceeded")

const (
	defaultMaxKeys = 1000
	defaultIdleTTL = 5 * time.Minute
)

// Limiter is a per-key token bucket. Idle buckets are dropped after a while.
type Limiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[int64, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// New creates a Limiter allowing requestsPerMin per key. requestsPerMin <= 0 disables limiting.
func New(requestsPerMin int) *Limiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiters: expirable.NewLRU[int64, *rate.Limiter](defaultMaxKeys, nil, defaultIdleTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burst,
	}
}

// Allow takes one token from key's bucket.
func (l *Limiter) Allow(key int64) error {
	if l == nil || l.rate <= 0 {
		return nil
	}

	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters.Add(key, limiter)
	}
	l.mu.Unlock()

	if !limiter.Allow() {
		return ErrLimitExceeded
	}
	return nil
}
