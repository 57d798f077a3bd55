package ratelimiter

import (
	"fmt"
	"time"
)

// bucketState is the per-key record of a TokenBucketLimiter.
type bucketState struct {
	tokens     int
	lastRefill time.Time
}

// TokenBucketLimiter regulates each key with a refillable integer budget of
// tokens. A key may burst up to the bucket capacity, after which admits are
// paced at one token per refill interval. Accounting is integer-only: a
// partial interval never contributes a fractional token, so the refill
// cadence is exact and testable.
type TokenBucketLimiter struct {
	capacity int
	interval time.Duration
	clock    Clock
	buckets  *shardedMap[bucketState]
}

var _ RateLimiter = (*TokenBucketLimiter)(nil)

// NewTokenBucketLimiter creates a token bucket limiter with the given burst
// capacity and the duration it takes to regenerate exactly one token.
func NewTokenBucketLimiter(capacity int, refillInterval time.Duration, opts ...Option) (*TokenBucketLimiter, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, capacity)
	}
	if refillInterval <= 0 {
		return nil, fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, refillInterval)
	}
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &TokenBucketLimiter{
		capacity: capacity,
		interval: refillInterval,
		clock:    s.clock,
		buckets:  newShardedMap[bucketState](s.shards),
	}, nil
}

// Allow reports whether one unit of work for key may proceed, consuming a
// token when it does. A key starts with a full bucket on first observation.
func (l *TokenBucketLimiter) Allow(key string) bool {
	now := l.clock.Now()
	allowed := false
	l.buckets.update(key, now,
		func() bucketState {
			return bucketState{tokens: l.capacity, lastRefill: now}
		},
		func(st *bucketState) {
			l.refill(st, now)
			if st.tokens > 0 {
				st.tokens--
				allowed = true
			}
		})
	return allowed
}

// refill tops the bucket up with one token per whole interval elapsed since
// lastRefill. lastRefill advances by whole intervals only, never to now, so
// unconsumed progress toward the next token carries over to the next call.
// A clock that moved backward credits nothing.
func (l *TokenBucketLimiter) refill(st *bucketState, now time.Time) {
	elapsed := now.Sub(st.lastRefill)
	if elapsed < l.interval {
		return
	}
	tokensToAdd := int64(elapsed / l.interval)
	if tokensToAdd >= int64(l.capacity-st.tokens) {
		st.tokens = l.capacity
	} else {
		st.tokens += int(tokensToAdd)
	}
	st.lastRefill = st.lastRefill.Add(elapsed - elapsed%l.interval)
}

// Keys returns the number of keys currently tracked.
func (l *TokenBucketLimiter) Keys() int {
	return l.buckets.size()
}

// EvictIdle removes state for keys that have not been seen for at least
// maxIdle and returns the number of keys dropped. A dropped key starts over
// with a full bucket on its next request.
func (l *TokenBucketLimiter) EvictIdle(maxIdle time.Duration) int {
	return l.buckets.evictIdle(l.clock.Now().Add(-maxIdle))
}

// StartReaper evicts idle keys every interval on a background goroutine.
// The returned function stops the reaper and may be called more than once.
func (l *TokenBucketLimiter) StartReaper(interval, maxIdle time.Duration) func() {
	return startReaper(interval, func() { l.EvictIdle(maxIdle) })
}
