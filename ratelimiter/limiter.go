package ratelimiter

import "time"

// Algorithm selects the admission strategy at construction time.
type Algorithm string

const (
	// TokenBucket grants each key a refillable integer budget of tokens.
	TokenBucket Algorithm = "token_bucket"
	// SlidingWindow admits while the count of admit timestamps inside the
	// trailing window stays below the configured maximum.
	SlidingWindow Algorithm = "sliding_window"
)

// Config holds the construction-time parameters for a limiter. Only the
// fields relevant to the selected algorithm are consulted.
type Config struct {
	// Capacity is the maximum burst size of a token bucket.
	Capacity int
	// RefillInterval is the time it takes a token bucket to regenerate
	// exactly one token.
	RefillInterval time.Duration

	// MaxRequests is the admit budget of a sliding window.
	MaxRequests int
	// Window is the trailing duration MaxRequests is enforced over.
	Window time.Duration
}

// RateLimiter decides whether a unit of work for the given key may proceed.
// Deciding and charging the key's budget are atomic with respect to other
// calls for the same key. Denial is a normal outcome, not an error.
//
// Implementations are safe for concurrent use by multiple goroutines.
type RateLimiter interface {
	Allow(key string) bool
}

// IdleEvicter is satisfied by limiters that can reclaim state for keys no
// longer sending traffic. Both built-in algorithms implement it.
type IdleEvicter interface {
	// Keys returns the number of keys currently tracked.
	Keys() int
	// EvictIdle removes keys idle for at least maxIdle, returning the count.
	EvictIdle(maxIdle time.Duration) int
	// StartReaper evicts idle keys every interval until the returned stop
	// function is called.
	StartReaper(interval, maxIdle time.Duration) func()
}
