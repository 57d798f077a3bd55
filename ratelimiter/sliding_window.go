package ratelimiter

import (
	"fmt"
	"time"
)

// windowState is the per-key admit log of a SlidingWindowLimiter.
type windowState struct {
	admits []time.Time
}

// SlidingWindowLimiter admits a request while fewer than maxRequests admit
// timestamps fall inside the trailing window. The log is exact rather than
// bucketed, which costs O(maxRequests) memory per key but makes the bound
// auditable: no true window of the configured length ever holds more admits
// than the limit.
type SlidingWindowLimiter struct {
	maxRequests int
	window      time.Duration
	clock       Clock
	windows     *shardedMap[windowState]
}

var _ RateLimiter = (*SlidingWindowLimiter)(nil)

// NewSlidingWindowLimiter creates a sliding window limiter admitting at most
// maxRequests per key within any trailing window.
func NewSlidingWindowLimiter(maxRequests int, window time.Duration, opts ...Option) (*SlidingWindowLimiter, error) {
	if maxRequests <= 0 {
		return nil, fmt.Errorf("%w: max requests must be positive, got %d", ErrInvalidConfig, maxRequests)
	}
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, window)
	}
	s, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &SlidingWindowLimiter{
		maxRequests: maxRequests,
		window:      window,
		clock:       s.clock,
		windows:     newShardedMap[windowState](s.shards),
	}, nil
}

// Allow reports whether one unit of work for key may proceed, recording the
// admit timestamp when it does. Denied calls leave the log untouched.
func (l *SlidingWindowLimiter) Allow(key string) bool {
	now := l.clock.Now()
	cutoff := now.Add(-l.window)
	allowed := false
	l.windows.update(key, now,
		func() windowState { return windowState{} },
		func(st *windowState) {
			st.prune(cutoff)
			if len(st.admits) < l.maxRequests {
				st.admits = append(st.admits, now)
				allowed = true
			}
		})
	return allowed
}

// prune drops admits that have aged past cutoff. The log is ordered, so a
// single scan from the front finds the survivors; the in-place copy keeps
// the slice from pinning expired entries.
func (st *windowState) prune(cutoff time.Time) {
	i := 0
	for i < len(st.admits) && !st.admits[i].After(cutoff) {
		i++
	}
	if i > 0 {
		st.admits = append(st.admits[:0], st.admits[i:]...)
	}
}

// Keys returns the number of keys currently tracked.
func (l *SlidingWindowLimiter) Keys() int {
	return l.windows.size()
}

// EvictIdle removes state for keys that have not been seen for at least
// maxIdle and returns the number of keys dropped.
func (l *SlidingWindowLimiter) EvictIdle(maxIdle time.Duration) int {
	return l.windows.evictIdle(l.clock.Now().Add(-maxIdle))
}

// StartReaper evicts idle keys every interval on a background goroutine.
// The returned function stops the reaper and may be called more than once.
func (l *SlidingWindowLimiter) StartReaper(interval, maxIdle time.Duration) func() {
	return startReaper(interval, func() { l.EvictIdle(maxIdle) })
}
