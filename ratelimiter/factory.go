package ratelimiter

import "fmt"

// New constructs a configured limiter by algorithm name. Validation is
// fail-fast: a non-positive capacity, interval, request count, or window
// fails construction instead of being clamped, and an unrecognized algorithm
// is an error rather than a fallback. A limiter returned by New is fully
// initialized and ready for concurrent use; construction performs no I/O.
func New(algorithm Algorithm, cfg Config, opts ...Option) (RateLimiter, error) {
	switch algorithm {
	case TokenBucket:
		return NewTokenBucketLimiter(cfg.Capacity, cfg.RefillInterval, opts...)
	case SlidingWindow:
		return NewSlidingWindowLimiter(cfg.MaxRequests, cfg.Window, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}
