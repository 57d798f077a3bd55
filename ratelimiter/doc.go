// Package ratelimiter provides in-process, per-key admission control.
//
// Two algorithms are available, both behind the same RateLimiter interface:
//
//   - Token bucket: each key owns an integer budget of tokens that refills
//     at a fixed cadence (one token per refill interval). Bursts up to the
//     bucket capacity are allowed, then the key settles into the refill rate.
//   - Sliding window: each key owns a log of admit timestamps. A request is
//     admitted while fewer than the configured maximum fall inside the
//     trailing window. This is exact (log-based), not bucketed.
//
// A limiter is built once through New and shared by all callers:
//
//	limiter, err := ratelimiter.New(ratelimiter.TokenBucket, ratelimiter.Config{
//		Capacity:       100,
//		RefillInterval: 50 * time.Millisecond,
//	})
//	if err != nil {
//		// configuration error, do not proceed with a misconfigured limiter
//	}
//	if limiter.Allow("user-42") {
//		// admitted
//	}
//
// Allow never returns an error and never blocks beyond the lock guarding the
// key's shard. Keys are opaque strings; the empty string is a valid key.
// State for different keys lives in independently locked shards, so traffic
// on one key never contends with another key outside its shard.
//
// Per-key state is created lazily and kept for the lifetime of the limiter.
// For long-lived processes with high-cardinality keys, StartReaper evicts
// entries that have been idle longer than a configured age.
//
// Time is read through the Clock interface. Production code uses the system
// clock; tests inject a ManualClock to make refill and window expiry
// deterministic.
package ratelimiter
