package ratelimiter

import "fmt"

// Option adjusts construction-time behavior shared by both algorithms.
type Option func(*settings) error

type settings struct {
	clock  Clock
	shards int
}

func applyOptions(opts []Option) (settings, error) {
	s := settings{
		clock:  SystemClock(),
		shards: defaultShardCount,
	}
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return settings{}, err
		}
	}
	return s, nil
}

// WithClock overrides the limiter's time source. Tests pass a ManualClock to
// make refill and window expiry deterministic.
func WithClock(c Clock) Option {
	return func(s *settings) error {
		if c == nil {
			return fmt.Errorf("%w: clock cannot be nil", ErrInvalidConfig)
		}
		s.clock = c
		return nil
	}
}

// WithShardCount sets the number of lock partitions in the key map.
// The default is 16.
func WithShardCount(n int) Option {
	return func(s *settings) error {
		if n <= 0 {
			return fmt.Errorf("%w: shard count must be positive, got %d", ErrInvalidConfig, n)
		}
		s.shards = n
		return nil
	}
}
