package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		algorithm Algorithm
		cfg       Config
		wantErr   error
	}{
		{
			name:      "token bucket",
			algorithm: TokenBucket,
			cfg:       Config{Capacity: 3, RefillInterval: 20 * time.Second},
		},
		{
			name:      "sliding window",
			algorithm: SlidingWindow,
			cfg:       Config{MaxRequests: 5, Window: time.Minute},
		},
		{
			name:      "zero capacity",
			algorithm: TokenBucket,
			cfg:       Config{Capacity: 0, RefillInterval: time.Second},
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "negative capacity",
			algorithm: TokenBucket,
			cfg:       Config{Capacity: -1, RefillInterval: time.Second},
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "zero refill interval",
			algorithm: TokenBucket,
			cfg:       Config{Capacity: 3},
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "zero max requests",
			algorithm: SlidingWindow,
			cfg:       Config{MaxRequests: 0, Window: time.Minute},
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "negative window",
			algorithm: SlidingWindow,
			cfg:       Config{MaxRequests: 5, Window: -time.Minute},
			wantErr:   ErrInvalidConfig,
		},
		{
			name:      "unknown algorithm",
			algorithm: Algorithm("leaky_bucket"),
			cfg:       Config{Capacity: 3, RefillInterval: time.Second},
			wantErr:   ErrUnknownAlgorithm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter, err := New(tt.algorithm, tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, limiter)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, limiter)
		})
	}
}

func TestNew_OptionValidation(t *testing.T) {
	cfg := Config{Capacity: 3, RefillInterval: time.Second}

	_, err := New(TokenBucket, cfg, WithShardCount(0))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(TokenBucket, cfg, WithClock(nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	limiter, err := New(TokenBucket, cfg, WithShardCount(4), WithClock(NewManualClock(testEpoch)))
	assert.NoError(t, err)
	assert.NotNil(t, limiter)
}
