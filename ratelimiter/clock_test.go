package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock(t *testing.T) {
	now := SystemClock().Now()
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestManualClock(t *testing.T) {
	clock := NewManualClock(testEpoch)
	assert.Equal(t, testEpoch, clock.Now())

	clock.Advance(90 * time.Second)
	assert.Equal(t, testEpoch.Add(90*time.Second), clock.Now())

	clock.Advance(-time.Minute)
	assert.Equal(t, testEpoch.Add(30*time.Second), clock.Now())

	clock.Set(testEpoch)
	assert.Equal(t, testEpoch, clock.Now())
}
