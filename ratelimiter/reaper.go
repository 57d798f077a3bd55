package ratelimiter

import (
	"sync"
	"time"
)

// startReaper runs fn every interval on a background goroutine until the
// returned stop function is called.
func startReaper(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
