package shmring

import (
	"fmt"
	"sync"
	"time"

	"github.com/heptiolabs/healthcheck"
)

// StallCheck returns a healthcheck.Check that fails when the ring has
// been continuously full with no consumer progress for at least window.
// A full ring with an advancing tail is load, not a stall. Register it on
// a healthcheck.Handler next to the process's other liveness checks.
func StallCheck(r *Ring, window time.Duration) healthcheck.Check {
	var (
		mu        sync.Mutex
		lastTail  uint64
		fullSince time.Time
	)
	return func() error {
		mu.Lock()
		defer mu.Unlock()

		tail := r.loadTail()
		if !r.IsFull() || tail != lastTail {
			lastTail = tail
			fullSince = time.Time{}
			return nil
		}
		if fullSince.IsZero() {
			fullSince = time.Now()
			return nil
		}
		if stalled := time.Since(fullSince); stalled >= window {
			return fmt.Errorf("ring %s full with no consumer progress for %v", r.Name(), stalled)
		}
		return nil
	}
}
