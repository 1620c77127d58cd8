package testutil

import (
	"sync"
	"time"

	"github.com/roach88/phrasekit/internal/host"
)

// StepClock is a host.Clock that never sleeps. Every After call advances a
// logical time by d and returns a channel that already holds that time.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	now   time.Time
	calls int
}

var _ host.Clock = (*StepClock)(nil)

// NewStepClock creates a clock whose logical time starts at start.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{now: start}
}

// After advances the logical time and fires immediately.
func (c *StepClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// Now returns the logical time after all After calls so far.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Calls returns how many times After was called.
func (c *StepClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// StalledClock is a host.Clock whose channels never fire. Loops waiting on
// it only exit through context cancellation.
type StalledClock struct{}

// After returns a channel that is never written.
func (StalledClock) After(time.Duration) <-chan time.Time {
	return make(chan time.Time)
}
