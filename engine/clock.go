package engine

import (
	"sync"
	"time"
)

// Clock supplies timestamps to the frame pipeline. Implementations must be
// safe for concurrent use
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with monotonic readings
type SystemClock struct{}

// NewSystemClock creates a system clock
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading
func (*SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a manually controlled time source for testing
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock creates a mock clock at the given start time
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now returns the current mocked time
func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// SetTime sets the current time for the mock
func (c *MockClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance advances the current time by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// PausableClock freezes effect time while the host pauses playback, so
// animations resume where they stopped instead of jumping.
// Effect time = inner time minus the cumulative paused duration
type PausableClock struct {
	mu       sync.RWMutex
	inner    Clock
	paused   bool
	pausedAt time.Time
	skew     time.Duration
}

// NewPausableClock wraps inner; nil inner uses the system clock
func NewPausableClock(inner Clock) *PausableClock {
	if inner == nil {
		inner = NewSystemClock()
	}
	return &PausableClock{inner: inner}
}

// Now returns the current effect time; frozen while paused
func (c *PausableClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.paused {
		return c.pausedAt.Add(-c.skew)
	}
	return c.inner.Now().Add(-c.skew)
}

// Pause stops effect time. Pausing while paused is a no-op
func (c *PausableClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.inner.Now()
}

// Resume continues effect time from where Pause froze it
func (c *PausableClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.paused = false
	c.skew += c.inner.Now().Sub(c.pausedAt)
}

// Paused reports whether effect time is frozen
func (c *PausableClock) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}
