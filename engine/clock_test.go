package engine

import (
	"testing"
	"time"
)

func TestMockClockControls(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)

	if !clk.Now().Equal(start) {
		t.Errorf("Expected start time, got %v", clk.Now())
	}
	clk.Advance(90 * time.Second)
	if !clk.Now().Equal(start.Add(90 * time.Second)) {
		t.Errorf("Expected advanced time, got %v", clk.Now())
	}
	clk.SetTime(start)
	if !clk.Now().Equal(start) {
		t.Errorf("Expected reset time, got %v", clk.Now())
	}
}

func TestPausableClockFreezesAndResumes(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inner := NewMockClock(start)
	pc := NewPausableClock(inner)

	inner.Advance(10 * time.Second)
	if got := pc.Now(); !got.Equal(start.Add(10 * time.Second)) {
		t.Fatalf("Expected unpaused time to track inner, got %v", got)
	}

	pc.Pause()
	inner.Advance(5 * time.Second)
	if got := pc.Now(); !got.Equal(start.Add(10 * time.Second)) {
		t.Errorf("Expected frozen time during pause, got %v", got)
	}
	if !pc.Paused() {
		t.Error("Expected Paused true")
	}

	pc.Resume()
	inner.Advance(3 * time.Second)
	if got := pc.Now(); !got.Equal(start.Add(13 * time.Second)) {
		t.Errorf("Expected resume to continue where it froze, got %v", got)
	}

	// A second pause accumulates more skew
	pc.Pause()
	inner.Advance(2 * time.Second)
	pc.Resume()
	if got := pc.Now(); !got.Equal(start.Add(13 * time.Second)) {
		t.Errorf("Expected paused interval excluded, got %v", got)
	}
}

func TestPausableClockRedundantCallsAreNoops(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	inner := NewMockClock(start)
	pc := NewPausableClock(inner)

	pc.Resume() // not paused
	pc.Pause()
	pc.Pause() // already paused
	inner.Advance(time.Second)
	pc.Resume()

	if got := pc.Now(); !got.Equal(start) {
		t.Errorf("Expected no drift from redundant calls, got %v", got)
	}
}
