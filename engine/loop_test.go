package engine

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/status"
)

func TestTickerDriverDeliversFrames(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := status.NewRegistry()
	d := NewTickerDriver(log, nil, reg, 2*time.Millisecond)

	var ticks atomic.Int64
	d.Start(func(now time.Time) {
		if now.IsZero() {
			t.Error("Expected a real timestamp")
		}
		ticks.Add(1)
	})

	time.Sleep(80 * time.Millisecond)
	d.Stop()

	got := ticks.Load()
	if got < 5 {
		t.Errorf("Expected at least 5 frames in 80ms at 2ms interval, got %d", got)
	}
	if reg.Ints.Get("driver.ticks").Load() != got {
		t.Errorf("Expected tick metric to match, got %d vs %d", reg.Ints.Get("driver.ticks").Load(), got)
	}

	// No frames after Stop
	time.Sleep(10 * time.Millisecond)
	if ticks.Load() != got {
		t.Errorf("Expected no frames after stop, got %d", ticks.Load())
	}
}

func TestTickerDriverStopIsIdempotent(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := NewTickerDriver(log, nil, status.NewRegistry(), time.Millisecond)

	d.Start(func(time.Time) {})
	d.Stop()
	d.Stop()
}

func TestTickerDriverStopAbandonsStuckFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("waits out the shutdown grace period")
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := NewTickerDriver(log, nil, status.NewRegistry(), time.Millisecond)

	entered := make(chan struct{}, 1)
	block := make(chan struct{})
	d.Start(func(time.Time) {
		entered <- struct{}{}
		<-block
	})
	<-entered

	start := time.Now()
	d.Stop()
	elapsed := time.Since(start)
	close(block)

	if elapsed < parameter.ShutdownGrace {
		t.Errorf("Expected Stop to wait out the grace period, returned after %v", elapsed)
	}
	if elapsed > parameter.ShutdownGrace+time.Second {
		t.Errorf("Expected Stop to give up after the grace period, took %v", elapsed)
	}
}

func TestTickerDriverIgnoresNilCallback(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	d := NewTickerDriver(log, nil, status.NewRegistry(), time.Millisecond)

	d.Start(nil)
	d.Stop()
}
