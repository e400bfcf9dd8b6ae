package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/minipuft/starrynight/core"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/status"
)

// FrameFunc is one frame callback; now is the driver's clock reading
type FrameFunc func(now time.Time)

// TickerDriver delivers frame callbacks at a fixed interval from its own
// goroutine. Deadlines walk forward by the interval to hold long-run
// cadence; after a stall the driver realigns instead of firing a burst of
// catch-up frames. Hosts with a native frame callback do not need it
type TickerDriver struct {
	log      *slog.Logger
	clock    Clock
	interval time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statTicks   *atomic.Int64
	statResyncs *atomic.Int64
}

// NewTickerDriver creates a driver. interval <= 0 falls back to the
// default frame target; nil clock uses the system clock
func NewTickerDriver(log *slog.Logger, clock Clock, reg *status.Registry, interval time.Duration) *TickerDriver {
	if interval <= 0 {
		interval = parameter.DefaultFrameTarget
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	return &TickerDriver{
		log:         log.With("component", "driver"),
		clock:       clock,
		interval:    interval,
		stopChan:    make(chan struct{}),
		statTicks:   reg.Ints.Get("driver.ticks"),
		statResyncs: reg.Ints.Get("driver.resyncs"),
	}
}

// Start launches the loop. Subsequent calls are no-ops
func (d *TickerDriver) Start(fn FrameFunc) {
	if fn == nil {
		return
	}
	if !d.running.CompareAndSwap(false, true) {
		return
	}
	d.wg.Add(1)
	core.Go(func() { d.loop(fn) })
	d.log.Info("frame driver started", "interval", d.interval)
}

// Stop halts the loop and waits for an in-flight frame to finish, up to
// the shutdown grace period. A frame stuck past the grace is abandoned so
// shutdown cannot hang on a wedged callback
func (d *TickerDriver) Stop() {
	d.stopOnce.Do(func() {
		if !d.running.CompareAndSwap(true, false) {
			return
		}
		close(d.stopChan)

		done := make(chan struct{})
		core.Go(func() {
			d.wg.Wait()
			close(done)
		})
		select {
		case <-done:
			d.log.Info("frame driver stopped", "ticks", d.statTicks.Load())
		case <-time.After(parameter.ShutdownGrace):
			d.log.Warn("frame loop did not exit within grace, abandoning",
				"grace", parameter.ShutdownGrace)
		}
	})
}

func (d *TickerDriver) loop(fn FrameFunc) {
	defer d.wg.Done()

	deadline := d.clock.Now().Add(d.interval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-d.stopChan:
			return
		default:
		}

		now := d.clock.Now()
		if !now.Before(deadline) {
			fn(now)
			d.statTicks.Add(1)

			deadline = deadline.Add(d.interval)
			if now.Sub(deadline) > parameter.TickerResyncThreshold {
				d.statResyncs.Add(1)
				deadline = now.Add(d.interval)
			}
		}

		sleep := deadline.Sub(d.clock.Now())
		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-d.stopChan:
				return
			}
		}
	}
}
