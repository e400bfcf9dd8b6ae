package parameter

import "time"

// Frame Loop
const (
	// TickerResyncThreshold is the accumulated drift beyond which the
	// ticker driver realigns instead of compensating
	TickerResyncThreshold = 250 * time.Millisecond

	// ShutdownGrace is how long Stop waits for the loop goroutine to exit
	ShutdownGrace = 2 * time.Second
)

// Settings Bounds
const (
	// MinTargetFPS and MaxTargetFPS clamp the configured frame rate
	MinTargetFPS = 15.0
	MaxTargetFPS = 240.0

	// MinMetronomeBPM and MaxMetronomeBPM bound the built-in beat source
	MinMetronomeBPM = 20.0
	MaxMetronomeBPM = 300.0
)
