package effect

import (
	"log/slog"
	"time"

	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/pattern"
	"github.com/minipuft/starrynight/perf"
	"github.com/minipuft/starrynight/style"
)

// State is a generator's lifecycle position. Only the coordinator moves it
type State uint8

const (
	StateUninitialized State = iota
	StateActive
	StateDegraded  // runs with Degraded set so it sheds its own work
	StateSuspended // skipped entirely, retried after a cooldown
	StateDestroyed // terminal
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateDegraded:
		return "degraded"
	case StateSuspended:
		return "suspended"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Priority determines generator order within a frame. Lower values run
// first, so background layers paint before accents and overlays
type Priority int

const (
	PriorityBackground Priority = 0
	PriorityAmbient    Priority = 10
	PriorityAccent     Priority = 20
	PriorityBeat       Priority = 30
	PriorityOverlay    Priority = 40
)

// InitContext carries one-time setup dependencies into Init
type InitContext struct {
	Log     *slog.Logger
	Tier    perf.Tier
	Profile perf.Profile
	Seed    uint64 // stable per-generator randomness seed
}

// FrameContext is rebuilt every frame and handed to each admitted
// generator. Canvas is nil on hosts without a drawing surface; generators
// must tolerate that and still queue their style variables
type FrameContext struct {
	Now     time.Time
	Delta   time.Duration
	Music   music.Snapshot
	Tier    perf.Tier
	Profile perf.Profile

	// Viewport in canvas units; zero on style-only hosts
	Width  float64
	Height float64

	// Degraded asks the generator to shed work (fewer particles, smaller
	// shapes) while it remains scheduled
	Degraded bool

	Styles   *style.Batcher
	Patterns pattern.Scoped
	Canvas   pattern.Canvas
}

// Generator produces one visual effect. Update advances internal state,
// Render queues style variables and draws patterns; the coordinator treats
// a failure in either as the generator failing the frame
type Generator interface {
	ID() string
	MinTier() perf.Tier
	Init(ctx InitContext) error
	Update(fc FrameContext) error
	Render(fc FrameContext) error
	Teardown()
}

// MotionSensitive generators are skipped while the reduced-motion
// accessibility flag is set
type MotionSensitive interface {
	MotionSensitive() bool
}

// VisibilityToggle lets a generator hide without unregistering
type VisibilityToggle interface {
	IsVisible() bool
}
