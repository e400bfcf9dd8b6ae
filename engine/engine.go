package engine

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/minipuft/starrynight/config"
	"github.com/minipuft/starrynight/effect"
	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/pattern"
	"github.com/minipuft/starrynight/perf"
	"github.com/minipuft/starrynight/status"
	"github.com/minipuft/starrynight/style"
)

// ErrNoSurface is returned when assembly is attempted without a style surface
var ErrNoSurface = errors.New("engine: no style surface")

// Options configure assembly. Zero values pick production parts: system
// clock, CPU-count capability probe, discarded logs, private registry
type Options struct {
	Log      *slog.Logger
	Registry *status.Registry
	Clock    Clock
	Surface  style.Surface
	Hinter   perf.CapabilityHinter
	Settings config.Settings
}

// Engine assembles the coordination pipeline: performance governor, music
// signal bus, style batcher, pattern library and lifecycle coordinator.
// Hosts drive it through Frame, directly or via a TickerDriver, and shut
// down with Close
type Engine struct {
	log    *slog.Logger
	reg    *status.Registry
	clock  Clock
	gov    *perf.Governor
	bus    *music.Bus
	styles *style.Batcher
	lib    *pattern.Library
	coord  *effect.Coordinator
}

// New wires the pipeline from options and settings
func New(opts Options) (*Engine, error) {
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	clock := opts.Clock
	if clock == nil {
		clock = NewSystemClock()
	}

	ceiling := perf.ProbeCeiling()
	if opts.Hinter != nil {
		ceiling = opts.Hinter.QualityCeiling()
	}

	gov := perf.NewGovernor(log, clock, reg, ceiling, opts.Settings.FrameTarget())
	if opts.Settings.Quality != "" {
		if tier, ok := perf.ParseTier(opts.Settings.Quality); ok {
			gov.Pin(tier)
		}
	}

	bus := music.NewBus(log, reg, music.Options{
		HalfLife:   opts.Settings.Music.BeatHalfLife(),
		AttackGain: opts.Settings.Music.BeatGain,
		StaleAfter: opts.Settings.Music.StaleAfter(),
	})

	lib := pattern.NewLibrary(log, reg, gov.Profile().CacheCapacity)
	styles := style.NewBatcher(log, reg)

	coord := effect.NewCoordinator(effect.Deps{
		Log:      log,
		Registry: reg,
		Governor: gov,
		Bus:      bus,
		Styles:   styles,
		Patterns: lib,
		Surface:  opts.Surface,
	})
	coord.SetReducedMotion(opts.Settings.ReducedMotion)

	e := &Engine{
		log:    log.With("component", "engine"),
		reg:    reg,
		clock:  clock,
		gov:    gov,
		bus:    bus,
		styles: styles,
		lib:    lib,
		coord:  coord,
	}
	e.log.Info("engine assembled",
		"ceiling", ceiling.String(),
		"tier", gov.Tier().String(),
		"target", gov.Target(),
		"reduced_motion", opts.Settings.ReducedMotion)
	return e, nil
}

// Frame runs one coordinated frame. Hosts with a drawing surface pass
// their canvas and its size in canvas units; style-only hosts pass nil
// and zeros
func (e *Engine) Frame(now time.Time, canvas pattern.Canvas, width, height float64) {
	e.coord.Frame(now, canvas, width, height)
}

// Register admits a generator at the given priority
func (e *Engine) Register(gen effect.Generator, priority effect.Priority) error {
	return e.coord.Register(gen, priority)
}

// Unregister removes a generator; safe from generator callbacks
func (e *Engine) Unregister(id string) {
	e.coord.Unregister(id)
}

// Close tears down all generators and stops accepting work
func (e *Engine) Close() {
	e.coord.Close()
	e.log.Info("engine closed")
}

// Clock returns the engine's time source
func (e *Engine) Clock() Clock { return e.clock }

// Bus exposes the music signal bus for producers (beat sources, analyzers)
func (e *Engine) Bus() *music.Bus { return e.bus }

// Governor exposes the performance governor
func (e *Engine) Governor() *perf.Governor { return e.gov }

// Patterns exposes the pattern library
func (e *Engine) Patterns() *pattern.Library { return e.lib }

// Registry exposes the metric registry
func (e *Engine) Registry() *status.Registry { return e.reg }
