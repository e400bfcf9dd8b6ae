package music

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/status"
	"github.com/minipuft/starrynight/vmath"
)

// Snapshot is the per-frame music state handed to generators
// Value semantics; Palette is shared and must not be mutated
type Snapshot struct {
	BeatIntensity float64
	TempoBPM      float64
	BeatPeriod    time.Duration // 0 when tempo unknown
	Mode          HarmonicMode
	Palette       []colorful.Color
	LastBeat      time.Time
}

// paletteState is swapped whole so readers never observe a partial update
type paletteState struct {
	colors []colorful.Color
	mode   HarmonicMode
}

// Options tune the envelope; zero values fall back to parameter defaults
type Options struct {
	HalfLife   time.Duration
	AttackGain float64
	StaleAfter time.Duration
}

func (o Options) withDefaults() Options {
	if o.HalfLife <= 0 {
		o.HalfLife = parameter.BeatHalfLife
	}
	if o.AttackGain <= 0 {
		o.AttackGain = parameter.BeatAttackGain
	}
	if o.StaleAfter <= 0 {
		o.StaleAfter = parameter.BeatTimestampGate
	}
	return o
}

// Bus fans one music signal out to every consumer. Producers push beat and
// tempo events from any goroutine; the frame loop calls Tick once per frame
// and generators read the immutable Snapshot via Sample
//
// Silence is a valid state: the envelope decays to zero and the default
// palette holds until an analyzer publishes
type Bus struct {
	log  *slog.Logger
	opts Options

	ring    *eventRing
	palette atomic.Pointer[paletteState]

	// Frame-confined envelope state
	intensity  float64
	envelopeAt time.Time // instant the intensity value was last correct
	lastBeat   time.Time // newest applied beat timestamp
	tempo      float64
	snap       Snapshot
	scratch    []Event
	ticked     bool

	statEvents   *atomic.Int64
	statStale    *atomic.Int64
	statRejected *atomic.Int64
	statBeat     *status.AtomicFloat
	statTempo    *status.AtomicFloat
}

// NewBus creates a bus at rest: zero intensity, default palette
func NewBus(log *slog.Logger, reg *status.Registry, opts Options) *Bus {
	b := &Bus{
		log:          log.With("component", "musicbus"),
		opts:         opts.withDefaults(),
		ring:         newEventRing(),
		scratch:      make([]Event, 0, parameter.MusicRingSize),
		statEvents:   reg.Ints.Get("bus.events"),
		statStale:    reg.Ints.Get("bus.stale"),
		statRejected: reg.Ints.Get("bus.rejected"),
		statBeat:     reg.Floats.Get("bus.beat"),
		statTempo:    reg.Floats.Get("bus.tempo"),
	}
	b.palette.Store(&paletteState{colors: DefaultPalette(), mode: HarmonyNeutral})
	b.rebuildSnapshot()
	return b
}

// OnBeatEvent ingests a detected beat. Safe from any goroutine
// NaN, infinite or negative intensities are rejected at the boundary
func (b *Bus) OnBeatEvent(intensity float64, ts time.Time) {
	if math.IsNaN(intensity) || math.IsInf(intensity, 0) || intensity < 0 {
		b.statRejected.Add(1)
		b.log.Warn("rejected beat event", "intensity", intensity)
		return
	}
	if intensity > 1 {
		intensity = 1
	}
	b.ring.Push(Event{Type: EventBeat, Timestamp: ts, Intensity: intensity})
}

// OnTempoUpdate ingests a tempo estimate. Safe from any goroutine
// Estimates outside the plausible BPM range are rejected
func (b *Bus) OnTempoUpdate(bpm float64) {
	if math.IsNaN(bpm) || bpm < parameter.TempoMinBPM || bpm > parameter.TempoMaxBPM {
		b.statRejected.Add(1)
		b.log.Warn("rejected tempo update", "bpm", bpm)
		return
	}
	b.ring.Push(Event{Type: EventTempo, BPM: bpm})
}

// OnPaletteUpdate replaces the palette atomically (copy-on-publish)
// Safe from any goroutine; consumers see the new palette from the next
// Tick onward, never a partial one. Empty palettes are rejected
func (b *Bus) OnPaletteUpdate(colors []colorful.Color, mode HarmonicMode) {
	if len(colors) == 0 {
		b.statRejected.Add(1)
		b.log.Warn("rejected empty palette")
		return
	}
	cp := make([]colorful.Color, len(colors))
	copy(cp, colors)
	b.palette.Store(&paletteState{colors: cp, mode: mode})
}

// Tick drains pending events and advances the envelope to now
// Frame loop only
func (b *Bus) Tick(now time.Time) {
	if !b.ticked {
		// First tick anchors decay; nothing has elapsed yet
		b.envelopeAt = now
		b.ticked = true
	}

	events := b.ring.Consume(b.scratch)
	for _, ev := range events {
		switch ev.Type {
		case EventBeat:
			b.applyBeat(ev, now)
		case EventTempo:
			b.tempo = ev.BPM
		}
	}
	b.scratch = events[:0]

	b.decayTo(now)
	b.rebuildSnapshot()

	b.statEvents.Add(int64(len(events)))
	b.statBeat.Set(b.intensity)
	b.statTempo.Set(b.tempo)
}

// applyBeat folds one beat into the envelope with timestamp gating:
// an event older than the newest applied beat, or older than the stale
// window, never rewinds or re-attacks the envelope
func (b *Bus) applyBeat(ev Event, now time.Time) {
	if ev.Timestamp.Before(b.lastBeat) || now.Sub(ev.Timestamp) > b.opts.StaleAfter {
		b.statStale.Add(1)
		return
	}

	// Decay forward to the beat instant before comparing, so the attack
	// contends with the envelope value at that moment
	if ev.Timestamp.After(b.envelopeAt) {
		b.decayTo(ev.Timestamp)
	}

	attack := vmath.Clamp01(ev.Intensity * b.opts.AttackGain)
	if attack > b.intensity {
		b.intensity = attack
	}
	b.lastBeat = ev.Timestamp
}

// decayTo advances the exponential decay to the given instant
func (b *Bus) decayTo(t time.Time) {
	elapsed := t.Sub(b.envelopeAt)
	if elapsed <= 0 {
		return
	}
	b.intensity *= vmath.HalfLifeDecay(elapsed.Seconds(), b.opts.HalfLife.Seconds())
	if b.intensity < parameter.BeatRestThreshold {
		b.intensity = 0
	}
	b.envelopeAt = t
}

// rebuildSnapshot publishes the frame-stable view
func (b *Bus) rebuildSnapshot() {
	pal := b.palette.Load()
	var period time.Duration
	if b.tempo > 0 {
		period = time.Duration(60 / b.tempo * float64(time.Second))
	}
	b.snap = Snapshot{
		BeatIntensity: b.intensity,
		TempoBPM:      b.tempo,
		BeatPeriod:    period,
		Mode:          pal.mode,
		Palette:       pal.colors,
		LastBeat:      b.lastBeat,
	}
}

// Sample returns the snapshot computed by the most recent Tick
// Pure: any number of calls per frame observe the same value
func (b *Bus) Sample() Snapshot {
	return b.snap
}

// DroppedEvents exposes ring overflow for diagnostics
func (b *Bus) DroppedEvents() int64 {
	return b.ring.Dropped()
}
