package effect

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/pattern"
	"github.com/minipuft/starrynight/perf"
	"github.com/minipuft/starrynight/status"
	"github.com/minipuft/starrynight/style"
)

// Registration failures
var (
	ErrNilGenerator    = errors.New("effect: nil generator")
	ErrEmptyID         = errors.New("effect: empty generator id")
	ErrDuplicateID     = errors.New("effect: duplicate generator id")
	ErrTierUnsupported = errors.New("effect: generator requires a tier above the device ceiling")
	ErrGeneratorLimit  = errors.New("effect: generator limit reached")
	ErrClosed          = errors.New("effect: coordinator closed")
)

type entry struct {
	gen      Generator
	priority Priority
	index    int // registration order for stable sort
	state    State
	log      *slog.Logger

	skipStreak  int // consecutive budget skips
	cleanStreak int // consecutive successful frames while Degraded
	failStreak  int // consecutive failed frames
	probation   bool
	suspendedAt time.Time
}

// Deps are the coordinator's collaborators, owned by the caller
type Deps struct {
	Log      *slog.Logger
	Registry *status.Registry
	Governor *perf.Governor
	Bus      *music.Bus
	Styles   *style.Batcher
	Patterns *pattern.Library
	Surface  style.Surface
}

// Coordinator owns generator lifecycles and drives the frame pipeline:
// governor begin, bus tick, priority-ordered admission, generator
// update/render, style flush, governor end.
//
// Frame-confined: Register, Unregister, Frame and Close run on the frame
// goroutine. The bus ring is the only cross-goroutine entry into a frame
type Coordinator struct {
	log     *slog.Logger
	gov     *perf.Governor
	bus     *music.Bus
	styles  *style.Batcher
	lib     *pattern.Library
	surface style.Surface

	entries  []*entry
	byID     map[string]*entry
	regCount int

	inFrame       bool
	lastFrame     time.Time
	deferred      []string // unregister intents received mid-frame
	reducedMotion bool
	closed        bool

	statFrames      *atomic.Int64
	statRuns        *atomic.Int64
	statSkips       *atomic.Int64
	statFailures    *atomic.Int64
	statSuspensions *atomic.Int64
	statActive      *atomic.Int64
	statDegraded    *atomic.Int64
	statSuspended   *atomic.Int64
}

// NewCoordinator wires the pipeline and subscribes to tier changes so the
// pattern cache tracks the active profile
func NewCoordinator(d Deps) *Coordinator {
	c := &Coordinator{
		log:     d.Log.With("component", "coordinator"),
		gov:     d.Governor,
		bus:     d.Bus,
		styles:  d.Styles,
		lib:     d.Patterns,
		surface: d.Surface,
		entries: make([]*entry, 0, 16),
		byID:    make(map[string]*entry),

		statFrames:      d.Registry.Ints.Get("effect.frames"),
		statRuns:        d.Registry.Ints.Get("effect.runs"),
		statSkips:       d.Registry.Ints.Get("effect.skips"),
		statFailures:    d.Registry.Ints.Get("effect.failures"),
		statSuspensions: d.Registry.Ints.Get("effect.suspensions"),
		statActive:      d.Registry.Ints.Get("effect.active"),
		statDegraded:    d.Registry.Ints.Get("effect.degraded"),
		statSuspended:   d.Registry.Ints.Get("effect.suspended"),
	}

	// Downgrades clear the cache so recordings sized for the old budget
	// cannot replay at the new one; either direction resizes to the profile
	c.gov.OnTierChange(func(old, next perf.Tier) {
		if next < old {
			c.lib.ClearCache()
		}
		c.lib.SetCacheCapacity(perf.ProfileFor(next).CacheCapacity)
	})
	return c
}

// SetReducedMotion gates MotionSensitive generators. Frame-confined
func (c *Coordinator) SetReducedMotion(v bool) {
	c.reducedMotion = v
}

// Len returns the number of registered generators, destroyed ones excluded
func (c *Coordinator) Len() int {
	return len(c.entries)
}

// State reports a generator's lifecycle state
func (c *Coordinator) State(id string) (State, bool) {
	e, ok := c.byID[id]
	if !ok {
		return StateUninitialized, false
	}
	return e.state, true
}

// Register initializes the generator and admits it to the frame pipeline.
// It fails fast when the generator needs a tier above the device ceiling,
// the ID is taken, or Init reports an error
func (c *Coordinator) Register(gen Generator, priority Priority) error {
	if c.closed {
		return ErrClosed
	}
	if gen == nil {
		return ErrNilGenerator
	}
	id := gen.ID()
	if id == "" {
		return ErrEmptyID
	}
	if _, dup := c.byID[id]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	if len(c.entries) >= parameter.MaxGenerators {
		return fmt.Errorf("%w (%d)", ErrGeneratorLimit, parameter.MaxGenerators)
	}
	if gen.MinTier() > c.gov.Ceiling() {
		return fmt.Errorf("%w: %q needs %s, ceiling is %s",
			ErrTierUnsupported, id, gen.MinTier(), c.gov.Ceiling())
	}

	e := &entry{
		gen:      gen,
		priority: priority,
		index:    c.regCount,
		log:      c.log.With("generator", id),
	}
	if err := c.initGenerator(e); err != nil {
		return fmt.Errorf("effect: init %q: %w", id, err)
	}
	e.state = StateActive
	c.regCount++

	// Insertion sort: find position and insert
	pos := len(c.entries)
	for i, other := range c.entries {
		if e.priority < other.priority || (e.priority == other.priority && e.index < other.index) {
			pos = i
			break
		}
	}
	c.entries = append(c.entries, nil)
	copy(c.entries[pos+1:], c.entries[pos:])
	c.entries[pos] = e
	c.byID[id] = e

	e.log.Info("generator registered", "priority", int(priority), "min_tier", gen.MinTier().String())
	return nil
}

func (c *Coordinator) initGenerator(e *entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("init panicked: %v", r)
		}
	}()
	return e.gen.Init(InitContext{
		Log:     e.log,
		Tier:    c.gov.Tier(),
		Profile: c.gov.Profile(),
		Seed:    seedFor(e.gen.ID()),
	})
}

// Unregister destroys a generator. Mid-frame the destruction is deferred to
// frame end, so a generator may unregister itself from its own callback.
// Unknown IDs are a no-op
func (c *Coordinator) Unregister(id string) {
	if c.inFrame {
		c.deferred = append(c.deferred, id)
		return
	}
	c.removeNow(id)
}

func (c *Coordinator) removeNow(id string) {
	e, ok := c.byID[id]
	if !ok {
		c.log.Debug("unregister of unknown generator", "generator", id)
		return
	}
	c.teardown(e)
	delete(c.byID, id)
	for i, other := range c.entries {
		if other == e {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
}

// teardown runs the generator hook and releases everything it owns:
// queued style variables and cached recordings
func (c *Coordinator) teardown(e *entry) {
	if e.state == StateDestroyed {
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				e.log.Error("teardown panicked", "panic", r)
			}
		}()
		e.gen.Teardown()
	}()
	id := e.gen.ID()
	dropped := c.styles.DropOwner(id)
	evicted := c.lib.EvictOwner(id)
	e.state = StateDestroyed
	e.log.Info("generator destroyed", "dropped_writes", dropped, "evicted_recordings", evicted)
}

// Frame runs one coordinated frame at now. Canvas may be nil on hosts
// without a drawing surface; width and height give the viewport in canvas
// units and are zero on style-only hosts. The governor frame always
// closes, and deferred unregisters always apply, even if a generator
// misbehaves
func (c *Coordinator) Frame(now time.Time, canvas pattern.Canvas, width, height float64) {
	if c.closed {
		return
	}
	c.gov.BeginFrame()
	defer c.gov.EndFrame()

	c.inFrame = true
	defer c.finishFrame()

	c.bus.Tick(now)

	var delta time.Duration
	if !c.lastFrame.IsZero() {
		if delta = now.Sub(c.lastFrame); delta < 0 {
			delta = 0
		}
	}
	c.lastFrame = now

	tier := c.gov.Tier()
	base := FrameContext{
		Now:     now,
		Delta:   delta,
		Music:   c.bus.Sample(),
		Tier:    tier,
		Profile: c.gov.Profile(),
		Width:   width,
		Height:  height,
		Styles:  c.styles,
		Canvas:  canvas,
	}

	admitted := 0
	for _, e := range c.entries {
		switch e.state {
		case StateDestroyed, StateUninitialized:
			continue
		case StateSuspended:
			if now.Sub(e.suspendedAt) < parameter.SuspendRetryAfter {
				continue
			}
			// Cooldown over: one probation frame decides
			e.probation = true
		}

		if tier < e.gen.MinTier() {
			continue
		}
		if c.reducedMotion && isMotionSensitive(e.gen) {
			continue
		}
		if vt, ok := e.gen.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}

		if admitted >= base.Profile.MaxActiveEffects || c.gov.RemainingBudget() <= 0 {
			c.recordSkip(e, now)
			continue
		}

		fc := base
		fc.Degraded = e.state == StateDegraded
		fc.Patterns = c.lib.Scoped(e.gen.ID())
		c.runGenerator(e, fc)
		admitted++
	}

	c.styles.Flush(c.surface, c.gov.RemainingBudget())
	c.statFrames.Add(1)
}

// finishFrame applies deferred unregisters and refreshes lifecycle gauges
func (c *Coordinator) finishFrame() {
	c.inFrame = false
	for _, id := range c.deferred {
		c.removeNow(id)
	}
	c.deferred = c.deferred[:0]
	c.updateGauges()
}

func (c *Coordinator) runGenerator(e *entry, fc FrameContext) {
	if !c.invoke(e, fc) {
		c.statFailures.Add(1)
		if e.probation {
			// Failed the retry frame: a fresh cooldown starts
			e.probation = false
			c.suspend(e, fc.Now, "probation failed")
			return
		}
		e.failStreak++
		e.cleanStreak = 0
		if e.failStreak >= parameter.FailureThreshold {
			c.suspend(e, fc.Now, "repeated failures")
		}
		return
	}

	c.statRuns.Add(1)
	e.failStreak = 0
	e.skipStreak = 0

	if e.probation {
		e.probation = false
		e.state = StateActive
		e.cleanStreak = 0
		e.log.Info("generator resumed", "suspended_for", fc.Now.Sub(e.suspendedAt).Round(time.Millisecond))
		return
	}
	if e.state == StateDegraded {
		e.cleanStreak++
		if e.cleanStreak >= parameter.DegradeSkipStreak {
			e.state = StateActive
			e.cleanStreak = 0
			e.log.Info("generator recovered")
		}
	}
}

// invoke runs Update then Render under panic isolation. A panic or error
// in either fails the generator's frame, never the frame loop
func (c *Coordinator) invoke(e *entry, fc FrameContext) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("generator panicked", "panic", r)
			ok = false
		}
	}()
	if err := e.gen.Update(fc); err != nil {
		e.log.Warn("update failed", "error", err)
		return false
	}
	if err := e.gen.Render(fc); err != nil {
		e.log.Warn("render failed", "error", err)
		return false
	}
	return true
}

// recordSkip notes a budget or capacity skip. A single skip changes
// nothing; streaks walk Active to Degraded to Suspended
func (c *Coordinator) recordSkip(e *entry, now time.Time) {
	c.statSkips.Add(1)
	if e.state != StateActive && e.state != StateDegraded {
		return
	}
	e.skipStreak++
	e.cleanStreak = 0
	switch {
	case e.state == StateActive && e.skipStreak >= parameter.DegradeSkipStreak:
		e.state = StateDegraded
		e.log.Warn("generator degraded", "skip_streak", e.skipStreak)
	case e.state == StateDegraded && e.skipStreak >= parameter.SuspendSkipStreak:
		c.suspend(e, now, "sustained skipping")
	}
}

func (c *Coordinator) suspend(e *entry, now time.Time, reason string) {
	e.state = StateSuspended
	e.suspendedAt = now
	e.failStreak = 0
	e.skipStreak = 0
	e.cleanStreak = 0
	c.statSuspensions.Add(1)
	e.log.Warn("generator suspended", "reason", reason, "retry_after", parameter.SuspendRetryAfter)
}

// Close destroys every generator in reverse priority order (overlays
// first, backgrounds last) and leaves the coordinator unusable. Idempotent
func (c *Coordinator) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for i := len(c.entries) - 1; i >= 0; i-- {
		c.teardown(c.entries[i])
	}
	c.entries = c.entries[:0]
	clear(c.byID)
	c.updateGauges()
	c.log.Info("coordinator closed")
}

func (c *Coordinator) updateGauges() {
	var active, degraded, suspended int64
	for _, e := range c.entries {
		switch e.state {
		case StateActive:
			active++
		case StateDegraded:
			degraded++
		case StateSuspended:
			suspended++
		}
	}
	c.statActive.Store(active)
	c.statDegraded.Store(degraded)
	c.statSuspended.Store(suspended)
}

func isMotionSensitive(g Generator) bool {
	ms, ok := g.(MotionSensitive)
	return ok && ms.MotionSensitive()
}

// seedFor derives a stable per-generator randomness seed from its ID
func seedFor(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}
