package perf

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/status"
)

// Clock supplies frame timestamps; satisfied by engine clocks and test mocks
type Clock interface {
	Now() time.Time
}

// TierHook observes tier transitions (cache eviction, logging)
// Called synchronously on the frame goroutine
type TierHook func(old, new Tier)

// Budget is the per-frame time accounting snapshot
type Budget struct {
	Target    time.Duration
	Consumed  time.Duration
	Remaining time.Duration
}

// Governor measures frame cost and walks the quality tier ladder
// Degradation needs DowngradeStreak consecutive overruns, recovery needs
// the longer UpgradeStreak of calm frames, and transitions move one step
// with a cooldown between them. A broken clock pins TierMinimal
//
// Frame-confined except where noted; BeginFrame/EndFrame pair per frame
type Governor struct {
	log    *slog.Logger
	clock  Clock
	target time.Duration

	tier    Tier
	ceiling Tier
	pinned  bool

	emaSeconds float64
	emaPrimed  bool

	overrunStreak int
	calmStreak    int
	lastChange    time.Time
	broken        bool

	frameStart time.Time
	inFrame    bool

	hooks []TierHook

	statFrames   *atomic.Int64
	statOverruns *atomic.Int64
	statChanges  *atomic.Int64
	statTier     *status.AtomicString
	statEMA      *status.AtomicFloat
	statBroken   *atomic.Bool
}

// NewGovernor creates a governor starting at the given ceiling
// target <= 0 falls back to the default frame target
func NewGovernor(log *slog.Logger, clock Clock, reg *status.Registry, ceiling Tier, target time.Duration) *Governor {
	if target <= 0 {
		target = parameter.DefaultFrameTarget
	}
	g := &Governor{
		log:          log.With("component", "governor"),
		clock:        clock,
		target:       target,
		tier:         ceiling,
		ceiling:      ceiling,
		statFrames:   reg.Ints.Get("governor.frames"),
		statOverruns: reg.Ints.Get("governor.overruns"),
		statChanges:  reg.Ints.Get("governor.changes"),
		statTier:     reg.Strings.Get("governor.tier"),
		statEMA:      reg.Floats.Get("governor.ema_ms"),
		statBroken:   reg.Bools.Get("governor.clock_broken"),
	}
	g.statTier.Store(ceiling.String())
	return g
}

// Pin fixes the tier (user quality override). The governor stops walking
// the ladder but keeps measuring. Hooks fire if the tier actually moves
func (g *Governor) Pin(t Tier) {
	if t > g.ceiling {
		t = g.ceiling
	}
	g.pinned = true
	if t == g.tier {
		return
	}
	old := g.tier
	g.setTier(t)
	g.statChanges.Add(1)
	g.log.Info("quality tier pinned", "from", old.String(), "to", t.String())
	for _, h := range g.hooks {
		h(old, t)
	}
}

// Tier returns the current quality tier
func (g *Governor) Tier() Tier {
	return g.tier
}

// Ceiling returns the device capability ceiling
func (g *Governor) Ceiling() Tier {
	return g.ceiling
}

// Profile returns the capability envelope of the current tier
func (g *Governor) Profile() Profile {
	return ProfileFor(g.tier)
}

// Target returns the per-frame budget
func (g *Governor) Target() time.Duration {
	return g.target
}

// OnTierChange registers a transition hook
func (g *Governor) OnTierChange(h TierHook) {
	g.hooks = append(g.hooks, h)
}

// BeginFrame marks the start of frame work
func (g *Governor) BeginFrame() {
	g.frameStart = g.clock.Now()
	g.inFrame = true
}

// RemainingBudget returns target minus elapsed so far, floored at zero
// Advisory: checked between units of work, never preemptive
func (g *Governor) RemainingBudget() time.Duration {
	if !g.inFrame {
		return 0
	}
	// A broken clock cannot measure consumption. The tier is already
	// pinned minimal, so admission gets the full target instead of a
	// permanent zero that would starve every generator
	if g.broken {
		return g.target
	}
	rem := g.target - g.clock.Now().Sub(g.frameStart)
	if rem < 0 {
		return 0
	}
	return rem
}

// BudgetSnapshot returns the frame accounting so far
func (g *Governor) BudgetSnapshot() Budget {
	if !g.inFrame {
		return Budget{Target: g.target}
	}
	consumed := g.clock.Now().Sub(g.frameStart)
	if consumed < 0 {
		consumed = 0
	}
	rem := g.target - consumed
	if rem < 0 {
		rem = 0
	}
	return Budget{Target: g.target, Consumed: consumed, Remaining: rem}
}

// SmoothedCost returns the EMA of recent frame cost
func (g *Governor) SmoothedCost() time.Duration {
	return time.Duration(g.emaSeconds * float64(time.Second))
}

// EndFrame closes the measurement and evaluates tier transitions
func (g *Governor) EndFrame() {
	if !g.inFrame {
		return
	}
	g.inFrame = false
	now := g.clock.Now()
	elapsed := now.Sub(g.frameStart)
	g.statFrames.Add(1)

	// A clock running backwards cannot govern; fail toward safety
	if elapsed < 0 {
		g.markBroken()
		return
	}

	g.observe(elapsed)

	if elapsed > time.Duration(float64(g.target)*parameter.OverrunMargin) {
		g.statOverruns.Add(1)
		g.overrunStreak++
		g.calmStreak = 0
	} else if elapsed < time.Duration(float64(g.target)*parameter.CalmMargin) {
		g.calmStreak++
		g.overrunStreak = 0
	} else {
		g.overrunStreak = 0
		g.calmStreak = 0
	}

	if g.pinned || g.broken {
		return
	}
	if !g.lastChange.IsZero() && now.Sub(g.lastChange) < parameter.TierChangeCooldown {
		return
	}

	switch {
	case g.overrunStreak >= parameter.DowngradeStreak && g.tier > TierMinimal:
		g.transition(g.tier-1, now, "sustained overrun")
	case g.calmStreak >= parameter.UpgradeStreak && g.tier < g.ceiling:
		g.transition(g.tier+1, now, "sustained headroom")
	}
}

// observe folds one frame cost into the EMA
func (g *Governor) observe(elapsed time.Duration) {
	sec := elapsed.Seconds()
	if !g.emaPrimed {
		g.emaSeconds = sec
		g.emaPrimed = true
	} else {
		alpha := 2.0 / (float64(parameter.FrameSampleSpan) + 1)
		g.emaSeconds += alpha * (sec - g.emaSeconds)
	}
	g.statEMA.Set(g.emaSeconds * 1000)
}

func (g *Governor) transition(next Tier, now time.Time, reason string) {
	old := g.tier
	g.setTier(next)
	g.lastChange = now
	g.overrunStreak = 0
	g.calmStreak = 0
	g.statChanges.Add(1)
	g.log.Info("quality tier change",
		"from", old.String(),
		"to", next.String(),
		"reason", reason,
		"ema_ms", g.emaSeconds*1000)
	for _, h := range g.hooks {
		h(old, next)
	}
}

func (g *Governor) setTier(t Tier) {
	g.tier = t
	g.statTier.Store(t.String())
}

// markBroken pins the lowest tier permanently for this session
func (g *Governor) markBroken() {
	if g.broken {
		return
	}
	g.broken = true
	g.statBroken.Store(true)
	g.log.Error("frame clock unusable, pinning minimal quality")
	if g.tier != TierMinimal {
		old := g.tier
		g.setTier(TierMinimal)
		g.statChanges.Add(1)
		for _, h := range g.hooks {
			h(old, TierMinimal)
		}
	}
}
