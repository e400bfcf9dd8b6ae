package generators

import (
	"log/slog"
	"math"
	"time"

	"github.com/minipuft/starrynight/effect"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/pattern"
	"github.com/minipuft/starrynight/perf"
	"github.com/minipuft/starrynight/style"
	"github.com/minipuft/starrynight/vmath"
)

const rippleID = "ripple"

func init() {
	register(rippleID, effect.PriorityBeat, func() effect.Generator {
		return NewRipple()
	})
}

// rippleRing is one expanding ring, centered in unit viewport coordinates
type rippleRing struct {
	born  time.Time
	x, y  float64
	level float64 // beat intensity at spawn
}

// Ripple spawns an expanding ring on each sufficiently strong beat. Rings
// grow and fade over their lifetime and expire on their own; a full set
// just means the next beat spawns nothing
type Ripple struct {
	log      *slog.Logger
	rand     *vmath.FastRand
	lastBeat time.Time
	rings    []rippleRing
}

func NewRipple() *Ripple {
	return &Ripple{}
}

func (g *Ripple) ID() string { return rippleID }

func (g *Ripple) MinTier() perf.Tier { return perf.TierBalanced }

func (g *Ripple) MotionSensitive() bool { return true }

func (g *Ripple) Init(ictx effect.InitContext) error {
	g.log = ictx.Log
	g.rand = vmath.NewFastRand(ictx.Seed)
	g.rings = make([]rippleRing, 0, parameter.RippleMaxLive)
	return nil
}

func (g *Ripple) Update(fc effect.FrameContext) error {
	// Expire finished rings in place
	live := g.rings[:0]
	for _, r := range g.rings {
		if fc.Now.Sub(r.born) < parameter.RippleLifetime {
			live = append(live, r)
		}
	}
	g.rings = live

	fresh := fc.Music.LastBeat.After(g.lastBeat)
	if fresh {
		g.lastBeat = fc.Music.LastBeat
	}
	if fresh && !fc.Degraded &&
		fc.Music.BeatIntensity >= parameter.RippleTriggerIntensity &&
		len(g.rings) < parameter.RippleMaxLive {
		g.rings = append(g.rings, rippleRing{
			born:  fc.Now,
			x:     g.rand.Range(0.2, 0.8),
			y:     g.rand.Range(0.2, 0.8),
			level: fc.Music.BeatIntensity,
		})
	}
	return nil
}

func (g *Ripple) Render(fc effect.FrameContext) error {
	newest := 0.0
	for _, r := range g.rings {
		age := fc.Now.Sub(r.born).Seconds() / parameter.RippleLifetime.Seconds()
		if fresh := 1 - age; fresh > newest {
			newest = fresh
		}
	}
	fc.Styles.Queue(rippleID, "--sn-ripple-level", style.Float(newest), style.PriorityDeferred)

	if fc.Canvas == nil || fc.Width <= 0 || fc.Height <= 0 {
		return nil
	}

	minDim := math.Min(fc.Width, fc.Height)
	snap := fc.Music
	for _, r := range g.rings {
		age := vmath.Clamp01(fc.Now.Sub(r.born).Seconds() / parameter.RippleLifetime.Seconds())
		// Ring geometry changes every frame, so the pulse variant keeps
		// these renders out of the recording cache
		_, err := fc.Patterns.Render("ripple", fc.Canvas, r.x*fc.Width, r.y*fc.Height,
			r.level*(1-age), fc.Now, pattern.Options{
				Size:    (0.25 + 0.75*age) * parameter.RippleSizeShare * minDim,
				Variant: pattern.VariantPulse,
				Music:   &snap,
				MaxOps:  fc.Profile.MaxPatternOps,
			})
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Ripple) Teardown() {}

// Live reports the number of expanding rings for tests
func (g *Ripple) Live() int { return len(g.rings) }
