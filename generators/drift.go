package generators

import (
	"log/slog"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/effect"
	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/perf"
	"github.com/minipuft/starrynight/style"
	"github.com/minipuft/starrynight/vmath"
)

const driftID = "particle-drift"

func init() {
	register(driftID, effect.PriorityAmbient, func() effect.Generator {
		return NewParticleDrift()
	})
}

// driftParticle lives in unit viewport coordinates; velocity is unit space
// per second
type driftParticle struct {
	x, y   float64
	vx, vy float64
	size   float64 // [0, 1], scales radius and alpha
	accent bool
}

// ParticleDrift scatters slow-moving dust across the viewport. The particle
// count follows the active profile every frame, so tier changes resize the
// field without a restart; the beat speeds the dust up a little
type ParticleDrift struct {
	log   *slog.Logger
	rand  *vmath.FastRand
	parts []driftParticle
}

func NewParticleDrift() *ParticleDrift {
	return &ParticleDrift{}
}

func (g *ParticleDrift) ID() string { return driftID }

func (g *ParticleDrift) MinTier() perf.Tier { return perf.TierBalanced }

func (g *ParticleDrift) MotionSensitive() bool { return true }

func (g *ParticleDrift) Init(ictx effect.InitContext) error {
	g.log = ictx.Log
	g.rand = vmath.NewFastRand(ictx.Seed)
	return nil
}

func (g *ParticleDrift) target(fc effect.FrameContext) int {
	n := int(float64(fc.Profile.MaxParticles) * parameter.DriftParticleShare)
	if fc.Degraded {
		n /= 2
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (g *ParticleDrift) spawn() driftParticle {
	speed := g.rand.Range(parameter.DriftSpeedMin, parameter.DriftSpeedMax)
	theta := g.rand.Range(0, vmath.TwoPi)
	return driftParticle{
		x:      g.rand.Float64(),
		y:      g.rand.Float64(),
		vx:     speed * math.Cos(theta),
		vy:     speed * math.Sin(theta),
		size:   g.rand.Float64(),
		accent: g.rand.Intn(3) == 0,
	}
}

func (g *ParticleDrift) Update(fc effect.FrameContext) error {
	target := g.target(fc)
	for len(g.parts) < target {
		g.parts = append(g.parts, g.spawn())
	}
	if len(g.parts) > target {
		g.parts = g.parts[:target]
	}

	boost := 1 + parameter.DriftBeatBoost*vmath.Clamp01(fc.Music.BeatIntensity)
	dt := fc.Delta.Seconds() * boost
	for i := range g.parts {
		p := &g.parts[i]
		p.x = vmath.WrapMod(p.x+p.vx*dt, 1)
		p.y = vmath.WrapMod(p.y+p.vy*dt, 1)
	}
	return nil
}

func (g *ParticleDrift) Render(fc effect.FrameContext) error {
	boost := 1 + parameter.DriftBeatBoost*vmath.Clamp01(fc.Music.BeatIntensity)
	fc.Styles.Queue(driftID, "--sn-drift-energy", style.Float(boost), style.PriorityDeferred)

	if fc.Canvas == nil || fc.Width <= 0 || fc.Height <= 0 {
		return nil
	}

	base, accent := driftInks(fc.Music.Palette)
	for _, p := range g.parts {
		ink := base
		if p.accent {
			ink = accent
		}
		r := 0.6 + p.size*(parameter.DriftRadiusMax-0.6)
		fc.Canvas.FillCircle(p.x*fc.Width, p.y*fc.Height, r, ink, 0.2+0.35*p.size)
	}
	return nil
}

func (g *ParticleDrift) Teardown() {}

// Count reports the live particle count for tests
func (g *ParticleDrift) Count() int { return len(g.parts) }

func driftInks(pal []colorful.Color) (base, accent colorful.Color) {
	if len(pal) == 0 {
		pal = music.DefaultPalette()
	}
	base = pal[0]
	accent = base
	if len(pal) > 1 {
		accent = pal[len(pal)-1]
	}
	return base, accent
}
