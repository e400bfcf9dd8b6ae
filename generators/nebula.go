package generators

import (
	"log/slog"
	"math"

	"github.com/minipuft/starrynight/effect"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/pattern"
	"github.com/minipuft/starrynight/perf"
	"github.com/minipuft/starrynight/style"
	"github.com/minipuft/starrynight/vmath"
)

const nebulaID = "nebula"

func init() {
	register(nebulaID, effect.PriorityBackground, func() effect.Generator {
		return NewNebula()
	})
}

// nebulaCloud is one blob of the field, in unit viewport coordinates
type nebulaCloud struct {
	x, y   float64
	dx, dy float64 // drift direction, unit length
	scale  float64
}

// Nebula paints the ambient cloud field behind everything else: a handful
// of organic blobs drifting slowly, brightening a little with the beat
type Nebula struct {
	log    *slog.Logger
	seed   uint64
	clouds []nebulaCloud
	drift  float64 // accumulated drift distance in unit space
}

func NewNebula() *Nebula {
	return &Nebula{}
}

func (g *Nebula) ID() string { return nebulaID }

func (g *Nebula) MinTier() perf.Tier { return perf.TierBalanced }

func (g *Nebula) Init(ictx effect.InitContext) error {
	g.log = ictx.Log
	g.seed = ictx.Seed

	rng := vmath.NewFastRand(ictx.Seed)
	g.clouds = make([]nebulaCloud, parameter.NebulaClusters)
	for i := range g.clouds {
		theta := rng.Range(0, vmath.TwoPi)
		g.clouds[i] = nebulaCloud{
			x:     rng.Range(0.1, 0.9),
			y:     rng.Range(0.1, 0.9),
			dx:    math.Cos(theta),
			dy:    math.Sin(theta),
			scale: rng.Range(0.5, 0.9),
		}
	}
	return nil
}

func (g *Nebula) Update(fc effect.FrameContext) error {
	g.drift += fc.Delta.Seconds() * parameter.NebulaDriftRate
	return nil
}

func (g *Nebula) Render(fc effect.FrameContext) error {
	intensity := parameter.NebulaBaseIntensity +
		parameter.NebulaBeatResponse*vmath.Clamp01(fc.Music.BeatIntensity)
	fc.Styles.Queue(nebulaID, "--sn-nebula-opacity", style.Float(intensity), style.PriorityDeferred)

	if fc.Canvas == nil || fc.Width <= 0 || fc.Height <= 0 {
		return nil
	}

	clouds := g.clouds
	if fc.Degraded {
		clouds = clouds[:(len(clouds)+1)/2]
	}

	minDim := math.Min(fc.Width, fc.Height)
	snap := fc.Music
	for _, cl := range clouds {
		cx := vmath.WrapMod(cl.x+cl.dx*g.drift, 1) * fc.Width
		cy := vmath.WrapMod(cl.y+cl.dy*g.drift, 1) * fc.Height
		_, err := fc.Patterns.Render("organic", fc.Canvas, cx, cy, intensity, fc.Now, pattern.Options{
			Size:   cl.scale * parameter.NebulaSizeShare * minDim,
			Music:  &snap,
			MaxOps: fc.Profile.MaxPatternOps,
			Seed:   g.seed,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Nebula) Teardown() {}
