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

const constellationID = "constellation-field"

func init() {
	register(constellationID, effect.PriorityAmbient, func() effect.Generator {
		return NewConstellationField()
	})
}

// constAnchor fixes one layout's position and scale for the generator's life
type constAnchor struct {
	x, y    float64
	scale   float64
	twinkle float64 // phase offset so anchors do not breathe in unison
	seed    uint64
	slot    int // widens the render by whole cache buckets, see Render
}

// ConstellationField places a few star layouts and twinkles them slowly.
// The layouts never move; only their brightness oscillates, so the renders
// stay cacheable and the field survives reduced-motion settings
type ConstellationField struct {
	log     *slog.Logger
	anchors []constAnchor
	phase   float64 // twinkle position in [0, 1)
}

func NewConstellationField() *ConstellationField {
	return &ConstellationField{}
}

func (g *ConstellationField) ID() string { return constellationID }

func (g *ConstellationField) MinTier() perf.Tier { return perf.TierHigh }

func (g *ConstellationField) Init(ictx effect.InitContext) error {
	g.log = ictx.Log

	rng := vmath.NewFastRand(ictx.Seed)
	g.anchors = make([]constAnchor, parameter.ConstellationAnchors)
	for i := range g.anchors {
		g.anchors[i] = constAnchor{
			x:       rng.Range(0.15, 0.85),
			y:       rng.Range(0.15, 0.85),
			scale:   0.6 + 0.2*float64(i),
			twinkle: rng.Float64(),
			seed:    ictx.Seed + uint64(i),
			slot:    i,
		}
	}
	return nil
}

func (g *ConstellationField) Update(fc effect.FrameContext) error {
	g.phase = vmath.WrapMod(g.phase+fc.Delta.Seconds()/parameter.ConstellationTwinklePeriod.Seconds(), 1)
	return nil
}

func (g *ConstellationField) Render(fc effect.FrameContext) error {
	glow := 0.45 + 0.25*math.Sin(vmath.TwoPi*g.phase)
	fc.Styles.Queue(constellationID, "--sn-constellation-glow", style.Float(glow), style.PriorityDeferred)

	if fc.Canvas == nil || fc.Width <= 0 || fc.Height <= 0 {
		return nil
	}

	anchors := g.anchors
	if fc.Degraded && len(anchors) > 1 {
		anchors = anchors[:1]
	}

	minDim := math.Min(fc.Width, fc.Height)
	snap := fc.Music
	for _, a := range anchors {
		intensity := 0.45 + 0.25*math.Sin(vmath.TwoPi*(g.phase+a.twinkle))
		// The slot offset widens each anchor by a whole size bucket, so the
		// seeded layouts cache under distinct keys on any viewport. Scale
		// alone cannot guarantee that below ~133-unit viewports
		size := a.scale*parameter.ConstellationSizeShare*minDim +
			float64(a.slot)*parameter.PatternSizeQuantum
		_, err := fc.Patterns.Render("constellation", fc.Canvas, a.x*fc.Width, a.y*fc.Height,
			intensity, fc.Now, pattern.Options{
				Size:    size,
				Variant: pattern.VariantCalm,
				Music:   &snap,
				MaxOps:  fc.Profile.MaxPatternOps,
				Seed:    a.seed,
			})
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *ConstellationField) Teardown() {}
