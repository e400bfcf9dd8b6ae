package generators

import (
	"log/slog"

	"github.com/charmbracelet/harmonica"

	"github.com/minipuft/starrynight/effect"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/perf"
	"github.com/minipuft/starrynight/style"
	"github.com/minipuft/starrynight/vmath"
)

const beatGlassID = "beat-glass"

func init() {
	register(beatGlassID, effect.PriorityAccent, func() effect.Generator {
		return NewBeatGlass()
	})
}

// BeatGlass drives the frosted-glass layer: blur radius and opacity follow
// the beat envelope through a damped spring, so the glass breathes with the
// music instead of stepping on every event
type BeatGlass struct {
	log    *slog.Logger
	spring harmonica.Spring

	level float64 // smoothed beat level the style tokens derive from
	vel   float64
}

func NewBeatGlass() *BeatGlass {
	return &BeatGlass{}
}

func (g *BeatGlass) ID() string { return beatGlassID }

func (g *BeatGlass) MinTier() perf.Tier { return perf.TierBalanced }

func (g *BeatGlass) Init(ictx effect.InitContext) error {
	g.log = ictx.Log
	g.spring = harmonica.NewSpring(harmonica.FPS(parameter.GlassSpringFPS),
		parameter.GlassSpringFrequency, parameter.GlassSpringDamping)
	return nil
}

func (g *BeatGlass) Update(fc effect.FrameContext) error {
	target := fc.Music.BeatIntensity
	if fc.Degraded {
		target *= parameter.GlassDegradedScale
	}
	g.level, g.vel = g.spring.Update(g.level, g.vel, target)
	return nil
}

func (g *BeatGlass) Render(fc effect.FrameContext) error {
	level := vmath.Clamp01(g.level)
	blur := level * fc.Profile.MaxBlurRadius
	opacity := vmath.Lerp(parameter.GlassMinOpacity, parameter.GlassMaxOpacity, level)

	// Opacity keeps the layer legible and flushes every frame; blur is eye
	// candy and may be truncated under a tight budget
	fc.Styles.Queue(beatGlassID, "--sn-glass-opacity", style.Float(opacity), style.PriorityNormal)
	fc.Styles.Queue(beatGlassID, "--sn-glass-blur", style.Px(blur), style.PriorityDeferred)
	fc.Styles.Queue(beatGlassID, "--sn-glass-saturation", style.Float(1+0.35*level), style.PriorityDeferred)
	return nil
}

func (g *BeatGlass) Teardown() {}

// Level exposes the smoothed beat level for tests
func (g *BeatGlass) Level() float64 { return g.level }
