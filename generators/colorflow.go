package generators

import (
	"log/slog"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/effect"
	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/perf"
	"github.com/minipuft/starrynight/style"
	"github.com/minipuft/starrynight/vmath"
)

const colorFlowID = "color-flow"

func init() {
	register(colorFlowID, effect.PriorityBackground, func() effect.Generator {
		return NewColorFlow()
	})
}

// ColorFlow publishes the shared color and music tokens every other visual
// derives from, and sweeps a flow accent around the palette base hue. The
// sweep locks to the tempo when one is known and free-runs otherwise
type ColorFlow struct {
	log   *slog.Logger
	phase float64 // sweep position in [0, 1)
}

func NewColorFlow() *ColorFlow {
	return &ColorFlow{}
}

func (g *ColorFlow) ID() string { return colorFlowID }

func (g *ColorFlow) MinTier() perf.Tier { return perf.TierMinimal }

func (g *ColorFlow) Init(ictx effect.InitContext) error {
	g.log = ictx.Log
	return nil
}

func (g *ColorFlow) Update(fc effect.FrameContext) error {
	period := parameter.FlowCyclePeriod
	if fc.Music.BeatPeriod > 0 {
		period = time.Duration(float64(fc.Music.BeatPeriod) * parameter.FlowBeatsPerCycle)
	}
	g.phase = vmath.WrapMod(g.phase+fc.Delta.Seconds()/period.Seconds(), 1)
	return nil
}

func (g *ColorFlow) Render(fc effect.FrameContext) error {
	pal := fc.Music.Palette
	if len(pal) == 0 {
		pal = music.DefaultPalette()
	}
	base := pal[0]
	accent := base
	if len(pal) > 1 {
		accent = pal[1]
	}

	// Flow ink: base hue swung by the sweep, glow ink: base pulled toward
	// the accent by the beat
	offset := math.Sin(vmath.TwoPi*g.phase) * parameter.FlowHueSweepDeg
	h, c, l := base.Hcl()
	flow := colorful.Hcl(vmath.WrapMod(h+offset, 360), c, l).Clamped()
	glow := base.BlendLab(accent, vmath.Clamp01(fc.Music.BeatIntensity)).Clamped()

	fc.Styles.Queue(colorFlowID, "--sn-color-base", style.String(base.Hex()), style.PriorityCritical)
	fc.Styles.Queue(colorFlowID, "--sn-color-accent", style.String(accent.Hex()), style.PriorityCritical)
	fc.Styles.Queue(colorFlowID, "--sn-beat-intensity", style.Float(fc.Music.BeatIntensity), style.PriorityCritical)
	fc.Styles.Queue(colorFlowID, "--sn-harmony-mode", style.String(fc.Music.Mode.String()), style.PriorityNormal)
	fc.Styles.Queue(colorFlowID, "--sn-tempo-bpm", style.Float(fc.Music.TempoBPM), style.PriorityNormal)
	fc.Styles.Queue(colorFlowID, "--sn-color-flow", style.String(flow.Hex()), style.PriorityNormal)
	fc.Styles.Queue(colorFlowID, "--sn-color-glow", style.String(glow.Hex()), style.PriorityDeferred)
	return nil
}

func (g *ColorFlow) Teardown() {}
