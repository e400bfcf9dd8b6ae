package pattern

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/vmath"
)

// renderArgs carries everything a renderer may depend on. Renderers are
// pure functions of these plus the fixed geometry tables: same args, same
// ops, no clocks and no global randomness
type renderArgs struct {
	Size      float64
	Intensity float64
	Variant   Variant
	Phase     float64 // beat phase in [0,1); 0 when tempo unknown
	Base      colorful.Color
	Accent    colorful.Color
	MaxOps    int
	Seed      uint64
}

type renderFunc func(c Canvas, a renderArgs)

// FallbackName is the always-available pattern every failure falls back to
const FallbackName = "glow"

// builtins maps pattern names to renderers. The fallback must stay trivial
// enough that it cannot itself fail
var builtins = map[string]renderFunc{
	"glow":          renderGlow,
	"ripple":        renderRipple,
	"constellation": renderConstellation,
	"spiral":        renderSpiral,
	"organic":       renderOrganic,
	"burst":         renderBurst,
}

// Names returns the registered pattern names (unordered)
func Names() []string {
	out := make([]string, 0, len(builtins))
	for n := range builtins {
		out = append(out, n)
	}
	return out
}

// pulseScale converts beat phase into a smooth size modulation for the
// beat-synchronized variant
func pulseScale(a renderArgs, amp float64) float64 {
	if a.Variant != VariantPulse {
		return 1
	}
	return 1 + amp*math.Sin(vmath.TwoPi*a.Phase)
}

// countFor scales an op count to the variant and remaining budget
// Always at least 1 so every pattern leaves a mark
func countFor(full int, a renderArgs) int {
	n := full
	if a.Variant == VariantCalm {
		n = (n*3 + 4) / 5
	}
	if a.MaxOps > 0 && n > a.MaxOps {
		n = a.MaxOps
	}
	if n < 1 {
		n = 1
	}
	return n
}

// renderGlow is the fallback: a soft core with a halo. Two ops, no math
// that can fail
func renderGlow(c Canvas, a renderArgs) {
	r := a.Size * 0.5 * pulseScale(a, 0.12)
	c.FillCircle(0, 0, r, a.Base, 0.18+0.35*a.Intensity)
	c.FillCircle(0, 0, r*0.45, a.Accent, 0.35+0.45*a.Intensity)
}

// renderRipple draws expanding rings whose position on the expansion cycle
// follows the beat phase
func renderRipple(c Canvas, a renderArgs) {
	rings := countFor(parameter.RippleRingCount, a)
	rng := vmath.NewFastRand(a.Seed | 1)
	sweepStart := rng.Range(0, vmath.TwoPi)

	for i := 0; i < rings; i++ {
		prog := vmath.WrapMod(float64(i)*parameter.RippleRingSpacing+a.Phase, 1)
		r := a.Size * 0.5 * (0.25 + 0.75*prog)
		alpha := (1 - prog) * (0.2 + 0.6*a.Intensity)
		width := 1.5 - prog

		if a.Variant == VariantFlow {
			// Open arcs read as motion better than closed rings
			c.StrokeArc(0, 0, r, sweepStart, sweepStart+4.5, width, a.Accent, alpha)
		} else {
			c.StrokeCircle(0, 0, r, width, a.Accent, alpha)
		}
	}
	if a.Variant == VariantBloom {
		c.FillCircle(0, 0, a.Size*0.12, a.Base, 0.3+0.4*a.Intensity)
	}
}

// renderConstellation plots a fixed star layout scaled to size. Stars come
// first so a tight budget keeps the recognizable dots over the links
func renderConstellation(c Canvas, a renderArgs) {
	layout := constellations[int(a.Seed)%len(constellations)]
	scale := a.Size * 0.5
	dot := a.Size * (0.025 + 0.02*a.Intensity) * pulseScale(a, 0.3)

	budget := a.MaxOps
	if budget <= 0 {
		budget = len(layout.stars) + len(layout.links)
	}

	drawn := 0
	for _, s := range layout.stars {
		if drawn >= budget {
			return
		}
		c.FillCircle(s.x*scale, s.y*scale, dot*s.mag, a.Base, 0.5+0.4*a.Intensity)
		drawn++
	}
	for _, l := range layout.links {
		if drawn >= budget {
			return
		}
		from, to := layout.stars[l[0]], layout.stars[l[1]]
		c.StrokeLine(from.x*scale, from.y*scale, to.x*scale, to.y*scale,
			0.8, a.Accent, 0.25+0.3*a.Intensity)
		drawn++
	}
}

// renderSpiral approximates an Archimedean spiral as a polyline
func renderSpiral(c Canvas, a renderArgs) {
	segs := countFor(int(parameter.SpiralTurns*parameter.SpiralSegmentsPerTurn), a)
	rng := vmath.NewFastRand(a.Seed | 1)

	rot := rng.Range(0, vmath.TwoPi)
	if a.Variant == VariantPulse {
		rot = vmath.TwoPi * a.Phase
	}

	maxTheta := parameter.SpiralTurns * vmath.TwoPi
	rMax := a.Size * 0.5
	px, py := 0.0, 0.0
	for i := 1; i <= segs; i++ {
		t := float64(i) / float64(segs)
		theta := t*maxTheta + rot
		r := rMax * t
		x := r * math.Cos(theta)
		y := r * math.Sin(theta)
		c.StrokeLine(px, py, x, y, 1.0, a.Accent, (0.25+0.55*a.Intensity)*(0.4+0.6*t))
		px, py = x, y
	}
}

// renderOrganic outlines a lobed blob, the "alive" ambient shape
func renderOrganic(c Canvas, a renderArgs) {
	points := countFor(parameter.OrganicLobeCount*6, a)
	if points < 3 {
		points = 3
	}
	rng := vmath.NewFastRand(a.Seed | 1)
	jitter := rng.Range(0, vmath.TwoPi)

	radius := a.Size * 0.45 * pulseScale(a, 0.18)
	wobble := parameter.OrganicWobble * (0.5 + 0.5*a.Intensity)

	blobR := func(theta float64) float64 {
		return radius * (1 + wobble*math.Sin(parameter.OrganicLobeCount*theta+jitter))
	}

	px := blobR(0) * math.Cos(jitter)
	py := blobR(0) * math.Sin(jitter)
	for i := 1; i <= points; i++ {
		theta := vmath.TwoPi * float64(i) / float64(points)
		r := blobR(theta)
		x := r * math.Cos(theta+jitter)
		y := r * math.Sin(theta+jitter)
		c.StrokeLine(px, py, x, y, 1.2, a.Base, 0.3+0.4*a.Intensity)
		px, py = x, y
	}
}

// renderBurst shoots rays outward from a small core, the beat-accent shape
func renderBurst(c Canvas, a renderArgs) {
	rays := countFor(parameter.BurstRayCount, a)
	rng := vmath.NewFastRand(a.Seed | 1)

	rot := rng.Range(0, vmath.TwoPi)
	if a.Variant == VariantPulse {
		rot += vmath.TwoPi * a.Phase / float64(parameter.BurstRayCount)
	}

	rOuter := a.Size * 0.5 * (0.5 + 0.5*a.Intensity)
	rInner := a.Size * 0.12
	for i := 0; i < rays; i++ {
		theta := rot + vmath.TwoPi*float64(i)/float64(rays)
		length := rOuter * rng.Range(0.7, 1.0)
		ink := a.Base
		if i%3 == 0 {
			ink = a.Accent
		}
		c.StrokeLine(rInner*math.Cos(theta), rInner*math.Sin(theta),
			length*math.Cos(theta), length*math.Sin(theta),
			1+a.Intensity, ink, 0.3+0.5*a.Intensity)
	}
}
