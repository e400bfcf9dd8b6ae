package music

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/vmath"
)

// hueOffsets maps each harmonic mode to its hue rotation set in degrees
// The base hue is always first so palette[0] stays recognizable
var hueOffsets = map[HarmonicMode][]float64{
	HarmonyNeutral:            {0},
	HarmonyMonochrome:         {0},
	HarmonyComplementary:      {0, 180},
	HarmonyAnalogous:          {0, -30, 30},
	HarmonyTriadic:            {0, 120, 240},
	HarmonySplitComplementary: {0, 150, 210},
	HarmonyTetradic:           {0, 90, 180, 270},
}

// lightnessSteps adds deterministic variety when a mode has fewer hues
// than requested colors
var lightnessSteps = []float64{0, 0.10, -0.08, 0.18, -0.14}

// Harmonize derives an n-color palette from a base color per the harmonic
// mode. Hue rotation happens in HCL space, each color is pulled slightly
// toward the base in Lab for cohesion, and lightness is floored so derived
// colors stay visible on dark surfaces. Deterministic for fixed inputs
func Harmonize(base colorful.Color, mode HarmonicMode, n int) []colorful.Color {
	if n <= 0 {
		n = parameter.PaletteSize
	}
	offsets, ok := hueOffsets[mode]
	if !ok {
		offsets = hueOffsets[HarmonyNeutral]
	}

	h, c, l := base.Hcl()
	out := make([]colorful.Color, 0, n)

	if mode == HarmonyMonochrome || mode == HarmonyNeutral {
		// Single hue, lightness ramp from floor toward bright
		top := vmath.Clamp(l+0.3, parameter.PaletteLuminanceFloor, 0.92)
		for i := 0; i < n; i++ {
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}
			li := vmath.Lerp(parameter.PaletteLuminanceFloor, top, t)
			out = append(out, floored(colorful.Hcl(h, c, li), base))
		}
		return out
	}

	for i := 0; i < n; i++ {
		hi := vmath.WrapMod(h+offsets[i%len(offsets)], 360)
		li := vmath.Clamp(l+lightnessSteps[i%len(lightnessSteps)], 0, 1)
		out = append(out, floored(colorful.Hcl(hi, c, li), base))
	}
	return out
}

// floored blends toward base for cohesion and enforces the luminance floor
func floored(c, base colorful.Color) colorful.Color {
	blended := c.BlendLab(base, parameter.PaletteBaseBlend)
	h, ch, l := blended.Hcl()
	if l < parameter.PaletteLuminanceFloor {
		blended = colorful.Hcl(h, ch, parameter.PaletteLuminanceFloor)
	}
	return blended.Clamped()
}

// defaultPalette is the rest-state palette before any analyzer publishes
// Catppuccin mocha accents; treated as immutable
var defaultPalette = []colorful.Color{
	mustHex("#cba6f7"),
	mustHex("#f5c2e7"),
	mustHex("#89b4fa"),
	mustHex("#b4befe"),
	mustHex("#94e2d5"),
}

// DefaultPalette returns the shared rest-state palette; callers must not
// mutate it
func DefaultPalette() []colorful.Color {
	return defaultPalette
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("bad builtin color %q: %v", s, err))
	}
	return c
}
