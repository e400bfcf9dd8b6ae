package pixelstage

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

// imageCanvas maps the canvas primitives onto ebiten vector drawing.
// Arcs have no direct stroke call, so they are flattened into short
// line segments
type imageCanvas struct {
	dst *ebiten.Image
}

func (c *imageCanvas) StrokeLine(x0, y0, x1, y1, width float64, col colorful.Color, alpha float64) {
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1),
		float32(width), toNRGBA(col, alpha), true)
}

func (c *imageCanvas) StrokeCircle(cx, cy, r, width float64, col colorful.Color, alpha float64) {
	vector.StrokeCircle(c.dst, float32(cx), float32(cy), float32(r),
		float32(width), toNRGBA(col, alpha), true)
}

func (c *imageCanvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r),
		toNRGBA(col, alpha), true)
}

func (c *imageCanvas) StrokeArc(cx, cy, r, fromRad, toRad, width float64, col colorful.Color, alpha float64) {
	if r <= 0 {
		return
	}
	span := toRad - fromRad
	// segment length ~4px keeps arcs smooth without flooding the batch
	steps := int(math.Max(6, math.Abs(span)*r/4))
	nrgba := toNRGBA(col, alpha)
	px := float32(cx + math.Cos(fromRad)*r)
	py := float32(cy + math.Sin(fromRad)*r)
	for i := 1; i <= steps; i++ {
		a := fromRad + span*float64(i)/float64(steps)
		nx := float32(cx + math.Cos(a)*r)
		ny := float32(cy + math.Sin(a)*r)
		vector.StrokeLine(c.dst, px, py, nx, ny, float32(width), nrgba, true)
		px, py = nx, ny
	}
}

// toNRGBA converts a perceptual color plus alpha into an ebiten color
func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha * 255)}
}
