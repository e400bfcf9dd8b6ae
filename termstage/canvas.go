package termstage

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// shades map plot alpha onto glyph coverage, faint to solid
var shades = []rune{'·', '∘', '•', '●'}

// cellCanvas rasterizes the canvas primitives onto the cell grid. A
// per-frame weight buffer keeps the brightest op per cell: effects overlap
// constantly and a dim late stroke must not punch a hole in a bright one
type cellCanvas struct {
	stage      *Stage
	cols, rows int
	weight     []float64
}

func newCellCanvas(s *Stage) *cellCanvas {
	c := &cellCanvas{stage: s}
	c.reset()
	return c
}

// reset re-reads the screen size and zeroes the weight buffer
func (c *cellCanvas) reset() {
	cols, rows := c.stage.cells()
	if cols != c.cols || rows != c.rows || c.weight == nil {
		c.cols, c.rows = cols, rows
		c.weight = make([]float64, cols*rows)
		return
	}
	for i := range c.weight {
		c.weight[i] = 0
	}
}

// plot writes one canvas-unit point. Alpha below the cell's current
// weight is dropped
func (c *cellCanvas) plot(x, y float64, col colorful.Color, alpha, width float64) {
	if alpha <= 0 {
		return
	}
	cx := int(math.Round(x))
	cy := int(math.Round(y / cellAspect))
	if cx < 0 || cx >= c.cols || cy < 0 || cy >= c.rows {
		return
	}
	idx := cy*c.cols + cx
	if alpha <= c.weight[idx] {
		return
	}
	c.weight[idx] = alpha

	c.stage.screen.SetContent(cx, cy, glyphFor(alpha, width), nil,
		tcell.StyleDefault.Foreground(toTcell(col, alpha)))
}

// glyphFor picks coverage by alpha; wide strokes step one shade up
func glyphFor(alpha, width float64) rune {
	i := int(alpha * float64(len(shades)))
	if width >= 2 {
		i++
	}
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

func (c *cellCanvas) StrokeLine(x0, y0, x1, y1, width float64, col colorful.Color, alpha float64) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)/cellAspect)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.plot(x0+dx*t, y0+dy*t, col, alpha, width)
	}
}

func (c *cellCanvas) StrokeCircle(cx, cy, r, width float64, col colorful.Color, alpha float64) {
	c.StrokeArc(cx, cy, r, 0, 2*math.Pi, width, col, alpha)
}

func (c *cellCanvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	if r <= 0 {
		c.plot(cx, cy, col, alpha, 1)
		return
	}
	r2 := r * r
	for y := cy - r; y <= cy+r; y += cellAspect {
		dy := y - cy
		for x := cx - r; x <= cx+r; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= r2 {
				c.plot(x, y, col, alpha, 1)
			}
		}
	}
}

func (c *cellCanvas) StrokeArc(cx, cy, r, fromRad, toRad, width float64, col colorful.Color, alpha float64) {
	if r <= 0 {
		return
	}
	span := toRad - fromRad
	steps := int(math.Max(8, math.Abs(span)*r))
	for i := 0; i <= steps; i++ {
		a := fromRad + span*float64(i)/float64(steps)
		c.plot(cx+math.Cos(a)*r, cy+math.Sin(a)*r, col, alpha, width)
	}
}
