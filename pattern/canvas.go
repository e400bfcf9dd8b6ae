package pattern

import "github.com/lucasb-eyer/go-colorful"

// Canvas is the drawing surface renderers target. Stages implement it over
// their primitive set (terminal cells, GPU vectors); recordings implement
// it to capture ops for replay
//
// Coordinates are in display units. Renderers draw around the origin; the
// library translates to the requested position
type Canvas interface {
	StrokeLine(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64)
	StrokeCircle(cx, cy, r, width float64, c colorful.Color, alpha float64)
	FillCircle(cx, cy, r float64, c colorful.Color, alpha float64)
	StrokeArc(cx, cy, r, fromRad, toRad, width float64, c colorful.Color, alpha float64)
}

// offsetCanvas translates every op by (dx, dy) before forwarding
type offsetCanvas struct {
	dst    Canvas
	dx, dy float64
}

func (o offsetCanvas) StrokeLine(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64) {
	o.dst.StrokeLine(x0+o.dx, y0+o.dy, x1+o.dx, y1+o.dy, width, c, alpha)
}

func (o offsetCanvas) StrokeCircle(cx, cy, r, width float64, c colorful.Color, alpha float64) {
	o.dst.StrokeCircle(cx+o.dx, cy+o.dy, r, width, c, alpha)
}

func (o offsetCanvas) FillCircle(cx, cy, r float64, c colorful.Color, alpha float64) {
	o.dst.FillCircle(cx+o.dx, cy+o.dy, r, c, alpha)
}

func (o offsetCanvas) StrokeArc(cx, cy, r, fromRad, toRad, width float64, c colorful.Color, alpha float64) {
	o.dst.StrokeArc(cx+o.dx, cy+o.dy, r, fromRad, toRad, width, c, alpha)
}

// limitCanvas enforces the per-pattern op ceiling; ops beyond the budget
// are dropped and counted
type limitCanvas struct {
	dst     Canvas
	budget  int
	drawn   int
	dropped int
}

func (l *limitCanvas) admit() bool {
	if l.budget > 0 && l.drawn >= l.budget {
		l.dropped++
		return false
	}
	l.drawn++
	return true
}

func (l *limitCanvas) StrokeLine(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64) {
	if l.admit() {
		l.dst.StrokeLine(x0, y0, x1, y1, width, c, alpha)
	}
}

func (l *limitCanvas) StrokeCircle(cx, cy, r, width float64, c colorful.Color, alpha float64) {
	if l.admit() {
		l.dst.StrokeCircle(cx, cy, r, width, c, alpha)
	}
}

func (l *limitCanvas) FillCircle(cx, cy, r float64, c colorful.Color, alpha float64) {
	if l.admit() {
		l.dst.FillCircle(cx, cy, r, c, alpha)
	}
}

func (l *limitCanvas) StrokeArc(cx, cy, r, fromRad, toRad, width float64, c colorful.Color, alpha float64) {
	if l.admit() {
		l.dst.StrokeArc(cx, cy, r, fromRad, toRad, width, c, alpha)
	}
}
