package pattern

import "github.com/lucasb-eyer/go-colorful"

type opKind uint8

const (
	opLine opKind = iota
	opCircle
	opFill
	opArc
)

// op is one captured draw call. Fields are interpreted per kind:
// lines use x0..y1, circles use x0,y0 as center and r, arcs add angles
type op struct {
	kind           opKind
	x0, y0, x1, y1 float64
	r              float64
	from, to       float64
	width          float64
	color          colorful.Color
	alpha          float64
}

// Recording is a replayable op list. It implements Canvas so renderers can
// draw into it, and replays bit-identically: the same recording produces
// the same op sequence on every replay
type Recording struct {
	ops []op
}

func (rec *Recording) StrokeLine(x0, y0, x1, y1, width float64, c colorful.Color, alpha float64) {
	rec.ops = append(rec.ops, op{kind: opLine, x0: x0, y0: y0, x1: x1, y1: y1, width: width, color: c, alpha: alpha})
}

func (rec *Recording) StrokeCircle(cx, cy, r, width float64, c colorful.Color, alpha float64) {
	rec.ops = append(rec.ops, op{kind: opCircle, x0: cx, y0: cy, r: r, width: width, color: c, alpha: alpha})
}

func (rec *Recording) FillCircle(cx, cy, r float64, c colorful.Color, alpha float64) {
	rec.ops = append(rec.ops, op{kind: opFill, x0: cx, y0: cy, r: r, color: c, alpha: alpha})
}

func (rec *Recording) StrokeArc(cx, cy, r, fromRad, toRad, width float64, c colorful.Color, alpha float64) {
	rec.ops = append(rec.ops, op{kind: opArc, x0: cx, y0: cy, r: r, from: fromRad, to: toRad, width: width, color: c, alpha: alpha})
}

// Replay issues the captured ops against dst translated by (dx, dy)
func (rec *Recording) Replay(dst Canvas, dx, dy float64) {
	for _, o := range rec.ops {
		switch o.kind {
		case opLine:
			dst.StrokeLine(o.x0+dx, o.y0+dy, o.x1+dx, o.y1+dy, o.width, o.color, o.alpha)
		case opCircle:
			dst.StrokeCircle(o.x0+dx, o.y0+dy, o.r, o.width, o.color, o.alpha)
		case opFill:
			dst.FillCircle(o.x0+dx, o.y0+dy, o.r, o.color, o.alpha)
		case opArc:
			dst.StrokeArc(o.x0+dx, o.y0+dy, o.r, o.from, o.to, o.width, o.color, o.alpha)
		}
	}
}

// OpCount returns the number of captured ops
func (rec *Recording) OpCount() int {
	return len(rec.ops)
}
