package pattern

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var testInk = colorful.Color{R: 0.8, G: 0.6, B: 0.9}

func TestRecordingCapturesAndReplaysWithOffset(t *testing.T) {
	rec := &Recording{}
	rec.StrokeLine(0, 0, 10, 10, 1, testInk, 0.5)
	rec.FillCircle(5, 5, 3, testInk, 0.8)

	if rec.OpCount() != 2 {
		t.Fatalf("Expected 2 captured ops, got %d", rec.OpCount())
	}

	dst := &Recording{}
	rec.Replay(dst, 100, 200)

	if dst.OpCount() != 2 {
		t.Fatalf("Expected 2 replayed ops, got %d", dst.OpCount())
	}
	if dst.ops[0].x0 != 100 || dst.ops[0].y0 != 200 || dst.ops[0].x1 != 110 || dst.ops[0].y1 != 210 {
		t.Errorf("Expected line translated by offset, got %+v", dst.ops[0])
	}
	if dst.ops[1].x0 != 105 || dst.ops[1].y0 != 205 || dst.ops[1].r != 3 {
		t.Errorf("Expected circle center translated, radius untouched, got %+v", dst.ops[1])
	}
}

func TestRecordingReplayIsStable(t *testing.T) {
	rec := &Recording{}
	rec.StrokeCircle(0, 0, 8, 1.5, testInk, 0.4)
	rec.StrokeArc(1, 2, 5, 0, 3.14, 1, testInk, 0.6)

	a := &Recording{}
	b := &Recording{}
	rec.Replay(a, 7, 9)
	rec.Replay(b, 7, 9)

	if len(a.ops) != len(b.ops) {
		t.Fatalf("Expected equal op counts, got %d and %d", len(a.ops), len(b.ops))
	}
	for i := range a.ops {
		if a.ops[i] != b.ops[i] {
			t.Errorf("Expected identical replayed op %d, got %+v vs %+v", i, a.ops[i], b.ops[i])
		}
	}
}

func TestLimitCanvasEnforcesBudget(t *testing.T) {
	dst := &Recording{}
	lim := &limitCanvas{dst: dst, budget: 3}

	for i := 0; i < 5; i++ {
		lim.FillCircle(float64(i), 0, 1, testInk, 1)
	}

	if dst.OpCount() != 3 {
		t.Errorf("Expected 3 ops through the limiter, got %d", dst.OpCount())
	}
	if lim.drawn != 3 || lim.dropped != 2 {
		t.Errorf("Expected drawn=3 dropped=2, got drawn=%d dropped=%d", lim.drawn, lim.dropped)
	}
}

func TestLimitCanvasZeroBudgetIsUnlimited(t *testing.T) {
	dst := &Recording{}
	lim := &limitCanvas{dst: dst}

	for i := 0; i < 10; i++ {
		lim.StrokeLine(0, 0, 1, 1, 1, testInk, 1)
	}
	if dst.OpCount() != 10 {
		t.Errorf("Expected all ops through with no budget, got %d", dst.OpCount())
	}
}

func TestOffsetCanvasTranslatesAllKinds(t *testing.T) {
	dst := &Recording{}
	off := offsetCanvas{dst: dst, dx: 10, dy: -5}

	off.StrokeLine(0, 0, 1, 1, 1, testInk, 1)
	off.StrokeCircle(2, 2, 4, 1, testInk, 1)
	off.FillCircle(3, 3, 2, testInk, 1)
	off.StrokeArc(4, 4, 6, 0, 1, 1, testInk, 1)

	wantCenters := [][2]float64{{10, -5}, {12, -3}, {13, -2}, {14, -1}}
	for i, w := range wantCenters {
		if dst.ops[i].x0 != w[0] || dst.ops[i].y0 != w[1] {
			t.Errorf("Expected op %d at (%v,%v), got (%v,%v)", i, w[0], w[1], dst.ops[i].x0, dst.ops[i].y0)
		}
	}
}
