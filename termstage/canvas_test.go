package termstage

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/style"
)

// newSimStage builds a stage over a tcell simulation screen, skipping
// Start so no poll goroutine runs
func newSimStage(t *testing.T, cols, rows int) (*Stage, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	sim.SetSize(cols, rows)

	s := &Stage{
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		vars: make(map[string]string),
		quit: make(chan struct{}),
	}
	s.screen = sim
	s.storeSize(sim.Size())
	s.canvas = newCellCanvas(s)
	t.Cleanup(sim.Fini)
	return s, sim
}

func cellRune(t *testing.T, sim tcell.SimulationScreen, x, y int) rune {
	t.Helper()
	cells, w, _ := sim.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestSizeUsesCellAspect(t *testing.T) {
	s, _ := newSimStage(t, 80, 24)
	w, h := s.Size()
	if w != 80 {
		t.Errorf("width = %v, want 80", w)
	}
	if h != 24*cellAspect {
		t.Errorf("height = %v, want %v", h, 24*cellAspect)
	}
}

func TestFillCircleMarksCenterCell(t *testing.T) {
	s, sim := newSimStage(t, 40, 20)
	white := colorful.Color{R: 1, G: 1, B: 1}

	// center of the canvas is column 20, row 10 (y = 20 canvas units)
	s.canvas.FillCircle(20, 20, 4, white, 1.0)
	sim.Show()

	if r := cellRune(t, sim, 20, 10); r == ' ' {
		t.Errorf("center cell empty after FillCircle")
	}
}

func TestBrighterOpWinsOverdraw(t *testing.T) {
	s, sim := newSimStage(t, 40, 20)
	white := colorful.Color{R: 1, G: 1, B: 1}

	s.canvas.plot(10, 10, white, 1.0, 1)
	sim.Show()
	bright := cellRune(t, sim, 10, 5)

	// a faint op on the same cell must not replace the solid glyph
	s.canvas.plot(10, 10, white, 0.1, 1)
	sim.Show()
	if got := cellRune(t, sim, 10, 5); got != bright {
		t.Errorf("dim overdraw replaced glyph: got %q, want %q", got, bright)
	}
}

func TestClearResetsOverdrawWeights(t *testing.T) {
	s, sim := newSimStage(t, 40, 20)
	white := colorful.Color{R: 1, G: 1, B: 1}

	s.canvas.plot(10, 10, white, 1.0, 1)
	s.Clear()
	s.canvas.plot(10, 10, white, 0.1, 1)
	sim.Show()

	if got := cellRune(t, sim, 10, 5); got != shades[0] {
		t.Errorf("after Clear, faint plot = %q, want %q", got, shades[0])
	}
}

func TestOutOfBoundsPlotsAreDropped(t *testing.T) {
	s, _ := newSimStage(t, 10, 5)
	white := colorful.Color{R: 1, G: 1, B: 1}

	// must not panic or write
	s.canvas.StrokeLine(-20, -20, 200, 200, 1, white, 1.0)
	s.canvas.FillCircle(-5, -5, 3, white, 1.0)
	s.canvas.StrokeCircle(100, 100, 40, 1, white, 1.0)
}

func TestStatusLineShowsFlushedVariables(t *testing.T) {
	s, sim := newSimStage(t, 60, 10)

	s.Apply([]style.Write{
		{Key: "--sn-beat-intensity", Value: "0.75"},
		{Key: "--sn-tempo-bpm", Value: "120"},
		{Key: "--sn-harmony-mode", Value: "triadic"},
		{Key: "--sn-color-accent", Value: "#88aaff"},
	})
	s.Show()

	cells, w, h := sim.GetContents()
	row := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		c := cells[(h-1)*w+x]
		if len(c.Runes) > 0 {
			row = append(row, c.Runes[0])
		}
	}
	line := string(row)
	for _, want := range []string{"0.75", "120", "triadic"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q missing %q", line, want)
		}
	}
}

func TestGlyphForCoverage(t *testing.T) {
	if glyphFor(0.05, 1) != shades[0] {
		t.Errorf("faint alpha should map to the lightest shade")
	}
	if glyphFor(0.99, 1) != shades[len(shades)-1] {
		t.Errorf("solid alpha should map to the heaviest shade")
	}
	// wide strokes step up one shade
	if glyphFor(0.05, 3) != shades[1] {
		t.Errorf("wide faint stroke should step one shade up")
	}
}
