// Package termstage hosts the engine inside a terminal. It adapts a tcell
// screen into the two collaborator contracts the core consumes: a style
// surface receiving the per-frame variable flush, and a drawing canvas the
// pattern library renders into.
//
// Canvas units are square: one unit horizontally is one cell column, one
// cell row spans two units vertically, so circles come out round on the
// usual 1:2 glyph aspect.
package termstage

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/core"
	"github.com/minipuft/starrynight/pattern"
	"github.com/minipuft/starrynight/style"
)

// cellAspect is how many canvas units one cell row covers vertically
const cellAspect = 2.0

// Stage owns the tcell screen. It implements service.Service for
// lifecycle and style.Surface for the batched flush; Canvas() exposes the
// drawing side. Frame calls (Clear, Apply, Show) happen on the frame
// goroutine; resize and key events arrive on the poll goroutine
type Stage struct {
	log    *slog.Logger
	screen tcell.Screen
	canvas *cellCanvas

	// packed cols<<32|rows, written by the poll goroutine on resize
	size atomic.Uint64

	// style variables from the last flush, frame-goroutine confined
	vars map[string]string

	quit     chan struct{}
	quitOnce sync.Once
	running  atomic.Bool
}

// New creates a terminal stage. Start acquires the screen
func New(log *slog.Logger) *Stage {
	return &Stage{
		log:  log.With("component", "termstage"),
		vars: make(map[string]string, 16),
		quit: make(chan struct{}),
	}
}

// Name implements service.Service
func (s *Stage) Name() string {
	return "termstage"
}

// Quit is closed when the user asks to exit (Esc, q, Ctrl+C)
func (s *Stage) Quit() <-chan struct{} {
	return s.quit
}

// Start acquires and initializes the screen and launches the event poll
// goroutine. The crash cleanup hook restores the terminal on panic
func (s *Stage) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("termstage: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("termstage: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.Clear()

	s.screen = screen
	s.storeSize(screen.Size())
	s.canvas = newCellCanvas(s)

	core.SetCrashCleanup(func() { screen.Fini() })
	core.Go(s.poll)

	cols, rows := screen.Size()
	s.log.Info("terminal stage started", "cols", cols, "rows", rows)
	return nil
}

// Stop releases the screen. Idempotent
func (s *Stage) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	core.SetCrashCleanup(nil)
	s.screen.Fini()
	s.log.Info("terminal stage stopped")
	return nil
}

// poll forwards tcell events: resizes update the cached size, quit keys
// close the quit channel. Fini unblocks PollEvent with a nil event
func (s *Stage) poll() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
			s.storeSize(ev.Size())
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				s.quitOnce.Do(func() { close(s.quit) })
			}
		}
	}
}

func (s *Stage) storeSize(cols, rows int) {
	s.size.Store(uint64(uint32(cols))<<32 | uint64(uint32(rows)))
}

func (s *Stage) cells() (cols, rows int) {
	v := s.size.Load()
	return int(uint32(v >> 32)), int(uint32(v))
}

// Size returns the viewport in canvas units
func (s *Stage) Size() (w, h float64) {
	cols, rows := s.cells()
	return float64(cols), float64(rows) * cellAspect
}

// Canvas returns the drawing surface for the current frame
func (s *Stage) Canvas() pattern.Canvas {
	return s.canvas
}

// Clear begins a frame: wipes the cell buffer and the overdraw weights
func (s *Stage) Clear() {
	s.screen.Clear()
	s.canvas.reset()
}

// Apply implements style.Surface: one call per frame with the batched
// writes in commit order
func (s *Stage) Apply(writes []style.Write) {
	for _, w := range writes {
		s.vars[w.Key] = w.Value
	}
}

// Show finishes the frame: draws the status line from the flushed
// variables and presents the screen
func (s *Stage) Show() {
	s.statusLine()
	s.screen.Show()
}

// statusLine renders beat, tempo and harmony from the variable flush on
// the bottom row, tinted with the published accent color
func (s *Stage) statusLine() {
	cols, rows := s.cells()
	if rows < 2 {
		return
	}

	accent := tcell.ColorGray
	if hex, ok := s.vars["--sn-color-accent"]; ok {
		if c, err := colorful.Hex(hex); err == nil {
			accent = toTcell(c, 1)
		}
	}

	beat := 0.0
	if v, ok := s.vars["--sn-beat-intensity"]; ok {
		beat, _ = strconv.ParseFloat(v, 64)
	}
	text := fmt.Sprintf(" beat %4.2f  bpm %s  %s ",
		beat, s.vars["--sn-tempo-bpm"], s.vars["--sn-harmony-mode"])

	st := tcell.StyleDefault.Foreground(accent)
	row := rows - 1
	for i, r := range text {
		if i >= cols {
			break
		}
		s.screen.SetContent(i, row, r, nil, st)
	}

	// beat meter fills the remainder of the row
	meterStart := len(text)
	meterWidth := cols - meterStart - 1
	if meterWidth > 0 {
		lit := int(beat * float64(meterWidth))
		for i := 0; i < meterWidth; i++ {
			r := '·'
			if i < lit {
				r = '█'
			}
			s.screen.SetContent(meterStart+i, row, r, nil, st)
		}
	}
}

// toTcell converts a perceptual color with alpha premultiplied toward the
// black background
func toTcell(c colorful.Color, alpha float64) tcell.Color {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(
		int32(float64(r)*alpha),
		int32(float64(g)*alpha),
		int32(float64(b)*alpha),
	)
}
