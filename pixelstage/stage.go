// Package pixelstage hosts the engine in an ebiten window. The window's
// game loop drives frames, so there is no ticker: Update runs one engine
// frame into a recording and Draw replays it with vector primitives.
package pixelstage

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/pattern"
	"github.com/minipuft/starrynight/style"
)

// FrameFunc runs one engine frame at the window's cadence
type FrameFunc func(now time.Time)

// Stage is an ebiten.Game adapter. Update and Draw run on the same
// goroutine, so the recording swap and the variable map need no locking
type Stage struct {
	log           *slog.Logger
	title         string
	width, height int

	frame FrameFunc
	rec   *pattern.Recording
	vars  map[string]string
	bg    colorful.Color
}

// New creates a windowed stage with a fixed logical size
func New(log *slog.Logger, title string, width, height int) *Stage {
	return &Stage{
		log:    log.With("component", "pixelstage"),
		title:  title,
		width:  width,
		height: height,
		rec:    &pattern.Recording{},
		vars:   make(map[string]string, 16),
		bg:     colorful.Color{R: 0.04, G: 0.05, B: 0.09},
	}
}

// Size returns the viewport in canvas units
func (s *Stage) Size() (w, h float64) {
	return float64(s.width), float64(s.height)
}

// Canvas returns the recording the current frame draws into
func (s *Stage) Canvas() pattern.Canvas {
	return s.rec
}

// Apply implements style.Surface. Color variables feed the background
// tint; the rest land in the status readout
func (s *Stage) Apply(writes []style.Write) {
	for _, w := range writes {
		s.vars[w.Key] = w.Value
	}
	if hex, ok := s.vars["--sn-color-base"]; ok {
		if c, err := colorful.Hex(hex); err == nil {
			// keep the backdrop deep so effects carry the luminance
			s.bg = colorful.Color{R: c.R * 0.12, G: c.G * 0.12, B: c.B * 0.14}
		}
	}
}

// Run opens the window and blocks until the user quits
func (s *Stage) Run(frame FrameFunc) error {
	if frame == nil {
		return fmt.Errorf("pixelstage: nil frame func")
	}
	s.frame = frame
	ebiten.SetWindowSize(s.width, s.height)
	ebiten.SetWindowTitle(s.title)
	s.log.Info("window stage running", "width", s.width, "height", s.height)

	if err := ebiten.RunGame(s); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("pixelstage: %w", err)
	}
	return nil
}

// Update implements ebiten.Game: reset the recording and run one frame
func (s *Stage) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	s.rec = &pattern.Recording{}
	s.frame(time.Now())
	return nil
}

// Draw implements ebiten.Game: backdrop, recorded ops, status readout
func (s *Stage) Draw(screen *ebiten.Image) {
	screen.Fill(toNRGBA(s.bg, 1))
	s.rec.Replay(&imageCanvas{dst: screen}, 0, 0)

	beat := 0.0
	if v, ok := s.vars["--sn-beat-intensity"]; ok {
		beat, _ = strconv.ParseFloat(v, 64)
	}
	status := fmt.Sprintf("beat %4.2f  bpm %s  %s  (Esc to quit)",
		beat, s.vars["--sn-tempo-bpm"], s.vars["--sn-harmony-mode"])
	ebitenutil.DebugPrintAt(screen, status, 8, s.height-18)
}

// Layout implements ebiten.Game with a fixed logical resolution
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.width, s.height
}
