package pixelstage

import (
	"io"
	"log/slog"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/style"
)

func newTestStage() *Stage {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, "test", 640, 360)
}

func TestToNRGBAClampsAlpha(t *testing.T) {
	c := colorful.Color{R: 1, G: 0.5, B: 0}

	if got := toNRGBA(c, 2).A; got != 255 {
		t.Errorf("alpha above 1 → A = %d, want 255", got)
	}
	if got := toNRGBA(c, -1).A; got != 0 {
		t.Errorf("negative alpha → A = %d, want 0", got)
	}
	if got := toNRGBA(c, 0.5).A; got != 127 {
		t.Errorf("half alpha → A = %d, want 127", got)
	}
}

func TestApplyDerivesBackdropFromBaseColor(t *testing.T) {
	s := newTestStage()
	before := s.bg

	s.Apply([]style.Write{{Key: "--sn-color-base", Value: "#ff0000"}})
	if s.bg == before {
		t.Errorf("backdrop unchanged after base color flush")
	}
	if s.bg.R <= s.bg.G || s.bg.R <= s.bg.B {
		t.Errorf("backdrop %v does not lean toward the red base", s.bg)
	}

	// malformed hex keeps the previous backdrop
	kept := s.bg
	s.Apply([]style.Write{{Key: "--sn-color-base", Value: "not-a-color"}})
	if s.bg != kept {
		t.Errorf("malformed color changed the backdrop")
	}
}

func TestApplyKeepsLastWritePerKey(t *testing.T) {
	s := newTestStage()
	s.Apply([]style.Write{
		{Key: "--sn-beat-intensity", Value: "0.2"},
		{Key: "--sn-beat-intensity", Value: "0.8"},
	})
	if got := s.vars["--sn-beat-intensity"]; got != "0.8" {
		t.Errorf("var = %q, want last write 0.8", got)
	}
}

func TestSizeMatchesLogicalResolution(t *testing.T) {
	s := newTestStage()
	w, h := s.Size()
	if w != 640 || h != 360 {
		t.Errorf("size = %v×%v, want 640×360", w, h)
	}
}
