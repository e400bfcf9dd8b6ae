package generators

import (
	"strings"
	"testing"
	"time"

	"github.com/minipuft/starrynight/music"
)

func TestBeatGlassSpringFollowsBeat(t *testing.T) {
	env := newGenv()
	g := NewBeatGlass()
	initGen(t, g)

	snap := music.Snapshot{BeatIntensity: 1}
	now := genEpoch
	for i := 0; i < 90; i++ {
		now = now.Add(16 * time.Millisecond)
		if err := g.Update(env.frame(beatGlassID, now, 16*time.Millisecond, snap, nil)); err != nil {
			t.Fatalf("Expected update to succeed, got %v", err)
		}
	}
	if g.Level() < 0.75 {
		t.Errorf("Expected spring to approach the beat level, got %.3f", g.Level())
	}

	snap.BeatIntensity = 0
	for i := 0; i < 120; i++ {
		now = now.Add(16 * time.Millisecond)
		g.Update(env.frame(beatGlassID, now, 16*time.Millisecond, snap, nil))
	}
	if g.Level() > 0.1 {
		t.Errorf("Expected spring to settle near zero, got %.3f", g.Level())
	}
}

func TestBeatGlassQueuesGlassTokens(t *testing.T) {
	env := newGenv()
	g := NewBeatGlass()
	initGen(t, g)

	fc := env.frame(beatGlassID, genEpoch, 16*time.Millisecond, music.Snapshot{BeatIntensity: 0.8}, nil)
	if err := g.Update(fc); err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}
	if err := g.Render(fc); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}
	if got := env.styles.Pending(); got != 3 {
		t.Errorf("Expected 3 staged writes, got %d", got)
	}

	surface := &tokenSurface{}
	env.styles.Flush(surface, time.Second)
	blur, ok := surface.value("--sn-glass-blur")
	if !ok {
		t.Fatal("Expected a blur write")
	}
	if !strings.HasSuffix(blur, "px") {
		t.Errorf("Expected a px blur value, got %s", blur)
	}
	if _, ok := surface.value("--sn-glass-opacity"); !ok {
		t.Error("Expected an opacity write")
	}
}

func TestBeatGlassDegradedTracksLower(t *testing.T) {
	env := newGenv()
	full := NewBeatGlass()
	reduced := NewBeatGlass()
	initGen(t, full)
	initGen(t, reduced)

	snap := music.Snapshot{BeatIntensity: 1}
	now := genEpoch
	for i := 0; i < 120; i++ {
		now = now.Add(16 * time.Millisecond)
		fc := env.frame(beatGlassID, now, 16*time.Millisecond, snap, nil)
		full.Update(fc)
		fc.Degraded = true
		reduced.Update(fc)
	}
	if reduced.Level() >= full.Level()-0.2 {
		t.Errorf("Expected degraded glass to track lower, got %.3f vs %.3f",
			reduced.Level(), full.Level())
	}
}
