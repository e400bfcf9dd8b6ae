package generators

import (
	"testing"
	"time"

	"github.com/minipuft/starrynight/music"
)

func TestNebulaStyleOnlyWithoutCanvas(t *testing.T) {
	env := newGenv()
	g := NewNebula()
	initGen(t, g)

	fc := env.frame(nebulaID, genEpoch, 16*time.Millisecond, music.Snapshot{BeatIntensity: 0.4}, nil)
	g.Update(fc)
	if err := g.Render(fc); err != nil {
		t.Fatalf("Expected render to succeed without a canvas, got %v", err)
	}
	if got := env.styles.Pending(); got != 1 {
		t.Errorf("Expected only the opacity token, got %d staged writes", got)
	}
	if gen := env.reg.Ints.Get("pattern.generated").Load(); gen != 0 {
		t.Errorf("Expected no pattern generation without a canvas, got %d", gen)
	}
}

func TestNebulaDegradedDrawsFewerClouds(t *testing.T) {
	snap := music.Snapshot{BeatIntensity: 0.4}

	envFull := newGenv()
	full := NewNebula()
	initGen(t, full)
	fullCanvas := &countCanvas{}
	fcFull := envFull.frame(nebulaID, genEpoch, 16*time.Millisecond, snap, fullCanvas)
	full.Update(fcFull)
	if err := full.Render(fcFull); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}

	envDeg := newGenv()
	deg := NewNebula()
	initGen(t, deg)
	degCanvas := &countCanvas{}
	fcDeg := envDeg.frame(nebulaID, genEpoch, 16*time.Millisecond, snap, degCanvas)
	fcDeg.Degraded = true
	deg.Update(fcDeg)
	if err := deg.Render(fcDeg); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}

	if fullCanvas.total() == 0 || degCanvas.total() == 0 {
		t.Fatalf("Expected both fields to draw, got %d and %d ops", fullCanvas.total(), degCanvas.total())
	}
	if degCanvas.total() >= fullCanvas.total() {
		t.Errorf("Expected the degraded field to draw less, got %d vs %d ops",
			degCanvas.total(), fullCanvas.total())
	}
}
