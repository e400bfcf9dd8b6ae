package generators

import (
	"testing"
	"time"

	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/perf"
)

func TestDriftCountFollowsProfile(t *testing.T) {
	env := newGenv()
	g := NewParticleDrift()
	initGen(t, g)

	fc := env.frame(driftID, genEpoch, 16*time.Millisecond, music.Snapshot{}, nil)
	g.Update(fc)
	wantHigh := int(float64(perf.ProfileFor(perf.TierHigh).MaxParticles) * parameter.DriftParticleShare)
	if g.Count() != wantHigh {
		t.Errorf("Expected %d particles on the high profile, got %d", wantHigh, g.Count())
	}

	// Tier drop shrinks the field on the next update
	fc.Tier = perf.TierMinimal
	fc.Profile = perf.ProfileFor(perf.TierMinimal)
	g.Update(fc)
	wantMin := int(float64(perf.ProfileFor(perf.TierMinimal).MaxParticles) * parameter.DriftParticleShare)
	if g.Count() != wantMin {
		t.Errorf("Expected %d particles on the minimal profile, got %d", wantMin, g.Count())
	}
}

func TestDriftDegradedHalvesTheField(t *testing.T) {
	env := newGenv()
	g := NewParticleDrift()
	initGen(t, g)

	fc := env.frame(driftID, genEpoch, 16*time.Millisecond, music.Snapshot{}, nil)
	fc.Degraded = true
	g.Update(fc)
	want := int(float64(perf.ProfileFor(perf.TierHigh).MaxParticles)*parameter.DriftParticleShare) / 2
	if g.Count() != want {
		t.Errorf("Expected %d particles while degraded, got %d", want, g.Count())
	}
}

func TestDriftDrawsEveryParticle(t *testing.T) {
	env := newGenv()
	g := NewParticleDrift()
	initGen(t, g)

	canvas := &countCanvas{}
	fc := env.frame(driftID, genEpoch, 16*time.Millisecond, music.Snapshot{BeatIntensity: 0.5}, canvas)
	g.Update(fc)
	if err := g.Render(fc); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}
	if canvas.fills != g.Count() {
		t.Errorf("Expected %d particle fills, got %d", g.Count(), canvas.fills)
	}
}

func TestDriftStyleOnlyWithoutCanvas(t *testing.T) {
	env := newGenv()
	g := NewParticleDrift()
	initGen(t, g)

	fc := env.frame(driftID, genEpoch, 16*time.Millisecond, music.Snapshot{}, nil)
	g.Update(fc)
	if err := g.Render(fc); err != nil {
		t.Fatalf("Expected render to succeed without a canvas, got %v", err)
	}
	if got := env.styles.Pending(); got != 1 {
		t.Errorf("Expected only the energy token, got %d staged writes", got)
	}
}
