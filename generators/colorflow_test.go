package generators

import (
	"testing"
	"time"

	"github.com/minipuft/starrynight/music"
)

func TestColorFlowPublishesCoreTokensFirst(t *testing.T) {
	env := newGenv()
	g := NewColorFlow()
	initGen(t, g)

	snap := music.Snapshot{
		BeatIntensity: 0.6,
		TempoBPM:      120,
		Mode:          music.HarmonyAnalogous,
		Palette:       music.DefaultPalette(),
	}
	fc := env.frame(colorFlowID, genEpoch, 16*time.Millisecond, snap, nil)
	if err := g.Update(fc); err != nil {
		t.Fatalf("Expected update to succeed, got %v", err)
	}
	if err := g.Render(fc); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}

	surface := &tokenSurface{}
	env.styles.Flush(surface, time.Second)
	if len(surface.writes) != 7 {
		t.Fatalf("Expected 7 token writes, got %d", len(surface.writes))
	}

	// Critical tokens flush ahead of everything else, in queue order
	want := []string{"--sn-color-base", "--sn-color-accent", "--sn-beat-intensity"}
	for i, key := range want {
		if surface.writes[i].Key != key {
			t.Errorf("Expected write %d to be %s, got %s", i, key, surface.writes[i].Key)
		}
	}

	if v, _ := surface.value("--sn-beat-intensity"); v != "0.6" {
		t.Errorf("Expected beat intensity 0.6, got %s", v)
	}
	if v, _ := surface.value("--sn-harmony-mode"); v != "analogous" {
		t.Errorf("Expected analogous mode token, got %s", v)
	}
	base, _ := surface.value("--sn-color-base")
	if len(base) != 7 || base[0] != '#' {
		t.Errorf("Expected a hex base color, got %q", base)
	}
}

func TestColorFlowTempoLocksTheSweep(t *testing.T) {
	locked := NewColorFlow()
	free := NewColorFlow()
	initGen(t, locked)
	initGen(t, free)

	envA := newGenv()
	envB := newGenv()
	pal := music.DefaultPalette()
	lockedSnap := music.Snapshot{BeatPeriod: 500 * time.Millisecond, Palette: pal}
	freeSnap := music.Snapshot{Palette: pal}

	now := genEpoch
	for i := 0; i < 30; i++ {
		now = now.Add(100 * time.Millisecond)
		locked.Update(envA.frame(colorFlowID, now, 100*time.Millisecond, lockedSnap, nil))
		free.Update(envB.frame(colorFlowID, now, 100*time.Millisecond, freeSnap, nil))
	}
	locked.Render(envA.frame(colorFlowID, now, 0, lockedSnap, nil))
	free.Render(envB.frame(colorFlowID, now, 0, freeSnap, nil))

	surfA := &tokenSurface{}
	surfB := &tokenSurface{}
	envA.styles.Flush(surfA, time.Second)
	envB.styles.Flush(surfB, time.Second)

	flowLocked, _ := surfA.value("--sn-color-flow")
	flowFree, _ := surfB.value("--sn-color-flow")
	if flowLocked == flowFree {
		t.Errorf("Expected tempo-locked sweep to diverge from free-run, both %s", flowLocked)
	}
}
