package generators

import (
	"testing"
	"time"

	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/parameter"
)

func TestRippleSpawnsOncePerBeat(t *testing.T) {
	env := newGenv()
	g := NewRipple()
	initGen(t, g)

	beatAt := genEpoch
	snap := music.Snapshot{BeatIntensity: 0.8, LastBeat: beatAt}
	now := genEpoch.Add(16 * time.Millisecond)

	g.Update(env.frame(rippleID, now, 16*time.Millisecond, snap, nil))
	if g.Live() != 1 {
		t.Fatalf("Expected one ring after the beat, got %d", g.Live())
	}

	// Same beat timestamp seen again spawns nothing
	now = now.Add(16 * time.Millisecond)
	g.Update(env.frame(rippleID, now, 16*time.Millisecond, snap, nil))
	if g.Live() != 1 {
		t.Errorf("Expected still one ring, got %d", g.Live())
	}

	snap.LastBeat = beatAt.Add(500 * time.Millisecond)
	now = beatAt.Add(516 * time.Millisecond)
	g.Update(env.frame(rippleID, now, 16*time.Millisecond, snap, nil))
	if g.Live() != 2 {
		t.Errorf("Expected a second ring on the next beat, got %d", g.Live())
	}
}

func TestRippleIgnoresWeakBeats(t *testing.T) {
	env := newGenv()
	g := NewRipple()
	initGen(t, g)

	snap := music.Snapshot{
		BeatIntensity: parameter.RippleTriggerIntensity / 2,
		LastBeat:      genEpoch,
	}
	g.Update(env.frame(rippleID, genEpoch.Add(16*time.Millisecond), 16*time.Millisecond, snap, nil))
	if g.Live() != 0 {
		t.Errorf("Expected weak beat to spawn nothing, got %d rings", g.Live())
	}
}

func TestRippleRingsExpire(t *testing.T) {
	env := newGenv()
	g := NewRipple()
	initGen(t, g)

	snap := music.Snapshot{BeatIntensity: 0.8, LastBeat: genEpoch}
	g.Update(env.frame(rippleID, genEpoch.Add(16*time.Millisecond), 16*time.Millisecond, snap, nil))
	if g.Live() != 1 {
		t.Fatalf("Expected one ring, got %d", g.Live())
	}

	later := genEpoch.Add(16*time.Millisecond + parameter.RippleLifetime + time.Millisecond)
	g.Update(env.frame(rippleID, later, 16*time.Millisecond, snap, nil))
	if g.Live() != 0 {
		t.Errorf("Expected the ring to expire, got %d live", g.Live())
	}
}

func TestRippleDegradedSkipsSpawning(t *testing.T) {
	env := newGenv()
	g := NewRipple()
	initGen(t, g)

	fc := env.frame(rippleID, genEpoch.Add(16*time.Millisecond), 16*time.Millisecond,
		music.Snapshot{BeatIntensity: 0.8, LastBeat: genEpoch}, nil)
	fc.Degraded = true
	g.Update(fc)
	if g.Live() != 0 {
		t.Errorf("Expected no spawns while degraded, got %d", g.Live())
	}
}

func TestRippleRendersBypassTheCache(t *testing.T) {
	env := newGenv()
	g := NewRipple()
	initGen(t, g)

	now := genEpoch.Add(16 * time.Millisecond)
	snap := music.Snapshot{BeatIntensity: 0.8, LastBeat: genEpoch}
	canvas := &countCanvas{}
	fc := env.frame(rippleID, now, 16*time.Millisecond, snap, canvas)
	g.Update(fc)

	if err := g.Render(fc); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}
	first := canvas.total()
	if first == 0 {
		t.Fatal("Expected ring draw ops")
	}

	if err := g.Render(fc); err != nil {
		t.Fatalf("Expected render to succeed, got %v", err)
	}
	if got := canvas.total(); got != 2*first {
		t.Errorf("Expected the second render to redraw fully, got %d ops after %d", got, first)
	}
	if hits := env.reg.Ints.Get("cache.hits").Load(); hits != 0 {
		t.Errorf("Expected ring renders to bypass the cache, got %d hits", hits)
	}
	if gen := env.reg.Ints.Get("pattern.generated").Load(); gen != 2 {
		t.Errorf("Expected 2 fresh generations, got %d", gen)
	}
}
