package beatsource

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/minipuft/starrynight/config"
	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/status"
)

func newSilentSource(t *testing.T) (*Source, *music.Bus) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := music.NewBus(log, status.NewRegistry(), music.Options{})
	src := New(log, bus, config.AudioSettings{Enabled: false, BPM: 120, Volume: 0})
	return src, bus
}

func TestDownbeatHitsFullIntensity(t *testing.T) {
	src, bus := newSilentSource(t)
	t0 := time.Unix(100, 0)

	src.beat(t0)
	bus.Tick(t0)

	if got := bus.Sample().BeatIntensity; got < 0.99 {
		t.Errorf("downbeat intensity = %v, want ~1.0", got)
	}
}

func TestOffbeatsAreSofter(t *testing.T) {
	src, bus := newSilentSource(t)
	t0 := time.Unix(100, 0)

	src.beat(t0) // downbeat
	src.beat(t0.Add(time.Hour))
	bus.Tick(t0.Add(time.Hour))

	// the downbeat decayed away over an hour; the offbeat attack remains
	got := bus.Sample().BeatIntensity
	if got < 0.5 || got > 0.75 {
		t.Errorf("offbeat intensity = %v, want ~0.62", got)
	}
}

func TestBPMOutOfRangeFallsBack(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := music.NewBus(log, status.NewRegistry(), music.Options{})

	src := New(log, bus, config.AudioSettings{BPM: 10000})
	if src.bpm != 120 {
		t.Errorf("bpm = %v, want fallback 120", src.bpm)
	}
}

func TestPaletteRotationAdvancesMode(t *testing.T) {
	src, bus := newSilentSource(t)
	now := time.Unix(100, 0)

	src.publishPalette()
	bus.Tick(now)
	first := bus.Sample().Mode

	src.rotate()
	bus.Tick(now.Add(time.Millisecond))
	second := bus.Sample().Mode

	if first == second {
		t.Errorf("rotation kept mode %v", first)
	}
	if got := len(bus.Sample().Palette); got == 0 {
		t.Errorf("rotated palette is empty")
	}
}

func TestRotationLandsEveryEighthBar(t *testing.T) {
	src, bus := newSilentSource(t)
	now := time.Unix(100, 0)
	before := src.rotation

	// 8 bars of 4 beats; rotation fires on the downbeat of bar 8
	for i := 0; i < beatsPerBar*barsPerPalette+1; i++ {
		src.beat(now.Add(time.Duration(i) * 500 * time.Millisecond))
	}
	bus.Tick(now.Add(time.Minute))

	if src.rotation != before+1 {
		t.Errorf("rotation = %d after 8 bars, want %d", src.rotation, before+1)
	}
}
