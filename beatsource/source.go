// Package beatsource ships a synthetic beat producer: a metronome that
// feeds the music bus the way a real audio analyzer would. It emits beat
// events on a fixed tempo, a tempo estimate at start, and a bar-quantized
// palette rotation, with an optional audible click through the speaker.
//
// The source is a stand-in for the host's analysis pipeline, useful for
// demos and for exercising the full event path without an audio input.
package beatsource

import (
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/minipuft/starrynight/config"
	"github.com/minipuft/starrynight/core"
	"github.com/minipuft/starrynight/music"
	"github.com/minipuft/starrynight/parameter"
)

const sampleRate = beep.SampleRate(44100)

// Beats per bar and bars per palette rotation. Four-on-the-floor with a
// slow harmonic drift keeps the demo output readable
const (
	beatsPerBar    = 4
	barsPerPalette = 8
)

// rotationModes is the harmony cycle the palette walks through, one mode
// per rotation
var rotationModes = []music.HarmonicMode{
	music.HarmonyAnalogous,
	music.HarmonyTriadic,
	music.HarmonyComplementary,
	music.HarmonySplitComplementary,
	music.HarmonyTetradic,
}

// Source is a metronome publishing into a music bus from its own
// goroutine. Implements service.Service
type Source struct {
	log *slog.Logger
	bus *music.Bus

	bpm     float64
	volume  float64
	wantAud bool

	audible  bool // speaker acquired; clicks play
	baseHue  float64
	beatNum  int64
	rotation int

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// New creates a metronome from the audio settings. The bus must outlive
// the source
func New(log *slog.Logger, bus *music.Bus, settings config.AudioSettings) *Source {
	bpm := settings.BPM
	if bpm < parameter.MinMetronomeBPM || bpm > parameter.MaxMetronomeBPM {
		bpm = 120
	}
	return &Source{
		log:      log.With("component", "beatsource"),
		bus:      bus,
		bpm:      bpm,
		volume:   settings.Volume,
		wantAud:  settings.Enabled,
		baseHue:  210, // cool blue start, matches the default palette
		stopChan: make(chan struct{}),
	}
}

// Name implements service.Service
func (s *Source) Name() string {
	return "beatsource"
}

// Audible reports whether the speaker was acquired
func (s *Source) Audible() bool {
	return s.audible
}

// Start launches the metronome goroutine. Speaker acquisition failure is
// not fatal: the source keeps emitting silent beats, mirroring a host with
// no audio device
func (s *Source) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	if s.wantAud {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			s.log.Warn("no audio device, metronome runs silent", "error", err)
		} else {
			s.audible = true
		}
	}

	s.bus.OnTempoUpdate(s.bpm)
	s.publishPalette()

	s.wg.Add(1)
	core.Go(s.loop)
	s.log.Info("beat source started", "bpm", s.bpm, "audible", s.audible)
	return nil
}

// Stop halts the metronome. Idempotent
func (s *Source) Stop() error {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
			if s.audible {
				speaker.Clear()
			}
			s.log.Info("beat source stopped", "beats", s.beatNum)
		}
	})
	return nil
}

func (s *Source) loop() {
	defer s.wg.Done()

	period := time.Duration(float64(time.Minute) / s.bpm)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.beat(now)
		}
	}
}

// beat emits one beat event and advances bar/palette phase. Downbeats hit
// at full intensity, offbeats softer, so the envelope visibly pumps
func (s *Source) beat(now time.Time) {
	downbeat := s.beatNum%beatsPerBar == 0
	intensity := 0.62
	freq := 660.0
	if downbeat {
		intensity = 1.0
		freq = 880
	}

	s.bus.OnBeatEvent(intensity, now)
	if s.audible {
		s.click(freq)
	}

	s.beatNum++
	if downbeat && s.beatNum > 1 && (s.beatNum/beatsPerBar)%barsPerPalette == 0 {
		s.rotate()
	}
}

// click plays a short sine tick through a log-scaled volume stage
func (s *Source) click(freq float64) {
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	dur := sampleRate.N(40 * time.Millisecond)
	var st beep.Streamer = beep.Take(dur, tone)
	if s.volume < 1 {
		if s.volume <= 0 {
			st = &effects.Volume{Streamer: st, Base: 2, Volume: 0, Silent: true}
		} else {
			st = &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(s.volume)}
		}
	}
	speaker.Play(st)
}

// rotate advances the base hue and harmonic mode, then publishes a fresh
// harmonized palette. Bar-quantized so palette changes land on downbeats
func (s *Source) rotate() {
	s.rotation++
	s.baseHue = math.Mod(s.baseHue+47, 360) // near-golden step avoids repeats
	s.publishPalette()
}

func (s *Source) publishPalette() {
	mode := rotationModes[s.rotation%len(rotationModes)]
	base := colorful.Hcl(s.baseHue, 0.45, 0.55).Clamped()
	s.bus.OnPaletteUpdate(music.Harmonize(base, mode, parameter.PaletteSize), mode)
	s.log.Debug("palette rotated", "mode", mode.String(), "hue", s.baseHue)
}
