package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/minipuft/starrynight/parameter"
)

// Settings is the host-facing configuration surface. Everything has a
// usable default; a missing settings file is not an error
type Settings struct {
	// Quality pins the tier ("minimal".."ultra"); empty means the governor
	// decides from measurements
	Quality string `yaml:"quality"`

	// TargetFPS sets the frame budget (budget = 1s / fps); 0 keeps the
	// built-in ~60 fps target
	TargetFPS float64 `yaml:"target_fps"`

	// ReducedMotion gates motion-sensitive generators
	ReducedMotion bool `yaml:"reduced_motion"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	Music MusicSettings `yaml:"music"`
	Audio AudioSettings `yaml:"audio"`
}

// MusicSettings tune the beat envelope. Durations are milliseconds so the
// file stays plain numbers
type MusicSettings struct {
	BeatHalfLifeMs int     `yaml:"beat_half_life_ms"`
	BeatGain       float64 `yaml:"beat_gain"`
	StaleAfterMs   int     `yaml:"stale_after_ms"`
}

// BeatHalfLife returns the envelope half-life as a duration
func (m MusicSettings) BeatHalfLife() time.Duration {
	return time.Duration(m.BeatHalfLifeMs) * time.Millisecond
}

// StaleAfter returns the beat timestamp gate as a duration
func (m MusicSettings) StaleAfter() time.Duration {
	return time.Duration(m.StaleAfterMs) * time.Millisecond
}

// AudioSettings control the built-in metronome source
type AudioSettings struct {
	Enabled bool    `yaml:"enabled"`
	BPM     float64 `yaml:"bpm"`
	Volume  float64 `yaml:"volume"` // 0..1
}

// Default returns the settings used when no file and no env are present
func Default() Settings {
	return Settings{
		Quality:       "",
		TargetFPS:     0,
		ReducedMotion: false,
		LogLevel:      "info",
		Music: MusicSettings{
			BeatHalfLifeMs: int(parameter.BeatHalfLife / time.Millisecond),
			BeatGain:       parameter.BeatAttackGain,
			StaleAfterMs:   int(parameter.BeatTimestampGate / time.Millisecond),
		},
		Audio: AudioSettings{
			Enabled: false,
			BPM:     120,
			Volume:  0.4,
		},
	}
}

// Load reads the YAML settings file, then applies STARRYNIGHT_* environment
// overrides and validation clamps. A missing file yields defaults
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults apply
		default:
			return s, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	s.applyEnv()
	if err := s.validate(); err != nil {
		return s, err
	}
	return s, nil
}

// FrameTarget converts TargetFPS into a per-frame budget
func (s Settings) FrameTarget() time.Duration {
	if s.TargetFPS <= 0 {
		return parameter.DefaultFrameTarget
	}
	return time.Duration(float64(time.Second) / s.TargetFPS)
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info
func (s Settings) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *Settings) validate() error {
	switch s.Quality {
	case "", "minimal", "balanced", "high", "ultra":
	default:
		return fmt.Errorf("config: unknown quality %q", s.Quality)
	}
	if s.TargetFPS != 0 {
		if s.TargetFPS < parameter.MinTargetFPS {
			s.TargetFPS = parameter.MinTargetFPS
		}
		if s.TargetFPS > parameter.MaxTargetFPS {
			s.TargetFPS = parameter.MaxTargetFPS
		}
	}
	if s.Music.BeatGain <= 0 {
		s.Music.BeatGain = parameter.BeatAttackGain
	}
	if s.Music.BeatHalfLifeMs <= 0 {
		s.Music.BeatHalfLifeMs = int(parameter.BeatHalfLife / time.Millisecond)
	}
	if s.Music.StaleAfterMs <= 0 {
		s.Music.StaleAfterMs = int(parameter.BeatTimestampGate / time.Millisecond)
	}
	if s.Audio.Volume < 0 {
		s.Audio.Volume = 0
	}
	if s.Audio.Volume > 1 {
		s.Audio.Volume = 1
	}
	if s.Audio.BPM < parameter.MinMetronomeBPM || s.Audio.BPM > parameter.MaxMetronomeBPM {
		s.Audio.BPM = 120
	}
	return nil
}
