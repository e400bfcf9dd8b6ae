package config

import (
	"os"
	"strconv"
)

// applyEnv overlays STARRYNIGHT_* environment variables on the loaded
// settings. Unparseable values are ignored so a bad shell export cannot
// break startup
func (s *Settings) applyEnv() {
	if v := os.Getenv("STARRYNIGHT_QUALITY"); v != "" {
		s.Quality = v
	}
	if v := os.Getenv("STARRYNIGHT_TARGET_FPS"); v != "" {
		if fps, err := strconv.ParseFloat(v, 64); err == nil {
			s.TargetFPS = fps
		}
	}
	if v := os.Getenv("STARRYNIGHT_REDUCED_MOTION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.ReducedMotion = b
		}
	}
	if v := os.Getenv("STARRYNIGHT_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}

	if v := os.Getenv("STARRYNIGHT_BEAT_HALF_LIFE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			s.Music.BeatHalfLifeMs = ms
		}
	}
	if v := os.Getenv("STARRYNIGHT_BEAT_GAIN"); v != "" {
		if g, err := strconv.ParseFloat(v, 64); err == nil {
			s.Music.BeatGain = g
		}
	}

	if v := os.Getenv("STARRYNIGHT_AUDIO_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Audio.Enabled = b
		}
	}
	if v := os.Getenv("STARRYNIGHT_BPM"); v != "" {
		if bpm, err := strconv.ParseFloat(v, 64); err == nil {
			s.Audio.BPM = bpm
		}
	}
	if v := os.Getenv("STARRYNIGHT_VOLUME"); v != "" {
		if vol, err := strconv.ParseFloat(v, 64); err == nil {
			s.Audio.Volume = vol
		}
	}
}
