package parameter

import "time"

// Beat Envelope
const (
	// BeatHalfLife is the intensity decay half-life between beats
	BeatHalfLife = 180 * time.Millisecond

	// BeatAttackGain scales incoming beat intensity on attack
	// Unity keeps analyzer intensities unscaled; the envelope is clamped
	// to 1.0 after gain either way
	BeatAttackGain = 1.0

	// BeatTimestampGate drops attack for events older than this behind the
	// newest applied beat; stale events never rewind the envelope
	BeatTimestampGate = 2 * time.Second

	// BeatRestThreshold is the intensity below which the envelope snaps to
	// zero instead of decaying asymptotically
	BeatRestThreshold = 0.001
)

// Event Ingestion Ring
const (
	// MusicRingSize is the fixed capacity of the music event ring buffer
	MusicRingSize = 256

	// MusicRingMask is the bitmask for fast modulo (MusicRingSize - 1)
	MusicRingMask = 255
)

// Tempo & Palette
const (
	// DefaultTempoBPM is assumed until a tempo event arrives
	DefaultTempoBPM = 0.0

	// TempoMinBPM and TempoMaxBPM bound accepted tempo updates
	TempoMinBPM = 20.0
	TempoMaxBPM = 300.0

	// PaletteSize is the number of colors a harmonized palette carries
	PaletteSize = 5

	// PaletteLuminanceFloor lifts derived colors above unreadable darkness
	PaletteLuminanceFloor = 0.18

	// PaletteBaseBlend pulls derived colors toward the base for cohesion
	PaletteBaseBlend = 0.15
)
