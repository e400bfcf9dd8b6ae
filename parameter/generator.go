package parameter

import "time"

// Beat Glass
const (
	// GlassSpringFPS is the fixed timestep the glass spring integrates at
	GlassSpringFPS = 60

	// GlassSpringFrequency is the spring's angular frequency; higher snaps
	// to the beat faster
	GlassSpringFrequency = 6.0

	// GlassSpringDamping below 1 lets the glass overshoot slightly on attack
	GlassSpringDamping = 0.8

	// GlassMinOpacity and GlassMaxOpacity bound the glass layer opacity
	// across the smoothed beat level
	GlassMinOpacity = 0.25
	GlassMaxOpacity = 0.65

	// GlassDegradedScale shrinks the blur target while the generator is
	// running degraded
	GlassDegradedScale = 0.5
)

// Color Flow
const (
	// FlowCyclePeriod is the hue sweep period when no tempo is known
	FlowCyclePeriod = 12 * time.Second

	// FlowBeatsPerCycle locks the sweep to the tempo when one is known
	FlowBeatsPerCycle = 16.0

	// FlowHueSweepDeg is the hue excursion either side of the palette base
	FlowHueSweepDeg = 18.0
)

// Nebula
const (
	// NebulaClusters is how many cloud blobs the field carries
	NebulaClusters = 5

	// NebulaDriftRate is cluster drift in unit space per second
	NebulaDriftRate = 0.012

	// NebulaBaseIntensity and NebulaBeatResponse shape cloud brightness:
	// base + response * beat
	NebulaBaseIntensity = 0.3
	NebulaBeatResponse  = 0.25

	// NebulaSizeShare scales cluster size against the short viewport side
	NebulaSizeShare = 0.35
)

// Ripple
const (
	// RippleTriggerIntensity is the minimum beat intensity that spawns a ring
	RippleTriggerIntensity = 0.25

	// RippleLifetime is how long one ring expands before expiring
	RippleLifetime = 900 * time.Millisecond

	// RippleMaxLive caps concurrently expanding rings
	RippleMaxLive = 6

	// RippleSizeShare is the fully-expanded ring diameter against the short
	// viewport side
	RippleSizeShare = 0.4
)

// Constellation
const (
	// ConstellationAnchors is how many layouts the field places
	ConstellationAnchors = 3

	// ConstellationTwinklePeriod is one full brightness oscillation
	ConstellationTwinklePeriod = 7 * time.Second

	// ConstellationSizeShare scales layout size against the short viewport side
	ConstellationSizeShare = 0.3
)

// Particle Drift
const (
	// DriftParticleShare is the fraction of the profile particle budget the
	// drift field uses; degraded halves it again
	DriftParticleShare = 0.5

	// DriftSpeedMin and DriftSpeedMax bound particle speed in unit space
	// per second
	DriftSpeedMin = 0.01
	DriftSpeedMax = 0.05

	// DriftBeatBoost scales particle speed up at full beat intensity
	DriftBeatBoost = 1.5

	// DriftRadiusMax is the largest particle radius in display units
	DriftRadiusMax = 2.2
)
