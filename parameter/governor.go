package parameter

import "time"

// Frame Budget & Governance
const (
	// DefaultFrameTarget is the per-frame time budget (~60 FPS)
	DefaultFrameTarget = 16667 * time.Microsecond

	// FrameSampleSpan is the EMA horizon in frames for smoothed cost
	FrameSampleSpan = 45

	// OverrunMargin marks a frame as over budget when cost exceeds target × margin
	OverrunMargin = 1.10

	// CalmMargin marks a frame as comfortably under budget below target × margin
	CalmMargin = 0.75

	// DowngradeStreak is consecutive overrun frames before stepping a tier down
	DowngradeStreak = 12

	// UpgradeStreak is consecutive calm frames before stepping a tier up
	// Deliberately larger than DowngradeStreak so recovery is slower than degradation
	UpgradeStreak = 36

	// TierChangeCooldown is the minimum spacing between tier transitions
	TierChangeCooldown = 500 * time.Millisecond
)

// Device Probe
const (
	// ProbeCPUHighWater is the logical CPU count granting the top tier ceiling
	ProbeCPUHighWater = 8

	// ProbeCPUMidWater grants the High ceiling
	ProbeCPUMidWater = 4

	// ProbeCPULowWater grants the Balanced ceiling; below it the ceiling is Minimal
	ProbeCPULowWater = 2
)
