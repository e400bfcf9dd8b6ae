package parameter

import "time"

// Generator Lifecycle
const (
	// FailureThreshold is consecutive failures before a generator is suspended
	FailureThreshold = 3

	// SuspendRetryAfter is the cooldown before a suspended generator is
	// given a probation frame
	SuspendRetryAfter = 5 * time.Second

	// DegradeSkipStreak is consecutive budget skips before Active drops to Degraded
	DegradeSkipStreak = 30

	// SuspendSkipStreak is consecutive budget skips before Degraded drops to Suspended
	SuspendSkipStreak = 120

	// MaxGenerators bounds registration; beyond it Register refuses
	MaxGenerators = 64
)
