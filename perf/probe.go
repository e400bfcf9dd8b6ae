package perf

import (
	"runtime"

	"github.com/minipuft/starrynight/parameter"
)

// CapabilityHinter lets the host report a coarse device ceiling at startup
// (GPU class, memory pressure, power state). Optional; absent hosts get
// the CPU-count probe
type CapabilityHinter interface {
	QualityCeiling() Tier
}

// ProbeCeiling estimates the device ceiling from logical CPU count
// Coarse on purpose; the governor handles the rest at runtime
func ProbeCeiling() Tier {
	return ceilingForCPUs(runtime.NumCPU())
}

func ceilingForCPUs(n int) Tier {
	switch {
	case n >= parameter.ProbeCPUHighWater:
		return TierUltra
	case n >= parameter.ProbeCPUMidWater:
		return TierHigh
	case n >= parameter.ProbeCPULowWater:
		return TierBalanced
	default:
		return TierMinimal
	}
}
