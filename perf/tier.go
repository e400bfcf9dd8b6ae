package perf

// Tier is an ordered quality level. Transitions move one step at a time
type Tier uint8

const (
	TierMinimal Tier = iota
	TierBalanced
	TierHigh
	TierUltra
	tierCount
)

func (t Tier) String() string {
	switch t {
	case TierMinimal:
		return "minimal"
	case TierBalanced:
		return "balanced"
	case TierHigh:
		return "high"
	case TierUltra:
		return "ultra"
	default:
		return "unknown"
	}
}

// ParseTier maps a settings string to a Tier
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "minimal":
		return TierMinimal, true
	case "balanced":
		return TierBalanced, true
	case "high":
		return TierHigh, true
	case "ultra":
		return TierUltra, true
	}
	return TierMinimal, false
}

// Profile is the capability envelope generators and caches size against
type Profile struct {
	MaxActiveEffects int
	MaxParticles     int
	MaxBlurRadius    float64
	MaxPatternOps    int
	CacheCapacity    int
}

// profiles index by Tier; monotone non-decreasing per field
var profiles = [tierCount]Profile{
	TierMinimal:  {MaxActiveEffects: 4, MaxParticles: 40, MaxBlurRadius: 0, MaxPatternOps: 24, CacheCapacity: 16},
	TierBalanced: {MaxActiveEffects: 8, MaxParticles: 150, MaxBlurRadius: 8, MaxPatternOps: 64, CacheCapacity: 48},
	TierHigh:     {MaxActiveEffects: 16, MaxParticles: 400, MaxBlurRadius: 16, MaxPatternOps: 128, CacheCapacity: 96},
	TierUltra:    {MaxActiveEffects: 32, MaxParticles: 1000, MaxBlurRadius: 24, MaxPatternOps: 256, CacheCapacity: 160},
}

// ProfileFor returns the capability profile for a tier
func ProfileFor(t Tier) Profile {
	if t >= tierCount {
		t = TierUltra
	}
	return profiles[t]
}
