package parameter

// Pattern Cache
const (
	// PatternCacheMaxSize is the largest pattern size eligible for caching
	PatternCacheMaxSize = 160.0

	// PatternCacheMaxIntensity is the highest intensity eligible for caching
	// Hot, fast-varying patterns above this are cheaper to redraw than to key
	PatternCacheMaxIntensity = 0.85

	// PatternSizeQuantum buckets size for cache keys (display units)
	PatternSizeQuantum = 8.0

	// PatternIntensityQuantum buckets intensity for cache keys
	PatternIntensityQuantum = 0.05
)

// Pattern Selection
const (
	// BeatVariantThreshold is the intensity above which, with a known tempo,
	// the beat-synchronized variant is selected
	BeatVariantThreshold = 0.7

	// PatternDefaultSize is used when a request leaves size unset
	PatternDefaultSize = 24.0
)

// Pattern Geometry
const (
	// RippleRingCount is rings per ripple at full complexity
	RippleRingCount = 4

	// RippleRingSpacing is the radius ratio between successive rings
	RippleRingSpacing = 0.28

	// SpiralTurns is full revolutions in a spiral pattern
	SpiralTurns = 2.5

	// SpiralSegmentsPerTurn controls spiral smoothness at full complexity
	SpiralSegmentsPerTurn = 24

	// BurstRayCount is rays in a burst pattern at full complexity
	BurstRayCount = 12

	// OrganicLobeCount is lobes in the organic blob outline
	OrganicLobeCount = 7

	// OrganicWobble is the lobe radius modulation fraction
	OrganicWobble = 0.22
)
