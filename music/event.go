package music

import "time"

// EventType discriminates music events flowing through the ingestion ring
type EventType uint8

const (
	// EventBeat carries a detected beat with normalized intensity
	EventBeat EventType = iota

	// EventTempo carries a tempo estimate in BPM
	EventTempo
)

// Event is one analyzer notification. Beat events are timestamped by the
// producer; tempo events apply in arrival order
type Event struct {
	Type      EventType
	Timestamp time.Time
	Intensity float64
	BPM       float64
}

// HarmonicMode describes the relationship of the active palette
type HarmonicMode uint8

const (
	HarmonyNeutral HarmonicMode = iota
	HarmonyMonochrome
	HarmonyComplementary
	HarmonyAnalogous
	HarmonyTriadic
	HarmonySplitComplementary
	HarmonyTetradic
)

func (m HarmonicMode) String() string {
	switch m {
	case HarmonyNeutral:
		return "neutral"
	case HarmonyMonochrome:
		return "monochrome"
	case HarmonyComplementary:
		return "complementary"
	case HarmonyAnalogous:
		return "analogous"
	case HarmonyTriadic:
		return "triadic"
	case HarmonySplitComplementary:
		return "split-complementary"
	case HarmonyTetradic:
		return "tetradic"
	default:
		return "unknown"
	}
}

// ParseHarmonicMode maps a settings string to a mode
func ParseHarmonicMode(s string) (HarmonicMode, bool) {
	switch s {
	case "neutral":
		return HarmonyNeutral, true
	case "monochrome":
		return HarmonyMonochrome, true
	case "complementary":
		return HarmonyComplementary, true
	case "analogous":
		return HarmonyAnalogous, true
	case "triadic":
		return HarmonyTriadic, true
	case "split-complementary":
		return HarmonySplitComplementary, true
	case "tetradic":
		return HarmonyTetradic, true
	}
	return HarmonyNeutral, false
}
