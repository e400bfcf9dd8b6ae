package style

import (
	"strconv"
	"strings"

	"github.com/minipuft/starrynight/parameter"
)

// Key is a namespaced style variable name ("--sn-beat-intensity")
type Key string

// Valid reports whether the key carries the required namespace prefix
// and a non-empty name after it
func (k Key) Valid() bool {
	s := string(k)
	return strings.HasPrefix(s, parameter.StyleNamespace) && len(s) > len(parameter.StyleNamespace)
}

// Unit selects how a Value renders at flush time
type Unit uint8

const (
	UnitRaw Unit = iota
	UnitPx
	UnitMs
	UnitPercent
	UnitString
)

// Value is a style variable value: a number with a unit, or a string
// Formatting is deferred to flush so queue overwrites stay allocation-free
type Value struct {
	num  float64
	str  string
	unit Unit
}

// Float wraps a unitless number
func Float(v float64) Value { return Value{num: v, unit: UnitRaw} }

// Px wraps a pixel length
func Px(v float64) Value { return Value{num: v, unit: UnitPx} }

// Ms wraps a duration in milliseconds
func Ms(v float64) Value { return Value{num: v, unit: UnitMs} }

// Percent wraps a percentage (Percent(45) renders "45%")
func Percent(v float64) Value { return Value{num: v, unit: UnitPercent} }

// String wraps a preformatted value (colors, gradients)
func String(s string) Value { return Value{str: s, unit: UnitString} }

// Render formats the value for the host surface
func (v Value) Render() string {
	switch v.unit {
	case UnitString:
		return v.str
	case UnitPx:
		return formatNum(v.num) + "px"
	case UnitMs:
		return formatNum(v.num) + "ms"
	case UnitPercent:
		return formatNum(v.num) + "%"
	default:
		return formatNum(v.num)
	}
}

// formatNum renders the shortest exact decimal form
func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
