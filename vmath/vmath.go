package vmath

import "math"

const TwoPi = 2 * math.Pi

// --- Interpolation ---

// Clamp limits v to the inclusive range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the unit interval
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates linearly from a to b by t (t unclamped)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InvLerp returns the normalized position of v between a and b
// Returns 0 when a == b
func InvLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// SmoothStep is the Hermite ease between edges, clamped to [0,1]
func SmoothStep(edge0, edge1, v float64) float64 {
	t := Clamp01(InvLerp(edge0, edge1, v))
	return t * t * (3 - 2*t)
}

// WrapMod returns x modulo m with a non-negative result
// Used for cyclic phase math (beat phase, hue rotation)
func WrapMod(x, m float64) float64 {
	if m <= 0 {
		return 0
	}
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// --- Decay ---

// HalfLifeDecay returns the multiplier for exponential decay over elapsed
// time given a half-life. halfLife <= 0 decays instantly to zero
func HalfLifeDecay(elapsed, halfLife float64) float64 {
	if halfLife <= 0 {
		return 0
	}
	if elapsed <= 0 {
		return 1
	}
	return math.Exp2(-elapsed / halfLife)
}

// --- Randomness ---

// FastRand is a xorshift64 generator for visual jitter
// Not cryptographic; deterministic for a given seed
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a uniform value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Range returns a uniform value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}
