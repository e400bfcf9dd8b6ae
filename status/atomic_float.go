package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a lock-free float64 gauge stored as raw bits. Frame
// telemetry (cost EMA milliseconds, beat intensity) writes one every
// frame, so access must never block
// Zero value is ready to use and reads as 0.0
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set replaces the value
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get returns the current value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add folds delta into the value under a CAS loop and returns the result
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
