package music

import (
	"sync/atomic"

	"github.com/minipuft/starrynight/parameter"
)

// eventRing is a lock-free MPSC ring buffer for music events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (frame loop)
//   - Published flags prevent reading partial writes
//
// Overflow: Oldest events overwritten when full
type eventRing struct {
	events    [parameter.MusicRingSize]Event
	published [parameter.MusicRingSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                        // Read index
	tail      atomic.Uint64                        // Write index
	dropped   atomic.Int64
}

func newEventRing() *eventRing {
	r := &eventRing{}
	r.head.Store(0)
	r.tail.Store(0)
	return r
}

// Push adds an event using lock-free CAS with published flags
// Safe for concurrent producers. O(1) amortized
func (r *eventRing) Push(ev Event) {
	for {
		currentTail := r.tail.Load()
		nextTail := currentTail + 1

		if r.tail.CompareAndSwap(currentTail, nextTail) {
			idx := currentTail & parameter.MusicRingMask

			r.events[idx] = ev
			r.published[idx].Store(true) // MUST be after write

			// Advance head if overwriting unread events
			currentHead := r.head.Load()
			if nextTail-currentHead > parameter.MusicRingSize {
				if r.head.CompareAndSwap(currentHead, nextTail-parameter.MusicRingSize) {
					r.dropped.Add(1)
				}
			}
			return
		}
	}
}

// Consume returns all pending events in FIFO order and advances head
// Single-consumer design (frame loop). Checks published flags for safety
func (r *eventRing) Consume(buf []Event) []Event {
	for {
		currentHead := r.head.Load()
		currentTail := r.tail.Load()

		if currentTail == currentHead {
			return buf[:0]
		}

		maxAvailable := currentTail - currentHead
		if maxAvailable > parameter.MusicRingSize {
			maxAvailable = parameter.MusicRingSize
			currentHead = currentTail - parameter.MusicRingSize
		}

		result := buf[:0]
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & parameter.MusicRingMask

			if !r.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, r.events[idx])
			r.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if r.head.CompareAndSwap(currentHead, newHead) {
			return result
		}
	}
}

// Dropped returns the count of events lost to overflow
func (r *eventRing) Dropped() int64 {
	return r.dropped.Load()
}
