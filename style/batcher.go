package style

import (
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/minipuft/starrynight/parameter"
	"github.com/minipuft/starrynight/status"
)

// Priority orders writes within a flush and decides truncation eligibility
type Priority uint8

const (
	// PriorityCritical writes commit first and are never truncated
	// (core color tokens other visuals derive from)
	PriorityCritical Priority = iota

	// PriorityNormal writes commit after critical ones
	PriorityNormal

	// PriorityDeferred writes are truncated when frame budget runs low
	PriorityDeferred
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityNormal:
		return "normal"
	case PriorityDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// pendingWrite is the per-key frame state; last writer wins on value,
// priority and owner, while seq keeps first-queue order for stable flushes
type pendingWrite struct {
	value    Value
	priority Priority
	owner    string
	seq      int
}

// FlushStats reports one flush for telemetry and budget accounting
type FlushStats struct {
	Flushed   int
	Truncated int
}

// Batcher coalesces style variable writes and commits them once per frame
// Frame-confined: Queue, Flush and DropOwner run on the frame goroutine only
type Batcher struct {
	log     *slog.Logger
	pending map[Key]pendingWrite
	seq     int

	// reused across frames to avoid per-flush allocation
	scratch []flushEntry

	statQueued    *atomic.Int64
	statRejected  *atomic.Int64
	statFlushed   *atomic.Int64
	statTruncated *atomic.Int64
	statDropped   *atomic.Int64
}

type flushEntry struct {
	key Key
	pendingWrite
}

// NewBatcher creates a batcher reporting to the given registry
func NewBatcher(log *slog.Logger, reg *status.Registry) *Batcher {
	return &Batcher{
		log:           log.With("component", "batcher"),
		pending:       make(map[Key]pendingWrite, parameter.PendingMapCapacity),
		scratch:       make([]flushEntry, 0, parameter.PendingMapCapacity),
		statQueued:    reg.Ints.Get("batch.queued"),
		statRejected:  reg.Ints.Get("batch.rejected"),
		statFlushed:   reg.Ints.Get("batch.flushed"),
		statTruncated: reg.Ints.Get("batch.truncated"),
		statDropped:   reg.Ints.Get("batch.dropped"),
	}
}

// Queue stages one variable write. Later writes for the same key replace
// earlier ones within the frame. Malformed keys are rejected and counted,
// never fatal. O(1)
func (b *Batcher) Queue(owner string, key Key, value Value, priority Priority) {
	if !key.Valid() {
		b.statRejected.Add(1)
		b.log.Warn("rejected style variable", "key", string(key), "owner", owner)
		return
	}

	prev, exists := b.pending[key]
	seq := b.seq
	if exists {
		seq = prev.seq
	} else {
		b.seq++
	}

	b.pending[key] = pendingWrite{
		value:    value,
		priority: priority,
		owner:    owner,
		seq:      seq,
	}
	b.statQueued.Add(1)
}

// Pending returns the number of staged writes
func (b *Batcher) Pending() int {
	return len(b.pending)
}

// DropOwner removes all staged writes queued under the given owner
// Called when a generator is destroyed mid-frame
func (b *Batcher) DropOwner(owner string) int {
	dropped := 0
	for k, w := range b.pending {
		if w.owner == owner {
			delete(b.pending, k)
			dropped++
		}
	}
	if dropped > 0 {
		b.statDropped.Add(int64(dropped))
	}
	return dropped
}

// Flush commits the staged writes to the surface in one Apply pass:
// critical first, then normal, then deferred, stable within each class.
// Deferred writes are truncated when remaining budget is below the floor.
// The pending set is cleared regardless
func (b *Batcher) Flush(surface Surface, remaining time.Duration) FlushStats {
	if len(b.pending) == 0 {
		return FlushStats{}
	}

	entries := b.scratch[:0]
	for k, w := range b.pending {
		entries = append(entries, flushEntry{key: k, pendingWrite: w})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].seq < entries[j].seq
	})

	truncateDeferred := remaining < parameter.DeferredFlushFloor

	writes := make([]Write, 0, len(entries))
	stats := FlushStats{}
	for _, e := range entries {
		if e.priority == PriorityDeferred && truncateDeferred {
			stats.Truncated++
			continue
		}
		writes = append(writes, Write{Key: string(e.key), Value: e.value.Render()})
	}
	stats.Flushed = len(writes)

	if len(writes) > 0 {
		surface.Apply(writes)
	}

	clear(b.pending)
	b.scratch = entries[:0]

	b.statFlushed.Add(int64(stats.Flushed))
	if stats.Truncated > 0 {
		b.statTruncated.Add(int64(stats.Truncated))
		b.log.Debug("deferred writes truncated", "count", stats.Truncated, "remaining", remaining)
	}
	return stats
}
