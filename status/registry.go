package status

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Registry is the central telemetry facade for the effects engine
// Components cache metric pointers at construction; frame loops write
// directly to atomics with no lookup or lock
//
// Key convention is dotted lowercase: "governor.tier", "batch.flushed",
// "cache.hits", "bus.events", "effects.active"
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot renders every metric as "key=value" lines in sorted key order
// Intended for debug dumps and shutdown summaries, not hot paths
func (r *Registry) Snapshot() string {
	type line struct {
		key, val string
	}
	lines := make([]line, 0, r.TotalCount())

	r.Bools.Range(func(k string, p *atomic.Bool) {
		lines = append(lines, line{k, fmt.Sprintf("%t", p.Load())})
	})
	r.Ints.Range(func(k string, p *atomic.Int64) {
		lines = append(lines, line{k, fmt.Sprintf("%d", p.Load())})
	})
	r.Floats.Range(func(k string, p *AtomicFloat) {
		lines = append(lines, line{k, fmt.Sprintf("%.3f", p.Get())})
	})
	r.Strings.Range(func(k string, p *AtomicString) {
		lines = append(lines, line{k, p.Load()})
	})

	sort.Slice(lines, func(i, j int) bool { return lines[i].key < lines[j].key })

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.key)
		b.WriteByte('=')
		b.WriteString(l.val)
		b.WriteByte('\n')
	}
	return b.String()
}
