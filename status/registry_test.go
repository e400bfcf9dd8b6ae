package status

import (
	"strings"
	"sync"
	"testing"
)

func TestMetricMapPointerStability(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	p1 := m.Get("governor.ema")
	p2 := m.Get("governor.ema")
	if p1 != p2 {
		t.Error("Expected the same pointer for repeated Get of one key")
	}

	p1.Set(3.5)
	if got := p2.Get(); got != 3.5 {
		t.Errorf("Expected write through first pointer visible via second, got %v", got)
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	var wg sync.WaitGroup
	ptrs := make([]*AtomicFloat, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("shared.key")
		}(i)
	}
	wg.Wait()

	for i := 1; i < 16; i++ {
		if ptrs[i] != ptrs[0] {
			t.Fatal("Expected all concurrent Gets to resolve to one pointer")
		}
	}
	if m.Count() != 1 {
		t.Errorf("Expected a single registered metric, got %d", m.Count())
	}
}

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := f.Get(); got != 800 {
		t.Errorf("Expected 800 after concurrent adds, got %v", got)
	}
}

func TestAtomicStringTruncation(t *testing.T) {
	var s AtomicString

	if got := s.Load(); got != "" {
		t.Errorf("Expected empty string from zero value, got %q", got)
	}

	long := strings.Repeat("x", MaxStringLen+10)
	s.Store(long)
	if got := s.Load(); len(got) != MaxStringLen {
		t.Errorf("Expected truncation to %d, got %d", MaxStringLen, len(got))
	}
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("batch.flushed").Store(7)
	r.Strings.Get("governor.tier").Store("balanced")
	r.Floats.Get("governor.ema").Set(12.25)

	snap := r.Snapshot()
	for _, want := range []string{"batch.flushed=7", "governor.tier=balanced", "governor.ema=12.250"} {
		if !strings.Contains(snap, want) {
			t.Errorf("Expected snapshot to contain %q, got:\n%s", want, snap)
		}
	}

	if r.TotalCount() != 3 {
		t.Errorf("Expected 3 metrics, got %d", r.TotalCount())
	}
}
