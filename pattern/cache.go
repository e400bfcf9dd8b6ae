package pattern

import (
	"container/list"
	"sync/atomic"

	"github.com/minipuft/starrynight/parameter"
)

// cacheKey quantizes a request so nearby sizes and intensities share one
// recording. Position is deliberately absent: recordings are origin-relative
type cacheKey struct {
	name    string
	variant Variant
	sizeQ   int32
	intQ    int32
}

func makeKey(name string, v Variant, size, intensity float64) cacheKey {
	return cacheKey{
		name:    name,
		variant: v,
		sizeQ:   bucket(size, parameter.PatternSizeQuantum),
		intQ:    bucket(intensity, parameter.PatternIntensityQuantum),
	}
}

// bucket floors v into quantum-sized buckets. The epsilon keeps exact
// multiples (0.50 / 0.05) from landing one bucket low in float division
func bucket(v, quantum float64) int32 {
	return int32((v / quantum) + 1e-9)
}

type cacheEntry struct {
	key   cacheKey
	rec   *Recording
	owner string // generator that produced the recording
}

// recordingCache is an LRU keyed by quantized request shape
// Frame-confined; no locking
type recordingCache struct {
	capacity int
	ll       *list.List // front = most recently used
	items    map[cacheKey]*list.Element

	statHits      *atomic.Int64
	statMisses    *atomic.Int64
	statEvictions *atomic.Int64
}

func newRecordingCache(capacity int, hits, misses, evictions *atomic.Int64) *recordingCache {
	return &recordingCache{
		capacity:      capacity,
		ll:            list.New(),
		items:         make(map[cacheKey]*list.Element),
		statHits:      hits,
		statMisses:    misses,
		statEvictions: evictions,
	}
}

// Get returns the cached recording and marks it recently used
func (c *recordingCache) Get(key cacheKey) (*Recording, bool) {
	el, ok := c.items[key]
	if !ok {
		c.statMisses.Add(1)
		return nil, false
	}
	c.ll.MoveToFront(el)
	c.statHits.Add(1)
	return el.Value.(*cacheEntry).rec, true
}

// Put inserts a recording, evicting least recently used entries over capacity
func (c *recordingCache) Put(key cacheKey, rec *Recording, owner string) {
	if c.capacity <= 0 {
		return
	}
	if el, ok := c.items[key]; ok {
		ce := el.Value.(*cacheEntry)
		ce.rec = rec
		ce.owner = owner
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&cacheEntry{key: key, rec: rec, owner: owner})
	c.items[key] = el
	c.evictOverflow()
}

// Resize adjusts capacity, evicting overflow immediately
func (c *recordingCache) Resize(capacity int) {
	c.capacity = capacity
	c.evictOverflow()
}

func (c *recordingCache) evictOverflow() {
	for c.ll.Len() > c.capacity {
		back := c.ll.Back()
		if back == nil {
			return
		}
		c.ll.Remove(back)
		delete(c.items, back.Value.(*cacheEntry).key)
		c.statEvictions.Add(1)
	}
}

// EvictOwner drops every recording produced by the named owner. Shared hits
// against an evicted key simply regenerate on the next miss
func (c *recordingCache) EvictOwner(owner string) int {
	if owner == "" {
		return 0
	}
	evicted := 0
	for el := c.ll.Front(); el != nil; {
		next := el.Next()
		ce := el.Value.(*cacheEntry)
		if ce.owner == owner {
			c.ll.Remove(el)
			delete(c.items, ce.key)
			evicted++
		}
		el = next
	}
	if evicted > 0 {
		c.statEvictions.Add(int64(evicted))
	}
	return evicted
}

// Clear drops every entry (tier downgrade, shutdown)
func (c *recordingCache) Clear() {
	evicted := int64(c.ll.Len())
	c.ll.Init()
	clear(c.items)
	if evicted > 0 {
		c.statEvictions.Add(evicted)
	}
}

// Len returns the number of cached recordings
func (c *recordingCache) Len() int {
	return c.ll.Len()
}
