package main

// EvalCache memoizes leaf evaluations keyed by the position's Zobrist hash.
// Entries are exact values only, so a hit can never change the result of a
// search compared to re-evaluating the position.
type EvalCache struct {
	buckets  int
	mask     uint64
	entries  []evalCacheEntry
	hits     uint64
	misses   uint64
	enabled  bool
	stamp    uint32
	capacity int
}

type evalCacheEntry struct {
	hash  uint64
	value float64
	stamp uint32
	used  bool
}

// NewEvalCache builds a set-associative cache with the given number of slots
// (rounded down to a power of two) and ways per slot. A size or bucket count
// of zero disables the cache.
func NewEvalCache(size, buckets int) *EvalCache {
	if size <= 0 || buckets <= 0 {
		return &EvalCache{enabled: false}
	}
	slots := 1
	for slots*2 <= size {
		slots *= 2
	}
	return &EvalCache{
		buckets:  buckets,
		mask:     uint64(slots - 1),
		entries:  make([]evalCacheEntry, slots*buckets),
		enabled:  true,
		capacity: slots * buckets,
	}
}

func (c *EvalCache) Enabled() bool {
	return c != nil && c.enabled
}

func (c *EvalCache) Lookup(hash uint64) (float64, bool) {
	if !c.Enabled() {
		return 0, false
	}
	base := int(hash&c.mask) * c.buckets
	for i := 0; i < c.buckets; i++ {
		e := &c.entries[base+i]
		if e.used && e.hash == hash {
			c.hits++
			e.stamp = c.stamp
			return e.value, true
		}
	}
	c.misses++
	return 0, false
}

func (c *EvalCache) Store(hash uint64, value float64) {
	if !c.Enabled() {
		return
	}
	c.stamp++
	base := int(hash&c.mask) * c.buckets
	victim := base
	oldest := c.entries[base].stamp
	for i := 0; i < c.buckets; i++ {
		e := &c.entries[base+i]
		if !e.used || e.hash == hash {
			victim = base + i
			break
		}
		if e.stamp < oldest {
			oldest = e.stamp
			victim = base + i
		}
	}
	c.entries[victim] = evalCacheEntry{hash: hash, value: value, stamp: c.stamp, used: true}
}

func (c *EvalCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits, c.misses
}

func (c *EvalCache) Clear() {
	if !c.Enabled() {
		return
	}
	for i := range c.entries {
		c.entries[i] = evalCacheEntry{}
	}
	c.hits = 0
	c.misses = 0
	c.stamp = 0
}
