package framecache

import (
	"cmp"
	"slices"
	"sync"
)

// Band names the part of the grid a frame shows.
type Band uint8

const (
	BandHeader Band = iota
	BandContent
	BandFrame // header stacked above content
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandHeader:
		return "header"
	case BandContent:
		return "content"
	case BandFrame:
		return "frame"
	}
	return "unknown"
}

// Key identifies one rendered frame. Top is ignored by the header band,
// so callers should zero it for header keys.
type Key struct {
	Band      Band
	Left, Top float64
}

// Stats reports cache occupancy and traffic.
type Stats struct {
	Len    int
	Limit  int
	Bytes  int
	Hits   uint64
	Misses uint64
}

type entry struct {
	data  []byte
	atime int64
}

// Cache stores encoded frames up to a soft entry limit.
//
// Cache is safe for concurrent use. Stored byte slices are shared with
// callers and must not be modified.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	limit   int
	tick    int64
	bytes   int
	hits    uint64
	misses  uint64
}

// New returns a cache holding at most limit frames. A limit of 0 means
// unlimited.
func New(limit int) *Cache {
	return &Cache{
		entries: make(map[Key]*entry),
		limit:   max(limit, 0),
	}
}

// Get returns the frame stored under k.
func (c *Cache) Get(k Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.tick++
	e.atime = c.tick
	return e.data, true
}

// Put stores data under k, replacing any previous frame.
func (c *Cache) Put(k Key, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(k, data)
}

// GetOrRender returns the frame stored under k, rendering and storing it
// on a miss. render runs without the lock held, so two concurrent misses
// on the same key may both render; the later result wins. Errors are not
// cached.
func (c *Cache) GetOrRender(k Key, render func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(k); ok {
		return data, nil
	}
	data, err := render()
	if err != nil {
		return nil, err
	}
	c.Put(k, data)
	return data, nil
}

// Clear drops every frame. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
	c.bytes = 0
	c.tick = 0
}

// Len returns the number of stored frames.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:    len(c.entries),
		Limit:  c.limit,
		Bytes:  c.bytes,
		Hits:   c.hits,
		Misses: c.misses,
	}
}

func (c *Cache) putLocked(k Key, data []byte) {
	c.tick++
	if old, ok := c.entries[k]; ok {
		c.bytes -= len(old.data)
	}
	c.entries[k] = &entry{data: data, atime: c.tick}
	c.bytes += len(data)

	if c.limit > 0 && len(c.entries) > c.limit {
		c.evictLocked()
	}
}

// evictLocked shrinks the cache to three quarters of its limit, oldest
// access first.
func (c *Cache) evictLocked() {
	target := max(c.limit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}

	type aged struct {
		key   Key
		atime int64
	}
	order := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		order = append(order, aged{k, e.atime})
	}
	slices.SortFunc(order, func(a, b aged) int {
		return cmp.Compare(a.atime, b.atime)
	})
	for _, a := range order[:n] {
		c.bytes -= len(c.entries[a.key].data)
		delete(c.entries, a.key)
	}
}
