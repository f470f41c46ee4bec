package ggrid

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Default eviction policy constants.
const (
	// DefaultEvictTrigger is the entry count above which an insertion runs
	// the eviction pass.
	DefaultEvictTrigger = 10

	// DefaultEvictRadius is the segment distance from the current segment
	// within which entries are never evicted.
	DefaultEvictRadius = 2

	// DefaultEvictKeep is the number of far segments retained by an
	// eviction pass.
	DefaultEvictKeep = 5

	// preloadConcurrency bounds concurrent source loads during Preload.
	preloadConcurrency = 4
)

// EvictionPolicy controls when and what the SegmentCache evicts.
//
// After an insertion leaves more than Trigger entries, every entry farther
// than Radius segments from the segment that triggered the load is a
// candidate. When there are more than Keep candidates, all but the Keep
// nearest are removed; otherwise nothing is removed and the cache may
// temporarily exceed Trigger.
type EvictionPolicy struct {
	Trigger int
	Radius  uint32
	Keep    int
}

// DefaultEvictionPolicy returns the policy {Trigger: 10, Radius: 2, Keep: 5}.
func DefaultEvictionPolicy() EvictionPolicy {
	return EvictionPolicy{
		Trigger: DefaultEvictTrigger,
		Radius:  DefaultEvictRadius,
		Keep:    DefaultEvictKeep,
	}
}

// CacheStats is a snapshot of SegmentCache counters.
type CacheStats struct {
	// Len is the current number of cached segments.
	Len int
	// Hits counts GetOrLoad calls served from the cache.
	Hits uint64
	// Misses counts GetOrLoad calls that had to load.
	Misses uint64
	// Loads counts segments fetched from the source, including preloads.
	Loads uint64
	// Evictions counts segments removed by the eviction policy.
	Evictions uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 before any lookup.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// SegmentCache maps segment indices to loaded segments and keeps the set
// bounded with an EvictionPolicy keyed on distance from the most recently
// requested segment.
//
// A single mutex guards lookup, load, insertion and eviction as one unit,
// so the cache may be shared by concurrent frames. The source is called
// with the lock held; keep per-segment load cost bounded.
//
// SegmentCache must not be copied after creation.
type SegmentCache struct {
	mu       sync.Mutex
	segments map[uint32]*Segment

	cfg         Config
	segmentSize uint32
	source      SegmentSource
	policy      EvictionPolicy

	// logger overrides the package logger when non-nil.
	logger *slog.Logger

	hits      atomic.Uint64
	misses    atomic.Uint64
	loads     atomic.Uint64
	evictions atomic.Uint64
}

// NewSegmentCache creates an empty cache of segmentSize-row segments for
// the grid described by cfg. Missing segments are fetched from source.
func NewSegmentCache(cfg Config, segmentSize uint32, source SegmentSource, policy EvictionPolicy) (*SegmentCache, error) {
	if segmentSize == 0 {
		return nil, ErrInvalidSegmentSize
	}
	if source == nil {
		return nil, ErrNilSource
	}
	return &SegmentCache{
		segments:    make(map[uint32]*Segment),
		cfg:         cfg,
		segmentSize: segmentSize,
		source:      source,
		policy:      policy,
	}, nil
}

// SegmentSize returns the number of rows per segment.
func (c *SegmentCache) SegmentSize() uint32 {
	return c.segmentSize
}

// Policy returns the eviction policy.
func (c *SegmentCache) Policy() EvictionPolicy {
	return c.policy
}

// SegmentCount returns the number of segments the grid spans.
func (c *SegmentCache) SegmentCount() uint32 {
	if c.cfg.Rows == 0 {
		return 0
	}
	return uint32((uint64(c.cfg.Rows) + uint64(c.segmentSize) - 1) / uint64(c.segmentSize))
}

// SegmentIndex returns the index of the segment holding row.
func (c *SegmentCache) SegmentIndex(row uint32) uint32 {
	return row / c.segmentSize
}

// GetOrLoad returns segment index, loading it from the source when absent.
// Repeated calls without an intervening eviction return the same segment.
//
// A load that leaves the cache above the policy trigger runs one eviction
// pass relative to index. A source failure is returned wrapped and leaves
// the cache unchanged.
func (c *SegmentCache) GetOrLoad(ctx context.Context, index uint32) (*Segment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seg, ok := c.segments[index]; ok {
		c.hits.Add(1)
		return seg, nil
	}
	c.misses.Add(1)

	seg, err := c.load(ctx, index)
	if err != nil {
		return nil, err
	}
	c.insertLocked(seg, index)
	return seg, nil
}

// Get returns segment index if it is cached. It never loads and does not
// touch the hit/miss counters.
func (c *SegmentCache) Get(index uint32) (*Segment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seg, ok := c.segments[index]
	return seg, ok
}

// Len returns the number of cached segments.
func (c *SegmentCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.segments)
}

// Indices returns the cached segment indices in ascending order.
func (c *SegmentCache) Indices() []uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	indices := make([]uint32, 0, len(c.segments))
	for i := range c.segments {
		indices = append(indices, i)
	}
	slices.Sort(indices)
	return indices
}

// Clear removes every cached segment. Counters are left untouched.
func (c *SegmentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.segments)
}

// Stats returns a snapshot of the cache counters.
func (c *SegmentCache) Stats() CacheStats {
	return CacheStats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Loads:     c.loads.Load(),
		Evictions: c.evictions.Load(),
	}
}

// ResetStats zeroes the hit, miss, load and eviction counters.
func (c *SegmentCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.loads.Store(0)
	c.evictions.Store(0)
}

// Preload warms the segments [center-amount/2, center+amount/2] that lie
// inside the grid. The window is capped at Radius+Keep/2 segments on each
// side of center, the most the eviction policy retains around it, so a
// large amount never materializes more than that.
//
// Missing segments are fetched from the source concurrently, outside the
// cache lock, and each is inserted with eviction relative to center as
// soon as its load finishes. The first source error cancels the remaining
// loads and is returned; segments already fetched stay cached.
func (c *SegmentCache) Preload(ctx context.Context, center, amount uint32) error {
	count := c.SegmentCount()
	if count == 0 {
		return nil
	}
	half := min(uint64(amount/2), c.preloadReach())
	first := uint64(center) - min(uint64(center), half)
	last := min(uint64(center)+half, uint64(count)-1)
	if first > last {
		return nil
	}

	var missing []uint32
	c.mu.Lock()
	for i := first; i <= last; i++ {
		if _, ok := c.segments[uint32(i)]; !ok {
			missing = append(missing, uint32(i))
		}
	}
	c.mu.Unlock()
	if len(missing) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)
	for _, index := range missing {
		g.Go(func() error {
			seg, err := c.load(gctx, index)
			if err != nil {
				return err
			}
			c.mu.Lock()
			defer c.mu.Unlock()
			if _, ok := c.segments[index]; !ok {
				c.insertLocked(seg, center)
			}
			return nil
		})
	}
	return g.Wait()
}

// preloadReach returns how many segments on each side of the current one
// the eviction policy keeps: the protected radius plus half the far set.
func (c *SegmentCache) preloadReach() uint64 {
	return uint64(c.policy.Radius) + uint64(max(c.policy.Keep, 0))/2
}

// load fetches segment index from the source. It does not touch the map
// and may run with or without c.mu held.
func (c *SegmentCache) load(ctx context.Context, index uint32) (*Segment, error) {
	start := uint64(index) * uint64(c.segmentSize)
	if start >= uint64(c.cfg.Rows) {
		return nil, fmt.Errorf("%w: segment %d starts at row %d, grid has %d rows",
			ErrSegmentOutOfRange, index, start, c.cfg.Rows)
	}
	end := min(start+uint64(c.segmentSize), uint64(c.cfg.Rows))

	rows, err := c.source.LoadRows(ctx, uint32(start), uint32(end), c.cfg.Columns)
	if err != nil {
		c.log().Warn("ggrid: segment load failed", "segment", index, "err", err)
		return nil, fmt.Errorf("ggrid: load segment %d: %w", index, err)
	}
	if want := int(end - start); len(rows) > want {
		rows = rows[:want]
	}
	c.loads.Add(1)
	c.log().Debug("ggrid: segment loaded", "segment", index, "start", start, "rows", len(rows))

	return &Segment{Index: index, Start: uint32(start), Rows: rows}, nil
}

// insertLocked stores seg and runs the eviction pass relative to current
// when the cache is over its trigger. Caller must hold c.mu.
func (c *SegmentCache) insertLocked(seg *Segment, current uint32) {
	c.segments[seg.Index] = seg
	if len(c.segments) > c.policy.Trigger {
		c.evictLocked(current)
	}
}

// evictLocked removes far segments per the eviction policy. Candidates are
// ordered farthest first, ties going to the lower index, and all but the
// last Keep candidates are removed. Caller must hold c.mu.
func (c *SegmentCache) evictLocked(current uint32) {
	var far []uint32
	for i := range c.segments {
		if distance(i, current) > c.policy.Radius {
			far = append(far, i)
		}
	}
	keep := max(c.policy.Keep, 0)
	if len(far) <= keep {
		return
	}

	slices.SortFunc(far, func(a, b uint32) int {
		if d := cmp.Compare(distance(b, current), distance(a, current)); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})

	victims := far[:len(far)-keep]
	for _, i := range victims {
		delete(c.segments, i)
	}
	c.evictions.Add(uint64(len(victims)))
	c.log().Debug("ggrid: segments evicted",
		"current", current, "evicted", len(victims), "remaining", len(c.segments))
}

func (c *SegmentCache) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// distance returns |a - b| without overflow.
func distance(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
