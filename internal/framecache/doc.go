// Package framecache keeps recently served encoded grid frames.
//
// A frame is identified by the band it shows and the scroll offset it was
// rendered at. The cache is bounded by entry count; when it overflows,
// the least recently used quarter is dropped at once so a scroll sweep
// does not pay for an eviction on every request.
//
// Cached frames are only valid for one grid. Invalidate with Clear when
// the underlying rows change.
package framecache
