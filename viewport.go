package ggrid

import (
	"fmt"
	"math"
)

// RowSlack is the number of extra rows fetched below the viewport so that
// partially scrolled rows at the bottom edge never pop in late.
const RowSlack = 2

// Range is an inclusive range of row or column indices.
type Range struct {
	Start uint32
	End   uint32
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return int(r.End-r.Start) + 1
}

// Contains reports whether i lies inside the range.
func (r Range) Contains(i uint32) bool {
	return i >= r.Start && i <= r.End
}

// String implements fmt.Stringer.
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// ColumnRange returns the columns intersecting the viewport when scrolled
// horizontally by scrollLeft:
//
//	start = floor(scrollLeft / CellWidth)
//	end   = min(floor((scrollLeft + ViewportWidth) / CellWidth), Columns-1)
//
// The second result is false for an empty grid.
func (c Config) ColumnRange(scrollLeft float64) (Range, bool) {
	if c.Empty() {
		return Range{}, false
	}
	last := c.Columns - 1
	scrollLeft = sanitizeOffset(scrollLeft)

	start := floorIndex(scrollLeft/c.CellWidth, last)
	end := floorIndex((scrollLeft+c.ViewportWidth)/c.CellWidth, last)
	return Range{Start: min(start, end), End: end}, true
}

// RowRange returns the rows needed to paint the content viewport when
// scrolled vertically by scrollTop:
//
//	start = floor(scrollTop / CellHeight)
//	end   = min(start + ceil(ViewportHeight / CellHeight) + RowSlack, Rows-1)
//
// The second result is false for an empty grid.
func (c Config) RowRange(scrollTop float64) (Range, bool) {
	if c.Empty() {
		return Range{}, false
	}
	last := c.Rows - 1
	start := floorIndex(sanitizeOffset(scrollTop)/c.CellHeight, last)
	return c.RowWindow(start), true
}

// RowWindow returns the nominal row window that starts at start: the
// visible row count plus RowSlack, clamped to the last row. The grid must
// not be empty.
func (c Config) RowWindow(start uint32) Range {
	last := c.Rows - 1
	if start > last {
		start = last
	}
	end := uint64(start) + uint64(c.visibleRowCount())
	if end > uint64(last) {
		end = uint64(last)
	}
	return Range{Start: start, End: uint32(end)}
}

// visibleRowCount returns ceil(ViewportHeight/CellHeight) + RowSlack.
func (c Config) visibleRowCount() uint32 {
	n := math.Ceil(c.ViewportHeight / c.CellHeight)
	if !(n > 0) {
		return RowSlack
	}
	if n > math.MaxUint32-RowSlack {
		return math.MaxUint32
	}
	return uint32(n) + RowSlack
}

// floorIndex returns floor(v) clamped to [0, last]. The clamp happens in
// float64 space so huge scroll offsets never overflow the conversion.
func floorIndex(v float64, last uint32) uint32 {
	v = math.Floor(v)
	if !(v > 0) {
		return 0
	}
	if v >= float64(last) {
		return last
	}
	return uint32(v)
}

// sanitizeOffset maps negative and NaN scroll offsets to zero.
func sanitizeOffset(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}
