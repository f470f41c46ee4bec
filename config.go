package ggrid

import (
	"fmt"
	"math"
)

// HeightChunkRows is the number of rows summed per chunk by ChunkedHeight.
// A chunk of this size multiplied by any practical cell height stays well
// inside the exactly representable float64 range.
const HeightChunkRows uint32 = 10_000_000

// Config describes the fixed geometry of a grid: how many columns and rows
// it has, how large each cell is, and how large the on-screen viewport is.
//
// Config is a plain value. It is never mutated after construction and is
// shared read-only by the Controller and the Renderer.
//
// A grid with zero columns or zero rows is empty. Empty grids are legal;
// they report no visible ranges and render nothing.
type Config struct {
	Columns uint32
	Rows    uint32

	CellWidth    float64
	CellHeight   float64
	HeaderHeight float64

	ViewportWidth  float64
	ViewportHeight float64
}

// NewConfig returns a Config with the given geometry.
func NewConfig(columns, rows uint32, cellWidth, cellHeight, headerHeight, viewportWidth, viewportHeight float64) Config {
	return Config{
		Columns:        columns,
		Rows:           rows,
		CellWidth:      cellWidth,
		CellHeight:     cellHeight,
		HeaderHeight:   headerHeight,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

// Empty reports whether the grid has no cells.
func (c Config) Empty() bool {
	return c.Columns == 0 || c.Rows == 0
}

// Validate checks that every dimension of a non-empty grid is positive and
// finite. Empty grids always validate.
func (c Config) Validate() error {
	if c.Empty() {
		return nil
	}
	dims := [...]struct {
		name  string
		value float64
	}{
		{"CellWidth", c.CellWidth},
		{"CellHeight", c.CellHeight},
		{"HeaderHeight", c.HeaderHeight},
		{"ViewportWidth", c.ViewportWidth},
		{"ViewportHeight", c.ViewportHeight},
	}
	for _, d := range dims {
		if !(d.value > 0) || math.IsInf(d.value, 0) {
			return fmt.Errorf("%w: %s=%v (must be finite and > 0)", ErrInvalidConfig, d.name, d.value)
		}
	}
	return nil
}

// TotalWidth returns the width of the whole grid in pixels.
func (c Config) TotalWidth() float64 {
	return float64(c.Columns) * c.CellWidth
}

// TotalHeight returns the height of the whole grid in pixels, including the
// header band. Row heights are summed with ChunkedHeight so the result stays
// exact for row counts in the billions.
func (c Config) TotalHeight() float64 {
	return float64(ChunkedHeight(c.Rows, c.CellHeight, HeightChunkRows)) + c.HeaderHeight
}

// ChunkedHeight returns rows*cellHeight computed as the sum of whole chunks
// of chunk rows plus the remainder:
//
//	float64(rows/chunk)*float64(chunk)*cellHeight + float64(rows%chunk)*cellHeight
//
// This is not equivalent to float64(rows)*cellHeight: for large row counts
// the two round differently. A chunk of zero disables chunking.
func ChunkedHeight(rows uint32, cellHeight float64, chunk uint32) float64 {
	if chunk == 0 {
		return float64(float64(rows) * cellHeight)
	}
	full := rows / chunk
	rem := rows % chunk

	// The explicit conversions round each product to float64 and keep the
	// compiler from fusing the sum into an FMA on arm64/ppc64le/s390x.
	fullHeight := float64(float64(full) * float64(chunk) * cellHeight)
	remHeight := float64(float64(rem) * cellHeight)
	return fullHeight + remHeight
}

// String implements fmt.Stringer.
func (c Config) String() string {
	return fmt.Sprintf("Config{%dx%d cell=%gx%g header=%g viewport=%gx%g}",
		c.Columns, c.Rows, c.CellWidth, c.CellHeight, c.HeaderHeight, c.ViewportWidth, c.ViewportHeight)
}
