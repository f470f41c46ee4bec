package ggrid

import (
	"context"
	"fmt"
)

// Controller ties the pipeline together for one grid. It owns the
// SegmentCache and the Renderer; on each content draw it turns the scroll
// offset into a row range, resolves the segments that range touches,
// assembles the visible rows and hands them to the Renderer.
//
// Controller methods are safe to call from multiple goroutines: all cache
// mutation runs under the cache lock, and the Renderer is stateless.
// Each DrawingContext still belongs to one caller at a time.
type Controller struct {
	cfg      Config
	renderer *Renderer
	cache    *SegmentCache
}

// NewController creates a Controller for cfg with segmentSize rows per
// segment.
//
// Returns an error wrapping ErrInvalidConfig, ErrInvalidSegmentSize or
// ErrNilSource when the arguments are unusable.
func NewController(cfg Config, segmentSize uint32, opts ...Option) (*Controller, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cache, err := NewSegmentCache(cfg, segmentSize, options.source, options.policy)
	if err != nil {
		return nil, err
	}

	cache.logger = options.logger
	cache.log().Info("ggrid: controller created",
		"columns", cfg.Columns, "rows", cfg.Rows, "segmentSize", segmentSize)

	return &Controller{
		cfg:      cfg,
		renderer: NewRenderer(cfg, options.style),
		cache:    cache,
	}, nil
}

// MustNewController is like NewController but panics on error.
// Use only when the arguments are constants.
func MustNewController(cfg Config, segmentSize uint32, opts ...Option) *Controller {
	c, err := NewController(cfg, segmentSize, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Config returns the grid geometry.
func (c *Controller) Config() Config {
	return c.cfg
}

// Renderer returns the controller's renderer.
func (c *Controller) Renderer() *Renderer {
	return c.renderer
}

// Cache returns the controller's segment cache.
func (c *Controller) Cache() *SegmentCache {
	return c.cache
}

// TotalWidth returns the scrollable width of the grid.
func (c *Controller) TotalWidth() float64 {
	return c.cfg.TotalWidth()
}

// TotalHeight returns the scrollable height of the grid including the
// header band.
func (c *Controller) TotalHeight() float64 {
	return c.cfg.TotalHeight()
}

// RenderHeader draws the header band scrolled horizontally by scrollLeft.
// Labels derive from the column index alone, so no data is fetched.
func (c *Controller) RenderHeader(dc DrawingContext, scrollLeft float64) error {
	cols, ok := c.cfg.ColumnRange(scrollLeft)
	if !ok {
		dc.ClearRect(0, 0, c.cfg.ViewportWidth, c.cfg.HeaderHeight)
		return nil
	}
	return c.renderer.RenderHeader(dc, cols, scrollLeft)
}

// RenderContent draws the content band for the scroll position
// (scrollLeft, scrollTop). Segments covering the visible rows are loaded
// into the cache as a side effect.
func (c *Controller) RenderContent(ctx context.Context, dc DrawingContext, scrollLeft, scrollTop float64) error {
	rows, window, err := c.VisibleRows(ctx, scrollTop)
	if err != nil {
		return err
	}
	return c.renderer.RenderContent(dc, rows, scrollLeft, scrollTop, window.Start)
}

// VisibleRows returns copies of the rows needed to paint the content band
// at scrollTop, in order, together with the nominal row range. Rows past
// the end of an under-full segment are omitted, so the slice may be
// shorter than the range.
func (c *Controller) VisibleRows(ctx context.Context, scrollTop float64) ([]Row, Range, error) {
	window, ok := c.cfg.RowRange(scrollTop)
	if !ok {
		return nil, Range{}, nil
	}

	size := c.cache.SegmentSize()
	rows := make([]Row, 0, window.Len())
	var (
		seg     *Segment
		segIdx  uint32
		hasSeg  bool
		lastRow = uint64(window.End)
	)
	for r := uint64(window.Start); r <= lastRow; r++ {
		row := uint32(r)
		idx := row / size
		if !hasSeg || idx != segIdx {
			s, err := c.cache.GetOrLoad(ctx, idx)
			if err != nil {
				return nil, window, fmt.Errorf("ggrid: visible rows %v: %w", window, err)
			}
			seg, segIdx, hasSeg = s, idx, true
		}
		if data, ok := seg.Row(row % size); ok {
			rows = append(rows, data.Clone())
		}
	}
	return rows, window, nil
}

// Preload warms amount segments centered on segment center.
// See SegmentCache.Preload.
func (c *Controller) Preload(ctx context.Context, center, amount uint32) error {
	return c.cache.Preload(ctx, center, amount)
}
