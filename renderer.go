package ggrid

import (
	"fmt"
	"strconv"
)

// Renderer draws the two bands of a grid: the header band with column
// labels, and the content band with the visible rows. It holds only the
// immutable Config and Style, so one Renderer may serve any number of
// surfaces.
//
// The header and content bands live on separate surfaces. The header has
// no vertical coordinate; the content surface has no header offset.
type Renderer struct {
	cfg   Config
	style Style
}

// NewRenderer creates a Renderer for cfg drawing with style.
func NewRenderer(cfg Config, style Style) *Renderer {
	return &Renderer{cfg: cfg, style: style}
}

// Config returns the grid geometry.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Style returns the drawing style.
func (r *Renderer) Style() Style {
	return r.style
}

// HeaderLabel returns the display label of column col, numbered from 1.
func HeaderLabel(col uint32) string {
	return "Col " + strconv.FormatUint(uint64(col)+1, 10)
}

// RenderHeader draws the header band for columns cols scrolled
// horizontally by scrollLeft.
//
// The band is cleared and filled, one centered label is drawn per column,
// and all column separators plus the bottom border are stroked as a single
// path.
func (r *Renderer) RenderHeader(dc DrawingContext, cols Range, scrollLeft float64) error {
	cfg := r.cfg
	dc.ClearRect(0, 0, cfg.ViewportWidth, cfg.HeaderHeight)
	if cfg.Empty() {
		return nil
	}

	dc.SetFillStyle(r.style.HeaderBackground)
	if err := dc.FillRect(0, 0, cfg.ViewportWidth, cfg.HeaderHeight); err != nil {
		return fmt.Errorf("ggrid: header pass: %w", err)
	}

	dc.SetFillStyle(r.style.Text)
	dc.SetFont(r.style.Font)
	dc.SetTextAlign(AlignCenter)
	dc.SetTextBaseline(BaselineMiddle)
	for col := uint64(cols.Start); col <= uint64(cols.End); col++ {
		x := columnX(cfg, uint32(col), scrollLeft)
		if err := dc.FillText(HeaderLabel(uint32(col)), x+cfg.CellWidth/2, cfg.HeaderHeight/2); err != nil {
			return fmt.Errorf("ggrid: header pass: %w", err)
		}
	}

	dc.SetStrokeStyle(r.style.Border)
	dc.BeginPath()
	for col := uint64(cols.Start); col <= uint64(cols.End)+1; col++ {
		x := float64(col)*cfg.CellWidth - scrollLeft
		dc.MoveTo(x, 0)
		dc.LineTo(x, cfg.HeaderHeight)
	}
	dc.MoveTo(0, cfg.HeaderHeight)
	dc.LineTo(cfg.ViewportWidth, cfg.HeaderHeight)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("ggrid: header pass: %w", err)
	}
	return nil
}

// RenderContent draws the content band.
//
// rows is the window of rows starting at grid row visibleStartRow; rows[0]
// is drawn at its true scrolled position by re-basing scrollTop to
//
//	adjustedScrollTop = scrollTop - visibleStartRow*CellHeight
//
// so that row i of the slice lands at y = i*CellHeight - adjustedScrollTop.
// The nominal row window is truncated to len(rows); missing rows are
// skipped, never substituted.
//
// Rows and columns whose extent does not intersect the viewport are culled.
// Drawing happens in four sub-passes: even bands, odd bands, text, borders.
func (r *Renderer) RenderContent(dc DrawingContext, rows []Row, scrollLeft, scrollTop float64, visibleStartRow uint32) error {
	cfg := r.cfg
	dc.ClearRect(0, 0, cfg.ViewportWidth, cfg.ViewportHeight)
	if cfg.Empty() || len(rows) == 0 {
		return nil
	}

	cols, _ := cfg.ColumnRange(scrollLeft)
	window := cfg.RowWindow(visibleStartRow)
	n := min(window.Len(), len(rows))
	adjustedScrollTop := scrollTop - float64(visibleStartRow)*cfg.CellHeight

	p := contentPass{
		cfg:        cfg,
		dc:         dc,
		cols:       cols,
		startRow:   visibleStartRow,
		absolute:   r.style.AbsoluteStripes,
		n:          n,
		scrollLeft: scrollLeft,
		scrollTop:  adjustedScrollTop,
	}

	dc.SetFillStyle(r.style.RowEven)
	if err := p.bands(0); err != nil {
		return fmt.Errorf("ggrid: content pass: %w", err)
	}
	dc.SetFillStyle(r.style.RowOdd)
	if err := p.bands(1); err != nil {
		return fmt.Errorf("ggrid: content pass: %w", err)
	}

	dc.SetFillStyle(r.style.Text)
	dc.SetFont(r.style.Font)
	dc.SetTextAlign(AlignCenter)
	dc.SetTextBaseline(BaselineMiddle)
	if err := p.text(rows); err != nil {
		return fmt.Errorf("ggrid: content pass: %w", err)
	}

	dc.SetStrokeStyle(r.style.Border)
	if err := p.borders(); err != nil {
		return fmt.Errorf("ggrid: content pass: %w", err)
	}
	return nil
}

// contentPass carries the per-frame state shared by the content sub-passes.
type contentPass struct {
	cfg        Config
	dc         DrawingContext
	cols       Range
	startRow   uint32
	absolute   bool
	n          int
	scrollLeft float64
	scrollTop  float64
}

// rowY returns the top of local row i, or false when the row is culled.
func (p *contentPass) rowY(i int) (float64, bool) {
	y := float64(i)*p.cfg.CellHeight - p.scrollTop
	return y, spanVisible(y, p.cfg.CellHeight, p.cfg.ViewportHeight)
}

// bands fills the background of every visible row with the given parity.
// Parity counts from the first supplied row unless absolute is set.
func (p *contentPass) bands(parity uint64) error {
	var base uint64
	if p.absolute {
		base = uint64(p.startRow)
	}
	for i := 0; i < p.n; i++ {
		if (base+uint64(i))%2 != parity {
			continue
		}
		y, ok := p.rowY(i)
		if !ok {
			continue
		}
		if err := p.dc.FillRect(0, y, p.cfg.ViewportWidth, p.cfg.CellHeight); err != nil {
			return err
		}
	}
	return nil
}

func (p *contentPass) text(rows []Row) error {
	cfg := p.cfg
	for i := 0; i < p.n; i++ {
		y, ok := p.rowY(i)
		if !ok {
			continue
		}
		row := rows[i]
		for col := uint64(p.cols.Start); col <= uint64(p.cols.End); col++ {
			x := columnX(cfg, uint32(col), p.scrollLeft)
			if !spanVisible(x, cfg.CellWidth, cfg.ViewportWidth) {
				continue
			}
			if err := p.dc.FillText(row.Cell(uint32(col)), x+cfg.CellWidth/2, y+cfg.CellHeight/2); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *contentPass) borders() error {
	cfg := p.cfg
	for i := 0; i < p.n; i++ {
		y, ok := p.rowY(i)
		if !ok {
			continue
		}
		for col := uint64(p.cols.Start); col <= uint64(p.cols.End); col++ {
			x := columnX(cfg, uint32(col), p.scrollLeft)
			if !spanVisible(x, cfg.CellWidth, cfg.ViewportWidth) {
				continue
			}
			if err := p.dc.StrokeRect(x, y, cfg.CellWidth, cfg.CellHeight); err != nil {
				return err
			}
		}
	}
	return nil
}

// columnX returns the on-screen left edge of column col.
func columnX(cfg Config, col uint32, scrollLeft float64) float64 {
	return float64(col)*cfg.CellWidth - scrollLeft
}

// spanVisible reports whether [pos, pos+size) intersects [0, limit).
func spanVisible(pos, size, limit float64) bool {
	return pos+size > 0 && pos < limit
}
