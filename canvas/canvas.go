// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/ggrid"
)

// ErrInvalidDimensions is returned when a width or height is not positive.
var ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

// Option configures a Canvas created with NewForContext.
type Option func(*Canvas)

// WithDisplaySize sets the logical size of the canvas. By default the
// display size equals the size of the wrapped context.
func WithDisplaySize(width, height int) Option {
	return func(c *Canvas) {
		c.displayW, c.displayH = width, height
	}
}

// WithResizer replaces the function used to reallocate the backing
// buffer. Hosts that own the gg context, such as a GPU-backed canvas,
// use it to keep their own bookkeeping in step. The resizer must leave
// the wrapped context at the requested size.
func WithResizer(fn func(width, height int) error) Option {
	return func(c *Canvas) {
		c.resize = fn
	}
}

// point is a path vertex in device pixels.
type point struct {
	x, y float64
	move bool
}

// Canvas is a ggrid.DrawingContext backed by a *gg.Context.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	dc     *gg.Context
	resize func(width, height int) error

	displayW, displayH int
	sx, sy             float64

	fill     gg.RGBA
	stroke   gg.RGBA
	font     ggrid.Font
	align    ggrid.TextAlign
	baseline ggrid.TextBaseline

	path  []point
	faces faceCache
}

var (
	_ ggrid.DrawingContext = (*Canvas)(nil)
	_ ggrid.HiDPISurface   = (*Canvas)(nil)
	_ ggrid.Scaler         = (*Canvas)(nil)
)

// New creates a Canvas with a fresh gg context of width × height pixels.
// Display and backing sizes start out equal.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return NewForContext(gg.NewContext(width, height)), nil
}

// NewForContext wraps an existing gg context. The context's pixel buffer
// becomes the canvas backing buffer.
func NewForContext(dc *gg.Context, opts ...Option) *Canvas {
	c := &Canvas{
		dc:       dc,
		displayW: dc.Width(),
		displayH: dc.Height(),
		sx:       1,
		sy:       1,
		fill:     gg.Black,
		stroke:   gg.Black,
		font:     ggrid.Font{Family: "sans-serif", Size: 10},
		align:    ggrid.AlignLeft,
		baseline: ggrid.BaselineAlphabetic,
		faces:    make(faceCache),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resize == nil {
		c.resize = dc.Resize
	}
	return c
}

// Context returns the wrapped gg context.
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

// Image returns the backing buffer as an image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the backing buffer as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the backing buffer as PNG to path.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// DisplaySize implements ggrid.HiDPISurface.
func (c *Canvas) DisplaySize() (width, height int) {
	return c.displayW, c.displayH
}

// SetDisplaySize changes the logical size. The backing buffer is left
// alone until the next ggrid.ConfigureHighDPI call.
func (c *Canvas) SetDisplaySize(width, height int) {
	c.displayW, c.displayH = width, height
}

// BackingSize implements ggrid.HiDPISurface.
func (c *Canvas) BackingSize() (width, height int) {
	return c.dc.Width(), c.dc.Height()
}

// SetBackingSize implements ggrid.HiDPISurface. Reallocating the buffer
// clears it and resets the scale to 1.
func (c *Canvas) SetBackingSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if err := c.resize(width, height); err != nil {
		return fmt.Errorf("canvas: resize backing buffer: %w", err)
	}
	c.sx, c.sy = 1, 1
	c.path = c.path[:0]
	return nil
}

// Scale implements ggrid.Scaler. Scales accumulate until the backing
// buffer is reallocated.
func (c *Canvas) Scale(sx, sy float64) {
	c.sx *= sx
	c.sy *= sy
}

// ScaleFactors returns the current logical to device scale.
func (c *Canvas) ScaleFactors() (sx, sy float64) {
	return c.sx, c.sy
}

// ClearRect implements ggrid.DrawingContext. Pixels in the rectangle
// become fully transparent.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	pm := c.dc.ResizeTarget()
	bw, bh := pm.Width(), pm.Height()
	r := image.Rect(
		int(math.Floor(max(x*c.sx, 0))), int(math.Floor(max(y*c.sy, 0))),
		int(math.Ceil(min((x+w)*c.sx, float64(bw)))), int(math.Ceil(min((y+h)*c.sy, float64(bh)))),
	).Intersect(image.Rect(0, 0, bw, bh))
	if r.Empty() {
		return
	}
	data := pm.Data()
	stride := bw * 4
	for py := r.Min.Y; py < r.Max.Y; py++ {
		clear(data[py*stride+r.Min.X*4 : py*stride+r.Max.X*4])
	}
}

// SetFillStyle implements ggrid.DrawingContext.
func (c *Canvas) SetFillStyle(color string) {
	c.fill = gg.Hex(color)
}

// SetStrokeStyle implements ggrid.DrawingContext.
func (c *Canvas) SetStrokeStyle(color string) {
	c.stroke = gg.Hex(color)
}

// SetFont implements ggrid.DrawingContext.
func (c *Canvas) SetFont(font ggrid.Font) {
	c.font = font
}

// SetTextAlign implements ggrid.DrawingContext.
func (c *Canvas) SetTextAlign(align ggrid.TextAlign) {
	c.align = align
}

// SetTextBaseline implements ggrid.DrawingContext.
func (c *Canvas) SetTextBaseline(baseline ggrid.TextBaseline) {
	c.baseline = baseline
}

// FillRect implements ggrid.DrawingContext.
func (c *Canvas) FillRect(x, y, w, h float64) error {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x*c.sx, y*c.sy, w*c.sx, h*c.sy)
	c.dc.SetFillBrush(gg.Solid(c.fill))
	return c.dc.Fill()
}

// StrokeRect implements ggrid.DrawingContext. The outline is one logical
// pixel wide.
func (c *Canvas) StrokeRect(x, y, w, h float64) error {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x*c.sx, y*c.sy, w*c.sx, h*c.sy)
	c.dc.SetStrokeBrush(gg.Solid(c.stroke))
	c.dc.SetLineWidth(c.lineWidth())
	return c.dc.Stroke()
}

// FillText implements ggrid.DrawingContext. The string is positioned
// relative to (x, y) according to the current text align and baseline.
func (c *Canvas) FillText(s string, x, y float64) error {
	if s == "" {
		return nil
	}
	face, err := c.faces.get(c.font, c.sy)
	if err != nil {
		return err
	}

	px, py := x*c.sx, y*c.sy
	switch c.align {
	case ggrid.AlignCenter:
		w, _ := text.Measure(s, face)
		px -= w / 2
	case ggrid.AlignRight:
		w, _ := text.Measure(s, face)
		px -= w
	}
	m := face.Metrics()
	switch c.baseline {
	case ggrid.BaselineTop:
		py += m.Ascent
	case ggrid.BaselineMiddle:
		py += (m.Ascent - m.Descent) / 2
	case ggrid.BaselineBottom:
		py -= m.Descent
	}

	c.dc.SetFont(face)
	c.dc.SetFillBrush(gg.Solid(c.fill))
	c.dc.DrawString(s, px, py)
	return nil
}

// BeginPath implements ggrid.DrawingContext.
func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
}

// MoveTo implements ggrid.DrawingContext.
func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path, point{x: x * c.sx, y: y * c.sy, move: true})
}

// LineTo implements ggrid.DrawingContext.
func (c *Canvas) LineTo(x, y float64) {
	c.path = append(c.path, point{x: x * c.sx, y: y * c.sy})
}

// Stroke implements ggrid.DrawingContext. The path is kept so it can be
// stroked again until the next BeginPath.
func (c *Canvas) Stroke() error {
	if len(c.path) == 0 {
		return nil
	}
	c.dc.ClearPath()
	for _, p := range c.path {
		if p.move {
			c.dc.MoveTo(p.x, p.y)
		} else {
			c.dc.LineTo(p.x, p.y)
		}
	}
	c.dc.SetStrokeBrush(gg.Solid(c.stroke))
	c.dc.SetLineWidth(c.lineWidth())
	return c.dc.Stroke()
}

func (c *Canvas) lineWidth() float64 {
	return (c.sx + c.sy) / 2
}
