package gridhost

import (
	"context"
	"fmt"
	"image"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/ggrid"
	"github.com/gogpu/ggrid/canvas"
)

// Bands is a pair of raster surfaces sized for a controller's header and
// content bands at one device pixel ratio.
//
// A Bands value belongs to one caller at a time.
type Bands struct {
	ctrl    *ggrid.Controller
	ratio   float64
	Header  *canvas.Canvas
	Content *canvas.Canvas
}

// NewBands allocates the header and content surfaces for ctrl and
// configures them for ratio.
func NewBands(ctrl *ggrid.Controller, ratio float64) (*Bands, error) {
	cfg := ctrl.Config()
	w := pixels(cfg.ViewportWidth)
	header, err := canvas.New(w, pixels(cfg.HeaderHeight))
	if err != nil {
		return nil, fmt.Errorf("gridhost: header surface: %w", err)
	}
	content, err := canvas.New(w, pixels(cfg.ViewportHeight))
	if err != nil {
		return nil, fmt.Errorf("gridhost: content surface: %w", err)
	}
	b := &Bands{ctrl: ctrl, Header: header, Content: content}
	for _, c := range []*canvas.Canvas{header, content} {
		if b.ratio, err = ggrid.ConfigureHighDPI(c, c, ratio); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Ratio returns the device pixel ratio in effect.
func (b *Bands) Ratio() float64 {
	return b.ratio
}

// Render draws both bands at the given scroll offset. The header and
// content passes run concurrently on their own surfaces.
func (b *Bands) Render(ctx context.Context, scrollLeft, scrollTop float64) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.ctrl.RenderHeader(b.Header, scrollLeft)
	})
	g.Go(func() error {
		return b.ctrl.RenderContent(ctx, b.Content, scrollLeft, scrollTop)
	})
	return g.Wait()
}

// Frame renders both bands and returns them stacked into one image.
func (b *Bands) Frame(ctx context.Context, scrollLeft, scrollTop float64) (*image.RGBA, error) {
	if err := b.Render(ctx, scrollLeft, scrollTop); err != nil {
		return nil, err
	}
	return Compose(b.Header.Image(), b.Content.Image()), nil
}

// pixels converts a logical extent to a whole, positive pixel count.
func pixels(v float64) int {
	return max(1, int(math.Ceil(v)))
}
