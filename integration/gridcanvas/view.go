// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gridcanvas

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggrid"
)

// ErrNilController is returned by NewView when no controller is given.
var ErrNilController = errors.New("gridcanvas: nil controller")

// View draws a grid's header and content bands into two Surfaces sized
// from the controller's viewport.
type View struct {
	ctrl  *ggrid.Controller
	ratio float64

	Header  *Surface
	Content *Surface
}

// NewView creates both band surfaces and applies the device pixel ratio.
func NewView(provider gpucontext.DeviceProvider, ctrl *ggrid.Controller, ratio float64) (*View, error) {
	if ctrl == nil {
		return nil, ErrNilController
	}
	cfg := ctrl.Config()
	width := logicalPixels(cfg.ViewportWidth)

	header, err := NewSurface(provider, width, logicalPixels(cfg.HeaderHeight))
	if err != nil {
		return nil, err
	}
	content, err := NewSurface(provider, width, logicalPixels(cfg.ViewportHeight))
	if err != nil {
		_ = header.Close()
		return nil, err
	}

	v := &View{ctrl: ctrl, Header: header, Content: content}
	if err := v.SetRatio(ratio); err != nil {
		_ = v.Close()
		return nil, err
	}
	return v, nil
}

// Ratio returns the device pixel ratio in effect.
func (v *View) Ratio() float64 {
	return v.ratio
}

// SetRatio applies a new device pixel ratio to both bands, for instance
// after the window moved to another monitor.
func (v *View) SetRatio(ratio float64) error {
	r, err := v.Header.Configure(ratio)
	if err != nil {
		return err
	}
	if _, err := v.Content.Configure(ratio); err != nil {
		return err
	}
	v.ratio = r
	return nil
}

// Draw renders both bands for the scroll position and marks them for
// upload. Segments are loaded as needed.
func (v *View) Draw(ctx context.Context, scrollLeft, scrollTop float64) error {
	if err := v.ctrl.RenderHeader(v.Header, scrollLeft); err != nil {
		return fmt.Errorf("gridcanvas: %w", err)
	}
	v.Header.cv.MarkDirty()

	if err := v.ctrl.RenderContent(ctx, v.Content, scrollLeft, scrollTop); err != nil {
		return fmt.Errorf("gridcanvas: %w", err)
	}
	v.Content.cv.MarkDirty()
	return nil
}

// Close releases both surfaces.
func (v *View) Close() error {
	return errors.Join(v.Header.Close(), v.Content.Close())
}

// logicalPixels rounds a viewport extent up to whole pixels, at least 1.
func logicalPixels(v float64) int {
	return max(int(math.Ceil(v)), 1)
}
