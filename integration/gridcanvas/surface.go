// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gridcanvas

import (
	"fmt"

	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ggrid"
	"github.com/gogpu/ggrid/canvas"
)

// Surface is one grid band backed by a ggcanvas.Canvas.
//
// The embedded canvas.Canvas draws into the ggcanvas context; resizing
// the backing buffer goes through ggcanvas so its texture is recreated.
//
// Surface is not safe for concurrent use.
type Surface struct {
	*canvas.Canvas
	cv *ggcanvas.Canvas
}

var (
	_ ggrid.DrawingContext = (*Surface)(nil)
	_ ggrid.HiDPISurface   = (*Surface)(nil)
)

// NewSurface creates a Surface of width × height logical pixels.
func NewSurface(provider gpucontext.DeviceProvider, width, height int) (*Surface, error) {
	cv, err := ggcanvas.New(provider, width, height)
	if err != nil {
		return nil, fmt.Errorf("gridcanvas: %w", err)
	}
	return &Surface{
		Canvas: canvas.NewForContext(cv.Context(), canvas.WithResizer(cv.Resize)),
		cv:     cv,
	}, nil
}

// GPUCanvas returns the underlying ggcanvas.Canvas for presenting.
func (s *Surface) GPUCanvas() *ggcanvas.Canvas {
	return s.cv
}

// Configure applies the device pixel ratio. See ggrid.ConfigureHighDPI.
func (s *Surface) Configure(ratio float64) (float64, error) {
	ratio, err := ggrid.ConfigureHighDPI(s, s.Canvas, ratio)
	if err != nil {
		return ratio, fmt.Errorf("gridcanvas: %w", err)
	}
	s.cv.MarkDirty()
	return ratio, nil
}

// Close releases the canvas and its texture. Close is idempotent.
func (s *Surface) Close() error {
	return s.cv.Close()
}
