package ggrid

import (
	"fmt"
	"math"
)

// HiDPISurface is a drawing surface with separate display (logical) and
// backing (device pixel) sizes.
type HiDPISurface interface {
	// DisplaySize returns the on-screen size in logical pixels.
	DisplaySize() (width, height int)
	// BackingSize returns the size of the pixel buffer.
	BackingSize() (width, height int)
	// SetBackingSize reallocates the pixel buffer.
	SetBackingSize(width, height int) error
}

// Scaler is implemented by drawing contexts that can scale subsequent
// drawing operations.
type Scaler interface {
	Scale(sx, sy float64)
}

// ConfigureHighDPI sizes the backing buffer of surface to its display size
// multiplied by ratio and scales dc by the same factor, so logical grid
// coordinates map onto device pixels. It returns the ratio in effect.
//
// Non-positive and non-finite ratios are treated as 1. When the backing
// buffer already has the scaled size nothing changes, so calling
// ConfigureHighDPI on every resize event is safe.
func ConfigureHighDPI(surface HiDPISurface, dc Scaler, ratio float64) (float64, error) {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		ratio = 1
	}

	dw, dh := surface.DisplaySize()
	want := func(n int) int { return int(math.Round(float64(n) * ratio)) }
	bw, bh := surface.BackingSize()
	if bw == want(dw) && bh == want(dh) {
		return ratio, nil
	}

	if err := surface.SetBackingSize(want(dw), want(dh)); err != nil {
		return ratio, fmt.Errorf("ggrid: configure high-dpi surface: %w", err)
	}
	dc.Scale(ratio, ratio)

	Logger().Debug("ggrid: backing surface resized",
		"display", fmt.Sprintf("%dx%d", dw, dh),
		"backing", fmt.Sprintf("%dx%d", want(dw), want(dh)),
		"ratio", ratio)
	return ratio, nil
}
