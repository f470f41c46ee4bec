// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas implements ggrid.DrawingContext on a gg raster context.
//
// A Canvas has a display size in logical pixels and a backing size in
// device pixels, and implements ggrid.HiDPISurface and ggrid.Scaler on top
// of them. The grid draws in logical pixels; the Canvas maps them to device
// pixels with its own scale so that text, fills and gridlines scale
// together.
//
// # Usage
//
//	header, err := canvas.New(400, 30)
//	if err != nil {
//	    return err
//	}
//	if _, err := ggrid.ConfigureHighDPI(header, header, 2); err != nil {
//	    return err
//	}
//	if err := ctrl.RenderHeader(header, scrollLeft); err != nil {
//	    return err
//	}
//	_ = header.SavePNG("header.png")
//
// # Fonts
//
// Text is drawn with the Go fonts from golang.org/x/image/font/gofont.
// The "monospace" family selects Go Mono; every other family selects Go
// Regular. Faces are cached per Canvas by family and device pixel size.
package canvas
