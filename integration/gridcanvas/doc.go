// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gridcanvas presents a ggrid grid in a gogpu window.
//
// Each band of the grid is drawn into its own ggcanvas.Canvas, which owns
// the CPU-to-GPU upload. A Surface adapts one ggcanvas.Canvas to
// ggrid.DrawingContext and ggrid.HiDPISurface; a View pairs a header and
// a content Surface with a Controller.
//
// # Usage
//
//	app.OnInit(func() {
//	    view, err = gridcanvas.NewView(app.GPUContextProvider(), ctrl, app.ScaleFactor())
//	})
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = view.Draw(ctx, scrollLeft, scrollTop)
//	    _ = view.Header.GPUCanvas().RenderToPosition(dc.AsTextureDrawer(), 0, 0)
//	    _ = view.Content.GPUCanvas().RenderToPosition(dc.AsTextureDrawer(), 0, headerHeight)
//	})
//
//	app.OnClose(func() {
//	    _ = view.Close()
//	})
package gridcanvas
