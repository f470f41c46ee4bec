// Package ggrid renders arbitrarily large grids incrementally on a 2D
// drawing surface.
//
// # Overview
//
// ggrid draws only the scrolled-into-view window of a rows × columns grid.
// Memory and per-frame work stay bounded regardless of the total row count,
// which may run to billions of rows. Rows are materialized in fixed-size
// segments on demand and kept in a small cache that evicts segments far from
// the one being viewed.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ggrid"
//	    "github.com/gogpu/ggrid/canvas"
//	)
//
//	cfg := ggrid.NewConfig(5, 1_000_000_000, 80, 24, 30, 400, 240)
//	ctrl, err := ggrid.NewController(cfg, 1000)
//	if err != nil {
//	    return err
//	}
//
//	header, _ := canvas.New(400, 30)
//	content, _ := canvas.New(400, 240)
//
//	_ = ctrl.RenderHeader(header, scrollLeft)
//	_ = ctrl.RenderContent(ctx, content, scrollLeft, scrollTop)
//
// # Architecture
//
// The package is organized leaf-first:
//   - Config: immutable geometry, total sizes, visible ranges
//   - Row, Segment, SegmentSource: the data model and its loading seam
//   - SegmentCache: bounded segment cache with distance-based eviction
//   - Renderer: header and content passes with per-cell culling
//   - Controller: per-frame orchestration of all of the above
//
// Drawing goes through the DrawingContext interface. The canvas sub-package
// implements it on a gg raster context; the recording sub-package records
// every call for inspection and testing.
//
// # Coordinate System
//
// Header and content are separate surfaces. Both use logical pixels with
// the origin at the top-left of the surface; the content surface carries no
// header offset. Horizontal scroll is shared by both bands, vertical scroll
// applies to the content band only.
//
// # Large Grids
//
// Total heights are summed in chunks of HeightChunkRows rows (see
// ChunkedHeight) so the scrollable extent stays exact at billions of rows.
// Range computations clamp in float64 space before converting to indices.
package ggrid
