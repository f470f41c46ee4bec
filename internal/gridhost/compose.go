package gridhost

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Compose stacks the header band above the content band on an opaque
// white background and returns the combined frame.
func Compose(header, content image.Image) *image.RGBA {
	hb, cb := header.Bounds(), content.Bounds()
	w := max(hb.Dx(), cb.Dx())
	frame := image.NewRGBA(image.Rect(0, 0, w, hb.Dy()+cb.Dy()))
	draw.Draw(frame, frame.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(frame, image.Rect(0, 0, hb.Dx(), hb.Dy()), header, hb.Min, draw.Over)
	draw.Draw(frame, image.Rect(0, hb.Dy(), cb.Dx(), hb.Dy()+cb.Dy()), content, cb.Min, draw.Over)
	return frame
}

// Thumbnail scales src to fit within maxW × maxH keeping its aspect
// ratio. Images that already fit are returned unchanged.
func Thumbnail(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	if maxW <= 0 || maxH <= 0 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return src
	}
	scale := min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
