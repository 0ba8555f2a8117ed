package phototable

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Frame colors for the print border drawn around every photo.
var (
	FramePaper = color.RGBA{R: 250, G: 248, B: 240, A: 255}
	FrameEdge  = color.RGBA{R: 120, G: 112, B: 100, A: 255}
)

// compose builds the two-layer composite: img inset by inset pixels on every
// side, with the frame overlay drawn on top.
func compose(img image.Image, inset int) *image.RGBA {
	if inset < 0 {
		inset = 0
	}
	sb := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, sb.Dx()+2*inset, sb.Dy()+2*inset))

	inner := image.Rect(inset, inset, inset+sb.Dx(), inset+sb.Dy())
	draw.Draw(dst, inner, img, sb.Min, draw.Src)
	drawFrame(dst, inset)
	return dst
}

// drawFrame paints the border ring of width inset and a one pixel edge.
func drawFrame(dst *image.RGBA, inset int) {
	if inset == 0 {
		return
	}
	b := dst.Bounds()
	paper := image.NewUniform(FramePaper)
	for _, r := range frameRing(b, inset) {
		draw.Draw(dst, r, paper, image.Point{}, draw.Over)
	}
	edge := image.NewUniform(FrameEdge)
	for _, r := range frameRing(b, 1) {
		draw.Draw(dst, r, edge, image.Point{}, draw.Over)
	}
}

// frameRing returns the four rectangles covering a border of width w inside b.
func frameRing(b image.Rectangle, w int) [4]image.Rectangle {
	return [4]image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+w),
		image.Rect(b.Min.X, b.Max.Y-w, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, b.Min.Y+w, b.Min.X+w, b.Max.Y-w),
		image.Rect(b.Max.X-w, b.Min.Y+w, b.Max.X, b.Max.Y-w),
	}
}
