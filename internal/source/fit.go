package source

import (
	"image"

	"golang.org/x/image/draw"
)

// fit returns the size of a w x h image scaled down to fit maxLong x maxShort
// in its own orientation. Images are never scaled up. Non-positive bounds
// leave the size unchanged.
func fit(w, h, maxLong, maxShort int) (int, int) {
	if maxLong <= 0 || maxShort <= 0 || w <= 0 || h <= 0 {
		return w, h
	}
	bw, bh := maxLong, maxShort
	if h > w {
		bw, bh = maxShort, maxLong
	}
	s := min(1, float64(bw)/float64(w), float64(bh)/float64(h))
	return max(1, int(float64(w)*s)), max(1, int(float64(h)*s))
}

// resize scales img to fit the bounds, returning img itself when it fits.
func resize(img image.Image, maxLong, maxShort int) image.Image {
	b := img.Bounds()
	w, h := fit(b.Dx(), b.Dy(), maxLong, maxShort)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
