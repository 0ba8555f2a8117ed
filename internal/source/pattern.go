package source

import (
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/phototable"
)

// patternSizes are the nominal print sizes the pattern source picks from.
var patternSizes = [...]image.Point{
	{1600, 1200}, {1200, 1600}, {1920, 1080}, {1200, 1200}, {1000, 1500},
}

// stripe is the stripe period of generated patterns, in pixels.
const stripe = 24

// Pattern generates striped gradient cards. It never fails, which makes it a
// stand-in when no photos are available.
type Pattern struct {
	rng *rand.Rand
	n   int
}

// NewPattern creates a pattern source drawing from rng.
func NewPattern(rng *rand.Rand) *Pattern {
	return &Pattern{rng: rng}
}

// Next generates a card scaled to fit the bounds.
func (p *Pattern) Next(opts *phototable.DecodeOptions, maxLong, maxShort int) image.Image {
	size := patternSizes[p.rng.IntN(len(patternSizes))]
	w, h := fit(size.X, size.Y, maxLong, maxShort)

	hue := p.rng.Float64() * 360
	from := colorful.Hcl(hue, 0.4, 0.7)
	to := colorful.Hcl(hue+120+p.rng.Float64()*120, 0.5, 0.4)
	lut := gradient(from, to, 256)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	span := max(1, w+h-2)
	for y := range h {
		for x := range w {
			c := lut[(x+y)*(len(lut)-1)/span]
			if ((x+y)/stripe)%2 == 1 {
				c = shade(c)
			}
			img.SetRGBA(x, y, c)
		}
	}

	p.n++
	opts.OutWidth, opts.OutHeight = w, h
	opts.OutName = fmt.Sprintf("pattern %d", p.n)
	return img
}

// gradient samples n colors blended from a to b in HCL space.
func gradient(a, b colorful.Color, n int) []color.RGBA {
	lut := make([]color.RGBA, n)
	for i := range lut {
		r, g, bl := a.BlendHcl(b, float64(i)/float64(n-1)).Clamped().RGB255()
		lut[i] = color.RGBA{R: r, G: g, B: bl, A: 255}
	}
	return lut
}

// shade darkens c by an eighth.
func shade(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R - c.R/8, G: c.G - c.G/8, B: c.B - c.B/8, A: c.A}
}
