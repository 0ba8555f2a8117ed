package phototable

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"slices"

	"golang.org/x/image/draw"
)

// Background is the default table color.
var Background = color.RGBA{R: 38, G: 50, B: 56, A: 255}

// Canvas is a software compositor implementing Host and PhotoFinder.
// Photos are kept bottom to top and drawn with their affine transforms.
//
// A Canvas is owned by the control goroutine.
type Canvas struct {
	img        *image.RGBA
	background color.RGBA
	photos     []*Photo
	dirty      bool
	onFinish   func()
}

// NewCanvas creates a width x height canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: Background,
		dirty:      true,
	}
}

// SetBackground sets the table color.
func (c *Canvas) SetBackground(bg color.RGBA) {
	c.background = bg
	c.dirty = true
}

// OnFinish sets the function Finish calls.
func (c *Canvas) OnFinish(fn func()) {
	c.onFinish = fn
}

// Width returns the width of the canvas.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the height of the canvas.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Resize reallocates the canvas when the size changes.
func (c *Canvas) Resize(width, height int) {
	if width == c.Width() && height == c.Height() {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.dirty = true
}

// AddPhoto places p on the top layer.
func (c *Canvas) AddPhoto(p *Photo) {
	c.photos = append(c.photos, p)
	c.dirty = true
}

// RemovePhoto takes p off the canvas.
func (c *Canvas) RemovePhoto(p *Photo) {
	if i := slices.Index(c.photos, p); i >= 0 {
		c.photos = slices.Delete(c.photos, i, i+1)
		c.dirty = true
	}
}

// BringToFront raises p above every other photo.
func (c *Canvas) BringToFront(p *Photo) {
	i := slices.Index(c.photos, p)
	if i < 0 || i == len(c.photos)-1 {
		return
	}
	c.photos = append(slices.Delete(c.photos, i, i+1), p)
	c.dirty = true
}

// Invalidate marks the canvas for redraw.
func (c *Canvas) Invalidate() { c.dirty = true }

// Finish calls the OnFinish function, if any.
func (c *Canvas) Finish() {
	if c.onFinish != nil {
		c.onFinish()
	}
}

// Dirty reports whether the canvas changed since the last Render.
func (c *Canvas) Dirty() bool { return c.dirty }

// Photos returns the photos on the canvas, bottom to top.
func (c *Canvas) Photos() []*Photo { return slices.Clone(c.photos) }

// PhotoAt returns the topmost visible photo under pt, or nil.
func (c *Canvas) PhotoAt(pt Point) *Photo {
	for i := len(c.photos) - 1; i >= 0; i-- {
		p := c.photos[i]
		if p.image != nil && p.transform.Alpha > 0 && p.Contains(pt) {
			return p
		}
	}
	return nil
}

// Render redraws the canvas if it is dirty and returns the frame.
// The returned image is reused by later calls.
func (c *Canvas) Render() *image.RGBA {
	if !c.dirty {
		return c.img
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
	for _, p := range c.photos {
		drawPhoto(c.img, p)
	}
	c.dirty = false
	return c.img
}

// drawPhoto composites p onto dst with its transform and opacity.
func drawPhoto(dst *image.RGBA, p *Photo) {
	alpha := p.transform.Alpha
	if p.image == nil || alpha <= 0 {
		return
	}
	var opts *draw.Options
	if alpha < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})}
	}
	draw.BiLinear.Transform(dst, p.Matrix().Aff3(), p.image, p.image.Bounds(), draw.Over, opts)
}

// EncodePNG renders the canvas and writes it to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Render())
}

// SavePNG renders the canvas and saves it to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
