package phototable

import (
	"image"
)

// Photo is one image on the table: the framed composite, the size the
// source reported, and the current on-table transform.
//
// A Photo is owned by the control goroutine once the loader hands it over.
type Photo struct {
	id     uint64
	name   string
	width  int
	height int

	image     *image.RGBA
	transform Transform
	onTap     func(*Photo)
	recycled  bool
}

// ID returns the load sequence number of the photo, starting at 1.
func (p *Photo) ID() uint64 { return p.id }

// Name returns the caption reported by the source, if any.
func (p *Photo) Name() string { return p.name }

// DeclaredSize returns the decoded width and height reported by the source.
func (p *Photo) DeclaredSize() (width, height int) { return p.width, p.height }

// Image returns the framed composite, or nil once the photo is recycled.
func (p *Photo) Image() *image.RGBA { return p.image }

// Transform returns the current on-table transform.
func (p *Photo) Transform() Transform { return p.transform }

// Size returns the unscaled on-table size of the photo, frame included.
func (p *Photo) Size() (w, h float64) {
	if p.image == nil {
		return float64(p.width), float64(p.height)
	}
	b := p.image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Matrix returns the photo-to-table transformation matrix.
func (p *Photo) Matrix() Matrix {
	w, h := p.Size()
	return PivotMatrix(p.transform, w, h)
}

// Contains reports whether the table point pt lies on the photo.
func (p *Photo) Contains(pt Point) bool {
	inv, ok := p.Matrix().Invert()
	if !ok {
		return false
	}
	local := inv.TransformPoint(pt)
	w, h := p.Size()
	return local.X >= 0 && local.X < w && local.Y >= 0 && local.Y < h
}

// Tap runs the gesture handler the loader attached to the photo.
func (p *Photo) Tap() {
	if p.onTap != nil {
		p.onTap(p)
	}
}

// Recycled reports whether the pixel memory has been released.
func (p *Photo) Recycled() bool { return p.recycled }

// Recycle releases the composite pixels. Only the eviction path calls it.
func (p *Photo) Recycle() {
	p.image = nil
	p.recycled = true
}
