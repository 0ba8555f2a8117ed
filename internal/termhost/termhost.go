// Package termhost shows a photo table in a terminal. Each character cell
// carries two vertically stacked pixels drawn as an upper half block.
package termhost

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/phototable"
)

// halfBlock paints the top pixel as foreground and the bottom as background.
const halfBlock = '▀'

// Terminal couples a tcell screen with the canvas the table draws on.
type Terminal struct {
	screen tcell.Screen
	canvas *phototable.Canvas
}

// New creates a terminal host on an initialized screen.
func New(screen tcell.Screen) *Terminal {
	cols, rows := screen.Size()
	return &Terminal{
		screen: screen,
		canvas: phototable.NewCanvas(cols, rows*2),
	}
}

// Canvas returns the canvas to hand to the table as its host.
func (t *Terminal) Canvas() *phototable.Canvas { return t.canvas }

// Resize matches the canvas to the screen and returns the canvas size.
func (t *Terminal) Resize() (width, height int) {
	cols, rows := t.screen.Size()
	t.canvas.Resize(cols, rows*2)
	return cols, rows * 2
}

// CellToPoint returns the canvas point at the center of a cell.
func CellToPoint(x, y int) phototable.Point {
	return phototable.Pt(float64(x)+0.5, float64(2*y)+1)
}

// Draw renders the canvas to the screen if it changed.
// It reports whether anything was drawn.
func (t *Terminal) Draw() bool {
	if !t.canvas.Dirty() {
		return false
	}
	img := t.canvas.Render()
	b := img.Bounds()
	for y := 0; y+1 < b.Dy(); y += 2 {
		for x := range b.Dx() {
			style := cellStyle(img.RGBAAt(x, y), img.RGBAAt(x, y+1))
			t.screen.SetContent(x, y/2, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	return true
}

// cellStyle colors a half block cell from its top and bottom pixels.
func cellStyle(top, bottom color.RGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
		Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
}
