package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/phototable"
	"github.com/gogpu/phototable/internal/termhost"
)

// app routes terminal events to the table. handle runs on the control
// goroutine.
type app struct {
	table  *phototable.Table
	term   *termhost.Terminal
	screen tcell.Screen
	quit   func()

	buttons tcell.ButtonMask
}

// layout sizes the canvas to the screen and lays the table out.
func (a *app) layout() {
	w, h := a.term.Resize()
	a.table.OnLayout(0, 0, w, h)
}

func (a *app) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.layout()
		a.screen.Sync()

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			a.quit()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			a.quit()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'x':
			if p := a.table.Selected(); p != nil {
				a.table.Discard(p)
			}
		default:
			a.table.OnTap()
		}

	case *tcell.EventMouse:
		// Act on presses only, not on releases or drags.
		pressed := ev.Buttons() &^ a.buttons
		a.buttons = ev.Buttons()
		pt := termhost.CellToPoint(ev.Position())
		switch {
		case pressed&tcell.ButtonPrimary != 0:
			a.table.TapAt(pt)
		case pressed&tcell.ButtonSecondary != 0:
			if p := a.term.Canvas().PhotoAt(pt); p != nil {
				a.table.MoveToBackOfQueue(p)
			}
		}
	}
}
