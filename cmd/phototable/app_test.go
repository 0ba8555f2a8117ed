package main

import (
	"math/rand/v2"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/phototable"
	"github.com/gogpu/phototable/internal/source"
	"github.com/gogpu/phototable/internal/termhost"
)

type testApp struct {
	*app
	quits int
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 12)
	t.Cleanup(screen.Fini)

	term := termhost.New(screen)
	table, err := phototable.New(phototable.DefaultConfig(), source.NewPattern(rand.New(rand.NewPCG(1, 2))), term.Canvas(),
		phototable.WithClock(clockwork.NewFakeClock()), phototable.WithRand(rand.New(rand.NewPCG(3, 4))))
	require.NoError(t, err)

	ta := &testApp{}
	ta.app = &app{table: table, term: term, screen: screen, quit: func() { ta.quits++ }}
	term.Canvas().OnFinish(ta.app.quit)
	return ta
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t)
			a.handle(tt.ev)
			assert.Equal(t, 1, a.quits)
		})
	}
}

func TestKeyTapsEmptyTable(t *testing.T) {
	a := newTestApp(t)
	a.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	assert.Equal(t, 1, a.quits, "tap on an empty table finishes")
}

func TestDiscardWithoutSelection(t *testing.T) {
	a := newTestApp(t)
	a.handle(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	assert.Zero(t, a.quits)
	assert.False(t, a.table.HasSelection())
}

func TestMouseActsOnPressOnly(t *testing.T) {
	a := newTestApp(t)

	a.handle(tcell.NewEventMouse(5, 5, tcell.ButtonPrimary, tcell.ModNone))
	assert.Equal(t, 1, a.quits)

	a.handle(tcell.NewEventMouse(6, 5, tcell.ButtonPrimary, tcell.ModNone))
	assert.Equal(t, 1, a.quits, "drag is not a new press")

	a.handle(tcell.NewEventMouse(6, 5, tcell.ButtonNone, tcell.ModNone))
	a.handle(tcell.NewEventMouse(6, 5, tcell.ButtonPrimary, tcell.ModNone))
	assert.Equal(t, 2, a.quits)
}

func TestSecondaryClickOnEmptyTable(t *testing.T) {
	a := newTestApp(t)
	a.handle(tcell.NewEventMouse(5, 5, tcell.ButtonSecondary, tcell.ModNone))
	assert.Zero(t, a.quits)
}

func TestResizeLaysOutTable(t *testing.T) {
	a := newTestApp(t)
	a.screen.(tcell.SimulationScreen).SetSize(30, 20)
	a.handle(tcell.NewEventResize(30, 20))

	assert.True(t, a.table.Started())
	g := a.table.Geometry()
	assert.Equal(t, 30, g.Width)
	assert.Equal(t, 40, g.Height)
	assert.False(t, g.Landscape)
	assert.Equal(t, 40, a.term.Canvas().Height())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, splitList(" a, ,b c,"))
	assert.Nil(t, splitList(""))
}

func TestNewSourceFallsBackToPatterns(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	src, err := newSource(nil, rng)
	require.NoError(t, err)
	assert.IsType(t, &source.Pattern{}, src)

	src, err = newSource([]string{t.TempDir()}, rng)
	require.NoError(t, err)
	assert.IsType(t, &source.Pattern{}, src)
}
