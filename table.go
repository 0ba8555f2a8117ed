package phototable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Host is the display surface a Table drives. All calls come from the
// control goroutine.
type Host interface {
	// AddPhoto places p on the top layer.
	AddPhoto(p *Photo)
	// RemovePhoto takes p off the surface.
	RemovePhoto(p *Photo)
	// BringToFront raises p above every other photo.
	BringToFront(p *Photo)
	// Invalidate requests a redraw.
	Invalidate()
	// Finish ends the session.
	Finish()
}

// PhotoFinder is an optional Host capability used by Table.TapAt.
type PhotoFinder interface {
	// PhotoAt returns the topmost photo under pt, or nil.
	PhotoAt(pt Point) *Photo
}

// Table is the surface controller. It owns the display queue and the
// selection, reacts to layout and taps, and coordinates loading, placement,
// scheduling and eviction.
//
// A Table is not safe for concurrent use. Every method must be called on the
// control goroutine: from inside Run, or through Post.
type Table struct {
	cfg   Config
	host  Host
	clock clockwork.Clock

	loop   *Loop
	anim   *Animator
	queue  Queue
	place  *Placement
	evict  *Evictor
	sched  *Scheduler
	loader *Loader

	geom    Geometry
	started bool

	selected   *Photo
	selectedAt time.Time
}

// New creates a table pulling images from src and showing them on host.
func New(cfg Config, src Source, host Host, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrInvalidConfig)
	}
	if host == nil {
		return nil, fmt.Errorf("%w: nil host", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Table{
		cfg:   cfg,
		host:  host,
		clock: o.clock,
		loop:  NewLoop(o.clock),
		anim:  NewAnimator(o.clock),
		place: NewPlacement(cfg, o.rng),
	}
	t.evict = NewEvictor(cfg, &t.queue, t.anim, host)
	t.sched = NewScheduler(o.clock, t.loop.Post, t.onTrigger)
	t.loader = NewLoader(src, cfg.Inset, t.loop.Post, t.TapPhoto)
	return t, nil
}

// Post queues fn to run on the control goroutine. Safe from any goroutine.
func (t *Table) Post(fn func()) { t.loop.Post(fn) }

// Run drives the table until ctx ends: it runs posted work and steps
// animations every FramePeriod, calling frame after each step. On exit it
// stops the scheduler and cancels pending loads.
func (t *Table) Run(ctx context.Context, frame func()) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t.loader.ctx = ctx
	defer t.sched.Stop()

	err := t.loop.Run(ctx, t.cfg.FramePeriod, func(now time.Time) {
		t.Step(now)
		if frame != nil {
			frame()
		}
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Step advances every animation to now and invalidates the host if anything
// moved. It reports whether anything moved.
func (t *Table) Step(now time.Time) bool {
	if !t.anim.Step(now) {
		return false
	}
	t.host.Invalidate()
	return true
}

// Start begins the launch cycle. Only the first call has an effect.
func (t *Table) Start() {
	if t.started {
		return
	}
	t.started = true
	Logger().Info("phototable: start", "capacity", t.cfg.Capacity, "period", t.cfg.DropPeriod)
	t.sched.ScheduleNext(t.cfg.DropPeriod)
	t.Launch()
}

// Started reports whether Start has run.
func (t *Table) Started() bool { return t.started }

// OnLayout is the host layout callback.
func (t *Table) OnLayout(left, top, right, bottom int) {
	t.OnResize(right-left, bottom-top)
	t.Start()
}

// OnResize recomputes the geometry. When the orientation flips every queued
// photo is tossed again and the selection is picked up again.
func (t *Table) OnResize(w, h int) {
	wasLandscape := t.geom.Landscape
	t.geom = geometryFor(t.cfg, w, h)
	if t.geom.Landscape == wasLandscape {
		return
	}

	Logger().Debug("phototable: orientation changed", "width", w, "height", h, "landscape", t.geom.Landscape)
	for _, p := range t.queue.items {
		t.dropOnTable(p)
	}
	if t.selected != nil {
		t.pickUp(t.selected)
	}
	t.host.Invalidate()
}

// Geometry returns the metrics of the latest resize.
func (t *Table) Geometry() Geometry { return t.geom }

// Queue returns the queued photos, oldest first.
func (t *Table) Queue() []*Photo { return t.queue.Items() }

// HasSelection reports whether a photo is picked up.
func (t *Table) HasSelection() bool { return t.selected != nil }

// Selected returns the picked up photo, or nil.
func (t *Table) Selected() *Photo { return t.selected }

// SetSelection picks up p. A photo already picked up goes back to the table.
// Photos that are not queued, such as ones fading away, are ignored.
func (t *Table) SetSelection(p *Photo) {
	if p == nil || p == t.selected || !t.queue.Contains(p) {
		return
	}
	if prev := t.selected; prev != nil {
		t.selected = nil
		t.queue.MoveToBack(prev)
		t.dropOnTable(prev)
	}

	t.queue.Remove(p)
	t.selected = p
	t.selectedAt = t.clock.Now()
	t.host.BringToFront(p)
	t.pickUp(p)
	t.host.Invalidate()
	Logger().Debug("phototable: pick up", "photo", p.ID())
}

// ClearSelection forgets the selection without animating it. The photo goes
// back to the tail of the queue.
func (t *Table) ClearSelection() {
	p := t.selected
	if p == nil {
		return
	}
	t.selected = nil
	t.evict.MoveToBackOfQueue(p)
}

// OnTap handles a tap on the empty table: drop the selection, or else end
// the session when TapToExit is set.
func (t *Table) OnTap() {
	switch {
	case t.selected != nil:
		t.dropSelection()
	case t.cfg.TapToExit:
		Logger().Info("phototable: tap to exit")
		t.host.Finish()
	}
}

// TapPhoto handles a tap on p: tapping the selection drops it, tapping a
// photo on the table picks it up. Photos on their way out are ignored.
func (t *Table) TapPhoto(p *Photo) {
	switch {
	case p == nil:
	case p == t.selected:
		t.dropSelection()
	case t.queue.Contains(p):
		t.SetSelection(p)
	}
}

// TapAt routes a tap at pt to the photo under it when the host can find one,
// and to OnTap otherwise.
func (t *Table) TapAt(pt Point) {
	if f, ok := t.host.(PhotoFinder); ok {
		if p := f.PhotoAt(pt); p != nil && (p == t.selected || t.queue.Contains(p)) {
			p.Tap()
			return
		}
	}
	t.OnTap()
}

// MoveToBackOfQueue makes a queued photo the last to be evicted.
// It reports whether p was queued.
func (t *Table) MoveToBackOfQueue(p *Photo) bool {
	if !t.queue.Contains(p) {
		return false
	}
	t.evict.MoveToBackOfQueue(p)
	return true
}

// Discard fades p away right now and schedules a replacement after
// NowDropDelay. It reports whether p was on the table.
func (t *Table) Discard(p *Photo) bool {
	switch {
	case p == nil:
		return false
	case p == t.selected:
		t.selected = nil
	case !t.queue.Remove(p):
		return false
	}
	Logger().Debug("phototable: discard", "photo", p.ID())
	t.evict.fadeAway(p, func() {
		t.sched.ScheduleNext(t.cfg.NowDropDelay)
	})
	return true
}

// Launch drops a selection that has been up longer than SelectionTimeout,
// or else requests the next photo if no load is in flight.
func (t *Table) Launch() {
	if t.selected != nil && t.clock.Since(t.selectedAt) > SelectionTimeout {
		Logger().Debug("phototable: selection expired", "photo", t.selected.ID())
		t.dropSelection()
		return
	}
	if t.geom.LongSide <= 0 || t.geom.ShortSide <= 0 {
		Logger().Debug("phototable: no layout yet, skipping launch")
		return
	}
	if t.loader.RequestNext(t.geom.LongSide, t.geom.ShortSide, t.onLoaded) {
		Logger().Debug("phototable: launching", "long", t.geom.LongSide, "short", t.geom.ShortSide)
	}
}

// onTrigger is the scheduler callback.
func (t *Table) onTrigger() {
	t.sched.ScheduleNext(t.cfg.DropPeriod)
	t.Launch()
}

// onLoaded stages a freshly loaded photo off the table and tosses it on.
func (t *Table) onLoaded(p *Photo) {
	if p == nil {
		Logger().Debug("phototable: load produced nothing")
		return
	}

	// The previous drop may still be in the air.
	t.evict.Drain()

	t.host.AddPhoto(p)
	if t.selected != nil {
		t.host.BringToFront(t.selected)
	}

	long := float64(t.geom.LongSide)
	p.transform = Transform{X: -long, Y: -long, Rotation: -100, ScaleX: 1, ScaleY: 1, Alpha: 1}
	t.queue.Push(p)
	t.dropOnTable(p)
	t.host.Invalidate()
	Logger().Debug("phototable: drop", "photo", p.ID(), "name", p.Name(), "queued", t.queue.Len())

	if t.queue.Len() < t.cfg.Capacity {
		t.sched.ScheduleNext(t.cfg.FastDropPeriod)
	}
}

// dropSelection tosses the selection back onto the table.
func (t *Table) dropSelection() {
	p := t.selected
	t.ClearSelection()
	t.dropOnTable(p)
}

// dropOnTable tosses p to a random spot and drains the queue once it lands.
func (t *Table) dropOnTable(p *Photo) {
	anim := t.place.Drop(p, t.geom)
	anim.OnEnd = func() { t.evict.Drain() }
	t.anim.Start(p, anim)
}

// pickUp centers p over the whole table.
func (t *Table) pickUp(p *Photo) {
	t.anim.Start(p, t.place.PickUp(p, float64(t.geom.Width), float64(t.geom.Height)))
}
