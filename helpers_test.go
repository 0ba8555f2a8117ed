package phototable

import (
	"image"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

const waitTimeout = 2 * time.Second

// runPending runs every closure already queued, without waiting.
func (l *Loop) runPending() int {
	n := 0
	for {
		select {
		case fn := <-l.inbox:
			fn()
			n++
		default:
			return n
		}
	}
}

// runOne waits up to timeout for one closure and runs it.
func (l *Loop) runOne(timeout time.Duration) bool {
	select {
	case fn := <-l.inbox:
		fn()
		return true
	case <-time.After(timeout):
		return false
	}
}

// fakeHost records what the table asks of its surface.
type fakeHost struct {
	photos        []*Photo
	removed       []*Photo
	invalidations int
	finished      int
}

func (h *fakeHost) AddPhoto(p *Photo) { h.photos = append(h.photos, p) }

func (h *fakeHost) RemovePhoto(p *Photo) {
	if i := slices.Index(h.photos, p); i >= 0 {
		h.photos = slices.Delete(h.photos, i, i+1)
	}
	h.removed = append(h.removed, p)
}

func (h *fakeHost) BringToFront(p *Photo) {
	if i := slices.Index(h.photos, p); i >= 0 {
		h.photos = append(slices.Delete(h.photos, i, i+1), p)
	}
}

func (h *fakeHost) Invalidate() { h.invalidations++ }
func (h *fakeHost) Finish()     { h.finished++ }

func (h *fakeHost) top() *Photo {
	if len(h.photos) == 0 {
		return nil
	}
	return h.photos[len(h.photos)-1]
}

// finderHost is a fakeHost that reports a fixed photo under every point.
type finderHost struct {
	fakeHost
	at *Photo
}

func (h *finderHost) PhotoAt(Point) *Photo { return h.at }

// result is one scripted decode. A non-positive width fails.
type result struct {
	w, h int
	name string
}

// scriptedSource replays results in order, then repeats fallback.
// A non-nil gate blocks every call until it receives or closes.
type scriptedSource struct {
	mu       sync.Mutex
	results  []result
	fallback result
	gate     chan struct{}
	calls    int
	scratch  [][]byte
}

func solidSource(w, h int) *scriptedSource {
	return &scriptedSource{fallback: result{w: w, h: h}}
}

func failingSource() *scriptedSource {
	return &scriptedSource{}
}

func (s *scriptedSource) Next(opts *DecodeOptions, maxLong, maxShort int) image.Image {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.scratch = append(s.scratch, opts.TempStorage)
	r := s.fallback
	if len(s.results) > 0 {
		r = s.results[0]
		s.results = s.results[1:]
	}
	if r.w <= 0 || r.h <= 0 {
		return nil
	}
	opts.OutWidth, opts.OutHeight, opts.OutName = r.w, r.h, r.name
	return image.NewRGBA(image.Rect(0, 0, r.w, r.h))
}

func (s *scriptedSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// newTestTable builds a laid out but unstarted table on a fake clock.
func newTestTable(t *testing.T, cfg Config, src Source) (*Table, *fakeHost, *clockwork.FakeClock) {
	t.Helper()
	host := &fakeHost{}
	tbl, clock := newTestTableOn(t, cfg, src, host)
	return tbl, host, clock
}

func newTestTableOn(t *testing.T, cfg Config, src Source, host Host) (*Table, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	tbl, err := New(cfg, src, host, WithClock(clock), WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tbl.OnResize(1000, 600)
	return tbl, clock
}

// loadOne launches and waits for the load to complete, returning the photo.
func loadOne(t *testing.T, tbl *Table) *Photo {
	t.Helper()
	before := tbl.queue.Len()
	tbl.Launch()
	if !tbl.loop.runOne(waitTimeout) {
		t.Fatal("load did not complete")
	}
	if tbl.queue.Len() != before+1 {
		t.Fatalf("queue length = %d, want %d", tbl.queue.Len(), before+1)
	}
	return tbl.queue.items[tbl.queue.Len()-1]
}

// settle runs every tween to completion, including tweens started by
// completion callbacks.
func settle(tbl *Table, clock clockwork.Clock) {
	for range 10 {
		if tbl.anim.Len() == 0 {
			return
		}
		tbl.Step(clock.Now().Add(time.Hour))
	}
}
