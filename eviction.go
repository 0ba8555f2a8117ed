package phototable

// Evictor enforces the table capacity. Photos leave in arrival order: each
// fades out, then leaves the host and releases its pixels.
type Evictor struct {
	cfg   Config
	queue *Queue
	anim  *Animator
	host  Host
}

// NewEvictor creates an evictor over queue.
func NewEvictor(cfg Config, queue *Queue, anim *Animator, host Host) *Evictor {
	return &Evictor{cfg: cfg, queue: queue, anim: anim, host: host}
}

// Drain fades away the oldest photos until the queue is back within capacity.
// It reports how many photos it evicted.
func (e *Evictor) Drain() int {
	n := 0
	for e.queue.Len() > e.cfg.Capacity {
		p := e.queue.PopFront()
		Logger().Debug("phototable: evict", "photo", p.ID(), "queued", e.queue.Len())
		e.fadeAway(p, nil)
		n++
	}
	return n
}

// fadeAway fades p to transparent, removes it from the host and recycles it,
// then runs then if it is not nil. p must already be out of the queue.
func (e *Evictor) fadeAway(p *Photo, then func()) {
	from := p.transform
	to := from
	to.Alpha = 0
	e.anim.Start(p, Animation{
		From:     from,
		To:       to,
		Duration: e.cfg.FadeDuration,
		OnEnd: func() {
			e.host.RemovePhoto(p)
			p.Recycle()
			if then != nil {
				then()
			}
		},
	})
}

// MoveToBackOfQueue makes p the last photo to be evicted and raises it to the
// top layer. It does not animate.
func (e *Evictor) MoveToBackOfQueue(p *Photo) {
	e.host.BringToFront(p)
	e.host.Invalidate()
	e.queue.MoveToBack(p)
}
