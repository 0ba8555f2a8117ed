package phototable

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// inboxSize bounds the closures waiting for the control goroutine.
const inboxSize = 64

// Loop is the control goroutine: it runs posted closures and steps frames.
// Everything owned by the table is touched only from inside the loop.
type Loop struct {
	clock clockwork.Clock
	inbox chan func()

	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop timed by clock.
func NewLoop(clock clockwork.Clock) *Loop {
	return &Loop{
		clock: clock,
		inbox: make(chan func(), inboxSize),
		done:  make(chan struct{}),
	}
}

// Post queues fn to run on the control goroutine. It is safe to call from
// any goroutine. Closures posted after Run returns are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.inbox <- fn:
	case <-l.done:
	}
}

// Run executes posted closures and calls frame every period until ctx ends.
func (l *Loop) Run(ctx context.Context, period time.Duration, frame func(now time.Time)) error {
	defer l.doneOnce.Do(func() { close(l.done) })

	ticker := l.clock.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.inbox:
			fn()
		case now := <-ticker.Chan():
			frame(now)
		}
	}
}
