package phototable

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Scheduler is a single-slot, cancel-and-replace timer. At most one trigger
// is pending; arming a new one discards the previous one.
//
// Timers fire on clock goroutines, so the trigger is posted to the control
// goroutine. A trigger that was already posted when a newer ScheduleNext or
// Stop superseded it is dropped by the generation check.
type Scheduler struct {
	clock clockwork.Clock
	post  func(func())
	fire  func()

	timer clockwork.Timer
	gen   uint64
}

// NewScheduler creates a scheduler that posts fire through post.
func NewScheduler(clock clockwork.Clock, post func(func()), fire func()) *Scheduler {
	return &Scheduler{clock: clock, post: post, fire: fire}
}

// ScheduleNext replaces any pending trigger with one firing after d.
func (s *Scheduler) ScheduleNext(d time.Duration) {
	s.Stop()
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() {
		s.post(func() {
			if gen != s.gen {
				return
			}
			s.timer = nil
			s.fire()
		})
	})
	Logger().Debug("phototable: next launch scheduled", "in", d)
}

// Stop disarms the pending trigger, if any.
func (s *Scheduler) Stop() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Pending reports whether a trigger is armed.
func (s *Scheduler) Pending() bool {
	return s.timer != nil
}
