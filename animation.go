package phototable

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Animation is a toolkit-neutral tween descriptor: move a photo from one
// transform to another over Duration along an Easing curve, then run OnEnd.
type Animation struct {
	From     Transform
	To       Transform
	Duration time.Duration
	Easing   Easing
	OnEnd    func()
}

// tween is a running Animation bound to its photo.
type tween struct {
	photo *Photo
	anim  Animation
	start time.Time
}

// Animator runs tweens on the control goroutine.
//
// A photo has at most one running tween: starting another supersedes it, and
// the superseded tween's OnEnd never runs.
type Animator struct {
	clock  clockwork.Clock
	tweens []*tween
}

// NewAnimator creates an animator that timestamps tweens with clock.
func NewAnimator(clock clockwork.Clock) *Animator {
	return &Animator{clock: clock}
}

// Start cancels any tween running on p, snaps p to anim.From and starts anim.
func (a *Animator) Start(p *Photo, anim Animation) {
	a.Cancel(p)
	if anim.Easing == nil {
		anim.Easing = Linear
	}
	p.transform = anim.From
	a.tweens = append(a.tweens, &tween{photo: p, anim: anim, start: a.clock.Now()})
}

// Cancel stops the tween running on p, leaving p where it is.
// It reports whether a tween was running.
func (a *Animator) Cancel(p *Photo) bool {
	for i, tw := range a.tweens {
		if tw.photo == p {
			a.tweens = append(a.tweens[:i], a.tweens[i+1:]...)
			return true
		}
	}
	return false
}

// Running reports whether p has a tween in progress.
func (a *Animator) Running(p *Photo) bool {
	for _, tw := range a.tweens {
		if tw.photo == p {
			return true
		}
	}
	return false
}

// Len returns the number of running tweens.
func (a *Animator) Len() int {
	return len(a.tweens)
}

// Step advances every tween to now and runs the completion callbacks of the
// tweens that finished, in start order. It reports whether anything moved.
func (a *Animator) Step(now time.Time) bool {
	if len(a.tweens) == 0 {
		return false
	}

	var done []*tween
	keep := a.tweens[:0]
	for _, tw := range a.tweens {
		f := 1.0
		if tw.anim.Duration > 0 {
			f = float64(now.Sub(tw.start)) / float64(tw.anim.Duration)
		}
		switch {
		case f >= 1:
			tw.photo.transform = tw.anim.To
			done = append(done, tw)
			continue
		case f < 0:
			f = 0
		}
		tw.photo.transform = tw.anim.From.Lerp(tw.anim.To, tw.anim.Easing(f))
		keep = append(keep, tw)
	}
	clear(a.tweens[len(keep):])
	a.tweens = keep

	// Callbacks may start new tweens, so they run after the list is settled.
	for _, tw := range done {
		if tw.anim.OnEnd != nil {
			tw.anim.OnEnd()
		}
	}
	return true
}
