package phototable

import (
	"math/rand/v2"

	"github.com/jonboulle/clockwork"
)

// Option configures a Table during creation.
//
// Example:
//
//	// Reproducible layout on a fake clock
//	clock := clockwork.NewFakeClock()
//	t, err := phototable.New(cfg, src, host,
//		phototable.WithClock(clock),
//		phototable.WithRand(rand.New(rand.NewPCG(1, 2))))
type Option func(*options)

// options holds optional configuration for Table creation.
type options struct {
	clock clockwork.Clock
	rng   *rand.Rand
}

// defaultOptions returns the wall clock and a randomly seeded generator.
func defaultOptions() options {
	return options{
		clock: clockwork.NewRealClock(),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithClock sets the time source for timers, tweens and selection expiry.
// A nil clock keeps the wall clock.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithRand sets the generator used for placement.
// A nil generator keeps the random default.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}
