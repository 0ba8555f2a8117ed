package phototable

import (
	"math"
	"math/rand/v2"
	"time"
)

// Toss timing constants.
const (
	// dropSpeed is the nominal travel speed of a drop, in pixels per second.
	dropSpeed = 400.0
	// minDropDuration is the shortest drop, so even tiny tosses read as a toss.
	minDropDuration = time.Second
	// pickUpSpeed is the nominal travel speed of a pick-up.
	pickUpSpeed = 1000.0
	// minPickUpDuration is the shortest pick-up.
	minPickUpDuration = 500 * time.Millisecond
	// spread scales the normal samples around the table center.
	spread = 0.15
)

// Placement computes drop and pick-up motions.
// It draws randomness from an injected source so layouts are reproducible.
type Placement struct {
	cfg Config
	rng *rand.Rand
}

// NewPlacement creates a placement engine for cfg drawing from rng.
func NewPlacement(cfg Config, rng *rand.Rand) *Placement {
	return &Placement{cfg: cfg, rng: rng}
}

// Drop returns the motion that tosses p onto a table with geometry g.
//
// The rotation is uniform in [-MaxRotation, MaxRotation]. The target is the
// table center jittered by normal samples scaled to 15% of each dimension,
// shifted up and left by half the dropped photo long side.
func (pl *Placement) Drop(p *Photo, g Geometry) Animation {
	angle := lerp(-pl.cfg.MaxRotation, pl.cfg.MaxRotation, pl.rng.Float64())
	target := randInCenter(pl.rng.NormFloat64(), pl.rng.NormFloat64(), float64(g.Width), float64(g.Height))

	offset := pl.cfg.TableRatio * float64(g.LongSide) / 2
	target = target.Sub(Pt(offset, offset))

	from := p.transform
	scale := pl.cfg.TableRatio / pl.cfg.ImageRatio
	return Animation{
		From: from,
		To: Transform{
			X:        target.X,
			Y:        target.Y,
			Rotation: angle,
			ScaleX:   scale,
			ScaleY:   scale,
			Alpha:    from.Alpha,
		},
		Duration: travelTime(from.Position().Distance(target), dropSpeed, minDropDuration),
		Easing:   Decelerate(3),
	}
}

// PickUp returns the motion that centers p on a w x h surface at the
// largest scale that still fits, turning it upright the short way round.
func (pl *Placement) PickUp(p *Photo, w, h float64) Animation {
	pw, ph := p.Size()
	scale := min(h/ph, w/pw)
	target := Pt((w-pw)/2, (h-ph)/2)

	from := p.transform
	from.Rotation = WrapAngle(from.Rotation)
	return Animation{
		From: from,
		To: Transform{
			X:      target.X,
			Y:      target.Y,
			ScaleX: scale,
			ScaleY: scale,
			Alpha:  from.Alpha,
		},
		Duration: travelTime(from.Position().Distance(target), pickUpSpeed, minPickUpDuration),
		Easing:   Decelerate(2),
	}
}

// WrapAngle maps any angle in degrees into [-180, 180).
func WrapAngle(angle float64) float64 {
	r := math.Mod(angle+180, 360)
	if r < 0 {
		r += 360
	}
	// r+360 rounds up to 360 for tiny negative r.
	if r >= 360 {
		r -= 360
	}
	return r - 180
}

// randInCenter offsets the center of a w x h table by normal samples i, j.
func randInCenter(i, j, w, h float64) Point {
	return Point{
		X: 0.5*w + spread*w*i,
		Y: 0.5*h + spread*h*j,
	}
}

// travelTime converts a distance in pixels to whole milliseconds at speed
// pixels per second, never shorter than floor.
func travelTime(dist, speed float64, floor time.Duration) time.Duration {
	d := time.Duration(int64(1000*dist/speed)) * time.Millisecond
	return max(d, floor)
}
