package phototable

import "math"

// Easing maps linear animation progress in [0, 1] to eased progress.
// Every Easing returns 0 at 0 and 1 at 1.
type Easing func(t float64) float64

// Linear is the identity timing curve.
func Linear(t float64) float64 {
	return t
}

// Decelerate returns an ease-out curve that starts fast and slows toward
// the target: 1 - (1-t)^(2*factor). A factor of 1 is the classic quadratic
// ease-out; larger factors brake harder. Tosses use factor 3, pick-ups 2.
func Decelerate(factor float64) Easing {
	if factor == 1 {
		return func(t float64) float64 {
			return 1 - (1-t)*(1-t)
		}
	}
	exp := 2 * factor
	return func(t float64) float64 {
		return 1 - math.Pow(1-t, exp)
	}
}
