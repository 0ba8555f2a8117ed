package phototable

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
//
// The drop and pick-up motions travel in straight lines; Bezier is kept for
// path-based tosses.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// NewCubicBez creates a new cubic Bezier curve.
func NewCubicBez(p0, p1, p2, p3 Point) CubicBez {
	return CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	mt3 := mt2 * mt
	t2 := t * t
	t3 := t2 * t

	// (1-t)^3 * P0 + 3(1-t)^2*t * P1 + 3(1-t)*t^2 * P2 + t^3 * P3
	return Point{
		X: mt3*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t3*c.P3.X,
		Y: mt3*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t3*c.P3.Y,
	}
}

// Bezier evaluates the cubic Bezier curve p0..p3 at t.
// The endpoints are exact: t=0 returns p0 and t=1 returns p3.
// Outside [0, 1] the zero Point is returned.
func Bezier(t float64, p0, p1, p2, p3 Point) Point {
	switch {
	case t < 0 || t > 1:
		return Point{}
	case t == 0:
		return p0
	case t == 1:
		return p3
	}
	return NewCubicBez(p0, p1, p2, p3).Eval(t)
}
