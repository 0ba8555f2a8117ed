package phototable

// Transform is the on-table placement of a photo.
//
// X and Y locate the top-left corner of the unscaled photo. Rotation is in
// degrees, positive clockwise. Scale and rotation pivot around the photo
// center. Alpha is the opacity in [0, 1].
type Transform struct {
	X, Y           float64
	Rotation       float64
	ScaleX, ScaleY float64
	Alpha          float64
}

// IdentityTransform returns an unrotated, unscaled, opaque transform at the origin.
func IdentityTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Alpha: 1}
}

// Position returns the top-left corner as a Point.
func (t Transform) Position() Point {
	return Point{X: t.X, Y: t.Y}
}

// Lerp interpolates every component between t and u.
// f=0 returns t, f=1 returns u.
func (t Transform) Lerp(u Transform, f float64) Transform {
	return Transform{
		X:        lerp(t.X, u.X, f),
		Y:        lerp(t.Y, u.Y, f),
		Rotation: lerp(t.Rotation, u.Rotation, f),
		ScaleX:   lerp(t.ScaleX, u.ScaleX, f),
		ScaleY:   lerp(t.ScaleY, u.ScaleY, f),
		Alpha:    lerp(t.Alpha, u.Alpha, f),
	}
}

func lerp(a, b, f float64) float64 {
	return (b-a)*f + a
}
