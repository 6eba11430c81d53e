package parallax

import "fmt"

// Vec3 is a world-space position. Z is carried through untouched.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// driftDirection points toward negative x; backgrounds drift against forward travel.
var driftDirection = Vec3{X: -1}

// ViewportBounds returns the left and right world x of v.
func ViewportBounds(v Viewport) (left, right float64) {
	halfWidth := v.HalfHeight() * v.Aspect()
	x := v.Position().X
	return x - halfWidth, x + halfWidth
}

// CheckWrapMargin reports whether margin keeps the two wrap zones of v
// disjoint. The viewport span must exceed 2*margin.
func CheckWrapMargin(v Viewport, margin float64) error {
	if v == nil {
		return nil
	}
	left, right := ViewportBounds(v)
	if span := right - left; span <= 2*margin {
		return fmt.Errorf("%w: span %g, margin %g", ErrWrapMarginTooWide, span, margin)
	}
	return nil
}

// wrapX returns the wrapped x for a layer at x, and whether it moved.
func wrapX(x, left, right, margin float64) (float64, bool) {
	if x < left-margin {
		return right + margin, true
	}
	if x > right+margin {
		return left - margin, true
	}
	return x, false
}
