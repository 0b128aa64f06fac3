// Package board provides the waypoint graph the token travels across.
package board

import "math"

// Vec2 is a 2D position in board space.
type Vec2 struct {
	X, Y float64
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Dist returns the Euclidean distance to another position.
func (v Vec2) Dist(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Bezier evaluates a quadratic Bezier curve at t in [0,1].
// p0 is the start, c the control point, p1 the end. Values of t outside
// [0,1] are clamped so callers can feed raw animation progress.
func Bezier(p0, c, p1 Vec2, t float64) Vec2 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	u := 1 - t
	// (1-t)^2*p0 + 2(1-t)t*c + t^2*p1
	return p0.Scale(u * u).Add(c.Scale(2 * u * t)).Add(p1.Scale(t * t))
}
