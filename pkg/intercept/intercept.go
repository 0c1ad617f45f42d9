// Package intercept holds the geometry a point-defence turret uses to aim at a
// moving projectile: where the turret's own shot and the target's path cross.
package intercept

import "math"

// Vec2 is a position on the ground plane, in cells.
type Vec2 struct {
	X, Z float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Z + o.Z} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Z - o.Z} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Z * f} }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Z - v.Z*o.X }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Z) }
func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Z == o.Z }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

const epsilon = 1e-9

// TryFindIntersectionPoint intersects segment a1-a2 with segment b1-b2.
// Parallel and collinear segments report no intersection.
func TryFindIntersectionPoint(a1, a2, b1, b2 Vec2) (Vec2, bool) {
	r := a2.Sub(a1)
	s := b2.Sub(b1)
	denom := r.Cross(s)
	if math.Abs(denom) < epsilon {
		return Vec2{}, false
	}

	qp := b1.Sub(a1)
	t := qp.Cross(s) / denom
	u := qp.Cross(r) / denom
	if t < -epsilon || t > 1+epsilon || u < -epsilon || u > 1+epsilon {
		return Vec2{}, false
	}
	return a1.Add(r.Scale(t)), true
}
