// Package physics provides vector math, overlap tests and broad-phase lookup.
package physics

import "math"

// Vec2 is a point or displacement in world space (y points up).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// PointInCircle checks if p is within radius of center c.
func PointInCircle(p, c Vec2, radius float64) bool {
	return DistanceSquared(p, c) <= radius*radius
}

// CirclesOverlap checks if two circles overlap. Touching circles count as overlapping,
// so two zero-distance circles always collide.
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(c1, c2) <= minDist*minDist
}

// Rect is an axis-aligned rectangle in world space.
type Rect struct {
	Min, Max Vec2
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Contains reports whether p lies inside the rectangle (edges included).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Centered returns a rectangle of the given half extents around the origin.
func Centered(halfWidth, halfHeight float64) Rect {
	return Rect{
		Min: Vec2{X: -halfWidth, Y: -halfHeight},
		Max: Vec2{X: halfWidth, Y: halfHeight},
	}
}
