// Package physics provides the geometry used for trail collision detection.
package physics

import "math"

// Point is a location in arena coordinates (origin top-left, y grows down).
type Point struct {
	X, Y float64
}

// Segment is a bounded line between two points.
type Segment struct {
	A, B Point
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Sqrt(DistanceSquared(a, b))
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

// SegmentsIntersect reports whether two bounded segments cross.
//
// Each segment is turned into a line a*x + b*y = c and the pair is solved with
// the determinant. Parallel and coincident lines (det == 0) never intersect,
// even when the segments overlap. A solution counts only when it lies inside
// the bounding box of both segments, bounds included.
func SegmentsIntersect(s1, s2 Segment) bool {
	a1 := s1.B.Y - s1.A.Y
	b1 := s1.A.X - s1.B.X
	c1 := a1*s1.A.X + b1*s1.A.Y

	a2 := s2.B.Y - s2.A.Y
	b2 := s2.A.X - s2.B.X
	c2 := a2*s2.A.X + b2*s2.A.Y

	det := a1*b2 - a2*b1
	if det == 0 {
		return false
	}

	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det

	return inBounds(s1, x, y) && inBounds(s2, x, y)
}

// inBounds checks that (x, y) is within the segment's bounding box.
func inBounds(s Segment, x, y float64) bool {
	return x >= math.Min(s.A.X, s.B.X) && x <= math.Max(s.A.X, s.B.X) &&
		y >= math.Min(s.A.Y, s.B.Y) && y <= math.Max(s.A.Y, s.B.Y)
}
