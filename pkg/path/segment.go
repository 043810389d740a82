package path

import "fmt"

// LineSegment is a straight directed segment from P1 to P2.
type LineSegment struct {
	P1, P2 Point
}

// NewLineSegment returns the segment from p1 to p2. The endpoints must be
// distinct within Epsilon.
func NewLineSegment(p1, p2 Point) (LineSegment, error) {
	if p1.Near(p2, Epsilon) {
		return LineSegment{}, fmt.Errorf("%w: segment endpoints coincide at (%g, %g)", ErrDegenerate, p1.X, p1.Y)
	}
	return LineSegment{P1: p1, P2: p2}, nil
}

// Start returns P1.
func (s LineSegment) Start() Point { return s.P1 }

// End returns P2.
func (s LineSegment) End() Point { return s.P2 }

// Sample returns the two endpoints; a segment needs no interior points.
func (s LineSegment) Sample(resolution int) []Point {
	return []Point{s.P1, s.P2}
}

// Reversed returns the segment traversed from P2 to P1.
func (s LineSegment) Reversed() Element {
	return LineSegment{P1: s.P2, P2: s.P1}
}

// Length returns the distance between the endpoints.
func (s LineSegment) Length() float64 {
	return s.P1.DistanceTo(s.P2)
}

// pointAt returns P1 + t*(P2-P1).
func (s LineSegment) pointAt(t float64) Point {
	return Point{
		X: s.P1.X + t*(s.P2.X-s.P1.X),
		Y: s.P1.Y + t*(s.P2.Y-s.P1.Y),
	}
}
