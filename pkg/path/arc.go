package path

import (
	"fmt"
	"math"
)

// CircularArc is a directed arc of a circle. It runs from StartAngle to
// EndAngle, counter-clockwise unless Clockwise is set. Angles differing by
// a full revolution describe the whole circle.
type CircularArc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Clockwise  bool
}

// NewCircularArc returns the arc of the circle at center with the given
// radius, swept from startAngle to endAngle in the given direction. The
// radius must be positive and the sweep non-empty.
func NewCircularArc(center Point, radius, startAngle, endAngle float64, clockwise bool) (CircularArc, error) {
	if radius <= Epsilon {
		return CircularArc{}, fmt.Errorf("%w: circular arc radius %g", ErrDegenerate, radius)
	}
	a := CircularArc{
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Clockwise:  clockwise,
	}
	if a.Span() <= angleEps {
		return CircularArc{}, fmt.Errorf("%w: circular arc sweep from %g to %g is empty", ErrDegenerate, startAngle, endAngle)
	}
	return a, nil
}

// FullCircle returns the complete circle at center with the given radius,
// traversed counter-clockwise from angle 0.
func FullCircle(center Point, radius float64) (CircularArc, error) {
	return NewCircularArc(center, radius, 0, twoPi, false)
}

// Span returns the traversed angle as a positive value in (0, 2*pi].
func (a CircularArc) Span() float64 {
	return sweepSpan(a.StartAngle, a.EndAngle, a.Clockwise)
}

// IsFullCircle reports whether the arc covers the whole circle.
func (a CircularArc) IsFullCircle() bool {
	return a.Span() >= twoPi-angleEps
}

// ContainsAngle reports whether theta lies on the arc's sweep.
func (a CircularArc) ContainsAngle(theta float64) bool {
	return sweepContains(theta, a.StartAngle, a.EndAngle, a.Clockwise)
}

// PointAt returns the point on the circle at angle theta.
func (a CircularArc) PointAt(theta float64) Point {
	return Point{
		X: a.Center.X + a.Radius*math.Cos(theta),
		Y: a.Center.Y + a.Radius*math.Sin(theta),
	}
}

// Start returns the point at StartAngle.
func (a CircularArc) Start() Point { return a.PointAt(a.StartAngle) }

// End returns the point at EndAngle.
func (a CircularArc) End() Point { return a.PointAt(a.EndAngle) }

// Sample returns a polyline approximation of the arc. resolution is the
// segment count a full circle would receive; partial arcs get a
// proportional share, never fewer than two segments.
func (a CircularArc) Sample(resolution int) []Point {
	span := a.Span()
	steps := sweepSamples(span, resolution)
	dir := 1.0
	if a.Clockwise {
		dir = -1.0
	}
	points := make([]Point, 0, steps+1)
	for i := 0; i < steps; i++ {
		theta := a.StartAngle + dir*span*float64(i)/float64(steps)
		points = append(points, a.PointAt(theta))
	}
	points = append(points, a.PointAt(a.EndAngle))
	return points
}

// Reversed returns the arc traversed in the opposite direction.
func (a CircularArc) Reversed() Element {
	return CircularArc{
		Center:     a.Center,
		Radius:     a.Radius,
		StartAngle: a.EndAngle,
		EndAngle:   a.StartAngle,
		Clockwise:  !a.Clockwise,
	}
}

// Length returns the arc length, radius times span.
func (a CircularArc) Length() float64 {
	return a.Radius * a.Span()
}
