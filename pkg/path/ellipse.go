package path

import (
	"fmt"
	"math"
)

// lengthSteps is the segment count used for numeric arc-length of a full
// elliptical revolution.
const lengthSteps = 1024

// EllipticalArc is a directed arc of an ellipse with semi-axes RadiusX and
// RadiusY, rotated by Rotation radians about its center. StartAngle and
// EndAngle are parameter angles of the un-rotated ellipse, not geometric
// angles: the point at parameter t is
// center + R(Rotation) * (RadiusX*cos(t), RadiusY*sin(t)).
type EllipticalArc struct {
	Center     Point
	RadiusX    float64
	RadiusY    float64
	Rotation   float64
	StartAngle float64
	EndAngle   float64
	Clockwise  bool
}

// NewEllipticalArc returns the arc of the given ellipse swept from
// startAngle to endAngle in the given direction. Both semi-axes must be
// positive and the sweep non-empty.
func NewEllipticalArc(center Point, radiusX, radiusY, rotation, startAngle, endAngle float64, clockwise bool) (EllipticalArc, error) {
	if radiusX <= Epsilon || radiusY <= Epsilon {
		return EllipticalArc{}, fmt.Errorf("%w: elliptical arc semi-axes %g x %g", ErrDegenerate, radiusX, radiusY)
	}
	a := EllipticalArc{
		Center:     center,
		RadiusX:    radiusX,
		RadiusY:    radiusY,
		Rotation:   rotation,
		StartAngle: startAngle,
		EndAngle:   endAngle,
		Clockwise:  clockwise,
	}
	if a.Span() <= angleEps {
		return EllipticalArc{}, fmt.Errorf("%w: elliptical arc sweep from %g to %g is empty", ErrDegenerate, startAngle, endAngle)
	}
	return a, nil
}

// FullEllipse returns the complete ellipse, traversed counter-clockwise
// from parameter angle 0.
func FullEllipse(center Point, radiusX, radiusY, rotation float64) (EllipticalArc, error) {
	return NewEllipticalArc(center, radiusX, radiusY, rotation, 0, twoPi, false)
}

// Span returns the traversed parameter angle as a positive value in
// (0, 2*pi].
func (a EllipticalArc) Span() float64 {
	return sweepSpan(a.StartAngle, a.EndAngle, a.Clockwise)
}

// IsFullSweep reports whether the arc covers the whole ellipse.
func (a EllipticalArc) IsFullSweep() bool {
	return a.Span() >= twoPi-angleEps
}

// ContainsAngle reports whether parameter angle theta lies on the sweep.
func (a EllipticalArc) ContainsAngle(theta float64) bool {
	return sweepContains(theta, a.StartAngle, a.EndAngle, a.Clockwise)
}

// PointAt returns the point on the ellipse at parameter angle theta.
func (a EllipticalArc) PointAt(theta float64) Point {
	u := a.RadiusX * math.Cos(theta)
	v := a.RadiusY * math.Sin(theta)
	cosr := math.Cos(a.Rotation)
	sinr := math.Sin(a.Rotation)
	return Point{
		X: a.Center.X + u*cosr - v*sinr,
		Y: a.Center.Y + u*sinr + v*cosr,
	}
}

// LocalCoords maps a world point into the un-rotated ellipse frame
// centered on the ellipse. A point is on the ellipse when
// (lx/RadiusX)^2 + (ly/RadiusY)^2 equals 1.
func (a EllipticalArc) LocalCoords(p Point) (lx, ly float64) {
	dx := p.X - a.Center.X
	dy := p.Y - a.Center.Y
	cosr := math.Cos(a.Rotation)
	sinr := math.Sin(a.Rotation)
	return dx*cosr + dy*sinr, -dx*sinr + dy*cosr
}

// Start returns the point at StartAngle.
func (a EllipticalArc) Start() Point { return a.PointAt(a.StartAngle) }

// End returns the point at EndAngle.
func (a EllipticalArc) End() Point { return a.PointAt(a.EndAngle) }

// Sample returns a polyline approximation of the arc. resolution is the
// segment count a full revolution would receive; partial arcs get a
// proportional share, never fewer than two segments.
func (a EllipticalArc) Sample(resolution int) []Point {
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
func (a EllipticalArc) Reversed() Element {
	return EllipticalArc{
		Center:     a.Center,
		RadiusX:    a.RadiusX,
		RadiusY:    a.RadiusY,
		Rotation:   a.Rotation,
		StartAngle: a.EndAngle,
		EndAngle:   a.StartAngle,
		Clockwise:  !a.Clockwise,
	}
}

// Length returns the arc length by chord summation. Elliptical arc length
// has no elementary closed form; the step count keeps the relative error
// below 1e-6 for any sweep.
func (a EllipticalArc) Length() float64 {
	span := a.Span()
	steps := sweepSamples(span, lengthSteps)
	dir := 1.0
	if a.Clockwise {
		dir = -1.0
	}
	total := 0.0
	prev := a.Start()
	for i := 1; i <= steps; i++ {
		theta := a.StartAngle + dir*span*float64(i)/float64(steps)
		next := a.PointAt(theta)
		total += prev.DistanceTo(next)
		prev = next
	}
	return total
}
