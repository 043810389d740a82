// Package path defines the analytic curve primitives of the geometry
// kernel: line segments, circular arcs, elliptical arcs, and composite
// paths chained from them. It also provides the pairwise intersection
// routines between every element kind.
//
// All types are immutable values; every function is safe for concurrent
// use. Angles are in radians, measured counter-clockwise from the
// positive x axis.
package path

import (
	"errors"
	"math"
)

// Epsilon is the default tolerance for coincidence and degeneracy tests.
// Routines that compare quantities with larger characteristic magnitudes
// scale it up so that the comparison stays meaningful far from the origin.
const Epsilon = 1e-9

// ErrDegenerate is returned by constructors for elements with no extent:
// zero-length segments, non-positive radii, or empty angular sweeps.
var ErrDegenerate = errors.New("degenerate element")

// ErrDisconnected is returned when a composite path is given an element
// whose start point does not meet the current endpoint.
var ErrDisconnected = errors.New("elements do not connect")

// scaledEps widens Epsilon in proportion to a characteristic magnitude,
// so tests on large coordinates do not drown in float rounding. Magnitudes
// below 1 leave Epsilon unchanged.
func scaledEps(characteristic float64) float64 {
	if characteristic < 1 {
		return Epsilon
	}
	return Epsilon * characteristic
}

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance to q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Near reports whether q lies within tolerance of p.
func (p Point) Near(q Point, tolerance float64) bool {
	return p.DistanceTo(q) <= tolerance
}

// Element is a directed curve piece with analytic start and end points.
type Element interface {
	// Start returns the point the element begins at.
	Start() Point
	// End returns the point the element ends at.
	End() Point
	// Sample returns a polyline approximation from Start to End, both
	// included. resolution is the point count a full revolution of a
	// curved element would receive; straight elements ignore it.
	Sample(resolution int) []Point
	// Reversed returns the same curve traversed in the opposite direction.
	Reversed() Element
	// Length returns the arc length of the element.
	Length() float64
}

// Connects reports whether b begins where a ends, within tolerance.
func Connects(a, b Element, tolerance float64) bool {
	return a.End().Near(b.Start(), tolerance)
}
