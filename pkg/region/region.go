// Package region implements closed planar regions with holes and their
// boolean algebra: area, containment, union, intersection, difference.
//
// A region is bounded by a closed CompositePath and may carry hole paths
// that exclude interior area. Boolean operations flatten curved
// boundaries to polygons before clipping, so their results are polygonal
// approximations; area and containment on unmodified circle and ellipse
// boundaries stay exact.
package region

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/planegeom/pkg/path"
)

// ErrOpenPath is returned when a boundary or hole path does not close.
var ErrOpenPath = errors.New("path is not closed")

const (
	// flattenResolution is the per-revolution segment count used when a
	// boolean operation converts curved boundaries to polygons.
	flattenResolution = 128
	// containResolution is the sampling density for ray-cast containment
	// on mixed boundaries.
	containResolution = 128
)

// Region is a closed area of the plane: one outer boundary, zero or more
// holes, and possibly further disjoint components produced by boolean
// operations.
type Region struct {
	boundary *path.CompositePath
	holes    []*path.CompositePath
	siblings []*Region
}

// New returns the region bounded by the given closed path, with the given
// holes cut out. Every path must be closed within its own tolerance.
func New(boundary *path.CompositePath, holes ...*path.CompositePath) (*Region, error) {
	if boundary == nil || !boundary.IsClosed() {
		return nil, fmt.Errorf("%w: region boundary must close", ErrOpenPath)
	}
	r := &Region{boundary: boundary}
	for _, h := range holes {
		if err := r.AddHole(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// FromPoints returns the polygonal region with the given vertices. The
// closing edge back to the first vertex is added when the point list does
// not already repeat it.
func FromPoints(points []path.Point) (*Region, error) {
	p, err := closedFromPoints(points)
	if err != nil {
		return nil, err
	}
	return New(p)
}

// closedFromPoints builds the closed polygon through points, repeating
// the first vertex when the caller did not.
func closedFromPoints(points []path.Point) (*path.CompositePath, error) {
	if n := len(points); n > 1 && !points[n-1].Near(points[0], path.Epsilon) {
		closed := make([]path.Point, 0, n+1)
		closed = append(closed, points...)
		closed = append(closed, points[0])
		points = closed
	}
	return path.FromPoints(points)
}

// FromCircle returns the disc at center with the given radius.
func FromCircle(center path.Point, radius float64) (*Region, error) {
	c, err := path.FullCircle(center, radius)
	if err != nil {
		return nil, err
	}
	p, err := path.NewCompositePath(c)
	if err != nil {
		return nil, err
	}
	return New(p)
}

// FromEllipse returns the elliptical region at center with semi-axes
// radiusX and radiusY, rotated by rotation radians.
func FromEllipse(center path.Point, radiusX, radiusY, rotation float64) (*Region, error) {
	e, err := path.FullEllipse(center, radiusX, radiusY, rotation)
	if err != nil {
		return nil, err
	}
	p, err := path.NewCompositePath(e)
	if err != nil {
		return nil, err
	}
	return New(p)
}

// FromHalfPlane approximates the half-plane to the left of the directed
// line p1->p2 with a rectangle extending size units along the line in each
// direction and 2*size units to the left. size must be positive and large
// relative to the shapes it will be combined with.
func FromHalfPlane(p1, p2 path.Point, size float64) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("half-plane size must be positive, got %g", size)
	}
	d := p1.DistanceTo(p2)
	if d <= path.Epsilon {
		return nil, fmt.Errorf("%w: half-plane through coincident points (%g, %g)", path.ErrDegenerate, p1.X, p1.Y)
	}
	dx := (p2.X - p1.X) / d
	dy := (p2.Y - p1.Y) / d
	// Left unit normal.
	nx, ny := -dy, dx
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	return FromPoints([]path.Point{
		{X: mx - dx*size, Y: my - dy*size},
		{X: mx + dx*size, Y: my + dy*size},
		{X: mx + dx*size + nx*2*size, Y: my + dy*size + ny*2*size},
		{X: mx - dx*size + nx*2*size, Y: my - dy*size + ny*2*size},
	})
}

// Boundary returns the outer boundary path of the primary component.
func (r *Region) Boundary() *path.CompositePath { return r.boundary }

// Holes returns the hole paths of the primary component.
func (r *Region) Holes() []*path.CompositePath {
	out := make([]*path.CompositePath, len(r.holes))
	copy(out, r.holes)
	return out
}

// Components returns every disjoint component of the region, the primary
// one first. A region built by the factories has exactly one component;
// boolean operations may produce more.
func (r *Region) Components() []*Region {
	out := make([]*Region, 0, 1+len(r.siblings))
	out = append(out, r)
	out = append(out, r.siblings...)
	return out
}

// AddHole cuts the area bounded by h out of the region. h must be a
// closed path; callers are responsible for keeping holes inside the
// boundary and disjoint from each other.
func (r *Region) AddHole(h *path.CompositePath) error {
	if h == nil || !h.IsClosed() {
		return fmt.Errorf("%w: hole path must close", ErrOpenPath)
	}
	r.holes = append(r.holes, h)
	return nil
}

// BoundaryPoints returns the flattened outer boundary of the primary
// component at the given per-revolution resolution.
func (r *Region) BoundaryPoints(resolution int) []path.Point {
	return r.boundary.Sample(resolution)
}

// HolePoints returns the flattened holes of the primary component.
func (r *Region) HolePoints(resolution int) [][]path.Point {
	out := make([][]path.Point, 0, len(r.holes))
	for _, h := range r.holes {
		out = append(out, h.Sample(resolution))
	}
	return out
}

// Area returns the total enclosed area: every component's boundary area
// minus its holes.
func (r *Region) Area() float64 {
	total := math.Abs(pathArea(r.boundary))
	for _, h := range r.holes {
		total -= math.Abs(pathArea(h))
	}
	if total < 0 {
		total = 0
	}
	for _, s := range r.siblings {
		total += s.Area()
	}
	return total
}

// SignedArea returns the area signed by the winding of the boundary:
// positive for counter-clockwise, negative for clockwise. Hole areas
// reduce the magnitude.
func (r *Region) SignedArea() float64 {
	signed := pathArea(r.boundary)
	sign := 1.0
	if signed < 0 {
		sign = -1.0
	}
	for _, h := range r.holes {
		signed -= sign * math.Abs(pathArea(h))
	}
	for _, s := range r.siblings {
		signed += s.SignedArea()
	}
	return signed
}
