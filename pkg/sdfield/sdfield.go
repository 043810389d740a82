// Package sdfield provides a signed-distance view of regions using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfield

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/planegeom/pkg/path"
	"github.com/chazu/planegeom/pkg/region"
)

// polygonResolution is the per-revolution sampling density used when a
// curved boundary has no exact SDF primitive.
const polygonResolution = 64

// ellipseResolution is the denser sampling used for full ellipses, which
// have no exact SDF primitive either but are common enough to deserve
// tighter distances.
const ellipseResolution = 256

// Field is a signed-distance view of a region: negative inside, positive
// outside, zero on the boundary. Circle boundaries give exact distances;
// every other boundary, ellipses included, is a polygonal approximation
// whose error shrinks with the sampling density.
type Field struct {
	s sdf.SDF2
}

// FromRegion builds a signed-distance field for the region, with every
// component unioned in and every hole subtracted.
func FromRegion(r *region.Region) (*Field, error) {
	if r == nil {
		return nil, fmt.Errorf("nil region")
	}
	var parts []sdf.SDF2
	for _, comp := range r.Components() {
		s, err := boundarySDF(comp.Boundary())
		if err != nil {
			return nil, err
		}
		for _, h := range comp.Holes() {
			hs, err := boundarySDF(h)
			if err != nil {
				return nil, err
			}
			s = sdf.Difference2D(s, hs)
		}
		parts = append(parts, s)
	}
	if len(parts) == 1 {
		return &Field{s: parts[0]}, nil
	}
	return &Field{s: sdf.Union2D(parts...)}, nil
}

// boundarySDF converts one closed path to an SDF2.
func boundarySDF(p *path.CompositePath) (sdf.SDF2, error) {
	if els := p.Elements(); len(els) == 1 {
		switch e := els[0].(type) {
		case path.CircularArc:
			if e.IsFullCircle() {
				c, err := sdf.Circle2D(e.Radius)
				if err != nil {
					return nil, fmt.Errorf("circle sdf: %w", err)
				}
				m := sdf.Translate2d(v2.Vec{X: e.Center.X, Y: e.Center.Y})
				return sdf.Transform2D(c, m), nil
			}
		case path.EllipticalArc:
			// A scaled circle would keep the sign exact but skew the
			// distance magnitude off-axis; a dense polygon keeps both
			// close.
			if e.IsFullSweep() {
				return polygonSDF(p, ellipseResolution)
			}
		}
	}
	return polygonSDF(p, polygonResolution)
}

// polygonSDF flattens a closed path at the given per-revolution density
// and wraps it as a polygonal SDF.
func polygonSDF(p *path.CompositePath, resolution int) (sdf.SDF2, error) {
	pts := p.Sample(resolution)
	if n := len(pts); n > 1 && pts[0].Near(pts[n-1], p.Tolerance()) {
		pts = pts[:n-1]
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("boundary flattens to %d points", len(pts))
	}
	verts := make([]v2.Vec, len(pts))
	for i, pt := range pts {
		verts[i] = v2.Vec{X: pt.X, Y: pt.Y}
	}
	poly, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, fmt.Errorf("polygon sdf: %w", err)
	}
	return poly, nil
}

// Distance returns the signed distance from (x, y) to the region
// boundary, negative inside.
func (f *Field) Distance(x, y float64) float64 {
	return f.s.Evaluate(v2.Vec{X: x, Y: y})
}

// Contains reports whether (x, y) is inside or on the boundary.
func (f *Field) Contains(x, y float64) bool {
	return f.Distance(x, y) <= 0
}

// BoundingBox returns the axis-aligned bounding box of the field.
func (f *Field) BoundingBox() (min, max [2]float64) {
	bb := f.s.BoundingBox()
	min = [2]float64{bb.Min.X, bb.Min.Y}
	max = [2]float64{bb.Max.X, bb.Max.Y}
	return min, max
}
