package region

import (
	"math"

	"github.com/chazu/planegeom/pkg/clip"
	"github.com/chazu/planegeom/pkg/path"
)

// Intersection returns the overlap of the two regions, or nil when they
// do not overlap. The result is polygonal: curved boundaries are
// flattened before clipping.
func (r *Region) Intersection(o *Region) *Region {
	return combine(clip.OpIntersection, r, o)
}

// Union returns the combined area of the two regions. Disjoint inputs
// yield a region with several components. The result is polygonal.
func (r *Region) Union(o *Region) *Region {
	return combine(clip.OpUnion, r, o)
}

// Difference returns the receiver's area with o removed, or nil when o
// covers the receiver entirely. Subtracting a region strictly inside the
// receiver produces a hole. The result is polygonal.
func (r *Region) Difference(o *Region) *Region {
	return combine(clip.OpDifference, r, o)
}

// SymmetricDifference returns the area covered by exactly one of the two
// regions, or nil when they coincide. The result is polygonal.
func (r *Region) SymmetricDifference(o *Region) *Region {
	return combine(clip.OpSymmetricDifference, r, o)
}

func combine(op clip.Op, a, b *Region) *Region {
	if a == nil || b == nil {
		return nil
	}
	return fromPolygon(clip.Combine(op, a.flatten(), b.flatten()))
}

// flatten converts every component boundary and hole to a ring.
func (r *Region) flatten() clip.Polygon {
	var poly clip.Polygon
	for _, c := range r.Components() {
		poly = append(poly, flattenPath(c.boundary))
		for _, h := range c.holes {
			poly = append(poly, flattenPath(h))
		}
	}
	return poly
}

func flattenPath(p *path.CompositePath) clip.Ring {
	pts := p.Sample(flattenResolution)
	// Drop the duplicated closing vertex; rings close implicitly.
	if n := len(pts); n > 1 && pts[0].Near(pts[n-1], p.Tolerance()) {
		pts = pts[:n-1]
	}
	return clip.Ring(pts)
}

// fromPolygon rebuilds a region from clipper output. Contours are
// classified into outers and holes; the largest outer becomes the primary
// component and the rest become siblings. Returns nil for an empty
// polygon.
func fromPolygon(poly clip.Polygon) *Region {
	var regions []*Region
	for _, n := range clip.Nest(poly) {
		b, err := closedFromPoints([]path.Point(n.Outer))
		if err != nil {
			continue // degenerate sliver contour
		}
		comp := &Region{boundary: b}
		for _, h := range n.Holes {
			hp, err := closedFromPoints([]path.Point(h))
			if err != nil {
				continue
			}
			comp.holes = append(comp.holes, hp)
		}
		regions = append(regions, comp)
	}
	if len(regions) == 0 {
		return nil
	}

	best := 0
	bestArea := math.Inf(-1)
	for i, reg := range regions {
		if a := math.Abs(pathArea(reg.boundary)); a > bestArea {
			best, bestArea = i, a
		}
	}
	primary := regions[best]
	for i, reg := range regions {
		if i != best {
			primary.siblings = append(primary.siblings, reg)
		}
	}
	return primary
}
