// Package clip performs boolean operations on flattened polygons and
// classifies the resulting contours into outer boundaries and holes.
// It wraps github.com/ctessum/polyclip-go.
package clip

import (
	"math"

	polyclip "github.com/ctessum/polyclip-go"

	"github.com/chazu/planegeom/pkg/path"
)

// Ring is a closed polygonal contour. The closing edge from the last
// vertex back to the first is implicit.
type Ring []path.Point

// Polygon is a set of rings: outer boundaries together with holes, in any
// order and orientation. Nesting parity decides which is which.
type Polygon []Ring

// Op selects a boolean operation.
type Op int

const (
	OpIntersection Op = iota
	OpUnion
	OpDifference
	OpSymmetricDifference
)

func (op Op) polyclipOp() polyclip.Op {
	switch op {
	case OpUnion:
		return polyclip.UNION
	case OpDifference:
		return polyclip.DIFFERENCE
	case OpSymmetricDifference:
		return polyclip.XOR
	default:
		return polyclip.INTERSECTION
	}
}

// Combine applies the boolean operation to subject and clip and returns
// the resulting contours. An empty result means the operation produced no
// area.
func Combine(op Op, subject, clip Polygon) Polygon {
	return fromPolyclip(toPolyclip(subject).Construct(op.polyclipOp(), toPolyclip(clip)))
}

func toPolyclip(p Polygon) polyclip.Polygon {
	out := make(polyclip.Polygon, 0, len(p))
	for _, ring := range p {
		contour := make(polyclip.Contour, 0, len(ring))
		for _, pt := range ring {
			contour = append(contour, polyclip.Point{X: pt.X, Y: pt.Y})
		}
		out = append(out, contour)
	}
	return out
}

func fromPolyclip(p polyclip.Polygon) Polygon {
	out := make(Polygon, 0, len(p))
	for _, contour := range p {
		ring := make(Ring, 0, len(contour))
		for _, pt := range contour {
			ring = append(ring, path.Point{X: pt.X, Y: pt.Y})
		}
		out = append(out, ring)
	}
	return out
}

// SignedArea returns the shoelace area of the ring, positive for
// counter-clockwise winding.
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	sum := 0.0
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		sum += r[j].X*r[i].Y - r[i].X*r[j].Y
		j = i
	}
	return sum / 2
}

// Contains reports whether p lies inside the ring by even-odd ray
// crossing. Points exactly on an edge may land on either side.
func (r Ring) Contains(p path.Point) bool {
	if len(r) < 3 {
		return false
	}
	inside := false
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		yi, yj := r[i].Y, r[j].Y
		if (yi > p.Y) != (yj > p.Y) {
			cross := r[i].X + (p.Y-yi)*(r[j].X-r[i].X)/(yj-yi)
			if p.X < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// inside reports whether the ring lies within other. Contours produced by
// the clipper never cross, so a single representative point of r decides.
// Vertices and edge midpoints are tried in turn until one falls clearly
// off other's boundary: touching contours share vertices and stretches of
// edge, where Contains is unreliable.
func (r Ring) inside(other Ring) bool {
	tol := other.edgeTol()
	for i, v := range r {
		if !other.onBoundary(v, tol) {
			return other.Contains(v)
		}
		w := r[(i+1)%len(r)]
		mid := path.Point{X: (v.X + w.X) / 2, Y: (v.Y + w.Y) / 2}
		if !other.onBoundary(mid, tol) {
			return other.Contains(mid)
		}
	}
	// Every candidate sits on other's boundary.
	return false
}

// edgeTol is the on-boundary tolerance for the ring, scaled to its
// coordinate magnitude.
func (r Ring) edgeTol() float64 {
	maxAbs := 0.0
	for _, p := range r {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	return path.Epsilon * (1 + maxAbs)
}

// onBoundary reports whether p lies within tol of any edge of the ring.
func (r Ring) onBoundary(p path.Point, tol float64) bool {
	j := len(r) - 1
	for i := 0; i < len(r); i++ {
		if distToSegment(p, r[j], r[i]) <= tol {
			return true
		}
		j = i
	}
	return false
}

func distToSegment(p, a, b path.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.DistanceTo(a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.DistanceTo(path.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

// Nested is an outer contour with the holes that lie directly inside it.
type Nested struct {
	Outer Ring
	Holes []Ring
}

// Nest classifies the rings of a polygon by containment parity: rings
// inside an even number of other rings are outers, the rest are holes.
// Each hole is attached to the smallest outer that contains it.
func Nest(p Polygon) []Nested {
	depth := make([]int, len(p))
	for i, r := range p {
		if len(r) < 3 {
			depth[i] = -1
			continue
		}
		for j, other := range p {
			if i != j && len(other) >= 3 && r.inside(other) {
				depth[i]++
			}
		}
	}

	var nested []Nested
	outerIdx := make(map[int]int)
	for i, r := range p {
		if depth[i] >= 0 && depth[i]%2 == 0 {
			outerIdx[i] = len(nested)
			nested = append(nested, Nested{Outer: r})
		}
	}
	for i, r := range p {
		if depth[i] < 0 || depth[i]%2 == 0 {
			continue
		}
		best := -1
		bestArea := math.Inf(1)
		for j := range p {
			if _, ok := outerIdx[j]; !ok {
				continue
			}
			if !r.inside(p[j]) {
				continue
			}
			if a := math.Abs(p[j].SignedArea()); a < bestArea {
				best, bestArea = j, a
			}
		}
		if best >= 0 {
			k := outerIdx[best]
			nested[k].Holes = append(nested[k].Holes, r)
		}
	}
	return nested
}
