package region

import (
	"math"

	"github.com/chazu/planegeom/pkg/path"
)

// pathArea returns the signed area enclosed by a closed path via Green's
// theorem, summing an exact contribution per element. Counter-clockwise
// traversal gives a positive value. For a full circle or ellipse the
// result is exactly pi*r^2 respectively pi*rx*ry.
func pathArea(p *path.CompositePath) float64 {
	area := 0.0
	for _, el := range p.Elements() {
		area += elementArea(el)
	}
	return area
}

// elementArea is the element's contribution to the Green's theorem
// integral (1/2) * integral(x dy - y dx) along the path.
func elementArea(el path.Element) float64 {
	switch e := el.(type) {
	case path.LineSegment:
		return 0.5 * (e.P1.X*e.P2.Y - e.P2.X*e.P1.Y)
	case path.CircularArc:
		return arcArea(e.Center, e.Radius, e.Radius, signedSpan(e.Span(), e.Clockwise), e.Start(), e.End())
	case path.EllipticalArc:
		return arcArea(e.Center, e.RadiusX, e.RadiusY, signedSpan(e.Span(), e.Clockwise), e.Start(), e.End())
	default:
		return sampledArea(el)
	}
}

func signedSpan(span float64, clockwise bool) float64 {
	if clockwise {
		return -span
	}
	return span
}

// arcArea is the closed-form Green's contribution of a conic arc. The
// sector term rx*ry*dtheta/2 is rotation-invariant; the remaining term
// accounts for the arc's center sitting away from the origin.
func arcArea(center path.Point, rx, ry, dtheta float64, start, end path.Point) float64 {
	sector := 0.5 * rx * ry * dtheta
	offset := 0.5 * (center.X*(end.Y-start.Y) - center.Y*(end.X-start.X))
	return sector + offset
}

// sampledArea falls back to the shoelace formula over a flattened element
// for element kinds without a closed form.
func sampledArea(el path.Element) float64 {
	pts := el.Sample(flattenResolution)
	sum := 0.0
	for i := 0; i+1 < len(pts); i++ {
		sum += pts[i].X*pts[i+1].Y - pts[i+1].X*pts[i].Y
	}
	return sum / 2
}

// circlePathForm returns the arc when the path is a single full circle.
func circlePathForm(p *path.CompositePath) (path.CircularArc, bool) {
	els := p.Elements()
	if len(els) != 1 {
		return path.CircularArc{}, false
	}
	c, ok := els[0].(path.CircularArc)
	if !ok || !c.IsFullCircle() {
		return path.CircularArc{}, false
	}
	return c, true
}

// ellipsePathForm returns the arc when the path is a single full ellipse.
func ellipsePathForm(p *path.CompositePath) (path.EllipticalArc, bool) {
	els := p.Elements()
	if len(els) != 1 {
		return path.EllipticalArc{}, false
	}
	e, ok := els[0].(path.EllipticalArc)
	if !ok || !e.IsFullSweep() {
		return path.EllipticalArc{}, false
	}
	return e, true
}

// pathContains reports whether (x, y) lies inside the closed path, with
// the boundary counting as inside within tolerance. Full circles and
// ellipses are tested in closed form; everything else is ray-cast against
// the flattened boundary.
func pathContains(p *path.CompositePath, x, y float64) bool {
	if c, ok := circlePathForm(p); ok {
		d := (path.Point{X: x, Y: y}).DistanceTo(c.Center)
		return d <= c.Radius+path.Epsilon*math.Max(1, c.Radius)
	}
	if e, ok := ellipsePathForm(p); ok {
		lx, ly := e.LocalCoords(path.Point{X: x, Y: y})
		ux := lx / e.RadiusX
		uy := ly / e.RadiusY
		return ux*ux+uy*uy <= 1+path.Epsilon
	}
	return rayCast(p.Sample(containResolution), x, y)
}

// rayCast applies the even-odd crossing rule against a closed polyline.
func rayCast(pts []path.Point, x, y float64) bool {
	n := len(pts)
	if n > 1 && pts[0].Near(pts[n-1], path.Epsilon) {
		pts = pts[:n-1]
		n--
	}
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		yi, yj := pts[i].Y, pts[j].Y
		if (yi > y) != (yj > y) {
			cross := pts[i].X + (y-yi)*(pts[j].X-pts[i].X)/(yj-yi)
			if x < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// ContainsPoint reports whether (x, y) lies inside the region: inside
// some component's boundary and outside its holes.
func (r *Region) ContainsPoint(x, y float64) bool {
	if pathContains(r.boundary, x, y) {
		for _, h := range r.holes {
			if pathContains(h, x, y) {
				return false
			}
		}
		return true
	}
	for _, s := range r.siblings {
		if s.ContainsPoint(x, y) {
			return true
		}
	}
	return false
}
