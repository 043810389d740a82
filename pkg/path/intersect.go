package path

import (
	"math"
	"sort"
)

// paramSlack is the tolerance on a segment parameter t before it is
// clamped into [0, 1], so intersections landing exactly on an endpoint
// survive float rounding.
const paramSlack = 1e-9

const (
	// conicSamples is the grid density of the curve-curve root search.
	conicSamples = 720
	// bisectSteps bounds root refinement; 60 halvings of one grid cell
	// reach machine precision.
	bisectSteps = 60
	// minimizeSteps bounds the tangency (touch without crossing) search.
	minimizeSteps = 100
	// rootMergeTol is the parameter-angle distance under which two roots
	// are considered the same intersection.
	rootMergeTol = 1e-6
)

// LineLineIntersection returns the intersection of two segments: one point
// where they properly cross, none when they are parallel, collinear, or
// cross outside either segment.
func LineLineIntersection(a, b LineSegment) []Point {
	dx1 := a.P2.X - a.P1.X
	dy1 := a.P2.Y - a.P1.Y
	dx2 := b.P2.X - b.P1.X
	dy2 := b.P2.Y - b.P1.Y

	denom := dx1*dy2 - dy1*dx2
	if math.Abs(denom) <= scaledEps(a.Length()*b.Length()) {
		return nil
	}
	ex := b.P1.X - a.P1.X
	ey := b.P1.Y - a.P1.Y
	t := (ex*dy2 - ey*dx2) / denom
	u := (ex*dy1 - ey*dx1) / denom
	if t < -paramSlack || t > 1+paramSlack || u < -paramSlack || u > 1+paramSlack {
		return nil
	}
	return []Point{a.pointAt(clampParam(t))}
}

// LineCircleIntersection returns the points where a segment meets a
// circular arc: up to two crossings, exactly one at a tangency.
func LineCircleIntersection(seg LineSegment, arc CircularArc) []Point {
	var out []Point
	for _, t := range segmentCircleParams(seg.P1, seg.P2, arc.Center, arc.Radius) {
		p := seg.pointAt(t)
		theta := math.Atan2(p.Y-arc.Center.Y, p.X-arc.Center.X)
		if arc.ContainsAngle(theta) {
			out = append(out, p)
		}
	}
	return out
}

// LineEllipseIntersection returns the points where a segment meets an
// elliptical arc. The segment is mapped into the frame where the ellipse
// is the unit circle, solved there, and the parameters mapped back.
func LineEllipseIntersection(seg LineSegment, arc EllipticalArc) []Point {
	l1x, l1y := arc.LocalCoords(seg.P1)
	l2x, l2y := arc.LocalCoords(seg.P2)
	u1 := Point{X: l1x / arc.RadiusX, Y: l1y / arc.RadiusY}
	u2 := Point{X: l2x / arc.RadiusX, Y: l2y / arc.RadiusY}

	var out []Point
	for _, t := range segmentCircleParams(u1, u2, Point{}, 1) {
		ux := u1.X + t*(u2.X-u1.X)
		uy := u1.Y + t*(u2.Y-u1.Y)
		theta := math.Atan2(uy, ux)
		if arc.ContainsAngle(theta) {
			out = append(out, seg.pointAt(t))
		}
	}
	return out
}

// CircleCircleIntersection returns the points where two circular arcs
// meet: up to two crossings, one at a tangency, none for concentric,
// separated, or strictly nested circles.
func CircleCircleIntersection(a, b CircularArc) []Point {
	d := a.Center.DistanceTo(b.Center)
	tol := scaledEps(math.Max(a.Radius, b.Radius))
	if d <= tol {
		return nil // concentric, including coincident circles
	}
	if d > a.Radius+b.Radius+tol {
		return nil
	}
	if d < math.Abs(a.Radius-b.Radius)-tol {
		return nil
	}

	// Radical line construction: m is the foot of the chord on the
	// center line, h the half-chord length.
	along := (a.Radius*a.Radius - b.Radius*b.Radius + d*d) / (2 * d)
	h2 := a.Radius*a.Radius - along*along
	if h2 < 0 {
		h2 = 0
	}
	h := math.Sqrt(h2)
	ux := (b.Center.X - a.Center.X) / d
	uy := (b.Center.Y - a.Center.Y) / d
	mx := a.Center.X + along*ux
	my := a.Center.Y + along*uy

	var candidates []Point
	if h <= tol {
		candidates = []Point{{X: mx, Y: my}}
	} else {
		candidates = []Point{
			{X: mx + h*uy, Y: my - h*ux},
			{X: mx - h*uy, Y: my + h*ux},
		}
	}

	var out []Point
	for _, p := range candidates {
		thetaA := math.Atan2(p.Y-a.Center.Y, p.X-a.Center.X)
		thetaB := math.Atan2(p.Y-b.Center.Y, p.X-b.Center.X)
		if a.ContainsAngle(thetaA) && b.ContainsAngle(thetaB) {
			out = append(out, p)
		}
	}
	return out
}

// CircleEllipseIntersection returns the points where a circular arc meets
// an elliptical arc. There is no closed form; roots of the distance
// function are located on a fixed parameter grid over the ellipse and
// refined by bisection, so every returned point lies on both curves
// within tolerance.
func CircleEllipseIntersection(c CircularArc, e EllipticalArc) []Point {
	// An ellipse with equal axes is a circle; use the exact solution,
	// shifting parameter angles by the rotation.
	if math.Abs(e.RadiusX-e.RadiusY) <= scaledEps(e.RadiusX) {
		return CircleCircleIntersection(c, CircularArc{
			Center:     e.Center,
			Radius:     e.RadiusX,
			StartAngle: e.StartAngle + e.Rotation,
			EndAngle:   e.EndAngle + e.Rotation,
			Clockwise:  e.Clockwise,
		})
	}
	f := func(theta float64) float64 {
		return e.PointAt(theta).DistanceTo(c.Center) - c.Radius
	}
	scale := math.Max(c.Radius, math.Max(e.RadiusX, e.RadiusY))

	var out []Point
	for _, theta := range curveRoots(f, scaledEps(scale)) {
		p := e.PointAt(theta)
		phi := math.Atan2(p.Y-c.Center.Y, p.X-c.Center.X)
		if c.ContainsAngle(phi) && e.ContainsAngle(theta) {
			out = append(out, p)
		}
	}
	return out
}

// EllipseEllipseIntersection returns the points where two elliptical arcs
// meet, by root search of the second ellipse's implicit equation along the
// first ellipse's parameter.
func EllipseEllipseIntersection(a, b EllipticalArc) []Point {
	f := func(theta float64) float64 {
		lx, ly := b.LocalCoords(a.PointAt(theta))
		ux := lx / b.RadiusX
		uy := ly / b.RadiusY
		return ux*ux + uy*uy - 1
	}

	var out []Point
	for _, theta := range curveRoots(f, Epsilon) {
		p := a.PointAt(theta)
		lx, ly := b.LocalCoords(p)
		thetaB := math.Atan2(ly/b.RadiusY, lx/b.RadiusX)
		if a.ContainsAngle(theta) && b.ContainsAngle(thetaB) {
			out = append(out, p)
		}
	}
	return out
}

// ElementIntersection returns the intersection points of any two elements,
// dispatching on their concrete types. The result is the same point set
// regardless of argument order. Unknown element kinds yield nil.
func ElementIntersection(a, b Element) []Point {
	switch e1 := a.(type) {
	case LineSegment:
		switch e2 := b.(type) {
		case LineSegment:
			return LineLineIntersection(e1, e2)
		case CircularArc:
			return LineCircleIntersection(e1, e2)
		case EllipticalArc:
			return LineEllipseIntersection(e1, e2)
		}
	case CircularArc:
		switch e2 := b.(type) {
		case LineSegment:
			return LineCircleIntersection(e2, e1)
		case CircularArc:
			return CircleCircleIntersection(e1, e2)
		case EllipticalArc:
			return CircleEllipseIntersection(e1, e2)
		}
	case EllipticalArc:
		switch e2 := b.(type) {
		case LineSegment:
			return LineEllipseIntersection(e2, e1)
		case CircularArc:
			return CircleEllipseIntersection(e2, e1)
		case EllipticalArc:
			return EllipseEllipseIntersection(e1, e2)
		}
	}
	return nil
}

// PathIntersections returns the intersection points between every element
// pair of the two paths, in element order. Points are not deduplicated:
// a crossing at a junction shared by two elements appears once per
// element pair that produces it, and callers that need a unique set
// post-process.
func PathIntersections(a, b *CompositePath) []Point {
	if a == nil || b == nil {
		return nil
	}
	var out []Point
	for _, ea := range a.elements {
		for _, eb := range b.elements {
			out = append(out, ElementIntersection(ea, eb)...)
		}
	}
	return out
}

func clampParam(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// segmentCircleParams solves the quadratic for a segment p1->p2 against
// the circle at center with the given radius, returning parameter values
// in [0, 1]. A discriminant within tolerance of zero is treated as a
// tangency and yields a single parameter.
func segmentCircleParams(p1, p2, center Point, radius float64) []float64 {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	fx := p1.X - center.X
	fy := p1.Y - center.Y

	a := dx*dx + dy*dy
	if a <= Epsilon*Epsilon {
		return nil
	}
	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - radius*radius

	disc := b*b - 4*a*c
	discTol := scaledEps(a * (radius*radius + 1))
	if disc < -discTol {
		return nil
	}

	var ts []float64
	if disc <= discTol {
		ts = []float64{-b / (2 * a)}
	} else {
		sq := math.Sqrt(disc)
		ts = []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
	}

	var out []float64
	for _, t := range ts {
		if t < -paramSlack || t > 1+paramSlack {
			continue
		}
		out = append(out, clampParam(t))
	}
	return out
}

// curveRoots locates parameter angles in [0, 2*pi) where the continuous
// 2*pi-periodic function f crosses or touches zero. Crossings are found
// by sign change and bisection; touches (tangencies) by refining grid
// local minima of |f| down to pointTol. Roots closer than rootMergeTol
// are merged.
func curveRoots(f func(float64) float64, pointTol float64) []float64 {
	step := twoPi / conicSamples
	vals := make([]float64, conicSamples+1)
	coincident := true
	for i := 0; i <= conicSamples; i++ {
		vals[i] = f(float64(i) * step)
		if math.Abs(vals[i]) > pointTol {
			coincident = false
		}
	}
	// Coincident curves cross nowhere, matching the identical-circles
	// convention of zero intersection points.
	if coincident {
		return nil
	}
	touchTol := math.Max(pointTol*1e4, 1e-4)

	var roots []float64
	for i := 0; i < conicSamples; i++ {
		lo := float64(i) * step
		hi := lo + step
		fa, fb := vals[i], vals[i+1]
		switch {
		case fa == 0:
			roots = append(roots, lo)
		case fa*fb < 0:
			roots = append(roots, bisect(f, lo, hi, fa))
		case isAbsLocalMin(vals, i) && math.Abs(fa) <= touchTol:
			theta, v := minimizeAbs(f, lo-step, hi)
			if math.Abs(v) <= pointTol {
				roots = append(roots, normalizeRoot(theta))
			}
		}
	}
	return mergeRoots(roots)
}

// isAbsLocalMin reports whether |vals[i]| is a local minimum on the
// sample grid. The grid is circular: index 0 and the last index are the
// same angle, so a minimum straddling the seam is still found.
func isAbsLocalMin(vals []float64, i int) bool {
	n := len(vals) - 1
	prev := math.Abs(vals[(i-1+n)%n])
	next := math.Abs(vals[(i+1)%n])
	v := math.Abs(vals[i])
	return v < prev && v <= next
}

// bisect narrows a sign-changing interval [a, b] to a root of f.
func bisect(f func(float64) float64, a, b, fa float64) float64 {
	for i := 0; i < bisectSteps; i++ {
		m := 0.5 * (a + b)
		fm := f(m)
		if fm == 0 {
			return m
		}
		if (fa < 0) == (fm < 0) {
			a, fa = m, fm
		} else {
			b = m
		}
	}
	return 0.5 * (a + b)
}

// minimizeAbs narrows [a, b] to the minimum of |f| by ternary search.
func minimizeAbs(f func(float64) float64, a, b float64) (float64, float64) {
	for i := 0; i < minimizeSteps; i++ {
		m1 := a + (b-a)/3
		m2 := b - (b-a)/3
		if math.Abs(f(m1)) <= math.Abs(f(m2)) {
			b = m2
		} else {
			a = m1
		}
	}
	m := 0.5 * (a + b)
	return m, f(m)
}

func normalizeRoot(theta float64) float64 {
	theta = math.Mod(theta, twoPi)
	if theta < 0 {
		theta += twoPi
	}
	return theta
}

// mergeRoots sorts roots and collapses runs closer than rootMergeTol,
// treating 0 and 2*pi as the same angle.
func mergeRoots(roots []float64) []float64 {
	if len(roots) < 2 {
		return roots
	}
	sort.Float64s(roots)
	out := roots[:1]
	for _, r := range roots[1:] {
		if r-out[len(out)-1] > rootMergeTol {
			out = append(out, r)
		}
	}
	if len(out) > 1 && twoPi-(out[len(out)-1]-out[0]) <= rootMergeTol {
		out = out[:len(out)-1]
	}
	return out
}
