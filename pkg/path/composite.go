package path

import "fmt"

// CompositePath is an ordered chain of elements where each element starts
// at the previous element's endpoint. A path is closed when its last
// endpoint returns to its first start point.
type CompositePath struct {
	elements  []Element
	tolerance float64
}

// NewCompositePath builds a path from elements in order, validating
// connectivity with the default Epsilon tolerance.
func NewCompositePath(elements ...Element) (*CompositePath, error) {
	return NewCompositePathTolerance(Epsilon, elements...)
}

// NewCompositePathTolerance builds a path whose connectivity and closure
// tests use the given tolerance instead of Epsilon.
func NewCompositePathTolerance(tolerance float64, elements ...Element) (*CompositePath, error) {
	if tolerance <= 0 {
		return nil, fmt.Errorf("path tolerance must be positive, got %g", tolerance)
	}
	p := &CompositePath{tolerance: tolerance}
	for _, e := range elements {
		if err := p.Append(e); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// FromPoints builds a chain of line segments through the given vertices.
// Consecutive duplicate vertices are skipped. When the last vertex
// repeats the first the chain closes back to the start; otherwise the
// path stays open. At least two distinct vertices are required, three for
// a closed chain.
func FromPoints(points []Point) (*CompositePath, error) {
	var distinct []Point
	for _, pt := range points {
		if len(distinct) > 0 && pt.Near(distinct[len(distinct)-1], Epsilon) {
			continue
		}
		distinct = append(distinct, pt)
	}
	closed := false
	if len(distinct) > 2 && distinct[len(distinct)-1].Near(distinct[0], Epsilon) {
		distinct = distinct[:len(distinct)-1]
		closed = true
	}
	if len(distinct) < 2 {
		return nil, fmt.Errorf("%w: point chain needs at least 2 distinct vertices, got %d", ErrDegenerate, len(distinct))
	}
	p := &CompositePath{tolerance: Epsilon}
	n := len(distinct)
	edges := n - 1
	if closed {
		edges = n
	}
	for i := 0; i < edges; i++ {
		seg, err := NewLineSegment(distinct[i], distinct[(i+1)%n])
		if err != nil {
			return nil, err
		}
		if err := p.Append(seg); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Elements returns a copy of the element chain.
func (p *CompositePath) Elements() []Element {
	out := make([]Element, len(p.elements))
	copy(out, p.elements)
	return out
}

// Len returns the number of elements.
func (p *CompositePath) Len() int { return len(p.elements) }

// IsEmpty reports whether the path has no elements.
func (p *CompositePath) IsEmpty() bool { return len(p.elements) == 0 }

// Tolerance returns the connectivity tolerance of the path.
func (p *CompositePath) Tolerance() float64 { return p.tolerance }

// Append adds an element to the end of the path. The element must start
// where the path currently ends.
func (p *CompositePath) Append(e Element) error {
	if len(p.elements) > 0 {
		last := p.elements[len(p.elements)-1]
		if !Connects(last, e, p.tolerance) {
			end, start := last.End(), e.Start()
			return fmt.Errorf("%w: path ends at (%g, %g) but element starts at (%g, %g)",
				ErrDisconnected, end.X, end.Y, start.X, start.Y)
		}
	}
	p.elements = append(p.elements, e)
	return nil
}

// Prepend adds an element to the front of the path. The element must end
// where the path currently starts.
func (p *CompositePath) Prepend(e Element) error {
	if len(p.elements) > 0 {
		first := p.elements[0]
		if !Connects(e, first, p.tolerance) {
			end, start := e.End(), first.Start()
			return fmt.Errorf("%w: element ends at (%g, %g) but path starts at (%g, %g)",
				ErrDisconnected, end.X, end.Y, start.X, start.Y)
		}
	}
	p.elements = append([]Element{e}, p.elements...)
	return nil
}

// Start returns the start point of the first element. ok is false for an
// empty path.
func (p *CompositePath) Start() (pt Point, ok bool) {
	if len(p.elements) == 0 {
		return Point{}, false
	}
	return p.elements[0].Start(), true
}

// End returns the endpoint of the last element. ok is false for an empty
// path.
func (p *CompositePath) End() (pt Point, ok bool) {
	if len(p.elements) == 0 {
		return Point{}, false
	}
	return p.elements[len(p.elements)-1].End(), true
}

// IsClosed reports whether the path returns to its start point within the
// path tolerance. An empty path is not closed.
func (p *CompositePath) IsClosed() bool {
	start, ok := p.Start()
	if !ok {
		return false
	}
	end, _ := p.End()
	return start.Near(end, p.tolerance)
}

// Sample returns a polyline approximation of the whole path, passing
// resolution through to each element. Junction points shared by adjacent
// elements appear once.
func (p *CompositePath) Sample(resolution int) []Point {
	var out []Point
	for _, e := range p.elements {
		pts := e.Sample(resolution)
		if len(out) > 0 && len(pts) > 0 && out[len(out)-1].Near(pts[0], p.tolerance) {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out
}

// Reversed returns the path traversed in the opposite direction.
func (p *CompositePath) Reversed() *CompositePath {
	rev := &CompositePath{
		elements:  make([]Element, 0, len(p.elements)),
		tolerance: p.tolerance,
	}
	for i := len(p.elements) - 1; i >= 0; i-- {
		rev.elements = append(rev.elements, p.elements[i].Reversed())
	}
	return rev
}

// Length returns the total arc length of the path.
func (p *CompositePath) Length() float64 {
	total := 0.0
	for _, e := range p.elements {
		total += e.Length()
	}
	return total
}
