package region

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/planegeom/pkg/path"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustSquare(t *testing.T, x, y, size float64) *Region {
	t.Helper()
	r, err := FromPoints([]path.Point{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	})
	if err != nil {
		t.Fatalf("FromPoints: %v", err)
	}
	return r
}

func mustCircle(t *testing.T, x, y, r float64) *Region {
	t.Helper()
	reg, err := FromCircle(path.Point{X: x, Y: y}, r)
	if err != nil {
		t.Fatalf("FromCircle: %v", err)
	}
	return reg
}

func TestSquareArea(t *testing.T) {
	sq := mustSquare(t, 0, 0, 2)
	if !approx(sq.Area(), 4, 1e-12) {
		t.Errorf("area = %g, want 4", sq.Area())
	}
	if len(sq.Components()) != 1 {
		t.Errorf("components = %d, want 1", len(sq.Components()))
	}
}

func TestCircleAreaClosedForm(t *testing.T) {
	for _, r := range []float64{0.5, 1, 2, 5} {
		c := mustCircle(t, 3, -2, r)
		want := math.Pi * r * r
		if !approx(c.Area(), want, 1e-9) {
			t.Errorf("radius %g: area = %g, want %g", r, c.Area(), want)
		}
	}
}

func TestEllipseAreaClosedForm(t *testing.T) {
	e, err := FromEllipse(path.Point{X: 1, Y: 2}, 3, 2, 0)
	if err != nil {
		t.Fatalf("FromEllipse: %v", err)
	}
	if !approx(e.Area(), 6*math.Pi, 1e-9) {
		t.Errorf("area = %g, want 6*pi", e.Area())
	}

	// Rotation does not change the area.
	rot, _ := FromEllipse(path.Point{X: 1, Y: 2}, 3, 2, math.Pi/3)
	if !approx(rot.Area(), 6*math.Pi, 1e-9) {
		t.Errorf("rotated area = %g, want 6*pi", rot.Area())
	}
}

func TestSignedAreaOrientation(t *testing.T) {
	ccw := mustSquare(t, 0, 0, 2)
	if !approx(ccw.SignedArea(), 4, 1e-12) {
		t.Errorf("ccw signed area = %g, want 4", ccw.SignedArea())
	}
	cw, err := FromPoints([]path.Point{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}})
	if err != nil {
		t.Fatalf("FromPoints: %v", err)
	}
	if !approx(cw.SignedArea(), -4, 1e-12) {
		t.Errorf("cw signed area = %g, want -4", cw.SignedArea())
	}
	if !approx(cw.Area(), 4, 1e-12) {
		t.Errorf("cw area = %g, want 4", cw.Area())
	}
}

func TestHoleReducesArea(t *testing.T) {
	outer := mustSquare(t, 0, 0, 4)
	hole, err := path.FromPoints([]path.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 1}})
	if err != nil {
		t.Fatalf("hole path: %v", err)
	}
	if err := outer.AddHole(hole); err != nil {
		t.Fatalf("AddHole: %v", err)
	}
	if !approx(outer.Area(), 12, 1e-12) {
		t.Errorf("area = %g, want 12", outer.Area())
	}
	if outer.ContainsPoint(2, 2) {
		t.Error("point inside the hole reported contained")
	}
	if !outer.ContainsPoint(0.5, 0.5) {
		t.Error("point between boundary and hole not contained")
	}
}

func TestAddHoleOpenPathRejected(t *testing.T) {
	sq := mustSquare(t, 0, 0, 4)
	seg, _ := path.NewLineSegment(path.Point{X: 1, Y: 1}, path.Point{X: 2, Y: 1})
	open, _ := path.NewCompositePath(seg)
	if err := sq.AddHole(open); !errors.Is(err, ErrOpenPath) {
		t.Fatalf("err = %v, want ErrOpenPath", err)
	}
}

func TestNewRejectsOpenBoundary(t *testing.T) {
	seg, _ := path.NewLineSegment(path.Point{}, path.Point{X: 1, Y: 0})
	open, _ := path.NewCompositePath(seg)
	if _, err := New(open); !errors.Is(err, ErrOpenPath) {
		t.Fatalf("err = %v, want ErrOpenPath", err)
	}
}

func TestCircleContainsPoint(t *testing.T) {
	c := mustCircle(t, 0, 0, 2)
	cases := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{1.9, 0, true},
		{2, 0, true}, // boundary is inside
		{2.1, 0, false},
		{3, 3, false},
	}
	for _, tc := range cases {
		if got := c.ContainsPoint(tc.x, tc.y); got != tc.want {
			t.Errorf("ContainsPoint(%g, %g) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestEllipseContainsPoint(t *testing.T) {
	e, _ := FromEllipse(path.Point{}, 2, 1, math.Pi/2)
	// Rotated by pi/2: long axis along y.
	if !e.ContainsPoint(0, 1.9) {
		t.Error("(0, 1.9) should be inside")
	}
	if e.ContainsPoint(1.5, 0) {
		t.Error("(1.5, 0) should be outside")
	}
}

func TestIntersectionOverlappingSquares(t *testing.T) {
	a := mustSquare(t, 0, 0, 2)
	b := mustSquare(t, 1, 1, 2)
	got := a.Intersection(b)
	if got == nil {
		t.Fatal("nil intersection for overlapping squares")
	}
	if !approx(got.Area(), 1, 1e-9) {
		t.Errorf("area = %g, want 1", got.Area())
	}
	if !got.ContainsPoint(1.5, 1.5) {
		t.Error("overlap center not contained")
	}
}

func TestIntersectionDisjointIsNil(t *testing.T) {
	a := mustSquare(t, 0, 0, 1)
	b := mustSquare(t, 5, 5, 1)
	if got := a.Intersection(b); got != nil {
		t.Errorf("disjoint intersection = %v, want nil", got)
	}
}

func TestUnionInclusionExclusion(t *testing.T) {
	a := mustSquare(t, 0, 0, 2)
	b := mustSquare(t, 1, 1, 2)
	union := a.Union(b)
	inter := a.Intersection(b)
	if union == nil || inter == nil {
		t.Fatal("nil result")
	}
	if !approx(union.Area(), 7, 1e-9) {
		t.Errorf("union area = %g, want 7", union.Area())
	}
	lhs := union.Area() + inter.Area()
	rhs := a.Area() + b.Area()
	if !approx(lhs, rhs, 1e-9) {
		t.Errorf("inclusion-exclusion: %g != %g", lhs, rhs)
	}
}

func TestUnionDisjointKeepsComponents(t *testing.T) {
	a := mustSquare(t, 0, 0, 1)
	b := mustSquare(t, 5, 5, 1)
	union := a.Union(b)
	if union == nil {
		t.Fatal("nil union")
	}
	if len(union.Components()) != 2 {
		t.Fatalf("components = %d, want 2", len(union.Components()))
	}
	if !approx(union.Area(), 2, 1e-9) {
		t.Errorf("area = %g, want 2", union.Area())
	}
	if !union.ContainsPoint(0.5, 0.5) || !union.ContainsPoint(5.5, 5.5) {
		t.Error("union lost a component")
	}
}

func TestUnionCirclesApproximate(t *testing.T) {
	a := mustCircle(t, 0, 0, 1)
	b := mustCircle(t, 1, 0, 1)
	union := a.Union(b)
	if union == nil {
		t.Fatal("nil union")
	}
	// Two unit circles one radius apart: lens area is
	// 2*acos(1/2) - sqrt(3)/2.
	lens := 2*math.Acos(0.5) - math.Sqrt(3)/2
	want := 2*math.Pi - lens
	if !approx(union.Area(), want, 0.01) {
		t.Errorf("area = %g, want about %g", union.Area(), want)
	}
}

func TestDifferenceCreatesHole(t *testing.T) {
	outer := mustSquare(t, 0, 0, 4)
	inner := mustSquare(t, 1, 1, 2)
	diff := outer.Difference(inner)
	if diff == nil {
		t.Fatal("nil difference")
	}
	if len(diff.Holes()) != 1 {
		t.Fatalf("holes = %d, want 1", len(diff.Holes()))
	}
	if !approx(diff.Area(), 12, 1e-9) {
		t.Errorf("area = %g, want 12", diff.Area())
	}
	if diff.ContainsPoint(2, 2) {
		t.Error("hole center contained")
	}
	if !diff.ContainsPoint(0.5, 0.5) {
		t.Error("remaining area not contained")
	}
}

func TestDifferenceDisjointReturnsReceiver(t *testing.T) {
	a := mustSquare(t, 0, 0, 2)
	b := mustSquare(t, 10, 10, 2)
	diff := a.Difference(b)
	if diff == nil {
		t.Fatal("nil difference for disjoint operand")
	}
	if !approx(diff.Area(), a.Area(), 1e-9) {
		t.Errorf("area = %g, want %g", diff.Area(), a.Area())
	}
	if !diff.ContainsPoint(1, 1) {
		t.Error("receiver area lost")
	}
}

func TestDifferenceCoveredIsNil(t *testing.T) {
	small := mustSquare(t, 1, 1, 1)
	big := mustSquare(t, 0, 0, 4)
	if got := small.Difference(big); got != nil {
		t.Errorf("covered difference = %v, want nil", got)
	}
}

func TestSymmetricDifference(t *testing.T) {
	a := mustSquare(t, 0, 0, 2)
	b := mustSquare(t, 1, 1, 2)
	sym := a.SymmetricDifference(b)
	if sym == nil {
		t.Fatal("nil symmetric difference")
	}
	if !approx(sym.Area(), 6, 1e-9) {
		t.Errorf("area = %g, want 6", sym.Area())
	}
	if sym.ContainsPoint(1.5, 1.5) {
		t.Error("overlap center should be excluded")
	}
	if !sym.ContainsPoint(0.5, 0.5) || !sym.ContainsPoint(2.5, 2.5) {
		t.Error("exclusive areas missing")
	}
}

func TestHalfPlane(t *testing.T) {
	// Left of the +x direction is +y.
	hp, err := FromHalfPlane(path.Point{X: 0, Y: 0}, path.Point{X: 1, Y: 0}, 100)
	if err != nil {
		t.Fatalf("FromHalfPlane: %v", err)
	}
	if !hp.ContainsPoint(0, 1) {
		t.Error("(0, 1) should be on the left")
	}
	if hp.ContainsPoint(0, -1) {
		t.Error("(0, -1) should be on the right")
	}

	if _, err := FromHalfPlane(path.Point{}, path.Point{}, 100); err == nil {
		t.Error("coincident points accepted")
	}
	if _, err := FromHalfPlane(path.Point{}, path.Point{X: 1}, 0); err == nil {
		t.Error("zero size accepted")
	}
}

func TestHalfPlaneClipsCircle(t *testing.T) {
	c := mustCircle(t, 0, 0, 1)
	hp, _ := FromHalfPlane(path.Point{X: -10, Y: 0}, path.Point{X: 10, Y: 0}, 100)
	half := c.Intersection(hp)
	if half == nil {
		t.Fatal("nil half disc")
	}
	if !approx(half.Area(), math.Pi/2, 0.01) {
		t.Errorf("half disc area = %g, want %g", half.Area(), math.Pi/2)
	}
}

func TestBoundaryPoints(t *testing.T) {
	c := mustCircle(t, 0, 0, 1)
	pts := c.BoundaryPoints(64)
	if len(pts) < 16 {
		t.Fatalf("too few boundary points: %d", len(pts))
	}
	for _, p := range pts {
		if !approx(p.DistanceTo(path.Point{}), 1, 1e-9) {
			t.Errorf("boundary point %v off the circle", p)
		}
	}
}
