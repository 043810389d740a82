package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/planegeom/pkg/path"
	"github.com/chazu/planegeom/pkg/region"
)

// defaultHalfPlaneSize is the extent of the rectangle approximating a
// half-plane when the program does not pass one.
const defaultHalfPlaneSize = 1000.0

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms DSL source before passing it to zygomys:
//
//  1. ; line comments become // comments, which is what zygomys parses.
//
//  2. Kebab-case identifiers become underscore form (half-plane ->
//     half_plane), since zygomys reads a hyphen between identifiers as
//     subtraction.
//
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters, so a
		// minus operator is left alone.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpRegion wraps a region so it can be passed between builtins.
type sexpRegion struct {
	region *region.Region
}

func (r *sexpRegion) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(region :area %.6g)", r.region.Area())
}
func (r *sexpRegion) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toRegion extracts a region from a sexpRegion.
func toRegion(s zygo.Sexp) (*region.Region, error) {
	if r, ok := s.(*sexpRegion); ok {
		return r.region, nil
	}
	if s == zygo.SexpNull {
		return nil, fmt.Errorf("expected region, got empty result")
	}
	return nil, fmt.Errorf("expected region, got %T (%s)", s, s.SexpString(nil))
}

// numbers extracts every argument as a float64.
func numbers(args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the region-algebra DSL into a fresh zygomys
// environment:
//
//	(circle x y r)
//	(ellipse x y rx ry [rotation])
//	(polygon x1 y1 x2 y2 x3 y3 ...)
//	(half-plane x1 y1 x2 y2 [size])
//	(union a b) (intersection a b) (difference a b) (sym-difference a b)
//	(area r) (contains r x y)
func registerBuiltins(env *zygo.Zlisp) {
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("circle expects (circle x y r), got %d args", len(args))
		}
		v, err := numbers(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		r, err := region.FromCircle(path.Point{X: v[0], Y: v[1]}, v[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		return &sexpRegion{region: r}, nil
	})

	env.AddFunction("ellipse", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 && len(args) != 5 {
			return zygo.SexpNull, fmt.Errorf("ellipse expects (ellipse x y rx ry [rotation]), got %d args", len(args))
		}
		v, err := numbers(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ellipse: %w", err)
		}
		rotation := 0.0
		if len(v) == 5 {
			rotation = v[4]
		}
		r, err := region.FromEllipse(path.Point{X: v[0], Y: v[1]}, v[2], v[3], rotation)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ellipse: %w", err)
		}
		return &sexpRegion{region: r}, nil
	})

	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 6 || len(args)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("polygon expects at least 3 x y pairs, got %d args", len(args))
		}
		v, err := numbers(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		points := make([]path.Point, 0, len(v)/2)
		for i := 0; i+1 < len(v); i += 2 {
			points = append(points, path.Point{X: v[i], Y: v[i+1]})
		}
		r, err := region.FromPoints(points)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		return &sexpRegion{region: r}, nil
	})

	env.AddFunction("half_plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 && len(args) != 5 {
			return zygo.SexpNull, fmt.Errorf("half-plane expects (half-plane x1 y1 x2 y2 [size]), got %d args", len(args))
		}
		v, err := numbers(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("half-plane: %w", err)
		}
		size := defaultHalfPlaneSize
		if len(v) == 5 {
			size = v[4]
		}
		r, err := region.FromHalfPlane(path.Point{X: v[0], Y: v[1]}, path.Point{X: v[2], Y: v[3]}, size)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("half-plane: %w", err)
		}
		return &sexpRegion{region: r}, nil
	})

	binaryOp := func(display string, op func(a, b *region.Region) *region.Region) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s expects 2 regions, got %d args", display, len(args))
			}
			a, err := toRegion(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", display, err)
			}
			b, err := toRegion(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", display, err)
			}
			res := op(a, b)
			if res == nil {
				// Empty geometric result, not an error.
				return zygo.SexpNull, nil
			}
			return &sexpRegion{region: res}, nil
		}
	}

	env.AddFunction("union", binaryOp("union", func(a, b *region.Region) *region.Region { return a.Union(b) }))
	env.AddFunction("intersection", binaryOp("intersection", func(a, b *region.Region) *region.Region { return a.Intersection(b) }))
	env.AddFunction("difference", binaryOp("difference", func(a, b *region.Region) *region.Region { return a.Difference(b) }))
	env.AddFunction("sym_difference", binaryOp("sym-difference", func(a, b *region.Region) *region.Region { return a.SymmetricDifference(b) }))

	env.AddFunction("area", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("area expects 1 region, got %d args", len(args))
		}
		// The area of an empty result is zero.
		if args[0] == zygo.SexpNull {
			return &zygo.SexpFloat{Val: 0}, nil
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("area: %w", err)
		}
		return &zygo.SexpFloat{Val: r.Area()}, nil
	})

	env.AddFunction("contains", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("contains expects (contains r x y), got %d args", len(args))
		}
		if args[0] == zygo.SexpNull {
			return &zygo.SexpBool{Val: false}, nil
		}
		r, err := toRegion(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		v, err := numbers(args[1:])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		return &zygo.SexpBool{Val: r.ContainsPoint(v[0], v[1])}, nil
	})
}
