package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/rigid/pkg/geom"
	"github.com/chazu/rigid/pkg/plan"
	"github.com/chazu/rigid/pkg/xform"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec3 wraps a geom.Vec3.
type sexpVec3 struct {
	vec geom.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpTransform carries an operator from its constructor to `step`.
type sexpTransform struct {
	t xform.Transform
}

func (x *sexpTransform) SexpString(ps *zygo.PrintState) string {
	return "(" + x.t.String() + ")"
}
func (x *sexpTransform) Type() *zygo.RegisteredType { return nil }

// sexpRef names a body or step already added to the plan.
type sexpRef struct {
	kind string
	name string
}

func (r *sexpRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", r.kind, r.name)
}
func (r *sexpRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	fn         string
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword pairs from positional arguments. A
// trailing keyword with no value is stored as SexpNull.
func parseArgs(fn string, args []zygo.Sexp) kwArgs {
	ka := kwArgs{fn: fn, kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			ka.positional = append(ka.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			ka.kw[name] = args[i+1]
			i++
		} else {
			ka.kw[name] = zygo.SexpNull
		}
	}
	return ka
}

// float returns the keyword's number, or def when absent.
func (ka kwArgs) float(key string, def float64) (float64, error) {
	v, ok := ka.kw[key]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", ka.fn, key, err)
	}
	return f, nil
}

// count returns the keyword's whole number, or def when absent. Values
// outside [0, plan.MaxPoints] are rejected before any conversion.
func (ka kwArgs) count(key string, def int) (int, error) {
	f, err := ka.float(key, float64(def))
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < 0 || f > plan.MaxPoints {
		return 0, fmt.Errorf("%s: %s must be a whole number from 0 to %d, got %g", ka.fn, key, plan.MaxPoints, f)
	}
	return int(f), nil
}

// vec returns the keyword's vector, or def when absent.
func (ka kwArgs) vec(key string, def geom.Vec3) (geom.Vec3, error) {
	v, ok := ka.kw[key]
	if !ok {
		return def, nil
	}
	out, err := toVec3(v)
	if err != nil {
		return geom.Vec3{}, fmt.Errorf("%s: %s: %w", ka.fn, key, err)
	}
	return out, nil
}

// requireVec is vec for keywords without a sensible default.
func (ka kwArgs) requireVec(key string) (geom.Vec3, error) {
	if _, ok := ka.kw[key]; !ok {
		return geom.Vec3{}, fmt.Errorf("%s requires :%s", ka.fn, key)
	}
	return ka.vec(key, geom.Vec3{})
}

// axis reads :axis and :through into a line.
func (ka kwArgs) axis() (geom.Line, error) {
	dir, err := ka.requireVec("axis")
	if err != nil {
		return geom.Line{}, err
	}
	through, err := ka.vec("through", geom.Zero)
	if err != nil {
		return geom.Line{}, err
	}
	return geom.Line{Point: through, Dir: dir}, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts a preprocessed keyword (:cube) or a plain
// string ("cube").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toVec3 accepts a (vec3 ...) value or a three-element list or array.
func toVec3(s zygo.Sexp) (geom.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil || len(items) != 3 {
		return geom.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
	}
	var c [3]float64
	for i, it := range items {
		if c[i], err = toFloat64(it); err != nil {
			return geom.Vec3{}, err
		}
	}
	return geom.V(c[0], c[1], c[2]), nil
}

func toTransform(s zygo.Sexp) (xform.Transform, error) {
	if x, ok := s.(*sexpTransform); ok {
		return x.t, nil
	}
	return xform.Transform{}, fmt.Errorf("expected transform, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a Lisp list or array to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// degrees converts a script angle to radians.
func degrees(d float64) float64 {
	return d * math.Pi / 180
}

// exprOf renders a builtin call for SourceRef.Expr.
func exprOf(name string, args []zygo.Sexp) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, name)
	for _, a := range args {
		s := a.SexpString(nil)
		if k, ok := isKW(a); ok {
			s = ":" + k
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the transform DSL into a zygomys environment.
// Builtins append to p as the script runs.
//
// Source must go through preprocessSource first so :keyword tokens
// arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, p *plan.Plan) {

	// -----------------------------------------------------------------------
	// (vec3 1 -1 0)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			f, err := toFloat64(args[i])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
			}
			c[i] = f
		}
		return &sexpVec3{vec: geom.V(c[0], c[1], c[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (body "cube" :kind :cube :size 1 :at (vec3 2 -2 -3))
	// (body "top" :kind :cone :size 0.3 :height 0.5 :segments 20)
	// (body "snake" :kind :polyline :count 30 :at (vec3 0 1 0) :to (vec3 0 4 0))
	// -----------------------------------------------------------------------
	env.AddFunction("body", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("body", args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("body requires a name")
		}
		bodyName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("body: name: %w", err)
		}

		b := &plan.Body{Name: bodyName, Kind: plan.BodyCube, Size: 1, Segments: 24, Count: 2,
			Source: plan.SourceRef{Expr: exprOf(name, args)}}
		if v, ok := pa.kw["kind"]; ok {
			kind, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("body: kind: %w", err)
			}
			if b.Kind, err = plan.ParseBodyKind(kind); err != nil {
				return zygo.SexpNull, fmt.Errorf("body: %w", err)
			}
		}
		if b.Size, err = pa.float("size", b.Size); err != nil {
			return zygo.SexpNull, err
		}
		if b.Height, err = pa.float("height", b.Size); err != nil {
			return zygo.SexpNull, err
		}
		if b.Count, err = pa.count("count", b.Count); err != nil {
			return zygo.SexpNull, err
		}
		if b.Segments, err = pa.count("segments", b.Segments); err != nil {
			return zygo.SexpNull, err
		}
		if b.At, err = pa.vec("at", geom.Zero); err != nil {
			return zygo.SexpNull, err
		}
		if b.To, err = pa.vec("to", b.At); err != nil {
			return zygo.SexpNull, err
		}

		p.AddBody(b)
		return &sexpRef{kind: "body", name: bodyName}, nil
	})

	// -----------------------------------------------------------------------
	// (rotate :axis (vec3 1 -1 1) :through (vec3 -1 1 0) :angle 30)
	// -----------------------------------------------------------------------
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("rotate", args)
		axis, err := pa.axis()
		if err != nil {
			return zygo.SexpNull, err
		}
		angle, err := pa.float("angle", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTransform{t: xform.Rotate(axis, degrees(angle))}, nil
	})

	// -----------------------------------------------------------------------
	// (screw :axis (vec3 0 0 1) :through (vec3 0 0 0) :angle 90 :pitch 2)
	// -----------------------------------------------------------------------
	env.AddFunction("screw", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("screw", args)
		axis, err := pa.axis()
		if err != nil {
			return zygo.SexpNull, err
		}
		angle, err := pa.float("angle", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		pitch, err := pa.float("pitch", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTransform{t: xform.Screw(axis, degrees(angle), pitch)}, nil
	})

	// -----------------------------------------------------------------------
	// (reflect :normal (vec3 1 -1 0) :offset 1)
	// (reflect :normal (vec3 0 1 0) :through (vec3 0 2 0))
	// -----------------------------------------------------------------------
	env.AddFunction("reflect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("reflect", args)
		n, err := pa.requireVec("normal")
		if err != nil {
			return zygo.SexpNull, err
		}
		_, hasOffset := pa.kw["offset"]
		_, hasThrough := pa.kw["through"]
		if hasOffset && hasThrough {
			return zygo.SexpNull, fmt.Errorf("reflect: give either :offset or :through, not both")
		}
		if hasOffset {
			d, err := pa.float("offset", 0)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpTransform{t: xform.Reflect(geom.PlaneFromOffset(n, d))}, nil
		}
		through, err := pa.vec("through", geom.Zero)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTransform{t: xform.Reflect(geom.Plane{Point: through, Normal: n})}, nil
	})

	// -----------------------------------------------------------------------
	// (translate (vec3 1 -2 -3))
	// -----------------------------------------------------------------------
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("translate", args)
		if len(pa.positional) == 1 {
			v, err := toVec3(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("translate: %w", err)
			}
			return &sexpTransform{t: xform.Translate(v)}, nil
		}
		v, err := pa.requireVec("by")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTransform{t: xform.Translate(v)}, nil
	})

	// -----------------------------------------------------------------------
	// (scale (vec3 3 -2 0.5)) or (scale 2)
	// -----------------------------------------------------------------------
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("scale requires exactly 1 argument, got %d", len(args))
		}
		if f, err := toFloat64(args[0]); err == nil {
			return &sexpTransform{t: xform.ScaleBy(geom.V(f, f, f))}, nil
		}
		v, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		return &sexpTransform{t: xform.ScaleBy(v)}, nil
	})

	// -----------------------------------------------------------------------
	// (step "rotate" (rotate ...)) or (step (rotate ...))
	// -----------------------------------------------------------------------
	env.AddFunction("step", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		var stepName string
		switch len(args) {
		case 1:
		case 2:
			s, err := toString(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("step: name: %w", err)
			}
			stepName = s
			args = args[1:]
		default:
			return zygo.SexpNull, fmt.Errorf("step requires an optional name and a transform, got %d arguments", len(args))
		}
		t, err := toTransform(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("step: %w", err)
		}
		s := p.AddStep(stepName, t, plan.SourceRef{Expr: exprOf(name, args)})
		return &sexpRef{kind: "step", name: s.Name}, nil
	})
}
