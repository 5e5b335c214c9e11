package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chazu/orient/pkg/axisangle"
	"github.com/chazu/orient/pkg/kernel"
	"github.com/chazu/orient/pkg/matrix"
	"github.com/chazu/orient/pkg/numeric"
	"github.com/chazu/orient/pkg/quaternion"
	"github.com/chazu/orient/pkg/tuple"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpVec2 struct {
	v *tuple.Tuple2
}

func (s *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", s.v.X(), s.v.Y())
}
func (s *sexpVec2) Type() *zygo.RegisteredType { return nil }

type sexpVec3 struct {
	v *tuple.Vector3
}

func (s *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", s.v.X(), s.v.Y(), s.v.Z())
}
func (s *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpVec4 struct {
	v *tuple.Vector4
}

func (s *sexpVec4) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec4 %g %g %g %g)", s.v.X(), s.v.Y(), s.v.Z(), s.v.S())
}
func (s *sexpVec4) Type() *zygo.RegisteredType { return nil }

type sexpQuat struct {
	q *quaternion.Quaternion
}

func (s *sexpQuat) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(quat %g %g %g %g)", s.q.X(), s.q.Y(), s.q.Z(), s.q.S())
}
func (s *sexpQuat) Type() *zygo.RegisteredType { return nil }

type sexpAxisAngle struct {
	aa *axisangle.AxisAngle
}

func (s *sexpAxisAngle) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(axis-angle %g %g %g %g)", s.aa.X(), s.aa.Y(), s.aa.Z(), s.aa.Angle())
}
func (s *sexpAxisAngle) Type() *zygo.RegisteredType { return nil }

// sexpMatrix3 wraps a general 3x3 matrix, sexpRotationMatrix a checked
// rotation.
type sexpMatrix3 struct {
	m *matrix.Matrix3D
}

func (s *sexpMatrix3) SexpString(ps *zygo.PrintState) string {
	return "(matrix3 " + joinElements(s.m.Elements()) + ")"
}
func (s *sexpMatrix3) Type() *zygo.RegisteredType { return nil }

type sexpRotationMatrix struct {
	m *matrix.RotationMatrix
}

func (s *sexpRotationMatrix) SexpString(ps *zygo.PrintState) string {
	return "(rotation-matrix " + joinElements(s.m.Elements()) + ")"
}
func (s *sexpRotationMatrix) Type() *zygo.RegisteredType { return nil }

func joinElements(e [9]float64) string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, " ")
}

// sexpSolid wraps a kernel.Solid.
type sexpSolid struct {
	s kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	min, max := s.s.BoundingBox()
	return fmt.Sprintf("(solid (%g %g %g) (%g %g %g))", min[0], min[1], min[2], max[0], max[1], max[2])
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// flag reports whether the keyword name was given, with or without a value.
func (a kwArgs) flag(name string) bool {
	_, ok := a.kw[name]
	return ok
}

// parseArgs separates args into keyword and positional arguments.
// A keyword followed by another keyword, or by nothing, is a flag and maps
// to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			if _, next := isKW(args[i+1]); !next {
				result.kw[name] = args[i+1]
				i++
				continue
			}
		}
		result.kw[name] = zygo.SexpNull
	}
	return result
}

// checkFlags rejects keywords other than the allowed ones.
func checkFlags(pa kwArgs, allowed ...string) error {
	for name := range pa.kw {
		known := false
		for _, a := range allowed {
			if name == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown keyword :%s", name)
		}
	}
	return nil
}

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

// toFloats extracts exactly n numbers.
func toFloats(args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("requires exactly %d arguments, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

func toAxisAngle(s zygo.Sexp) (*axisangle.AxisAngle, error) {
	if v, ok := s.(*sexpAxisAngle); ok {
		return v.aa, nil
	}
	return nil, fmt.Errorf("expected axis-angle, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (*tuple.Vector3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.v, nil
	}
	return nil, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.s, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinFunc is the zygomys builtin signature.
type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// numbers builds a constructor builtin taking exactly n numbers.
func numbers(label string, n int, build func(f []float64) (zygo.Sexp, error)) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := toFloats(args, n)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
		}
		return build(f)
	}
}

// elemental builds one of the prepend/append builtins. Prepend forms take
// (angle aa), append forms take (aa angle). The result starts as the
// identity, so a degenerate aa yields the identity.
func elemental(label string, prepend bool, fn func(angle float64, original axisangle.ReadOnly, out axisangle.Basics)) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 arguments, got %d", label, len(args))
		}
		angleArg, aaArg := args[0], args[1]
		if !prepend {
			angleArg, aaArg = args[1], args[0]
		}
		angle, err := toFloat64(angleArg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: angle: %w", label, err)
		}
		aa, err := toAxisAngle(aaArg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
		}
		out := axisangle.Identity()
		fn(angle, aa, out)
		return &sexpAxisAngle{aa: out}, nil
	}
}

func appendForm(fn func(original axisangle.ReadOnly, angle float64, out axisangle.Basics)) func(float64, axisangle.ReadOnly, axisangle.Basics) {
	return func(angle float64, original axisangle.ReadOnly, out axisangle.Basics) {
		fn(original, angle, out)
	}
}

// registerBuiltins installs all orient builtins into a zygomys environment.
// Values are immutable from the script's point of view: every builtin
// returns a fresh value.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals and
// kebab-case names reach the underscore registrations below.
func registerBuiltins(env *zygo.Zlisp, k kernel.Kernel) {

	// -----------------------------------------------------------------------
	// Value constructors
	// -----------------------------------------------------------------------

	// (vec2 x y)
	env.AddFunction("vec2", numbers("vec2", 2, func(f []float64) (zygo.Sexp, error) {
		return &sexpVec2{v: tuple.NewTuple2(f[0], f[1])}, nil
	}))

	// (vec3 x y z)
	env.AddFunction("vec3", numbers("vec3", 3, func(f []float64) (zygo.Sexp, error) {
		return &sexpVec3{v: tuple.NewVector3(f[0], f[1], f[2])}, nil
	}))

	// (vec4 x y z s)
	env.AddFunction("vec4", numbers("vec4", 4, func(f []float64) (zygo.Sexp, error) {
		return &sexpVec4{v: tuple.NewVector4(f[0], f[1], f[2], f[3])}, nil
	}))

	// (quat x y z s), normalized
	env.AddFunction("quat", numbers("quat", 4, func(f []float64) (zygo.Sexp, error) {
		return &sexpQuat{q: quaternion.New(f[0], f[1], f[2], f[3])}, nil
	}))

	// (axis-angle x y z angle), axis kept as given
	env.AddFunction("axis_angle", numbers("axis-angle", 4, func(f []float64) (zygo.Sexp, error) {
		return &sexpAxisAngle{aa: axisangle.New(f[0], f[1], f[2], f[3])}, nil
	}))

	// (matrix3 m00 m01 m02 m10 m11 m12 m20 m21 m22)
	env.AddFunction("matrix3", numbers("matrix3", 9, func(f []float64) (zygo.Sexp, error) {
		return &sexpMatrix3{m: matrix.NewMatrix3D(f[0], f[1], f[2], f[3], f[4], f[5], f[6], f[7], f[8])}, nil
	}))

	// (rotation-matrix aa) or (rotation-matrix m00 ... m22)
	env.AddFunction("rotation_matrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 1 {
			aa, err := toAxisAngle(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rotation-matrix: %w", err)
			}
			m := matrix.NewRotationMatrix()
			axisangle.ToRotationMatrix(aa, m)
			return &sexpRotationMatrix{m: m}, nil
		}

		f, err := toFloats(args, 9)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation-matrix: %w", err)
		}
		var e [9]float64
		copy(e[:], f)
		m, err := matrix.NewRotationMatrixFrom(e)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotation-matrix: %w", err)
		}
		return &sexpRotationMatrix{m: m}, nil
	})

	// (axis-angle-of q) converts a quaternion or rotation matrix.
	env.AddFunction("axis_angle_of", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("axis-angle-of requires exactly 1 argument, got %d", len(args))
		}
		out := axisangle.Identity()
		switch v := args[0].(type) {
		case *sexpQuat:
			axisangle.SetFromQuaternion(v.q, out)
		case *sexpRotationMatrix:
			axisangle.SetFromRotationMatrix(v.m, out)
		default:
			return zygo.SexpNull, fmt.Errorf("axis-angle-of: expected quat or rotation-matrix, got %T (%s)", args[0], args[0].SexpString(nil))
		}
		return &sexpAxisAngle{aa: out}, nil
	})

	// -----------------------------------------------------------------------
	// (transform aa value [:inverse] [:check-planar])
	// -----------------------------------------------------------------------
	env.AddFunction("transform", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := checkFlags(pa, "inverse", "check-planar"); err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("transform requires an axis-angle and a value, got %d arguments", len(pa.positional))
		}
		aa, err := toAxisAngle(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		inverse := pa.flag("inverse")

		switch v := pa.positional[1].(type) {
		case *sexpVec2:
			out := tuple.NewTuple2(0, 0)
			fn := axisangle.TransformTuple2D
			if inverse {
				fn = axisangle.InverseTransformTuple2D
			}
			if err := fn(aa, v.v, out, pa.flag("check-planar")); err != nil {
				return zygo.SexpNull, fmt.Errorf("transform: %w", err)
			}
			return &sexpVec2{v: out}, nil

		case *sexpVec3:
			out := tuple.NewVector3(0, 0, 0)
			if inverse {
				axisangle.InverseTransformTuple3D(aa, v.v, out)
			} else {
				axisangle.TransformTuple3D(aa, v.v, out)
			}
			return &sexpVec3{v: out}, nil

		case *sexpVec4:
			out := tuple.NewVector4(0, 0, 0, 0)
			if inverse {
				axisangle.InverseTransformVector4D(aa, v.v, out)
			} else {
				axisangle.TransformVector4D(aa, v.v, out)
			}
			return &sexpVec4{v: out}, nil

		case *sexpMatrix3:
			out := matrix.NewMatrix3DIdentity()
			if inverse {
				axisangle.InverseTransformMatrix3D(aa, v.m, out)
			} else {
				axisangle.TransformMatrix3D(aa, v.m, out)
			}
			return &sexpMatrix3{m: out}, nil

		case *sexpQuat:
			out := quaternion.Identity()
			if inverse {
				axisangle.InverseTransformQuaternion(aa, v.q, out)
			} else {
				axisangle.TransformQuaternion(aa, v.q, out)
			}
			return &sexpQuat{q: out}, nil

		case *sexpRotationMatrix:
			out := matrix.NewRotationMatrix()
			if inverse {
				axisangle.InverseTransformRotationMatrix(aa, v.m, out)
			} else {
				axisangle.TransformRotationMatrix(aa, v.m, out)
			}
			return &sexpRotationMatrix{m: out}, nil
		}

		return zygo.SexpNull, fmt.Errorf("transform: cannot transform %T (%s)", pa.positional[1], pa.positional[1].SexpString(nil))
	})

	// -----------------------------------------------------------------------
	// (multiply a b [:invert-left] [:invert-right])
	//
	// The result starts as the identity; a degenerate operand leaves it there.
	// -----------------------------------------------------------------------
	env.AddFunction("multiply", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := checkFlags(pa, "invert-left", "invert-right"); err != nil {
			return zygo.SexpNull, fmt.Errorf("multiply: %w", err)
		}
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("multiply requires exactly 2 axis-angles, got %d", len(pa.positional))
		}
		a, err := toAxisAngle(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("multiply: left: %w", err)
		}
		b, err := toAxisAngle(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("multiply: right: %w", err)
		}

		fn := axisangle.Multiply
		switch left, right := pa.flag("invert-left"), pa.flag("invert-right"); {
		case left && right:
			fn = axisangle.MultiplyInvertBoth
		case left:
			fn = axisangle.MultiplyInvertLeft
		case right:
			fn = axisangle.MultiplyInvertRight
		}
		out := axisangle.Identity()
		fn(a, b, out)
		return &sexpAxisAngle{aa: out}, nil
	})

	// -----------------------------------------------------------------------
	// (prepend-yaw angle aa), (append-yaw aa angle), and pitch/roll peers
	// -----------------------------------------------------------------------
	env.AddFunction("prepend_yaw", elemental("prepend-yaw", true, axisangle.PrependYaw))
	env.AddFunction("append_yaw", elemental("append-yaw", false, appendForm(axisangle.AppendYaw)))
	env.AddFunction("prepend_pitch", elemental("prepend-pitch", true, axisangle.PrependPitch))
	env.AddFunction("append_pitch", elemental("append-pitch", false, appendForm(axisangle.AppendPitch)))
	env.AddFunction("prepend_roll", elemental("prepend-roll", true, axisangle.PrependRoll))
	env.AddFunction("append_roll", elemental("append-roll", false, appendForm(axisangle.AppendRoll)))

	// -----------------------------------------------------------------------
	// Scalars
	// -----------------------------------------------------------------------

	// (angle-of aa) or (angle-of q)
	env.AddFunction("angle_of", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("angle-of requires exactly 1 argument, got %d", len(args))
		}
		switch v := args[0].(type) {
		case *sexpAxisAngle:
			return &zygo.SexpFloat{Val: v.aa.Angle()}, nil
		case *sexpQuat:
			return &zygo.SexpFloat{Val: v.q.Angle()}, nil
		}
		return zygo.SexpNull, fmt.Errorf("angle-of: expected axis-angle or quat, got %T (%s)", args[0], args[0].SexpString(nil))
	})

	// (trim-angle a) wraps into [-π, π)
	env.AddFunction("trim_angle", numbers("trim-angle", 1, func(f []float64) (zygo.Sexp, error) {
		return &zygo.SexpFloat{Val: numeric.TrimAngleMinusPiToPi(f[0])}, nil
	}))

	// (geometrically-equal a b eps)
	env.AddFunction("geometrically_equal", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("geometrically-equal requires 2 axis-angles and a tolerance, got %d arguments", len(args))
		}
		a, errA := toAxisAngle(args[0])
		b, errB := toAxisAngle(args[1])
		eps, errEps := toFloat64(args[2])
		if err := errors.Join(errA, errB, errEps); err != nil {
			return zygo.SexpNull, fmt.Errorf("geometrically-equal: %w", err)
		}
		return &zygo.SexpBool{Val: axisangle.GeometricallyEquals(a, b, eps)}, nil
	})

	// -----------------------------------------------------------------------
	// Solids
	// -----------------------------------------------------------------------

	// (box x y z), minimum corner at the origin
	env.AddFunction("box", numbers("box", 3, func(f []float64) (zygo.Sexp, error) {
		for i, d := range f {
			if d <= 0 {
				return zygo.SexpNull, fmt.Errorf("box: dimension %d must be positive, got %g", i+1, d)
			}
		}
		return &sexpSolid{s: k.Box(f[0], f[1], f[2])}, nil
	}))

	// (translate-solid s (vec3 x y z))
	env.AddFunction("translate_solid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate-solid requires a solid and a vec3, got %d arguments", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate-solid: %w", err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate-solid: %w", err)
		}
		return &sexpSolid{s: k.Translate(s, v.X(), v.Y(), v.Z())}, nil
	})

	// (rotate-solid s aa) or (rotate-solid s rotation-matrix)
	env.AddFunction("rotate_solid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("rotate-solid requires a solid and a rotation, got %d arguments", len(args))
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate-solid: %w", err)
		}
		switch r := args[1].(type) {
		case *sexpAxisAngle:
			return &sexpSolid{s: k.Rotate(s, r.aa)}, nil
		case *sexpRotationMatrix:
			return &sexpSolid{s: k.RotateMatrix(s, r.m)}, nil
		}
		return zygo.SexpNull, fmt.Errorf("rotate-solid: expected axis-angle or rotation-matrix, got %T (%s)", args[1], args[1].SexpString(nil))
	})

	// (union a b ...)
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("union requires at least 2 solids, got %d", len(args))
		}
		acc, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("union: solid 1: %w", err)
		}
		for i, a := range args[1:] {
			s, err := toSolid(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("union: solid %d: %w", i+2, err)
			}
			acc = k.Union(acc, s)
		}
		return &sexpSolid{s: acc}, nil
	})

	// (bounds-min s), (bounds-max s)
	bounds := func(label string, pick func(min, max [3]float64) [3]float64) builtinFunc {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 solid, got %d arguments", label, len(args))
			}
			s, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", label, err)
			}
			c := pick(s.BoundingBox())
			return &sexpVec3{v: tuple.NewVector3(c[0], c[1], c[2])}, nil
		}
	}
	env.AddFunction("bounds_min", bounds("bounds-min", func(min, max [3]float64) [3]float64 { return min }))
	env.AddFunction("bounds_max", bounds("bounds-max", func(min, max [3]float64) [3]float64 { return max }))
}
