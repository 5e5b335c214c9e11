// Package tuple defines the plain coordinate containers that rotations are
// applied to. Each dimension comes as a read-only capability and a mutable
// one so routines can state exactly what they read and what they write.
package tuple

import (
	"fmt"
	"math"

	"github.com/chazu/orient/pkg/numeric"
	"github.com/golang/geo/r3"
)

// Tuple2DReadOnly exposes the components of a 2D tuple.
type Tuple2DReadOnly interface {
	X() float64
	Y() float64
}

// Tuple2DBasics is a writable 2D tuple.
type Tuple2DBasics interface {
	Tuple2DReadOnly
	Set(x, y float64)
}

// Tuple3DReadOnly exposes the components of a 3D tuple.
type Tuple3DReadOnly interface {
	X() float64
	Y() float64
	Z() float64
}

// Tuple3DBasics is a writable 3D tuple.
type Tuple3DBasics interface {
	Tuple3DReadOnly
	Set(x, y, z float64)
}

// Vector4DReadOnly exposes the components of a 4D vector. S is the scalar
// (homogeneous) component.
type Vector4DReadOnly interface {
	X() float64
	Y() float64
	Z() float64
	S() float64
}

// Vector4DBasics is a writable 4D vector.
type Vector4DBasics interface {
	Vector4DReadOnly
	Set(x, y, z, s float64)
}

// Compile-time interface checks.
var (
	_ Tuple2DBasics  = (*Tuple2)(nil)
	_ Tuple3DBasics  = (*Vector3)(nil)
	_ Vector4DBasics = (*Vector4)(nil)
)

// ---------------------------------------------------------------------------
// Tuple2
// ---------------------------------------------------------------------------

// Tuple2 is a 2D coordinate pair.
type Tuple2 struct {
	x, y float64
}

// NewTuple2 returns the tuple (x, y).
func NewTuple2(x, y float64) *Tuple2 {
	return &Tuple2{x: x, y: y}
}

func (t *Tuple2) X() float64 { return t.x }
func (t *Tuple2) Y() float64 { return t.y }

// Set overwrites both components.
func (t *Tuple2) Set(x, y float64) {
	t.x = x
	t.y = y
}

// EpsilonEquals reports whether each component of o is within eps of t.
func (t *Tuple2) EpsilonEquals(o Tuple2DReadOnly, eps float64) bool {
	return math.Abs(t.x-o.X()) <= eps && math.Abs(t.y-o.Y()) <= eps
}

// ContainsNaN reports whether any component is NaN.
func (t *Tuple2) ContainsNaN() bool {
	return numeric.ContainsNaN2(t.x, t.y)
}

func (t *Tuple2) String() string {
	return fmt.Sprintf("(%g, %g)", t.x, t.y)
}

// ---------------------------------------------------------------------------
// Vector3
// ---------------------------------------------------------------------------

// Vector3 is a 3D vector or point.
type Vector3 struct {
	x, y, z float64
}

// NewVector3 returns the vector (x, y, z).
func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{x: x, y: y, z: z}
}

func (v *Vector3) X() float64 { return v.x }
func (v *Vector3) Y() float64 { return v.y }
func (v *Vector3) Z() float64 { return v.z }

// Set overwrites all components.
func (v *Vector3) Set(x, y, z float64) {
	v.x = x
	v.y = y
	v.z = z
}

// SetFrom copies the components of o.
func (v *Vector3) SetFrom(o Tuple3DReadOnly) {
	v.Set(o.X(), o.Y(), o.Z())
}

// Length returns the Euclidean norm.
func (v *Vector3) Length() float64 {
	return math.Sqrt(numeric.NormSquared3(v.x, v.y, v.z))
}

// EpsilonEquals reports whether each component of o is within eps of v.
func (v *Vector3) EpsilonEquals(o Tuple3DReadOnly, eps float64) bool {
	return math.Abs(v.x-o.X()) <= eps &&
		math.Abs(v.y-o.Y()) <= eps &&
		math.Abs(v.z-o.Z()) <= eps
}

// ContainsNaN reports whether any component is NaN.
func (v *Vector3) ContainsNaN() bool {
	return numeric.ContainsNaN3(v.x, v.y, v.z)
}

func (v *Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.x, v.y, v.z)
}

// ---------------------------------------------------------------------------
// Vector4
// ---------------------------------------------------------------------------

// Vector4 is a 4D vector. Rotations leave S untouched.
type Vector4 struct {
	x, y, z, s float64
}

// NewVector4 returns the vector (x, y, z, s).
func NewVector4(x, y, z, s float64) *Vector4 {
	return &Vector4{x: x, y: y, z: z, s: s}
}

func (v *Vector4) X() float64 { return v.x }
func (v *Vector4) Y() float64 { return v.y }
func (v *Vector4) Z() float64 { return v.z }
func (v *Vector4) S() float64 { return v.s }

// Set overwrites all components.
func (v *Vector4) Set(x, y, z, s float64) {
	v.x = x
	v.y = y
	v.z = z
	v.s = s
}

// EpsilonEquals reports whether each component of o is within eps of v.
func (v *Vector4) EpsilonEquals(o Vector4DReadOnly, eps float64) bool {
	return math.Abs(v.x-o.X()) <= eps &&
		math.Abs(v.y-o.Y()) <= eps &&
		math.Abs(v.z-o.Z()) <= eps &&
		math.Abs(v.s-o.S()) <= eps
}

// ContainsNaN reports whether any component is NaN.
func (v *Vector4) ContainsNaN() bool {
	return numeric.ContainsNaN4(v.x, v.y, v.z, v.s)
}

func (v *Vector4) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v.x, v.y, v.z, v.s)
}

// ---------------------------------------------------------------------------
// r3 interop
// ---------------------------------------------------------------------------

// ToR3 converts a 3D tuple to a golang/geo r3.Vector.
func ToR3(t Tuple3DReadOnly) r3.Vector {
	return r3.Vector{X: t.X(), Y: t.Y(), Z: t.Z()}
}

// SetFromR3 writes the components of v into out.
func SetFromR3(v r3.Vector, out Tuple3DBasics) {
	out.Set(v.X, v.Y, v.Z)
}
