// Package axisangle implements the axis-angle rotation algebra: transforms
// of tuples, vectors, matrices and quaternions, composition of two
// axis-angles, and closed-form prepend/append of elemental yaw, pitch and
// roll rotations.
//
// Every routine reads all of its inputs into locals before writing its
// output, so the output may be the same object as any input.
//
// An axis shorter than EPS is a defined degenerate case, never an error:
// transforms copy their input to their output, while Multiply and the
// prepend/append family leave their output untouched.
package axisangle

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/orient/pkg/numeric"
)

// EPS is the axis norm below which an axis-angle is degenerate.
const EPS = 1.0e-12

// ErrNotPlanar is returned by the 2D transforms when the XY-plane check is
// requested and the axis has a non-negligible X or Y component.
var ErrNotPlanar = errors.New("axis-angle is not a rotation in the XY plane")

// ReadOnly exposes an axis (X, Y, Z), not necessarily unit length, and an
// angle in radians about it.
type ReadOnly interface {
	X() float64
	Y() float64
	Z() float64
	Angle() float64
}

// Basics is a writable axis-angle.
type Basics interface {
	ReadOnly
	Set(x, y, z, angle float64)
}

// Compile-time interface check.
var _ Basics = (*AxisAngle)(nil)

// AxisAngle is a rotation of Angle radians about the axis (X, Y, Z).
// The zero value has a zero axis and therefore acts as the identity.
type AxisAngle struct {
	x, y, z, angle float64
}

// New returns the axis-angle (x, y, z, angle). The axis is stored as given.
func New(x, y, z, angle float64) *AxisAngle {
	return &AxisAngle{x: x, y: y, z: z, angle: angle}
}

// Identity returns a zero rotation about the X axis.
func Identity() *AxisAngle {
	return &AxisAngle{x: 1}
}

func (a *AxisAngle) X() float64     { return a.x }
func (a *AxisAngle) Y() float64     { return a.y }
func (a *AxisAngle) Z() float64     { return a.z }
func (a *AxisAngle) Angle() float64 { return a.angle }

// Set overwrites the axis and the angle.
func (a *AxisAngle) Set(x, y, z, angle float64) {
	a.x = x
	a.y = y
	a.z = z
	a.angle = angle
}

// SetFrom copies o.
func (a *AxisAngle) SetFrom(o ReadOnly) {
	a.Set(o.X(), o.Y(), o.Z(), o.Angle())
}

// NormalizeAxis scales the axis to unit length. A degenerate axis is left
// alone.
func (a *AxisAngle) NormalizeAxis() {
	norm := AxisNorm(a)
	if norm < EPS {
		return
	}
	norm = 1.0 / norm
	a.x *= norm
	a.y *= norm
	a.z *= norm
}

// Invert flips the angle, which inverts the rotation.
func (a *AxisAngle) Invert() {
	a.angle = -a.angle
}

// AxisNorm returns the length of the axis.
func (a *AxisAngle) AxisNorm() float64 { return AxisNorm(a) }

// EpsilonEquals reports whether each component of o is within eps of a.
func (a *AxisAngle) EpsilonEquals(o ReadOnly, eps float64) bool {
	return math.Abs(a.x-o.X()) <= eps &&
		math.Abs(a.y-o.Y()) <= eps &&
		math.Abs(a.z-o.Z()) <= eps &&
		math.Abs(a.angle-o.Angle()) <= eps
}

// GeometricallyEquals reports whether a and o represent the same rotation
// within eps radians, whatever their axis scaling or angle winding.
func (a *AxisAngle) GeometricallyEquals(o ReadOnly, eps float64) bool {
	return GeometricallyEquals(a, o, eps)
}

// ContainsNaN reports whether any component is NaN.
func (a *AxisAngle) ContainsNaN() bool {
	return numeric.ContainsNaN4(a.x, a.y, a.z, a.angle)
}

func (a *AxisAngle) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", a.x, a.y, a.z, a.angle)
}

// AxisNormSquared returns the squared length of the axis of a.
func AxisNormSquared(a ReadOnly) float64 {
	return numeric.NormSquared3(a.X(), a.Y(), a.Z())
}

// AxisNorm returns the length of the axis of a.
func AxisNorm(a ReadOnly) float64 {
	return math.Sqrt(AxisNormSquared(a))
}

// IsAxisUnitary reports whether the axis of a has unit length within eps.
func IsAxisUnitary(a ReadOnly, eps float64) bool {
	return math.Abs(1.0-AxisNorm(a)) < eps
}

// IsZOnly reports whether the X and Y components of the axis are both
// below eps in magnitude.
func IsZOnly(a ReadOnly, eps float64) bool {
	return math.Abs(a.X()) < eps && math.Abs(a.Y()) < eps
}

// CheckIfIsZOnly returns ErrNotPlanar unless IsZOnly(a, eps).
func CheckIfIsZOnly(a ReadOnly, eps float64) error {
	if !IsZOnly(a, eps) {
		return fmt.Errorf("%w: axis (%g, %g, %g)", ErrNotPlanar, a.X(), a.Y(), a.Z())
	}
	return nil
}
