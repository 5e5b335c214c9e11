// Package quaternion implements unit-quaternion algebra on raw (x, y, z, s)
// components. The axis-angle package converts itself to a half-angle
// quaternion and delegates composition and matrix conjugation here.
package quaternion

import (
	"fmt"
	"math"

	"github.com/chazu/orient/pkg/numeric"
	"gonum.org/v1/gonum/num/quat"
)

// ReadOnly exposes the components of a quaternion s + xi + yj + zk.
type ReadOnly interface {
	X() float64
	Y() float64
	Z() float64
	S() float64
}

// Basics is a writable quaternion. Set normalizes; SetUnsafe stores the
// components as given.
type Basics interface {
	ReadOnly
	Set(x, y, z, s float64)
	SetUnsafe(x, y, z, s float64)
}

// Compile-time interface check.
var _ Basics = (*Quaternion)(nil)

// Quaternion is a unit quaternion.
// The zero value is not a rotation; use New or Identity.
type Quaternion struct {
	x, y, z, s float64
}

// New returns the normalized quaternion (x, y, z, s).
func New(x, y, z, s float64) *Quaternion {
	q := &Quaternion{}
	q.Set(x, y, z, s)
	return q
}

// Identity returns the quaternion (0, 0, 0, 1).
func Identity() *Quaternion {
	return &Quaternion{s: 1}
}

func (q *Quaternion) X() float64 { return q.x }
func (q *Quaternion) Y() float64 { return q.y }
func (q *Quaternion) Z() float64 { return q.z }
func (q *Quaternion) S() float64 { return q.s }

// Set stores (x, y, z, s) divided by its norm. A zero quaternion becomes
// the identity; NaN components are stored unchanged.
func (q *Quaternion) Set(x, y, z, s float64) {
	if numeric.ContainsNaN4(x, y, z, s) {
		q.SetUnsafe(x, y, z, s)
		return
	}
	norm := numeric.Norm4(x, y, z, s)
	if norm == 0 {
		q.SetUnsafe(0, 0, 0, 1)
		return
	}
	norm = 1.0 / norm
	q.SetUnsafe(x*norm, y*norm, z*norm, s*norm)
}

// SetUnsafe stores the components without normalizing.
func (q *Quaternion) SetUnsafe(x, y, z, s float64) {
	q.x = x
	q.y = y
	q.z = z
	q.s = s
}

// SetFrom copies o without normalizing it.
func (q *Quaternion) SetFrom(o ReadOnly) {
	q.SetUnsafe(o.X(), o.Y(), o.Z(), o.S())
}

// Norm returns the Euclidean norm of the four components.
func (q *Quaternion) Norm() float64 {
	return numeric.Norm4(q.x, q.y, q.z, q.s)
}

// Conjugate negates the vector part, which inverts a unit quaternion.
func (q *Quaternion) Conjugate() {
	q.x, q.y, q.z = -q.x, -q.y, -q.z
}

// Angle returns the rotation angle in [0, 2π].
func (q *Quaternion) Angle() float64 {
	return 2.0 * math.Atan2(math.Sqrt(numeric.NormSquared3(q.x, q.y, q.z)), q.s)
}

// EpsilonEquals reports whether each component of o is within eps of q.
func (q *Quaternion) EpsilonEquals(o ReadOnly, eps float64) bool {
	return math.Abs(q.x-o.X()) <= eps &&
		math.Abs(q.y-o.Y()) <= eps &&
		math.Abs(q.z-o.Z()) <= eps &&
		math.Abs(q.s-o.S()) <= eps
}

// GeometricallyEquals reports whether q and o represent the same rotation
// within eps radians. q and -q are the same rotation.
func (q *Quaternion) GeometricallyEquals(o ReadOnly, eps float64) bool {
	var diff Quaternion
	MultiplyRaw(q.x, q.y, q.z, q.s, true, o.X(), o.Y(), o.Z(), o.S(), false, &diff)
	return math.Abs(numeric.TrimAngleMinusPiToPi(diff.Angle())) <= eps
}

// ContainsNaN reports whether any component is NaN.
func (q *Quaternion) ContainsNaN() bool {
	return numeric.ContainsNaN4(q.x, q.y, q.z, q.s)
}

func (q *Quaternion) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.x, q.y, q.z, q.s)
}

// ---------------------------------------------------------------------------
// gonum interop
// ---------------------------------------------------------------------------

// ToGonum converts q to a gonum quat.Number.
func ToGonum(q ReadOnly) quat.Number {
	return quat.Number{Real: q.S(), Imag: q.X(), Jmag: q.Y(), Kmag: q.Z()}
}

// SetFromGonum writes n into out, normalizing it.
func SetFromGonum(n quat.Number, out Basics) {
	out.Set(n.Imag, n.Jmag, n.Kmag, n.Real)
}
