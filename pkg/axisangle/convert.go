package axisangle

import (
	"math"

	"github.com/chazu/orient/pkg/matrix"
	"github.com/chazu/orient/pkg/numeric"
	"github.com/chazu/orient/pkg/quaternion"
	"github.com/chazu/orient/pkg/tuple"
)

// ToQuaternion writes the half-angle quaternion of a into out. A degenerate
// axis gives the identity.
func ToQuaternion(a ReadOnly, out quaternion.Basics) {
	quaternion.SetFromAxisAngleRaw(a.X(), a.Y(), a.Z(), a.Angle(), out)
}

// ToRotationMatrix writes the rotation matrix of a into out.
func ToRotationMatrix(a ReadOnly, out *matrix.RotationMatrix) {
	qx, qy, qz, qs, _ := halfAngle(a)
	out.SetFromQuaternionRaw(qx, qy, qz, qs)
}

// RotationVector writes the unit axis of a scaled by its angle into out.
// A degenerate axis gives the zero vector.
func RotationVector(a ReadOnly, out tuple.Tuple3DBasics) {
	ux, uy, uz, angle, ok := unitAxis(a)
	if !ok {
		out.Set(0, 0, 0)
		return
	}
	out.Set(ux*angle, uy*angle, uz*angle)
}

// SetFromQuaternion converts q into out. The resulting axis is unit length
// and the angle lies in [0, 2π]. A quaternion with no vector part gives the
// identity; NaN components propagate.
func SetFromQuaternion(q quaternion.ReadOnly, out Basics) {
	qx, qy, qz, qs := q.X(), q.Y(), q.Z(), q.S()
	if numeric.ContainsNaN4(qx, qy, qz, qs) {
		out.Set(math.NaN(), math.NaN(), math.NaN(), math.NaN())
		return
	}

	uNorm := math.Sqrt(numeric.NormSquared3(qx, qy, qz))
	if uNorm < EPS {
		out.Set(1, 0, 0, 0)
		return
	}
	angle := 2.0 * math.Atan2(uNorm, qs)
	uNorm = 1.0 / uNorm
	out.Set(qx*uNorm, qy*uNorm, qz*uNorm, angle)
}

// SetFromRotationMatrix converts m into out.
func SetFromRotationMatrix(m matrix.Matrix3DReadOnly, out Basics) {
	var q quaternion.Quaternion
	quaternion.SetFromRotationMatrix(m, &q)
	SetFromQuaternion(&q, out)
}

// GeometricallyEquals reports whether a and b represent the same rotation
// within eps radians.
func GeometricallyEquals(a, b ReadOnly, eps float64) bool {
	var qa, qb quaternion.Quaternion
	ToQuaternion(a, &qa)
	ToQuaternion(b, &qb)
	return qa.GeometricallyEquals(&qb, eps)
}
