package quaternion

import (
	"math"

	"github.com/chazu/orient/pkg/matrix"
	"github.com/chazu/orient/pkg/numeric"
	"github.com/chazu/orient/pkg/tuple"
)

// EPS is the norm below which a quaternion is treated as the identity.
const EPS = 1.0e-12

// MultiplyRaw computes out = q1 * q2 from raw components, conjugating
// either operand first when asked. All inputs are plain scalars, so out may
// be the storage q1 or q2 were read from.
func MultiplyRaw(q1x, q1y, q1z, q1s float64, conjugateQ1 bool, q2x, q2y, q2z, q2s float64, conjugateQ2 bool, out Basics) {
	if conjugateQ1 {
		q1x, q1y, q1z = -q1x, -q1y, -q1z
	}
	if conjugateQ2 {
		q2x, q2y, q2z = -q2x, -q2y, -q2z
	}

	x := q1s*q2x + q1x*q2s + q1y*q2z - q1z*q2y
	y := q1s*q2y - q1x*q2z + q1y*q2s + q1z*q2x
	z := q1s*q2z + q1x*q2y - q1y*q2x + q1z*q2s
	s := q1s*q2s - q1x*q2x - q1y*q2y - q1z*q2z
	out.Set(x, y, z, s)
}

// Multiply computes out = q1 * q2.
func Multiply(q1, q2 ReadOnly, out Basics) {
	multiply(q1, false, q2, false, out)
}

// MultiplyConjugateLeft computes out = conj(q1) * q2.
func MultiplyConjugateLeft(q1, q2 ReadOnly, out Basics) {
	multiply(q1, true, q2, false, out)
}

// MultiplyConjugateRight computes out = q1 * conj(q2).
func MultiplyConjugateRight(q1, q2 ReadOnly, out Basics) {
	multiply(q1, false, q2, true, out)
}

func multiply(q1 ReadOnly, conjugateQ1 bool, q2 ReadOnly, conjugateQ2 bool, out Basics) {
	MultiplyRaw(q1.X(), q1.Y(), q1.Z(), q1.S(), conjugateQ1, q2.X(), q2.Y(), q2.Z(), q2.S(), conjugateQ2, out)
}

// Transform rotates in by q and stores the result in out. in and out may be
// the same tuple.
func Transform(q ReadOnly, in tuple.Tuple3DReadOnly, out tuple.Tuple3DBasics) {
	TransformRaw(q.X(), q.Y(), q.Z(), q.S(), false, in, out)
}

// InverseTransform rotates in by the conjugate of q.
func InverseTransform(q ReadOnly, in tuple.Tuple3DReadOnly, out tuple.Tuple3DBasics) {
	TransformRaw(q.X(), q.Y(), q.Z(), q.S(), true, in, out)
}

// TransformRaw rotates in by the quaternion (qx, qy, qz, qs), conjugated
// when asked: out = q * in * conj(q). A quaternion with norm below EPS
// copies in unchanged.
func TransformRaw(qx, qy, qz, qs float64, conjugate bool, in tuple.Tuple3DReadOnly, out tuple.Tuple3DBasics) {
	norm := numeric.Norm4(qx, qy, qz, qs)
	if norm < EPS {
		out.Set(in.X(), in.Y(), in.Z())
		return
	}
	norm = 1.0 / norm
	qx *= norm
	qy *= norm
	qz *= norm
	qs *= norm
	if conjugate {
		qx, qy, qz = -qx, -qy, -qz
	}

	x, y, z := in.X(), in.Y(), in.Z()

	// v' = v + 2s(q×v) + 2q×(q×v)
	crossX := 2.0 * (qy*z - qz*y)
	crossY := 2.0 * (qz*x - qx*z)
	crossZ := 2.0 * (qx*y - qy*x)
	crossCrossX := qy*crossZ - qz*crossY
	crossCrossY := qz*crossX - qx*crossZ
	crossCrossZ := qx*crossY - qy*crossX

	out.Set(
		x+qs*crossX+crossCrossX,
		y+qs*crossY+crossCrossY,
		z+qs*crossZ+crossCrossZ,
	)
}

// TransformMatrixRaw computes out = R(q) * in * R(q)ᵀ, where R(q) is the
// rotation matrix of (qx, qy, qz, qs), conjugated when asked. in and out
// may be the same matrix.
func TransformMatrixRaw(qx, qy, qz, qs float64, conjugate bool, in matrix.Matrix3DReadOnly, out matrix.Matrix3DBasics) {
	if conjugate {
		qx, qy, qz = -qx, -qy, -qz
	}
	r := matrix.FromQuaternionRaw(qx, qy, qz, qs)
	e := in.Elements()
	out.SetElements(matrix.MulElements(matrix.MulElements(r, e), matrix.TransposeElements(r)))
}

// MultiplyRotationMatrixRaw computes out = R(q) * m, or R(q) * mᵀ when
// transposeMatrix is set, where R(q) is the rotation matrix of
// (qx, qy, qz, qs), conjugated when asked. m and out may be the same matrix.
func MultiplyRotationMatrixRaw(qx, qy, qz, qs float64, conjugate bool, m matrix.RotationMatrixReadOnly, transposeMatrix bool, out *matrix.RotationMatrix) {
	if conjugate {
		qx, qy, qz = -qx, -qy, -qz
	}
	r := matrix.FromQuaternionRaw(qx, qy, qz, qs)
	e := m.Elements()
	if transposeMatrix {
		e = matrix.TransposeElements(e)
	}
	out.SetElements(matrix.MulElements(r, e))
}

// SetFromRotationMatrix converts a rotation matrix into out. The branch with
// the largest diagonal term is used so the division is always well
// conditioned.
func SetFromRotationMatrix(m matrix.Matrix3DReadOnly, out Basics) {
	e := m.Elements()
	m00, m01, m02 := e[0], e[1], e[2]
	m10, m11, m12 := e[3], e[4], e[5]
	m20, m21, m22 := e[6], e[7], e[8]

	var x, y, z, s float64
	if trace := m00 + m11 + m22; trace > 0 {
		d := 2.0 * math.Sqrt(trace+1.0)
		s = 0.25 * d
		x = (m21 - m12) / d
		y = (m02 - m20) / d
		z = (m10 - m01) / d
	} else if m00 > m11 && m00 > m22 {
		d := 2.0 * math.Sqrt(1.0+m00-m11-m22)
		s = (m21 - m12) / d
		x = 0.25 * d
		y = (m01 + m10) / d
		z = (m02 + m20) / d
	} else if m11 > m22 {
		d := 2.0 * math.Sqrt(1.0+m11-m00-m22)
		s = (m02 - m20) / d
		x = (m01 + m10) / d
		y = 0.25 * d
		z = (m12 + m21) / d
	} else {
		d := 2.0 * math.Sqrt(1.0+m22-m00-m11)
		s = (m10 - m01) / d
		x = (m02 + m20) / d
		y = (m12 + m21) / d
		z = 0.25 * d
	}
	out.Set(x, y, z, s)
}

// SetFromAxisAngleRaw converts the axis-angle (ux, uy, uz, angle) into out.
// The axis need not be unit length; one shorter than EPS gives the
// identity.
func SetFromAxisAngleRaw(ux, uy, uz, angle float64, out Basics) {
	norm := math.Sqrt(numeric.NormSquared3(ux, uy, uz))
	if norm < EPS {
		out.SetUnsafe(0, 0, 0, 1)
		return
	}
	sin := math.Sin(0.5*angle) / norm
	out.Set(ux*sin, uy*sin, uz*sin, math.Cos(0.5*angle))
}
