package axisangle

import (
	"math"

	"github.com/chazu/orient/pkg/matrix"
	"github.com/chazu/orient/pkg/quaternion"
	"github.com/chazu/orient/pkg/tuple"
)

// ---------------------------------------------------------------------------
// 3D tuples
// ---------------------------------------------------------------------------

// TransformTuple3D rotates in by a and stores the result in out.
func TransformTuple3D(a ReadOnly, in tuple.Tuple3DReadOnly, out tuple.Tuple3DBasics) {
	transformTuple3D(a, false, in, out)
}

// InverseTransformTuple3D rotates in by the inverse of a.
func InverseTransformTuple3D(a ReadOnly, in tuple.Tuple3DReadOnly, out tuple.Tuple3DBasics) {
	transformTuple3D(a, true, in, out)
}

func transformTuple3D(a ReadOnly, negateAngle bool, in tuple.Tuple3DReadOnly, out tuple.Tuple3DBasics) {
	x, y, z := in.X(), in.Y(), in.Z()
	x, y, z = rotate(a, negateAngle, x, y, z)
	out.Set(x, y, z)
}

// rotate applies Rodrigues' formula
//
//	v' = v + sin(θ) u×v + (1-cos(θ)) u×(u×v)
//
// with u the normalized axis of a. A degenerate axis returns v unchanged.
func rotate(a ReadOnly, negateAngle bool, x, y, z float64) (float64, float64, float64) {
	axisNorm := AxisNorm(a)
	if axisNorm < EPS {
		return x, y, z
	}

	angle := a.Angle()
	if negateAngle {
		angle = -angle
	}
	cos := math.Cos(angle)
	oneMinusCos := 1.0 - cos
	sin := math.Sin(angle)

	axisNorm = 1.0 / axisNorm
	ux := a.X() * axisNorm
	uy := a.Y() * axisNorm
	uz := a.Z() * axisNorm

	crossX := uy*z - uz*y
	crossY := uz*x - ux*z
	crossZ := ux*y - uy*x
	crossCrossX := uy*crossZ - uz*crossY
	crossCrossY := uz*crossX - ux*crossZ
	crossCrossZ := ux*crossY - uy*crossX

	return x + sin*crossX + oneMinusCos*crossCrossX,
		y + sin*crossY + oneMinusCos*crossCrossY,
		z + sin*crossZ + oneMinusCos*crossCrossZ
}

// ---------------------------------------------------------------------------
// 2D tuples
// ---------------------------------------------------------------------------

// TransformTuple2D rotates the 2D tuple in by a, treating a as a rotation
// about Z; its X and Y axis components are ignored. When
// checkIfTransformInXYPlane is set and the axis is not along Z, it returns
// ErrNotPlanar and leaves out untouched.
func TransformTuple2D(a ReadOnly, in tuple.Tuple2DReadOnly, out tuple.Tuple2DBasics, checkIfTransformInXYPlane bool) error {
	return transformTuple2D(a, false, in, out, checkIfTransformInXYPlane)
}

// InverseTransformTuple2D rotates the 2D tuple in by the inverse of a. See
// TransformTuple2D for the XY-plane check.
func InverseTransformTuple2D(a ReadOnly, in tuple.Tuple2DReadOnly, out tuple.Tuple2DBasics, checkIfTransformInXYPlane bool) error {
	return transformTuple2D(a, true, in, out, checkIfTransformInXYPlane)
}

func transformTuple2D(a ReadOnly, negateAngle bool, in tuple.Tuple2DReadOnly, out tuple.Tuple2DBasics, checkIfTransformInXYPlane bool) error {
	if checkIfTransformInXYPlane {
		if err := CheckIfIsZOnly(a, EPS); err != nil {
			return err
		}
	}

	x, y := in.X(), in.Y()

	axisNorm := AxisNorm(a)
	if axisNorm < EPS {
		out.Set(x, y)
		return nil
	}

	angle := a.Angle()
	if negateAngle {
		angle = -angle
	}
	cos := math.Cos(angle)
	oneMinusCos := 1.0 - cos
	sin := math.Sin(angle)

	uz := a.Z() / axisNorm

	crossX := -uz * y
	crossY := uz * x
	crossCrossX := -uz * crossY
	crossCrossY := uz * crossX

	out.Set(x+sin*crossX+oneMinusCos*crossCrossX, y+sin*crossY+oneMinusCos*crossCrossY)
	return nil
}

// ---------------------------------------------------------------------------
// 4D vectors
// ---------------------------------------------------------------------------

// TransformVector4D rotates the X, Y, Z part of in by a. S passes through.
func TransformVector4D(a ReadOnly, in tuple.Vector4DReadOnly, out tuple.Vector4DBasics) {
	transformVector4D(a, false, in, out)
}

// InverseTransformVector4D rotates the X, Y, Z part of in by the inverse
// of a. S passes through.
func InverseTransformVector4D(a ReadOnly, in tuple.Vector4DReadOnly, out tuple.Vector4DBasics) {
	transformVector4D(a, true, in, out)
}

func transformVector4D(a ReadOnly, negateAngle bool, in tuple.Vector4DReadOnly, out tuple.Vector4DBasics) {
	x, y, z, s := in.X(), in.Y(), in.Z(), in.S()
	x, y, z = rotate(a, negateAngle, x, y, z)
	out.Set(x, y, z, s)
}

// ---------------------------------------------------------------------------
// Matrices and quaternions, via the half-angle quaternion of a
// ---------------------------------------------------------------------------

// halfAngle returns the unit quaternion of a. ok is false for a degenerate
// axis.
func halfAngle(a ReadOnly) (qx, qy, qz, qs float64, ok bool) {
	axisNorm := AxisNorm(a)
	if axisNorm < EPS {
		return 0, 0, 0, 1, false
	}
	halfAngle := 0.5 * a.Angle()
	sin := math.Sin(halfAngle) / axisNorm
	return a.X() * sin, a.Y() * sin, a.Z() * sin, math.Cos(halfAngle), true
}

// TransformMatrix3D computes out = R(a) * in * R(a)⁻¹.
func TransformMatrix3D(a ReadOnly, in matrix.Matrix3DReadOnly, out matrix.Matrix3DBasics) {
	transformMatrix3D(a, false, in, out)
}

// InverseTransformMatrix3D computes out = R(a)⁻¹ * in * R(a).
func InverseTransformMatrix3D(a ReadOnly, in matrix.Matrix3DReadOnly, out matrix.Matrix3DBasics) {
	transformMatrix3D(a, true, in, out)
}

func transformMatrix3D(a ReadOnly, negateAngle bool, in matrix.Matrix3DReadOnly, out matrix.Matrix3DBasics) {
	qx, qy, qz, qs, ok := halfAngle(a)
	if !ok {
		out.SetElements(in.Elements())
		return
	}
	quaternion.TransformMatrixRaw(qx, qy, qz, qs, negateAngle, in, out)
}

// TransformQuaternion computes out = q(a) * in, the orientation of a
// followed by in.
func TransformQuaternion(a ReadOnly, in quaternion.ReadOnly, out quaternion.Basics) {
	multiplyQuaternion(a, false, in, false, out)
}

// InverseTransformQuaternion computes out = q(a)⁻¹ * in.
func InverseTransformQuaternion(a ReadOnly, in quaternion.ReadOnly, out quaternion.Basics) {
	multiplyQuaternion(a, true, in, false, out)
}

func multiplyQuaternion(a ReadOnly, negateAngle bool, q quaternion.ReadOnly, conjugateQuaternion bool, out quaternion.Basics) {
	q2x, q2y, q2z, q2s := q.X(), q.Y(), q.Z(), q.S()
	q1x, q1y, q1z, q1s, ok := halfAngle(a)
	if !ok {
		out.SetUnsafe(q2x, q2y, q2z, q2s)
		return
	}
	quaternion.MultiplyRaw(q1x, q1y, q1z, q1s, negateAngle, q2x, q2y, q2z, q2s, conjugateQuaternion, out)
}

// TransformRotationMatrix computes out = R(a) * in.
func TransformRotationMatrix(a ReadOnly, in matrix.RotationMatrixReadOnly, out *matrix.RotationMatrix) {
	multiplyRotationMatrix(a, false, in, false, out)
}

// InverseTransformRotationMatrix computes out = R(a)⁻¹ * in.
func InverseTransformRotationMatrix(a ReadOnly, in matrix.RotationMatrixReadOnly, out *matrix.RotationMatrix) {
	multiplyRotationMatrix(a, true, in, false, out)
}

func multiplyRotationMatrix(a ReadOnly, negateAngle bool, m matrix.RotationMatrixReadOnly, transposeMatrix bool, out *matrix.RotationMatrix) {
	qx, qy, qz, qs, ok := halfAngle(a)
	if !ok {
		out.SetElements(m.Elements())
		return
	}
	quaternion.MultiplyRotationMatrixRaw(qx, qy, qz, qs, negateAngle, m, transposeMatrix, out)
}
