package matrix

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/orient/pkg/numeric"
)

// ErrNotRotationMatrix is returned when a matrix is not orthonormal with a
// positive determinant.
var ErrNotRotationMatrix = errors.New("not a rotation matrix")

// rotationMatrixEpsilon is the tolerance used to decide whether a matrix is
// a proper rotation.
const rotationMatrixEpsilon = 1.0e-7

// RotationMatrixReadOnly is a 3x3 matrix that claims to be a proper rotation.
type RotationMatrixReadOnly interface {
	Matrix3DReadOnly
	CheckIfRotationMatrix() error
}

// RotationMatrix is an orthonormal 3x3 matrix with determinant +1.
// The zero value is not a rotation; use NewRotationMatrix.
type RotationMatrix struct {
	m [9]float64
}

// NewRotationMatrix returns the identity rotation.
func NewRotationMatrix() *RotationMatrix {
	return &RotationMatrix{m: identity}
}

// NewRotationMatrixFrom returns the rotation with the given row-major
// elements, or ErrNotRotationMatrix if they do not form one.
func NewRotationMatrixFrom(e [9]float64) (*RotationMatrix, error) {
	r := &RotationMatrix{}
	if err := r.Set(e); err != nil {
		return nil, err
	}
	return r, nil
}

// Elements returns a copy of the row-major elements.
func (r *RotationMatrix) Elements() [9]float64 {
	return r.m
}

// SetElements overwrites every element without checking that the result is
// a rotation. It lets a RotationMatrix be the output of Matrix3D routines.
func (r *RotationMatrix) SetElements(e [9]float64) {
	r.m = e
}

// SetUnsafe overwrites every element without any check.
func (r *RotationMatrix) SetUnsafe(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) {
	r.m = [9]float64{m00, m01, m02, m10, m11, m12, m20, m21, m22}
}

// Set overwrites every element after checking that e is a proper rotation.
// r is left unchanged on error.
func (r *RotationMatrix) Set(e [9]float64) error {
	if err := checkRotation(e); err != nil {
		return err
	}
	r.m = e
	return nil
}

// SetToIdentity resets r to the identity rotation.
func (r *RotationMatrix) SetToIdentity() {
	r.m = identity
}

// SetFromQuaternionRaw sets r to the rotation of the quaternion
// (qx, qy, qz, qs).
func (r *RotationMatrix) SetFromQuaternionRaw(qx, qy, qz, qs float64) {
	r.m = FromQuaternionRaw(qx, qy, qz, qs)
}

// Get returns the element at row, col.
func (r *RotationMatrix) Get(row, col int) float64 {
	return r.m[3*row+col]
}

// Determinant returns the determinant of r.
func (r *RotationMatrix) Determinant() float64 {
	return determinant(r.m)
}

// Transpose replaces r with its transpose, which is also its inverse.
func (r *RotationMatrix) Transpose() {
	r.m = TransposeElements(r.m)
}

// Multiply sets r = r * other. Both operands are checked first; r is left
// unchanged on error.
func (r *RotationMatrix) Multiply(other RotationMatrixReadOnly) error {
	if err := r.CheckIfRotationMatrix(); err != nil {
		return fmt.Errorf("multiply: left operand: %w", err)
	}
	if err := other.CheckIfRotationMatrix(); err != nil {
		return fmt.Errorf("multiply: right operand: %w", err)
	}
	r.m = MulElements(r.m, other.Elements())
	return nil
}

// CheckIfRotationMatrix returns ErrNotRotationMatrix unless r is
// orthonormal with a positive determinant.
func (r *RotationMatrix) CheckIfRotationMatrix() error {
	return checkRotation(r.m)
}

// EpsilonEquals reports whether every element of o is within eps of r.
func (r *RotationMatrix) EpsilonEquals(o Matrix3DReadOnly, eps float64) bool {
	return epsilonEquals(r.m, o.Elements(), eps)
}

// ContainsNaN reports whether any element is NaN.
func (r *RotationMatrix) ContainsNaN() bool {
	m := &r.m
	return numeric.ContainsNaN9(m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

func (r *RotationMatrix) String() string {
	return format(r.m)
}

func checkRotation(m [9]float64) error {
	if numeric.ContainsNaN9(m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8]) {
		return fmt.Errorf("%w: contains NaN", ErrNotRotationMatrix)
	}
	// Rows must be unit length and mutually orthogonal.
	mmt := MulElements(m, TransposeElements(m))
	if !epsilonEquals(mmt, identity, rotationMatrixEpsilon) {
		return fmt.Errorf("%w: not orthonormal", ErrNotRotationMatrix)
	}
	if det := determinant(m); det <= 0 {
		return fmt.Errorf("%w: determinant %.4f", ErrNotRotationMatrix, det)
	}
	return nil
}

// FromQuaternionRaw returns the row-major rotation matrix of the quaternion
// (qx, qy, qz, qs). The quaternion is normalized on the fly; a zero
// quaternion yields the identity.
func FromQuaternionRaw(qx, qy, qz, qs float64) [9]float64 {
	normSquared := numeric.NormSquared4(qx, qy, qz, qs)
	if normSquared == 0 || math.IsInf(normSquared, 0) {
		return identity
	}
	scale := 2.0 / normSquared

	xx := scale * qx * qx
	yy := scale * qy * qy
	zz := scale * qz * qz
	xy := scale * qx * qy
	xz := scale * qx * qz
	yz := scale * qy * qz
	sx := scale * qs * qx
	sy := scale * qs * qy
	sz := scale * qs * qz

	return [9]float64{
		1.0 - (yy + zz), xy - sz, xz + sy,
		xy + sz, 1.0 - (xx + zz), yz - sx,
		xz - sy, yz + sx, 1.0 - (xx + yy),
	}
}
