// Package matrix provides the 3x3 matrix and rotation-matrix containers
// together with the routines that apply them to tuples. Elements are
// exchanged as row-major [9]float64 values so callers can stage a full
// read before any write.
package matrix

import (
	"fmt"
	"math"

	"github.com/chazu/orient/pkg/numeric"
	"github.com/chazu/orient/pkg/tuple"
	"github.com/go-gl/mathgl/mgl64"
)

// Matrix3DReadOnly exposes the elements of a 3x3 matrix in row-major order:
// index 3*row + col.
type Matrix3DReadOnly interface {
	Elements() [9]float64
}

// Matrix3DBasics is a writable 3x3 matrix.
type Matrix3DBasics interface {
	Matrix3DReadOnly
	SetElements(e [9]float64)
}

// Compile-time interface checks.
var (
	_ Matrix3DBasics = (*Matrix3D)(nil)
	_ Matrix3DBasics = (*RotationMatrix)(nil)
)

// identity is the row-major 3x3 identity.
var identity = [9]float64{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// Matrix3D is a general 3x3 matrix.
type Matrix3D struct {
	m [9]float64
}

// NewMatrix3D returns the matrix with the given elements, row by row.
func NewMatrix3D(m00, m01, m02, m10, m11, m12, m20, m21, m22 float64) *Matrix3D {
	return &Matrix3D{m: [9]float64{m00, m01, m02, m10, m11, m12, m20, m21, m22}}
}

// NewMatrix3DIdentity returns the 3x3 identity.
func NewMatrix3DIdentity() *Matrix3D {
	return &Matrix3D{m: identity}
}

// Elements returns a copy of the row-major elements.
func (a *Matrix3D) Elements() [9]float64 {
	return a.m
}

// SetElements overwrites every element.
func (a *Matrix3D) SetElements(e [9]float64) {
	a.m = e
}

// Get returns the element at row, col.
func (a *Matrix3D) Get(row, col int) float64 {
	return a.m[3*row+col]
}

// Determinant returns the determinant of a.
func (a *Matrix3D) Determinant() float64 {
	return determinant(a.m)
}

// EpsilonEquals reports whether every element of o is within eps of a.
func (a *Matrix3D) EpsilonEquals(o Matrix3DReadOnly, eps float64) bool {
	return epsilonEquals(a.m, o.Elements(), eps)
}

// ContainsNaN reports whether any element is NaN.
func (a *Matrix3D) ContainsNaN() bool {
	m := &a.m
	return numeric.ContainsNaN9(m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

func (a *Matrix3D) String() string {
	return format(a.m)
}

// ---------------------------------------------------------------------------
// Routines
// ---------------------------------------------------------------------------

// Transform computes out = m * in. in and out may be the same tuple.
func Transform(m Matrix3DReadOnly, in tuple.Tuple3DReadOnly, out tuple.Tuple3DBasics) {
	e := m.Elements()
	x, y, z := in.X(), in.Y(), in.Z()
	out.Set(
		e[0]*x+e[1]*y+e[2]*z,
		e[3]*x+e[4]*y+e[5]*z,
		e[6]*x+e[7]*y+e[8]*z,
	)
}

// InverseTransform computes out = mᵀ * in, the inverse of Transform for a
// rotation matrix. in and out may be the same tuple.
func InverseTransform(m RotationMatrixReadOnly, in tuple.Tuple3DReadOnly, out tuple.Tuple3DBasics) {
	e := m.Elements()
	x, y, z := in.X(), in.Y(), in.Z()
	out.Set(
		e[0]*x+e[3]*y+e[6]*z,
		e[1]*x+e[4]*y+e[7]*z,
		e[2]*x+e[5]*y+e[8]*z,
	)
}

// Multiply computes out = a * b. Any of the three may alias.
func Multiply(a, b Matrix3DReadOnly, out Matrix3DBasics) {
	out.SetElements(MulElements(a.Elements(), b.Elements()))
}

// MulElements returns the row-major product a * b.
func MulElements(a, b [9]float64) [9]float64 {
	var r [9]float64
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[3*row+col] = a[3*row]*b[col] + a[3*row+1]*b[3+col] + a[3*row+2]*b[6+col]
		}
	}
	return r
}

// TransposeElements returns the transpose of the row-major matrix a.
func TransposeElements(a [9]float64) [9]float64 {
	return [9]float64{
		a[0], a[3], a[6],
		a[1], a[4], a[7],
		a[2], a[5], a[8],
	}
}

func determinant(m [9]float64) float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

func epsilonEquals(a, b [9]float64, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func format(m [9]float64) string {
	return fmt.Sprintf("/%g, %g, %g\\\n|%g, %g, %g|\n\\%g, %g, %g/",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

// ---------------------------------------------------------------------------
// mathgl interop
// ---------------------------------------------------------------------------

// ToMgl converts m to a column-major mgl64.Mat3.
func ToMgl(m Matrix3DReadOnly) mgl64.Mat3 {
	e := m.Elements()
	return mgl64.Mat3{
		e[0], e[3], e[6],
		e[1], e[4], e[7],
		e[2], e[5], e[8],
	}
}

// SetFromMgl writes the elements of an mgl64.Mat3 into out.
func SetFromMgl(m mgl64.Mat3, out Matrix3DBasics) {
	out.SetElements(TransposeElements([9]float64(m)))
}
