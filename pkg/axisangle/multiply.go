package axisangle

import (
	"math"

	"github.com/chazu/orient/pkg/numeric"
)

// Multiply computes out = aa1 * aa2. If either input is degenerate, out is
// left unmodified.
func Multiply(aa1, aa2 ReadOnly, out Basics) {
	multiply(aa1, false, aa2, false, out)
}

// MultiplyInvertLeft computes out = aa1⁻¹ * aa2.
func MultiplyInvertLeft(aa1, aa2 ReadOnly, out Basics) {
	multiply(aa1, true, aa2, false, out)
}

// MultiplyInvertRight computes out = aa1 * aa2⁻¹.
func MultiplyInvertRight(aa1, aa2 ReadOnly, out Basics) {
	multiply(aa1, false, aa2, true, out)
}

// MultiplyInvertBoth computes out = aa1⁻¹ * aa2⁻¹.
func MultiplyInvertBoth(aa1, aa2 ReadOnly, out Basics) {
	multiply(aa1, true, aa2, true, out)
}

// multiply composes two axis-angles through their half-angle quaternions
// without forming either quaternion explicitly.
func multiply(aa1 ReadOnly, inverse1 bool, aa2 ReadOnly, inverse2 bool, out Basics) {
	axisNorm1 := AxisNorm(aa1)
	if axisNorm1 < EPS {
		return
	}
	axisNorm1 = 1.0 / axisNorm1

	alpha := aa1.Angle()
	if inverse1 {
		alpha = -alpha
	}
	u1x := aa1.X() * axisNorm1
	u1y := aa1.Y() * axisNorm1
	u1z := aa1.Z() * axisNorm1

	axisNorm2 := AxisNorm(aa2)
	if axisNorm2 < EPS {
		return
	}
	axisNorm2 = 1.0 / axisNorm2

	beta := aa2.Angle()
	if inverse2 {
		beta = -beta
	}
	u2x := aa2.X() * axisNorm2
	u2y := aa2.Y() * axisNorm2
	u2z := aa2.Z() * axisNorm2

	h := newHalfAngles(alpha, beta)

	dot := u1x*u2x + u1y*u2y + u1z*u2z
	crossX := u1y*u2z - u1z*u2y
	crossY := u1z*u2x - u1x*u2z
	crossZ := u1x*u2y - u1y*u2x

	cosHalfGamma := h.cosCos - h.sinSin*dot
	sinHalfGammaUx := h.sinCos*u1x + h.cosSin*u2x + h.sinSin*crossX
	sinHalfGammaUy := h.sinCos*u1y + h.cosSin*u2y + h.sinSin*crossY
	sinHalfGammaUz := h.sinCos*u1z + h.cosSin*u2z + h.sinSin*crossZ

	pack(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz, cosHalfGamma, out)
}

// halfAngles holds the four products of the half-angle sines and cosines of
// the left (alpha) and right (beta) rotations.
type halfAngles struct {
	sinCos, cosSin, cosCos, sinSin float64
}

func newHalfAngles(alpha, beta float64) halfAngles {
	cosHalfAlpha := math.Cos(0.5 * alpha)
	sinHalfAlpha := math.Sin(0.5 * alpha)
	cosHalfBeta := math.Cos(0.5 * beta)
	sinHalfBeta := math.Sin(0.5 * beta)
	return halfAngles{
		sinCos: sinHalfAlpha * cosHalfBeta,
		cosSin: cosHalfAlpha * sinHalfBeta,
		cosCos: cosHalfAlpha * cosHalfBeta,
		sinSin: sinHalfAlpha * sinHalfBeta,
	}
}

// pack stores the axis-angle whose half-angle quaternion is
// (sin(γ/2)u, cos(γ/2)). A composition that cancels out exactly has no
// defined axis and is stored about X.
func pack(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz, cosHalfGamma float64, out Basics) {
	sinHalfGamma := math.Sqrt(numeric.NormSquared3(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz))
	gamma := 2.0 * math.Atan2(sinHalfGamma, cosHalfGamma)
	if sinHalfGamma == 0 {
		out.Set(1, 0, 0, gamma)
		return
	}
	sinHalfGammaInv := 1.0 / sinHalfGamma
	out.Set(sinHalfGammaUx*sinHalfGammaInv, sinHalfGammaUy*sinHalfGammaInv, sinHalfGammaUz*sinHalfGammaInv, gamma)
}

// ---------------------------------------------------------------------------
// Elemental rotations
//
// Each is Multiply with one operand fixed to a rotation about a principal
// axis, expanded so the zero axis components drop out of the dot and cross
// products.
// ---------------------------------------------------------------------------

// unitAxis returns the normalized axis of a and its angle. ok is false for a
// degenerate axis.
func unitAxis(a ReadOnly) (ux, uy, uz, angle float64, ok bool) {
	axisNorm := AxisNorm(a)
	if axisNorm < EPS {
		return 0, 0, 0, 0, false
	}
	axisNorm = 1.0 / axisNorm
	return a.X() * axisNorm, a.Y() * axisNorm, a.Z() * axisNorm, a.Angle(), true
}

// PrependYaw computes out = Rz(yaw) * original.
func PrependYaw(yaw float64, original ReadOnly, out Basics) {
	ux, uy, uz, angle, ok := unitAxis(original)
	if !ok {
		return
	}
	h := newHalfAngles(yaw, angle)

	cosHalfGamma := h.cosCos - h.sinSin*uz
	sinHalfGammaUx := h.cosSin*ux - h.sinSin*uy
	sinHalfGammaUy := h.cosSin*uy + h.sinSin*ux
	sinHalfGammaUz := h.sinCos + h.cosSin*uz

	pack(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz, cosHalfGamma, out)
}

// AppendYaw computes out = original * Rz(yaw).
func AppendYaw(original ReadOnly, yaw float64, out Basics) {
	ux, uy, uz, angle, ok := unitAxis(original)
	if !ok {
		return
	}
	h := newHalfAngles(angle, yaw)

	cosHalfGamma := h.cosCos - h.sinSin*uz
	sinHalfGammaUx := h.sinCos*ux + h.sinSin*uy
	sinHalfGammaUy := h.sinCos*uy - h.sinSin*ux
	sinHalfGammaUz := h.sinCos*uz + h.cosSin

	pack(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz, cosHalfGamma, out)
}

// PrependPitch computes out = Ry(pitch) * original.
func PrependPitch(pitch float64, original ReadOnly, out Basics) {
	ux, uy, uz, angle, ok := unitAxis(original)
	if !ok {
		return
	}
	h := newHalfAngles(pitch, angle)

	cosHalfGamma := h.cosCos - h.sinSin*uy
	sinHalfGammaUx := h.cosSin*ux + h.sinSin*uz
	sinHalfGammaUy := h.sinCos + h.cosSin*uy
	sinHalfGammaUz := h.cosSin*uz - h.sinSin*ux

	pack(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz, cosHalfGamma, out)
}

// AppendPitch computes out = original * Ry(pitch).
func AppendPitch(original ReadOnly, pitch float64, out Basics) {
	ux, uy, uz, angle, ok := unitAxis(original)
	if !ok {
		return
	}
	h := newHalfAngles(angle, pitch)

	cosHalfGamma := h.cosCos - h.sinSin*uy
	sinHalfGammaUx := h.sinCos*ux - h.sinSin*uz
	sinHalfGammaUy := h.sinCos*uy + h.cosSin
	sinHalfGammaUz := h.sinCos*uz + h.sinSin*ux

	pack(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz, cosHalfGamma, out)
}

// PrependRoll computes out = Rx(roll) * original.
func PrependRoll(roll float64, original ReadOnly, out Basics) {
	ux, uy, uz, angle, ok := unitAxis(original)
	if !ok {
		return
	}
	h := newHalfAngles(roll, angle)

	cosHalfGamma := h.cosCos - h.sinSin*ux
	sinHalfGammaUx := h.sinCos + h.cosSin*ux
	sinHalfGammaUy := h.cosSin*uy - h.sinSin*uz
	sinHalfGammaUz := h.cosSin*uz + h.sinSin*uy

	pack(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz, cosHalfGamma, out)
}

// AppendRoll computes out = original * Rx(roll).
func AppendRoll(original ReadOnly, roll float64, out Basics) {
	ux, uy, uz, angle, ok := unitAxis(original)
	if !ok {
		return
	}
	h := newHalfAngles(angle, roll)

	cosHalfGamma := h.cosCos - h.sinSin*ux
	sinHalfGammaUx := h.sinCos*ux + h.cosSin
	sinHalfGammaUy := h.sinCos*uy + h.sinSin*uz
	sinHalfGammaUz := h.sinCos*uz - h.sinSin*uy

	pack(sinHalfGammaUx, sinHalfGammaUy, sinHalfGammaUz, cosHalfGamma, out)
}
