// Package numeric provides the scalar helpers shared by the rotation
// packages: norms, a square root tuned for near-unit values, NaN checks,
// and angle wrapping. Every function is pure.
package numeric

import "math"

const (
	// TwoPi is 2π.
	TwoPi = 2.0 * math.Pi

	// EpsNormFastSqrt is the distance from 1 below which FastSquareRoot
	// switches to its first-order approximation.
	EpsNormFastSqrt = 2.107342e-08

	// EpsAngleShift biases ShiftAngleInRange so that angles at the upper
	// boundary land on the range start.
	EpsAngleShift = 1.0e-12
)

// FastSquareRoot returns the square root of a value expected to be close
// to 1. Within EpsNormFastSqrt of 1 it returns the Taylor approximation
// 0.5*(1+v); otherwise it falls back to math.Sqrt.
func FastSquareRoot(squaredValueCloseToOne float64) float64 {
	if math.Abs(1.0-squaredValueCloseToOne) < EpsNormFastSqrt {
		return 0.5 * (1.0 + squaredValueCloseToOne)
	}
	return math.Sqrt(squaredValueCloseToOne)
}

// NormSquared2 returns x² + y².
func NormSquared2(x, y float64) float64 {
	return x*x + y*y
}

// NormSquared3 returns x² + y² + z².
func NormSquared3(x, y, z float64) float64 {
	return x*x + y*y + z*z
}

// NormSquared4 returns x² + y² + z² + s².
func NormSquared4(x, y, z, s float64) float64 {
	return x*x + y*y + z*z + s*s
}

// Norm2 returns the Euclidean norm of (x, y).
func Norm2(x, y float64) float64 {
	return FastSquareRoot(NormSquared2(x, y))
}

// Norm3 returns the Euclidean norm of (x, y, z).
func Norm3(x, y, z float64) float64 {
	return FastSquareRoot(NormSquared3(x, y, z))
}

// Norm4 returns the Euclidean norm of (x, y, z, s).
func Norm4(x, y, z, s float64) float64 {
	return FastSquareRoot(NormSquared4(x, y, z, s))
}

// ContainsNaN2 reports whether either argument is NaN.
func ContainsNaN2(a, b float64) bool {
	return math.IsNaN(a) || math.IsNaN(b)
}

// ContainsNaN3 reports whether any argument is NaN.
func ContainsNaN3(a, b, c float64) bool {
	return math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(c)
}

// ContainsNaN4 reports whether any argument is NaN.
func ContainsNaN4(a, b, c, d float64) bool {
	return math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(c) || math.IsNaN(d)
}

// ContainsNaN9 reports whether any of the nine arguments, typically the
// elements of a 3x3 matrix, is NaN.
func ContainsNaN9(a0, a1, a2, a3, a4, a5, a6, a7, a8 float64) bool {
	if math.IsNaN(a0) || math.IsNaN(a1) || math.IsNaN(a2) {
		return true
	}
	if math.IsNaN(a3) || math.IsNaN(a4) || math.IsNaN(a5) {
		return true
	}
	return math.IsNaN(a6) || math.IsNaN(a7) || math.IsNaN(a8)
}

// ContainsNaN reports whether values holds a NaN. It stops at the first
// one found and returns false for an empty slice.
func ContainsNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// ShiftAngleInRange maps angle into [start, start+2π) without changing the
// rotation it represents. The range start is lowered by EpsAngleShift so a
// value sitting on the upper boundary wraps to start instead of past it.
func ShiftAngleInRange(angle, start float64) float64 {
	start -= EpsAngleShift
	delta := math.Mod(angle-start, TwoPi)
	if delta < 0 {
		delta += TwoPi
	}
	return start + delta
}

// TrimAngleMinusPiToPi maps angle into [-π, π).
func TrimAngleMinusPiToPi(angle float64) float64 {
	return ShiftAngleInRange(angle, -math.Pi)
}

// AngleDifferenceMinusPiToPi returns a-b trimmed into [-π, π).
func AngleDifferenceMinusPiToPi(a, b float64) float64 {
	return TrimAngleMinusPiToPi(a - b)
}

// Max3 returns the largest of a, b and c.
func Max3(a, b, c float64) float64 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

// Min3 returns the smallest of a, b and c.
func Min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
