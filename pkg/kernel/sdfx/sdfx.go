// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/chazu/orient/pkg/axisangle"
	"github.com/chazu/orient/pkg/kernel"
	"github.com/chazu/orient/pkg/matrix"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// Name returns "sdfx".
func (k *SdfxKernel) Name() string { return "sdfx" }

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions and its minimum corner at
// the origin, so a rotation about the origin turns the box about a corner.
// sdf.Box3D centers the box at the origin, so we translate by half-dimensions.
func (k *SdfxKernel) Box(x, y, z float64) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return wrap(sdf.Transform3D(s, m))
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate turns a solid by an axis-angle about the origin.
func (k *SdfxKernel) Rotate(s kernel.Solid, r axisangle.ReadOnly) kernel.Solid {
	if axisangle.AxisNorm(r) < axisangle.EPS {
		return s
	}
	return wrap(sdf.Transform3D(unwrap(s), ToM44(r)))
}

// RotateMatrix turns a solid by a rotation matrix about the origin.
func (k *SdfxKernel) RotateMatrix(s kernel.Solid, m matrix.RotationMatrixReadOnly) kernel.Solid {
	var r axisangle.AxisAngle
	axisangle.SetFromRotationMatrix(m, &r)
	return k.Rotate(s, &r)
}

// ToM44 returns the sdfx homogeneous rotation for r. A degenerate axis
// gives the identity.
func ToM44(r axisangle.ReadOnly) sdf.M44 {
	norm := axisangle.AxisNorm(r)
	if norm < axisangle.EPS {
		return sdf.Identity3d()
	}
	axis := v3.Vec{X: r.X() / norm, Y: r.Y() / norm, Z: r.Z() / norm}
	return sdf.Rotate3d(axis, r.Angle())
}
