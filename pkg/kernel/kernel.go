// Package kernel defines the abstract geometry kernel that the scripting
// engine places and orients solids through. Orientation is given as an
// axis-angle or a rotation matrix from the rotation algebra packages, so
// every backend agrees with axisangle.TransformTuple3D on where a point
// ends up.
package kernel

import (
	"math"

	"github.com/chazu/orient/pkg/axisangle"
	"github.com/chazu/orient/pkg/matrix"
	"github.com/chazu/orient/pkg/tuple"
	"github.com/golang/geo/r3"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Name identifies the backend, e.g. "sdfx".
	Name() string

	// Primitives
	Box(x, y, z float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	// Rotate turns s about the axis of r, through the origin. A degenerate
	// axis returns s unchanged.
	Rotate(s Solid, r axisangle.ReadOnly) Solid
	RotateMatrix(s Solid, m matrix.RotationMatrixReadOnly) Solid
}

// RotatedBounds returns the axis-aligned box enclosing the eight corners of
// (min, max) after rotation by r. For a box solid this is the tight bound of
// the rotated solid.
func RotatedBounds(min, max [3]float64, r axisangle.ReadOnly) (rmin, rmax [3]float64) {
	lo := r3.Vector{X: min[0], Y: min[1], Z: min[2]}
	hi := r3.Vector{X: max[0], Y: max[1], Z: max[2]}

	var corner tuple.Vector3
	var bmin, bmax r3.Vector
	for i := 0; i < 8; i++ {
		c := lo
		if i&1 != 0 {
			c.X = hi.X
		}
		if i&2 != 0 {
			c.Y = hi.Y
		}
		if i&4 != 0 {
			c.Z = hi.Z
		}
		tuple.SetFromR3(c, &corner)
		axisangle.TransformTuple3D(r, &corner, &corner)
		p := tuple.ToR3(&corner)

		if i == 0 {
			bmin, bmax = p, p
			continue
		}
		bmin = r3.Vector{X: math.Min(bmin.X, p.X), Y: math.Min(bmin.Y, p.Y), Z: math.Min(bmin.Z, p.Z)}
		bmax = r3.Vector{X: math.Max(bmax.X, p.X), Y: math.Max(bmax.Y, p.Y), Z: math.Max(bmax.Z, p.Z)}
	}
	return [3]float64{bmin.X, bmin.Y, bmin.Z}, [3]float64{bmax.X, bmax.Y, bmax.Z}
}
