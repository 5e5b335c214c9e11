package sdfx

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chazu/orient/pkg/axisangle"
	"github.com/chazu/orient/pkg/kernel"
	"github.com/chazu/orient/pkg/matrix"
	"github.com/chazu/orient/pkg/tuple"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func expectBounds(t *testing.T, min, max, expectMin, expectMax [3]float64, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()
	expectBounds(t, min, max, [3]float64{0, 0, 0}, [3]float64{100, 50, 25}, 0.01)
}

func TestTranslate(t *testing.T) {
	k := New()
	translated := k.Translate(k.Box(10, 10, 10), 100, 200, 300)
	min, max := translated.BoundingBox()
	expectBounds(t, min, max, [3]float64{100, 200, 300}, [3]float64{110, 210, 310}, 0.01)
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), 30, 0, 0)
	min, max := k.Union(box1, box2).BoundingBox()
	expectBounds(t, min, max, [3]float64{0, 0, 0}, [3]float64{80, 50, 50}, 0.01)
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name      string
		rotation  *axisangle.AxisAngle
		expectMin [3]float64
		expectMax [3]float64
	}{
		{"quarter turn about z", axisangle.New(0, 0, 1, math.Pi/2), [3]float64{-10, 0, 0}, [3]float64{0, 100, 10}},
		{"half turn about x", axisangle.New(3, 0, 0, math.Pi), [3]float64{0, -10, -10}, [3]float64{100, 0, 0}},
		{"degenerate axis", axisangle.New(0, 0, 1e-13, 1), [3]float64{0, 0, 0}, [3]float64{100, 10, 10}},
	}

	k := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rotated := k.Rotate(k.Box(100, 10, 10), tt.rotation)
			min, max := rotated.BoundingBox()
			expectBounds(t, min, max, tt.expectMin, tt.expectMax, 1e-6)
		})
	}
}

func TestRotateDegenerateReturnsSameSolid(t *testing.T) {
	k := New()
	box := k.Box(1, 2, 3)
	if got := k.Rotate(box, axisangle.New(0, 0, 0, 2)); got != box {
		t.Error("degenerate rotation wrapped the solid")
	}
}

func TestRotateMatrixMatchesRotate(t *testing.T) {
	k := New()
	r := axisangle.New(1, 2, 3, 0.8)
	m := matrix.NewRotationMatrix()
	axisangle.ToRotationMatrix(r, m)

	byAxisAngle := k.Rotate(k.Box(10, 20, 30), r)
	byMatrix := k.RotateMatrix(k.Box(10, 20, 30), m)

	min1, max1 := byAxisAngle.BoundingBox()
	min2, max2 := byMatrix.BoundingBox()
	expectBounds(t, min2, max2, min1, max1, 1e-6)
}

func TestToM44MatchesTransformTuple3D(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	for i := 0; i < 200; i++ {
		r := axisangle.New(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1, (rng.Float64()*2-1)*math.Pi)
		p := v3.Vec{X: rng.Float64()*10 - 5, Y: rng.Float64()*10 - 5, Z: rng.Float64()*10 - 5}

		got := ToM44(r).MulPosition(p)

		var want tuple.Vector3
		axisangle.TransformTuple3D(r, tuple.NewVector3(p.X, p.Y, p.Z), &want)

		if !want.EpsilonEquals(tuple.NewVector3(got.X, got.Y, got.Z), 1e-9) {
			t.Fatalf("ToM44(%v) * %v = %v, want %v", r, p, got, &want)
		}
	}
}

func TestRotateMatchesRotatedBounds(t *testing.T) {
	k := New()
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		r := axisangle.New(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1, (rng.Float64()*2-1)*math.Pi)
		box := k.Box(30, 20, 10)

		min, max := k.Rotate(box, r).BoundingBox()
		boxMin, boxMax := box.BoundingBox()
		wantMin, wantMax := kernel.RotatedBounds(boxMin, boxMax, r)
		expectBounds(t, min, max, wantMin, wantMax, 1e-6)
	}
}

func TestName(t *testing.T) {
	if got := New().Name(); got != "sdfx" {
		t.Errorf("Name() = %q, want sdfx", got)
	}
}
