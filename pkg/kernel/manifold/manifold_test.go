//go:build manifold

package manifold

import (
	"math"
	"testing"

	"github.com/chazu/orient/pkg/axisangle"
	"github.com/chazu/orient/pkg/kernel"
	"github.com/chazu/orient/pkg/matrix"
)

func mustNew(t *testing.T) kernel.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func assertBounds(t *testing.T, s kernel.Solid, wantMin, wantMax [3]float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestBox(t *testing.T) {
	k := mustNew(t)
	assertBounds(t, k.Box(10, 20, 30), [3]float64{0, 0, 0}, [3]float64{10, 20, 30})
}

func TestTranslate(t *testing.T) {
	k := mustNew(t)
	moved := k.Translate(k.Box(10, 10, 10), 100, 200, 300)
	assertBounds(t, moved, [3]float64{100, 200, 300}, [3]float64{110, 210, 310})
}

func TestUnion(t *testing.T) {
	k := mustNew(t)
	u := k.Union(k.Box(1, 1, 1), k.Translate(k.Box(1, 1, 1), 5, 0, 0))
	assertBounds(t, u, [3]float64{0, 0, 0}, [3]float64{6, 1, 1})
}

func TestRotate(t *testing.T) {
	k := mustNew(t)
	plank := k.Box(100, 10, 10)

	t.Run("quarter turn about z", func(t *testing.T) {
		r := axisangle.New(0, 0, 1, math.Pi/2)
		assertBounds(t, k.Rotate(plank, r), [3]float64{-10, 0, 0}, [3]float64{0, 100, 10})
	})
	t.Run("degenerate axis", func(t *testing.T) {
		if got := k.Rotate(plank, axisangle.New(0, 0, 0, 1)); got != plank {
			t.Error("Rotate with a degenerate axis should return the input solid")
		}
	})
	t.Run("matrix agrees with axis-angle", func(t *testing.T) {
		r := axisangle.New(1, 0, 0, math.Pi)
		m := matrix.NewRotationMatrix()
		axisangle.ToRotationMatrix(r, m)
		assertBounds(t, k.RotateMatrix(plank, m), [3]float64{0, -10, -10}, [3]float64{100, 0, 0})
	})
}

func TestName(t *testing.T) {
	if got := mustNew(t).Name(); got != "manifold" {
		t.Errorf("Name() = %q, want manifold", got)
	}
}
