package tuple

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestVector3SetAndAccessors(t *testing.T) {
	v := NewVector3(1, 2, 3)
	if v.X() != 1 || v.Y() != 2 || v.Z() != 3 {
		t.Fatalf("NewVector3 = %v, want (1, 2, 3)", v)
	}
	v.Set(-4, 5, -6)
	if v.X() != -4 || v.Y() != 5 || v.Z() != -6 {
		t.Fatalf("Set = %v, want (-4, 5, -6)", v)
	}

	var w Vector3
	w.SetFrom(v)
	if !w.EpsilonEquals(v, 0) {
		t.Errorf("SetFrom = %v, want %v", &w, v)
	}
	if got := NewVector3(2, 3, 6).Length(); got != 7 {
		t.Errorf("Length = %v, want 7", got)
	}
}

func TestEpsilonEquals(t *testing.T) {
	const eps = 1e-6
	tests := []struct {
		name string
		a, b *Vector3
		want bool
	}{
		{"identical", NewVector3(1, 2, 3), NewVector3(1, 2, 3), true},
		{"inside x", NewVector3(1, 2, 3), NewVector3(1+0.999*eps, 2, 3), true},
		{"outside y", NewVector3(1, 2, 3), NewVector3(1, 2+1.001*eps, 3), false},
		{"outside z", NewVector3(1, 2, 3), NewVector3(1, 2, 3-1.001*eps), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.EpsilonEquals(tt.b, eps); got != tt.want {
				t.Errorf("EpsilonEquals(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if !NewTuple2(1, 2).EpsilonEquals(NewTuple2(1, 2+0.5*eps), eps) {
		t.Error("Tuple2.EpsilonEquals rejected a close tuple")
	}
	if NewVector4(1, 2, 3, 4).EpsilonEquals(NewVector4(1, 2, 3, 4+2*eps), eps) {
		t.Error("Vector4.EpsilonEquals accepted a far S component")
	}
}

func TestContainsNaN(t *testing.T) {
	nan := math.NaN()
	if NewTuple2(0, 0).ContainsNaN() || !NewTuple2(nan, 0).ContainsNaN() {
		t.Error("Tuple2.ContainsNaN wrong")
	}
	if NewVector3(0, 0, 0).ContainsNaN() || !NewVector3(0, 0, nan).ContainsNaN() {
		t.Error("Vector3.ContainsNaN wrong")
	}
	if NewVector4(0, 0, 0, 0).ContainsNaN() || !NewVector4(0, 0, 0, nan).ContainsNaN() {
		t.Error("Vector4.ContainsNaN wrong")
	}
}

func TestR3RoundTrip(t *testing.T) {
	v := NewVector3(0.5, -1.5, 2.25)
	rv := ToR3(v)
	if rv.X != 0.5 || rv.Y != -1.5 || rv.Z != 2.25 {
		t.Fatalf("ToR3 = %v", rv)
	}

	// Use r3 to compute something and bring it back.
	cross := r3.Vector{X: 1}.Cross(r3.Vector{Y: 1})
	var out Vector3
	SetFromR3(cross, &out)
	if !out.EpsilonEquals(NewVector3(0, 0, 1), 0) {
		t.Errorf("SetFromR3(x cross y) = %v, want (0, 0, 1)", &out)
	}
}

func TestString(t *testing.T) {
	if got := NewVector3(1, 0, -2).String(); got != "(1, 0, -2)" {
		t.Errorf("String = %q", got)
	}
	if got := NewTuple2(1.5, 2).String(); got != "(1.5, 2)" {
		t.Errorf("String = %q", got)
	}
	if got := NewVector4(1, 2, 3, 4).String(); got != "(1, 2, 3, 4)" {
		t.Errorf("String = %q", got)
	}
}
