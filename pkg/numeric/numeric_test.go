package numeric

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestFastSquareRoot(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
		tol  float64
	}{
		{"exactly one", 1.0, 1.0, 0},
		{"just above one", 1.0 + 1e-9, 0.5 * (2.0 + 1e-9), 1e-15},
		{"just below one", 1.0 - 1e-9, 0.5 * (2.0 - 1e-9), 1e-15},
		{"far from one", 4.0, 2.0, 0},
		{"zero", 0.0, 0.0, 0},
		{"near threshold", 1.0 + 2.2e-8, math.Sqrt(1.0 + 2.2e-8), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FastSquareRoot(tt.in)
			if !scalar.EqualWithinAbs(got, tt.want, tt.tol) {
				t.Errorf("FastSquareRoot(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFastSquareRootCloseToExact(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		v := 1.0 + (rng.Float64()*2-1)*EpsNormFastSqrt
		if got, want := FastSquareRoot(v), math.Sqrt(v); !scalar.EqualWithinAbs(got, want, 1e-15) {
			t.Fatalf("FastSquareRoot(%v) = %v, math.Sqrt = %v", v, got, want)
		}
	}
}

func TestNorms(t *testing.T) {
	if got := NormSquared2(3, 4); got != 25 {
		t.Errorf("NormSquared2 = %v, want 25", got)
	}
	if got := Norm2(3, 4); got != 5 {
		t.Errorf("Norm2 = %v, want 5", got)
	}
	if got := NormSquared3(1, 2, 2); got != 9 {
		t.Errorf("NormSquared3 = %v, want 9", got)
	}
	if got := Norm3(1, 2, 2); got != 3 {
		t.Errorf("Norm3 = %v, want 3", got)
	}
	if got := NormSquared4(1, 1, 1, 1); got != 4 {
		t.Errorf("NormSquared4 = %v, want 4", got)
	}
	if got := Norm4(1, 1, 1, 1); got != 2 {
		t.Errorf("Norm4 = %v, want 2", got)
	}
	if got := Norm3(0.6, 0.8, 0); !scalar.EqualWithinAbs(got, 1, 1e-15) {
		t.Errorf("Norm3 of unit vector = %v, want 1", got)
	}
}

func TestContainsNaN(t *testing.T) {
	nan := math.NaN()

	if ContainsNaN2(0, 1) {
		t.Error("ContainsNaN2 reported NaN in finite input")
	}
	if !ContainsNaN2(0, nan) {
		t.Error("ContainsNaN2 missed NaN")
	}
	if ContainsNaN3(0, 1, 2) || !ContainsNaN3(nan, 1, 2) {
		t.Error("ContainsNaN3 wrong")
	}
	if ContainsNaN4(0, 1, 2, 3) || !ContainsNaN4(0, 1, 2, nan) {
		t.Error("ContainsNaN4 wrong")
	}
	if ContainsNaN9(0, 1, 2, 3, 4, 5, 6, 7, 8) {
		t.Error("ContainsNaN9 reported NaN in finite input")
	}
	for i := 0; i < 9; i++ {
		v := make([]float64, 9)
		v[i] = nan
		if !ContainsNaN9(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7], v[8]) {
			t.Errorf("ContainsNaN9 missed NaN at index %d", i)
		}
		if !ContainsNaN(v) {
			t.Errorf("ContainsNaN missed NaN at index %d", i)
		}
	}
	if ContainsNaN(nil) {
		t.Error("ContainsNaN(nil) = true, want false")
	}
	if ContainsNaN([]float64{1, math.Inf(1), -2}) {
		t.Error("ContainsNaN reported NaN for infinities")
	}
}

func TestShiftAngleInRange(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		start float64
		want  float64
	}{
		{"already in range", 0.5, -math.Pi, 0.5},
		{"upper boundary wraps to start", math.Pi, -math.Pi, -math.Pi},
		{"lower boundary stays", -math.Pi, -math.Pi, -math.Pi},
		{"one turn above", 0.5 + TwoPi, -math.Pi, 0.5},
		{"several turns below", 0.5 - 3*TwoPi, -math.Pi, 0.5},
		{"positive start", -0.25, 0, TwoPi - 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShiftAngleInRange(tt.angle, tt.start)
			if !scalar.EqualWithinAbs(got, tt.want, 1e-9) {
				t.Errorf("ShiftAngleInRange(%v, %v) = %v, want %v", tt.angle, tt.start, got, tt.want)
			}
		})
	}
}

func TestShiftAngleInRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		angle := (rng.Float64()*2 - 1) * 100
		start := (rng.Float64()*2 - 1) * 10
		got := ShiftAngleInRange(angle, start)

		if got < start-EpsAngleShift || got >= start+TwoPi {
			t.Fatalf("ShiftAngleInRange(%v, %v) = %v, out of range", angle, start, got)
		}
		// Same rotation: the difference is a whole number of turns.
		turns := (angle - got) / TwoPi
		if !scalar.EqualWithinAbs(turns, math.Round(turns), 1e-9) {
			t.Fatalf("ShiftAngleInRange(%v, %v) = %v, not a whole number of turns away", angle, start, got)
		}
	}
}

func TestTrimAndDifference(t *testing.T) {
	if got := TrimAngleMinusPiToPi(1.5 * math.Pi); !scalar.EqualWithinAbs(got, -0.5*math.Pi, 1e-12) {
		t.Errorf("TrimAngleMinusPiToPi(1.5π) = %v, want -π/2", got)
	}
	if got := AngleDifferenceMinusPiToPi(0.9*math.Pi, -0.9*math.Pi); !scalar.EqualWithinAbs(got, -0.2*math.Pi, 1e-12) {
		t.Errorf("AngleDifferenceMinusPiToPi = %v, want -0.2π", got)
	}
}

func TestMinMax3(t *testing.T) {
	tests := []struct {
		a, b, c  float64
		min, max float64
	}{
		{1, 2, 3, 1, 3},
		{3, 2, 1, 1, 3},
		{2, 3, 1, 1, 3},
		{2, 1, 3, 1, 3},
		{1, 1, 1, 1, 1},
		{-1, 5, 5, -1, 5},
	}
	for _, tt := range tests {
		if got := Max3(tt.a, tt.b, tt.c); got != tt.max {
			t.Errorf("Max3(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.max)
		}
		if got := Min3(tt.a, tt.b, tt.c); got != tt.min {
			t.Errorf("Min3(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, got, tt.min)
		}
	}
}

func TestMinMax3Ties(t *testing.T) {
	// Signed zeros compare equal, so they expose which operand a tie returns:
	// a strict comparison keeps the later operand.
	negZero := math.Copysign(0, -1)
	if got := Max3(0, 0, negZero); !math.Signbit(got) {
		t.Errorf("Max3(0, 0, -0) = %v, want -0", got)
	}
	if got := Min3(negZero, negZero, 0); math.Signbit(got) {
		t.Errorf("Min3(-0, -0, 0) = %v, want +0", got)
	}
}
