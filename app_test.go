package main

import (
	"encoding/json"
	"math"
	"os"
	"strings"
	"testing"
)

// TestE2ETurntableExample exercises the full pipeline: Lisp source → engine
// → rotation algebra → sdfx kernel → bounds.
func TestE2ETurntableExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/turntable.orient")
	if err != nil {
		t.Fatalf("failed to read turntable.orient: %v", err)
	}

	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if result.Kind != "solid" {
		t.Fatalf("expected a solid, got %q (%s)", result.Kind, result.Value)
	}
	if result.Bounds == nil {
		t.Fatal("expected bounds for a solid result")
	}

	// Quarter turn: x in [-10, 0], y in [0, 100], z in [0, 10].
	// Half turn, lifted: x in [-100, 0], y in [-10, 0], z in [20, 30].
	const tol = 1e-6
	expectMin := [3]float64{-100, -10, 0}
	expectMax := [3]float64{0, 100, 30}
	for i := 0; i < 3; i++ {
		if math.Abs(result.Bounds.Min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, result.Bounds.Min[i], expectMin[i])
		}
		if math.Abs(result.Bounds.Max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, result.Bounds.Max[i], expectMax[i])
		}
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if result.Kind != "nil" {
		t.Errorf("expected kind nil, got %q", result.Kind)
	}
	if result.Kernel != "sdfx" {
		t.Errorf("expected kernel sdfx, got %q", result.Kernel)
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(axis-angle 0 0 1")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if result.Errors[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
	if result.Bounds != nil {
		t.Error("expected no bounds on error")
	}
}

func TestE2EKinds(t *testing.T) {
	tests := []struct {
		source string
		kind   string
		text   string
	}{
		{`(axis-angle 0 0 1 2)`, "axis-angle", "(axis-angle 0 0 1 2)"},
		{`(transform (axis-angle 0 0 0 1) (vec3 1 2 3))`, "vec3", "(vec3 1 2 3)"},
		{`(vec2 1 2)`, "vec2", "(vec2 1 2)"},
		{`(vec4 1 2 3 4)`, "vec4", "(vec4 1 2 3 4)"},
		{`(quat 0 0 0 2)`, "quat", "(quat 0 0 0 1)"},
		{`(rotation-matrix (axis-angle 1 0 0 0))`, "rotation-matrix", "(rotation-matrix 1 0 0 0 1 0 0 0 1)"},
		{`(matrix3 1 2 3 4 5 6 7 8 9)`, "matrix3", "(matrix3 1 2 3 4 5 6 7 8 9)"},
		{`(angle-of (axis-angle 1 0 0 0.5))`, "number", ""},
	}

	app := NewApp()
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			result := app.Evaluate(tt.source)
			if len(result.Errors) > 0 {
				t.Fatalf("eval errors: %v", result.Errors)
			}
			if result.Kind != tt.kind {
				t.Errorf("kind = %q, want %q", result.Kind, tt.kind)
			}
			if tt.text != "" && result.Value != tt.text {
				t.Errorf("value = %q, want %q", result.Value, tt.text)
			}
		})
	}
}

// TestE2EPlanarCheckReportsLine verifies a checked failure surfaces as an
// eval error on the offending line.
func TestE2EPlanarCheckReportsLine(t *testing.T) {
	app := NewApp()
	source := "(def r (axis-angle 1 0 1 1))\n(transform r (vec2 1 0) :check-planar)"
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected an eval error for a tilted axis")
	}
	e := result.Errors[0]
	if !strings.Contains(e.Message, "XY plane") {
		t.Errorf("message = %q, want mention of the XY plane", e.Message)
	}
	if e.Line > 0 {
		t.Logf("extracted line info: line=%d", e.Line)
	}
}

func TestEvalResultJSON(t *testing.T) {
	result := NewApp().Evaluate(`(box 1 2 3)`)
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"kernel", "kind", "value", "bounds", "errors"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing JSON key %q in %s", key, data)
		}
	}
	if errs, ok := decoded["errors"].([]any); !ok || len(errs) != 0 {
		t.Errorf("errors = %v, want []", decoded["errors"])
	}
}

func TestNewKernel(t *testing.T) {
	k, err := newKernel("sdfx")
	if err != nil {
		t.Fatalf("newKernel(sdfx) error = %v", err)
	}
	if got := NewAppWithKernel(k).Evaluate("(vec3 1 2 3)").Kernel; got != "sdfx" {
		t.Errorf("Kernel = %q, want sdfx", got)
	}
	if _, err := newKernel("blender"); err == nil {
		t.Error("newKernel(blender) should fail")
	}
}
