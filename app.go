package main

import (
	"fmt"
	"log"

	"github.com/chazu/orient/pkg/axisangle"
	"github.com/chazu/orient/pkg/engine"
	"github.com/chazu/orient/pkg/kernel"
	"github.com/chazu/orient/pkg/kernel/manifold"
	"github.com/chazu/orient/pkg/kernel/sdfx"
	"github.com/chazu/orient/pkg/matrix"
	"github.com/chazu/orient/pkg/quaternion"
	"github.com/chazu/orient/pkg/tuple"
)

// App wires the scripting engine to the sdfx kernel and shapes results for
// JSON output.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// BoundsData is the bounding box of a solid result.
type BoundsData struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// EvalResult is the full result of evaluating a script.
type EvalResult struct {
	Kernel string          `json:"kernel"`
	Kind   string          `json:"kind"`
	Value  string          `json:"value"`
	Bounds *BoundsData     `json:"bounds,omitempty"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return NewAppWithKernel(sdfx.New())
}

// NewAppWithKernel creates a new App backed by k.
func NewAppWithKernel(k kernel.Kernel) *App {
	return &App{
		engine: engine.NewEngine(k),
		kernel: k,
	}
}

// newKernel returns the geometry kernel registered under name.
func newKernel(name string) (kernel.Kernel, error) {
	switch name {
	case "sdfx":
		return sdfx.New(), nil
	case "manifold":
		return manifold.New()
	}
	return nil, fmt.Errorf("unknown kernel %q", name)
}

// Evaluate runs source and describes the value of its last expression.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{Kernel: a.kernel.Name(), Errors: []EvalErrorData{}}

	res, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	result.Kind = kindOf(res.Value)
	result.Value = res.Text
	if s, ok := res.Value.(kernel.Solid); ok {
		min, max := s.BoundingBox()
		result.Bounds = &BoundsData{Min: min, Max: max}
	}
	return result
}

// kindOf names the type of a script value.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case *axisangle.AxisAngle:
		return "axis-angle"
	case *quaternion.Quaternion:
		return "quat"
	case *matrix.RotationMatrix:
		return "rotation-matrix"
	case *matrix.Matrix3D:
		return "matrix3"
	case *tuple.Tuple2:
		return "vec2"
	case *tuple.Vector3:
		return "vec3"
	case *tuple.Vector4:
		return "vec4"
	case kernel.Solid:
		return "solid"
	case float64, int64:
		return "number"
	case bool:
		return "bool"
	case string:
		return "string"
	}
	return "unknown"
}
