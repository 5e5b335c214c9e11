// Package engine provides the Lisp evaluation engine for orient scripts.
// It wraps zygomys in a sandboxed environment, installs the rotation
// algebra and solid builtins, and returns the value of the last
// expression.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/chazu/orient/pkg/kernel"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the value of the last expression of a script. Value holds the
// Go value behind it: *axisangle.AxisAngle, *quaternion.Quaternion,
// *matrix.RotationMatrix, *matrix.Matrix3D, *tuple.Tuple2, *tuple.Vector3,
// *tuple.Vector4, kernel.Solid, float64, int64, string, bool, or nil for
// anything else. Text is its printed form.
type Result struct {
	Value any
	Text  string
}

// prelude is prepended to every script. It carries no newline so line
// numbers in error messages match the user's source.
const prelude = "(def pi 3.141592653589793) "

// Engine wraps the zygomys interpreter for orient evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	kernel     kernel.Kernel
}

// NewEngine creates a new Engine whose solid builtins run on k.
func NewEngine(k kernel.Kernel) *Engine {
	return &Engine{kernel: k}
}

// Evaluate runs source and returns the value of its last expression.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	// Empty source is a valid program with no value.
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, e.kernel)

	err := env.LoadString(prelude + preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	val, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return toResult(val), nil, nil
}

// toResult unwraps the builtin Sexp types into their Go values.
func toResult(s zygo.Sexp) *Result {
	if s == nil {
		return &Result{}
	}
	res := &Result{Text: s.SexpString(nil)}
	switch v := s.(type) {
	case *sexpAxisAngle:
		res.Value = v.aa
	case *sexpQuat:
		res.Value = v.q
	case *sexpRotationMatrix:
		res.Value = v.m
	case *sexpMatrix3:
		res.Value = v.m
	case *sexpVec2:
		res.Value = v.v
	case *sexpVec3:
		res.Value = v.v
	case *sexpVec4:
		res.Value = v.v
	case *sexpSolid:
		res.Value = v.s
	case *zygo.SexpFloat:
		res.Value = v.Val
	case *zygo.SexpInt:
		res.Value = v.Val
	case *zygo.SexpStr:
		res.Value = v.S
	case *zygo.SexpBool:
		res.Value = v.Val
	}
	return res
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
