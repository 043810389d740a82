// Package engine provides a sandboxed Lisp surface over the region
// algebra. It wraps zygomys and evaluates expressions such as
//
//	(area (union (circle 0 0 1) (circle 1 0 1)))
//
// in a fresh sandbox per call, with a hard evaluation timeout.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/planegeom/pkg/region"
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

// Result is the value of the last expression of an evaluated program.
// At most one of Region, HasNumber, or HasBool is set; an empty Result
// means the program produced nothing, for example the intersection of
// disjoint regions.
type Result struct {
	Region    *region.Region
	Number    float64
	HasNumber bool
	Bool      bool
	HasBool   bool
}

// Engine wraps the zygomys interpreter for region-algebra evaluation.
// It is safe for concurrent use: each call to Evaluate creates a fresh
// sandboxed environment and shares no state with other calls.
type Engine struct{}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a region-algebra program and returns its result.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
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

	return waitWithTimeout(ch)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	// An empty program is valid and produces no value.
	if strings.TrimSpace(source) == "" {
		return &Result{}, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or
	// syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}

	val, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}
	return resultFrom(val), nil, nil
}

// resultFrom converts the final Sexp of a program into a Result.
func resultFrom(val zygo.Sexp) *Result {
	switch v := val.(type) {
	case *sexpRegion:
		return &Result{Region: v.region}
	case *zygo.SexpFloat:
		return &Result{Number: v.Val, HasNumber: true}
	case *zygo.SexpInt:
		return &Result{Number: float64(v.Val), HasNumber: true}
	case *zygo.SexpBool:
		return &Result{Bool: v.Val, HasBool: true}
	}
	return &Result{}
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError
// values, extracting line numbers where the message carries them.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}
	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}
	return []EvalError{{
		Message: strings.TrimSpace(msg),
	}}
}
