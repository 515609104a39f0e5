// Package funcs provides the named-function registry used by conditional
// visibility expressions. A registry is a plain name-keyed table of closures;
// callers construct one per session and may register custom functions on top
// of the built-ins.
package funcs

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors returned by Execute and the built-ins
var (
	ErrUnknownFunction  = errors.New("unknown function")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Context carries the evaluation state a function operates over
type Context struct {
	// Answers is the accumulated answer map, keyed by question id
	Answers map[string]any
	// QuestionID is the id of the question currently being evaluated,
	// when known
	QuestionID string
}

// Func is a registered function. Args are the literal argument list from the
// expression; most built-ins expect question ids.
type Func func(args []any, ctx *Context) (any, error)

// Registry is a name-keyed table of functions. It is not safe for concurrent
// mutation; each session owns its own registry.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a registry pre-loaded with the built-in functions
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces a function. Last write wins.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Has reports whether a function with the given name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Execute looks up the function by exact name and invokes it
func (r *Registry) Execute(name string, args []any, ctx *Context) (any, error) {
	fn, ok := r.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return fn(args, ctx)
}

// Number coerces an answer value to a float64. Strings are parsed; bools and
// non-numeric shapes do not coerce.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
