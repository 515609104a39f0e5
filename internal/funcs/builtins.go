package funcs

import (
	"fmt"
	"time"

	"github.com/themobileprof/formpilot/pkg/models"
)

// registerBuiltins installs the standard function set
func registerBuiltins(r *Registry) {
	r.Register("count", builtinCount)
	r.Register("sum", builtinSum)
	r.Register("avg", builtinAvg)
	r.Register("daysAgo", builtinDaysAgo)
	r.Register("length", builtinLength)
	r.Register("answeredCount", builtinAnsweredCount)
	r.Register("min", builtinMin)
	r.Register("max", builtinMax)
}

// requireArgs checks the minimum argument arity for a built-in
func requireArgs(name string, args []any, min int) error {
	if len(args) < min {
		return fmt.Errorf("%w: %s requires at least %d argument(s), got %d",
			ErrInvalidArguments, name, min, len(args))
	}
	return nil
}

// questionID coerces a function argument to a question id
func questionID(arg any) string {
	if s, ok := arg.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", arg)
}

// lookup resolves a function argument to the referenced answer
func lookup(arg any, ctx *Context) (any, bool) {
	if ctx == nil || ctx.Answers == nil {
		return nil, false
	}
	v, ok := ctx.Answers[questionID(arg)]
	return v, ok
}

// numericValues collects every numeric value behind the referenced answers.
// Collection answers contribute each coercible element; non-numeric values
// are skipped rather than failing the call.
func numericValues(args []any, ctx *Context) []float64 {
	var vals []float64
	for _, arg := range args {
		v, ok := lookup(arg, ctx)
		if !ok {
			continue
		}
		switch items := v.(type) {
		case []any:
			for _, item := range items {
				if n, ok := Number(item); ok {
					vals = append(vals, n)
				}
			}
		case []string:
			for _, item := range items {
				if n, ok := Number(item); ok {
					vals = append(vals, n)
				}
			}
		default:
			if n, ok := Number(v); ok {
				vals = append(vals, n)
			}
		}
	}
	return vals
}

// builtinCount returns the element count of a collection answer, 0 otherwise
func builtinCount(args []any, ctx *Context) (any, error) {
	if err := requireArgs("count", args, 1); err != nil {
		return nil, err
	}
	v, ok := lookup(args[0], ctx)
	if !ok {
		return float64(0), nil
	}
	switch items := v.(type) {
	case []any:
		return float64(len(items)), nil
	case []string:
		return float64(len(items)), nil
	default:
		return float64(0), nil
	}
}

// builtinSum sums every numeric value behind the referenced answers
func builtinSum(args []any, ctx *Context) (any, error) {
	if err := requireArgs("sum", args, 1); err != nil {
		return nil, err
	}
	total := 0.0
	for _, n := range numericValues(args, ctx) {
		total += n
	}
	return total, nil
}

// builtinAvg averages the numeric values behind the referenced answers,
// returning 0 when there are none
func builtinAvg(args []any, ctx *Context) (any, error) {
	if err := requireArgs("avg", args, 1); err != nil {
		return nil, err
	}
	vals := numericValues(args, ctx)
	if len(vals) == 0 {
		return float64(0), nil
	}
	total := 0.0
	for _, n := range vals {
		total += n
	}
	return total / float64(len(vals)), nil
}

// builtinDaysAgo returns whole days elapsed since a date answer
func builtinDaysAgo(args []any, ctx *Context) (any, error) {
	if err := requireArgs("daysAgo", args, 1); err != nil {
		return nil, err
	}
	v, ok := lookup(args[0], ctx)
	if !ok {
		return float64(0), nil
	}
	var when time.Time
	switch d := v.(type) {
	case time.Time:
		when = d
	case string:
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("%w: daysAgo needs a date answer, got %q",
				ErrInvalidArguments, d)
		}
		when = parsed
	default:
		return nil, fmt.Errorf("%w: daysAgo needs a date answer, got %T",
			ErrInvalidArguments, v)
	}
	days := time.Since(when).Hours() / 24
	if days < 0 {
		days = 0
	}
	return float64(int(days)), nil
}

// builtinLength returns the length of a string or collection answer
func builtinLength(args []any, ctx *Context) (any, error) {
	if err := requireArgs("length", args, 1); err != nil {
		return nil, err
	}
	v, ok := lookup(args[0], ctx)
	if !ok {
		return float64(0), nil
	}
	switch s := v.(type) {
	case string:
		return float64(len(s)), nil
	case []any:
		return float64(len(s)), nil
	case []string:
		return float64(len(s)), nil
	default:
		return float64(0), nil
	}
}

// builtinAnsweredCount counts the non-empty answers in the whole map
func builtinAnsweredCount(args []any, ctx *Context) (any, error) {
	if ctx == nil || ctx.Answers == nil {
		return float64(0), nil
	}
	n := 0
	for _, v := range ctx.Answers {
		if !models.IsEmptyAnswer(v) {
			n++
		}
	}
	return float64(n), nil
}

// builtinMin returns the smallest numeric value, or nil when there is none
func builtinMin(args []any, ctx *Context) (any, error) {
	if err := requireArgs("min", args, 1); err != nil {
		return nil, err
	}
	vals := numericValues(args, ctx)
	if len(vals) == 0 {
		return nil, nil
	}
	m := vals[0]
	for _, n := range vals[1:] {
		if n < m {
			m = n
		}
	}
	return m, nil
}

// builtinMax returns the largest numeric value, or nil when there is none
func builtinMax(args []any, ctx *Context) (any, error) {
	if err := requireArgs("max", args, 1); err != nil {
		return nil, err
	}
	vals := numericValues(args, ctx)
	if len(vals) == 0 {
		return nil, nil
	}
	m := vals[0]
	for _, n := range vals[1:] {
		if n > m {
			m = n
		}
	}
	return m, nil
}
