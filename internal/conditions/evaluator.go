// Package conditions decides whether a question is visible given the
// answers accumulated so far. Evaluation is fail-safe: malformed conditions,
// type mismatches in numeric comparisons, and registry failures all hide the
// question instead of aborting the session.
package conditions

import (
	"fmt"
	"strings"

	"github.com/themobileprof/formpilot/internal/funcs"
	"github.com/themobileprof/formpilot/pkg/models"
)

// Evaluator evaluates question visibility conditions
type Evaluator struct {
	registry *funcs.Registry
}

// NewEvaluator creates an evaluator backed by the given function registry
func NewEvaluator(registry *funcs.Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// IsVisible reports whether the question should be shown. A question without
// a condition is always visible. An unanswered referenced question satisfies
// no operator, notEquals included; this closed-world policy is deliberate
// and matched by the flow tests.
func (e *Evaluator) IsVisible(q *models.Question, answers map[string]any) bool {
	if q.Condition == nil {
		return true
	}
	return e.evaluate(q.Condition, answers, q.ID)
}

// evaluate applies one condition against the answer map
func (e *Evaluator) evaluate(cond *models.Condition, answers map[string]any, questionID string) bool {
	answer, ok := answers[cond.QuestionID]
	if !ok || models.IsEmptyAnswer(answer) {
		return false
	}

	expected := cond.Value
	if call, isCall := parseCall(expected); isCall {
		result, err := e.registry.Execute(call.name, call.args, &funcs.Context{
			Answers:    answers,
			QuestionID: questionID,
		})
		if err != nil {
			return false
		}
		expected = result
	}

	switch cond.Operator {
	case models.OpEquals:
		return valuesEqual(answer, expected)
	case models.OpNotEquals:
		return !valuesEqual(answer, expected)
	case models.OpGreaterThan:
		a, b, ok := bothNumeric(answer, expected)
		return ok && a > b
	case models.OpLessThan:
		a, b, ok := bothNumeric(answer, expected)
		return ok && a < b
	case models.OpGreaterThanOrEqual:
		a, b, ok := bothNumeric(answer, expected)
		return ok && a >= b
	case models.OpLessThanOrEqual:
		a, b, ok := bothNumeric(answer, expected)
		return ok && a <= b
	case models.OpContains:
		return contains(answer, expected)
	default:
		return false
	}
}

// valuesEqual compares two values, numerically when both sides coerce
func valuesEqual(a, b any) bool {
	if an, aok := funcs.Number(a); aok {
		if bn, bok := funcs.Number(b); bok {
			return an == bn
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// bothNumeric coerces both sides for an ordering comparison
func bothNumeric(a, b any) (float64, float64, bool) {
	an, aok := funcs.Number(a)
	bn, bok := funcs.Number(b)
	return an, bn, aok && bok
}

// contains tests slice membership or substring presence
func contains(answer, expected any) bool {
	needle := fmt.Sprintf("%v", expected)
	switch items := answer.(type) {
	case []any:
		for _, item := range items {
			if fmt.Sprintf("%v", item) == needle {
				return true
			}
		}
	case []string:
		for _, item := range items {
			if item == needle {
				return true
			}
		}
	case string:
		return strings.Contains(items, needle)
	}
	return false
}

// call is a parsed function invocation from a comparison value
type call struct {
	name string
	args []any
}

// parseCall recognizes comparison values of the form name(arg1, arg2).
// Arguments are comma-separated; quotes around string arguments are
// stripped. Anything else is treated as a literal comparison value.
func parseCall(v any) (call, bool) {
	s, ok := v.(string)
	if !ok {
		return call{}, false
	}
	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return call{}, false
	}
	name := strings.TrimSpace(s[:open])
	if !isIdentifier(name) {
		return call{}, false
	}
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	var args []any
	if inner != "" {
		for _, part := range strings.Split(inner, ",") {
			args = append(args, strings.Trim(strings.TrimSpace(part), `"'`))
		}
	}
	return call{name: name, args: args}, true
}

// isIdentifier reports whether s looks like a function name
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

// IsFunctionCall reports whether a comparison value would be resolved
// through the function registry, and returns the function name. Used by the
// questionnaire linter to flag unknown functions before a session runs.
func IsFunctionCall(v any) (string, bool) {
	c, ok := parseCall(v)
	if !ok {
		return "", false
	}
	return c.name, true
}
