// Package answers validates a raw answer value against a question's own
// type rules. Validation failures are data, not errors: callers re-prompt on
// an invalid Result rather than handling a Go error.
package answers

import (
	"fmt"
	"net/mail"
	"regexp"
	"time"

	"github.com/themobileprof/formpilot/internal/funcs"
	"github.com/themobileprof/formpilot/pkg/models"
)

const dateLayout = "2006-01-02"

// Result mirrors models.ValidationResult for a single question
type Result = models.ValidationResult

// Validate checks value against the question's type rules. The switch over
// question types is exhaustive; adding a variant without a case here is a
// bug caught by TestValidateCoversAllTypes.
func Validate(value any, q *models.Question) Result {
	result := models.Valid()

	if models.IsEmptyAnswer(value) {
		if q.Required {
			result.AddError(models.CodeRequiredField,
				fmt.Sprintf("question %q requires an answer", q.ID), q.ID)
		}
		return result
	}

	switch q.Type {
	case models.TypeText:
		validateText(value, q, &result)
	case models.TypeNumber:
		validateNumber(value, q, &result)
	case models.TypeEmail:
		validateEmail(value, q, &result)
	case models.TypeSingleChoice:
		validateSingleChoice(value, q, &result)
	case models.TypeMultipleChoice:
		validateMultipleChoice(value, q, &result)
	case models.TypeBoolean:
		validateBoolean(value, q, &result)
	case models.TypeDate:
		validateDate(value, q, &result)
	case models.TypeRating:
		validateNumber(value, q, &result)
	default:
		result.AddError(models.CodeInvalidType,
			fmt.Sprintf("unknown question type: %s", q.Type), q.ID)
	}

	return result
}

func validateText(value any, q *models.Question, result *Result) {
	s, ok := value.(string)
	if !ok {
		result.AddError(models.CodeInvalidType,
			fmt.Sprintf("question %q expects text, got %T", q.ID, value), q.ID)
		return
	}
	if q.MinLength > 0 && len(s) < q.MinLength {
		result.AddError(models.CodeTooShort,
			fmt.Sprintf("answer must be at least %d characters", q.MinLength), q.ID)
	}
	if q.MaxLength > 0 && len(s) > q.MaxLength {
		result.AddError(models.CodeTooLong,
			fmt.Sprintf("answer must be at most %d characters", q.MaxLength), q.ID)
	}
	if q.Pattern != "" {
		re, err := regexp.Compile(q.Pattern)
		if err != nil {
			// Malformed pattern is a configuration problem; lint reports
			// it, runtime lets the answer through
			return
		}
		if !re.MatchString(s) {
			result.AddError(models.CodeInvalidType,
				"answer does not match required pattern", q.ID)
		}
	}
}

func validateNumber(value any, q *models.Question, result *Result) {
	n, ok := funcs.Number(value)
	if !ok {
		result.AddError(models.CodeInvalidNumber,
			fmt.Sprintf("question %q expects a number, got %v", q.ID, value), q.ID)
		return
	}
	if q.Min != nil && n < *q.Min {
		result.AddError(models.CodeOutOfRange,
			fmt.Sprintf("answer must be at least %v", *q.Min), q.ID)
	}
	if q.Max != nil && n > *q.Max {
		result.AddError(models.CodeOutOfRange,
			fmt.Sprintf("answer must be at most %v", *q.Max), q.ID)
	}
}

func validateEmail(value any, q *models.Question, result *Result) {
	s, ok := value.(string)
	if !ok {
		result.AddError(models.CodeInvalidEmail,
			fmt.Sprintf("question %q expects an email address", q.ID), q.ID)
		return
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		result.AddError(models.CodeInvalidEmail,
			fmt.Sprintf("%q is not a valid email address", s), q.ID)
	}
}

func validateSingleChoice(value any, q *models.Question, result *Result) {
	s, ok := value.(string)
	if !ok {
		result.AddError(models.CodeInvalidChoice,
			fmt.Sprintf("question %q expects one option value", q.ID), q.ID)
		return
	}
	if !q.HasOption(s) {
		result.AddError(models.CodeInvalidChoice,
			fmt.Sprintf("%q is not one of the available options", s), q.ID)
	}
}

func validateMultipleChoice(value any, q *models.Question, result *Result) {
	selected, ok := toStringSlice(value)
	if !ok {
		result.AddError(models.CodeInvalidChoice,
			fmt.Sprintf("question %q expects a list of option values", q.ID), q.ID)
		return
	}
	seen := make(map[string]bool, len(selected))
	for _, s := range selected {
		if !q.HasOption(s) {
			result.AddError(models.CodeInvalidChoice,
				fmt.Sprintf("%q is not one of the available options", s), q.ID)
		}
		if seen[s] {
			result.AddWarning(models.CodeInvalidChoice,
				fmt.Sprintf("option %q selected more than once", s), q.ID)
		}
		seen[s] = true
	}
}

func validateBoolean(value any, q *models.Question, result *Result) {
	if _, ok := ToBool(value); !ok {
		result.AddError(models.CodeInvalidType,
			fmt.Sprintf("question %q expects yes or no", q.ID), q.ID)
	}
}

func validateDate(value any, q *models.Question, result *Result) {
	var d time.Time
	switch v := value.(type) {
	case time.Time:
		d = v
	case string:
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			result.AddError(models.CodeInvalidDate,
				fmt.Sprintf("%q is not a valid date (expected YYYY-MM-DD)", v), q.ID)
			return
		}
		d = parsed
	default:
		result.AddError(models.CodeInvalidDate,
			fmt.Sprintf("question %q expects a date", q.ID), q.ID)
		return
	}

	if q.MinDate != "" {
		if bound, ok := resolveDateBound(q.MinDate); ok && d.Before(bound) {
			result.AddError(models.CodeOutOfRange,
				fmt.Sprintf("date must not be before %s", bound.Format(dateLayout)), q.ID)
		}
	}
	if q.MaxDate != "" {
		if bound, ok := resolveDateBound(q.MaxDate); ok && d.After(bound) {
			result.AddError(models.CodeOutOfRange,
				fmt.Sprintf("date must not be after %s", bound.Format(dateLayout)), q.ID)
		}
	}
}

// resolveDateBound parses a bound, resolving the "today" sentinel against
// the wall clock at validation time
func resolveDateBound(bound string) (time.Time, bool) {
	if bound == "today" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	}
	t, err := time.Parse(dateLayout, bound)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ToBool coerces an answer to a boolean. Accepts real booleans and the
// usual textual forms.
func ToBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch v {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	}
	return false, false
}

// toStringSlice normalizes a multiple-choice answer shape
func toStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
