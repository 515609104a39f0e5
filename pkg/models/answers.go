package models

// IsEmptyAnswer reports whether a recorded value counts as unanswered.
// Absence of the key means unanswered; so do empty strings and empty
// collections. Zero numbers and false booleans are real answers.
func IsEmptyAnswer(v any) bool {
	switch a := v.(type) {
	case nil:
		return true
	case string:
		return a == ""
	case []any:
		return len(a) == 0
	case []string:
		return len(a) == 0
	default:
		return false
	}
}

// Answered reports whether the map holds a non-empty answer for the id
func Answered(answers map[string]any, id string) bool {
	v, ok := answers[id]
	return ok && !IsEmptyAnswer(v)
}
