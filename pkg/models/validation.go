package models

// Stable error codes surfaced to callers. Flow sentinels (NotInProgress,
// NoPrevious, Done) are not codes; they are returned by the flow package
// directly.
const (
	CodeDependencyViolation  = "DEPENDENCY_VIOLATION"
	CodeConsistencyViolation = "CONSISTENCY_VIOLATION"
	CodeIncomplete           = "INCOMPLETE"
	CodeRequiredField        = "REQUIRED_FIELD"
	CodeInvalidType          = "INVALID_TYPE"
	CodeInvalidNumber        = "INVALID_NUMBER"
	CodeInvalidEmail         = "INVALID_EMAIL"
	CodeInvalidChoice        = "INVALID_CHOICE"
	CodeInvalidDate          = "INVALID_DATE"
	CodeOutOfRange           = "OUT_OF_RANGE"
	CodeTooShort             = "TOO_SHORT"
	CodeTooLong              = "TOO_LONG"
	CodeForwardReference     = "FORWARD_REFERENCE"
	CodeUnknownReference     = "UNKNOWN_REFERENCE"
	CodeUnknownOperator      = "UNKNOWN_OPERATOR"
	CodeUnknownFunction      = "UNKNOWN_FUNCTION"
	CodeDuplicateID          = "DUPLICATE_ID"
)

// ValidationError represents a single validation finding
type ValidationError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	QuestionID string `json:"question_id,omitempty"`
}

// ValidationResult aggregates the findings of one validation pass. A fresh
// result is produced on every call; results are never mutated in place.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// Valid returns a passing result
func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

// AddError appends an error and marks the result invalid
func (r *ValidationResult) AddError(code, message, questionID string) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{Code: code, Message: message, QuestionID: questionID})
}

// AddWarning appends a warning without affecting validity
func (r *ValidationResult) AddWarning(code, message, questionID string) {
	r.Warnings = append(r.Warnings, ValidationError{Code: code, Message: message, QuestionID: questionID})
}

// Merge folds other into r, preserving error order
func (r *ValidationResult) Merge(other ValidationResult) {
	if !other.IsValid {
		r.IsValid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
