package models

// Operator identifies a visibility comparison operator
type Operator string

const (
	OpEquals             Operator = "equals"
	OpNotEquals          Operator = "notEquals"
	OpGreaterThan        Operator = "greaterThan"
	OpLessThan           Operator = "lessThan"
	OpGreaterThanOrEqual Operator = "greaterThanOrEqual"
	OpLessThanOrEqual    Operator = "lessThanOrEqual"
	OpContains           Operator = "contains"
)

// Operators lists every supported comparison operator
var Operators = []Operator{
	OpEquals, OpNotEquals, OpGreaterThan, OpLessThan,
	OpGreaterThanOrEqual, OpLessThanOrEqual, OpContains,
}

// IsValidOperator reports whether op is a supported comparison operator
func IsValidOperator(op Operator) bool {
	for _, o := range Operators {
		if op == o {
			return true
		}
	}
	return false
}

// Condition controls whether a question is shown. The referenced question
// must occur earlier in the questionnaire than the question carrying the
// condition; an unanswered reference satisfies no operator, notEquals
// included.
type Condition struct {
	QuestionID string   `yaml:"question_id" json:"question_id"`
	Operator   Operator `yaml:"operator" json:"operator"`
	Value      any      `yaml:"value" json:"value"`
}
