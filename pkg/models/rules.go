package models

// RuleType identifies a cross-question rule variant
type RuleType string

const (
	RuleDependency   RuleType = "dependency"
	RuleConsistency  RuleType = "consistency"
	RuleCompleteness RuleType = "completeness"
)

// CrossRule represents a constraint spanning two or more answers. The Type
// tag selects which fields apply:
//
//	dependency:   DependsOn, Requires, Message
//	consistency:  Questions, MustMatch, Message
//	completeness: RequiredQuestions
type CrossRule struct {
	Type RuleType `yaml:"type" json:"type"`

	// Dependency: answering DependsOn requires Requires to be answered too
	DependsOn string `yaml:"depends_on,omitempty" json:"depends_on,omitempty"`
	Requires  string `yaml:"requires,omitempty" json:"requires,omitempty"`

	// Consistency: the listed answers must all match (or, with
	// must_match false, must not all be identical)
	Questions []string `yaml:"questions,omitempty" json:"questions,omitempty"`
	MustMatch bool     `yaml:"must_match,omitempty" json:"must_match,omitempty"`

	// Completeness: every listed question needs a non-empty answer
	RequiredQuestions []string `yaml:"required_questions,omitempty" json:"required_questions,omitempty"`

	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}
