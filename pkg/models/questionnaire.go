package models

// QuestionType identifies one of the supported question variants
type QuestionType string

const (
	TypeText           QuestionType = "text"
	TypeNumber         QuestionType = "number"
	TypeEmail          QuestionType = "email"
	TypeSingleChoice   QuestionType = "single_choice"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeBoolean        QuestionType = "boolean"
	TypeDate           QuestionType = "date"
	TypeRating         QuestionType = "rating"
)

// QuestionTypes lists every supported variant, in a stable order
var QuestionTypes = []QuestionType{
	TypeText, TypeNumber, TypeEmail, TypeSingleChoice,
	TypeMultipleChoice, TypeBoolean, TypeDate, TypeRating,
}

// IsValidType reports whether t is one of the supported question variants
func IsValidType(t QuestionType) bool {
	for _, qt := range QuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

// Questionnaire represents a complete questionnaire definition
type Questionnaire struct {
	ID          string     `yaml:"id" json:"id"`
	Version     string     `yaml:"version" json:"version"`
	Title       string     `yaml:"title" json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Metadata    Metadata   `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Questions   []Question `yaml:"questions" json:"questions"`
	Rules       []CrossRule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// Metadata contains questionnaire authorship info
type Metadata struct {
	Author string   `yaml:"author,omitempty" json:"author,omitempty"`
	Tags   []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	URL    string   `yaml:"url,omitempty" json:"url,omitempty"`
}

// Question represents a single question in a questionnaire
type Question struct {
	ID          string       `yaml:"id" json:"id"`
	Type        QuestionType `yaml:"type" json:"type"`
	Text        string       `yaml:"text" json:"text"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool         `yaml:"required,omitempty" json:"required,omitempty"`

	// Choice questions
	Options []Option `yaml:"options,omitempty" json:"options,omitempty"`

	// Number and rating questions
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`

	// Date questions; bounds are "2006-01-02" dates or the literal "today",
	// resolved when the answer is validated
	MinDate string `yaml:"min_date,omitempty" json:"min_date,omitempty"`
	MaxDate string `yaml:"max_date,omitempty" json:"max_date,omitempty"`

	// Text questions
	MinLength int    `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength int    `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	Condition *Condition `yaml:"condition,omitempty" json:"condition,omitempty"`
}

// Option represents one selectable choice of a choice question
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Label returns the display label for an option value, falling back to the
// value itself when the option is unknown
func (q *Question) OptionLabel(value string) string {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}

// HasOption reports whether value is one of the question's option values
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// QuestionByID returns the question with the given id, or nil
func (qn *Questionnaire) QuestionByID(id string) *Question {
	for i := range qn.Questions {
		if qn.Questions[i].ID == id {
			return &qn.Questions[i]
		}
	}
	return nil
}

// IndexOf returns the position of the question with the given id, or -1
func (qn *Questionnaire) IndexOf(id string) int {
	for i := range qn.Questions {
		if qn.Questions[i].ID == id {
			return i
		}
	}
	return -1
}
