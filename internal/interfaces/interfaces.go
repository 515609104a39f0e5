// Package interfaces defines the collaborator seams between the flow core
// and its surroundings. The core consumes these; concrete implementations
// live in internal/store and internal/ui.
package interfaces

import (
	"github.com/themobileprof/formpilot/internal/store"
	"github.com/themobileprof/formpilot/pkg/models"
)

// QuestionnaireSource supplies questionnaire definitions
type QuestionnaireSource interface {
	// GetQuestionnaire retrieves a questionnaire by id
	GetQuestionnaire(id string) (*models.Questionnaire, error)
	// ListQuestionnaires returns every stored questionnaire
	ListQuestionnaires() ([]store.QuestionnaireInfo, error)
}

// ResponseSink receives finished sessions and their audit events
type ResponseSink interface {
	// SaveResponse persists a completed or abandoned response
	SaveResponse(r *models.Response) error
	// LogEvent records a session event for auditing
	LogEvent(sessionID, questionnaireID, event, questionID string) error
}

// ResponseSource reads back stored responses for analytics
type ResponseSource interface {
	// ListResponses returns every response recorded for a questionnaire
	ListResponses(questionnaireID string) ([]models.Response, error)
}

// Prompter collects one raw answer per question. The flow core never
// renders prompts itself; it hands the prompter a question descriptor and
// gets back a raw value.
type Prompter interface {
	// Ask renders the question and returns the raw answer value.
	// wantBack/wantQuit report navigation commands instead of an answer.
	Ask(q *models.Question, header string) (value any, wantBack bool, wantQuit bool, err error)
	// ShowErrors renders validation findings before a re-prompt
	ShowErrors(result models.ValidationResult)
}
