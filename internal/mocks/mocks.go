// Package mocks provides test doubles for the collaborator interfaces.
package mocks

import (
	"fmt"

	"github.com/themobileprof/formpilot/internal/store"
	"github.com/themobileprof/formpilot/pkg/models"
)

// MockQuestionnaireSource is an in-memory QuestionnaireSource for testing
type MockQuestionnaireSource struct {
	GetQuestionnaireFunc   func(id string) (*models.Questionnaire, error)
	ListQuestionnairesFunc func() ([]store.QuestionnaireInfo, error)
	questionnaires         map[string]*models.Questionnaire
}

// NewMockQuestionnaireSource creates an empty mock source
func NewMockQuestionnaireSource() *MockQuestionnaireSource {
	return &MockQuestionnaireSource{
		questionnaires: make(map[string]*models.Questionnaire),
	}
}

// Add registers a questionnaire with the mock
func (m *MockQuestionnaireSource) Add(q *models.Questionnaire) {
	m.questionnaires[q.ID] = q
}

func (m *MockQuestionnaireSource) GetQuestionnaire(id string) (*models.Questionnaire, error) {
	if m.GetQuestionnaireFunc != nil {
		return m.GetQuestionnaireFunc(id)
	}
	if q, ok := m.questionnaires[id]; ok {
		return q, nil
	}
	return nil, fmt.Errorf("questionnaire not found: %s", id)
}

func (m *MockQuestionnaireSource) ListQuestionnaires() ([]store.QuestionnaireInfo, error) {
	if m.ListQuestionnairesFunc != nil {
		return m.ListQuestionnairesFunc()
	}
	var infos []store.QuestionnaireInfo
	for _, q := range m.questionnaires {
		infos = append(infos, store.QuestionnaireInfo{
			ID:            q.ID,
			Version:       q.Version,
			Title:         q.Title,
			Description:   q.Description,
			QuestionCount: len(q.Questions),
		})
	}
	return infos, nil
}

// MockResponseSink records saved responses and events in memory
type MockResponseSink struct {
	SaveResponseFunc func(r *models.Response) error
	Saved            []*models.Response
	Events           []string
}

// NewMockResponseSink creates an empty mock sink
func NewMockResponseSink() *MockResponseSink {
	return &MockResponseSink{}
}

func (m *MockResponseSink) SaveResponse(r *models.Response) error {
	if m.SaveResponseFunc != nil {
		return m.SaveResponseFunc(r)
	}
	m.Saved = append(m.Saved, r)
	return nil
}

func (m *MockResponseSink) LogEvent(sessionID, questionnaireID, event, questionID string) error {
	m.Events = append(m.Events, fmt.Sprintf("%s:%s", event, questionID))
	return nil
}

// MockPrompter replays a scripted list of answers. The strings "back" and
// "quit" are interpreted as navigation commands, like the real prompter.
type MockPrompter struct {
	Answers []any
	next    int
	Errors  []models.ValidationResult
}

// NewMockPrompter creates a prompter that replays the given answers in order
func NewMockPrompter(answers ...any) *MockPrompter {
	return &MockPrompter{Answers: answers}
}

func (m *MockPrompter) Ask(q *models.Question, header string) (any, bool, bool, error) {
	if m.next >= len(m.Answers) {
		return nil, false, true, nil
	}
	answer := m.Answers[m.next]
	m.next++
	if s, ok := answer.(string); ok {
		switch s {
		case "back":
			return nil, true, false, nil
		case "quit":
			return nil, false, true, nil
		}
	}
	return answer, false, false, nil
}

func (m *MockPrompter) ShowErrors(result models.ValidationResult) {
	m.Errors = append(m.Errors, result)
}
