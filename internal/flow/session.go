package flow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/themobileprof/formpilot/internal/answers"
	"github.com/themobileprof/formpilot/internal/conditions"
	"github.com/themobileprof/formpilot/internal/funcs"
	"github.com/themobileprof/formpilot/internal/rules"
	"github.com/themobileprof/formpilot/pkg/models"
)

// State identifies where a session is in its lifecycle
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateAbandoned  State = "abandoned"
)

// Protocol errors: calling flow operations out of sequence is an integration
// bug, surfaced immediately and never retried internally
var (
	ErrNotInProgress  = errors.New("session is not in progress")
	ErrAlreadyStarted = errors.New("session already started")
	ErrWrongQuestion  = errors.New("not the current question")
)

// Session is the flow state machine for one questionnaire run. It owns the
// answer map exclusively; answers are only recorded through SubmitAnswer.
// Sessions are single-actor and not safe for concurrent use.
type Session struct {
	id            string
	questionnaire *models.Questionnaire
	registry      *funcs.Registry
	nav           *Navigator

	state     State
	answers   map[string]any
	current   int   // index into the full question list, -1 before the first
	history   []int // visited indices, for back-navigation
	startedAt time.Time
	finished  time.Time
}

// NewSession creates a session for the questionnaire with its own function
// registry. Registries are per-session rather than process-wide so sessions
// stay independent and testable in parallel.
func NewSession(q *models.Questionnaire) *Session {
	registry := funcs.NewRegistry()
	return &Session{
		id:            uuid.New().String(),
		questionnaire: q,
		registry:      registry,
		nav:           NewNavigator(conditions.NewEvaluator(registry)),
		state:         StateNotStarted,
		answers:       make(map[string]any),
		current:       -1,
	}
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state
func (s *Session) State() State { return s.state }

// Registry exposes the session's function registry so callers can register
// custom condition functions before Start
func (s *Session) Registry() *funcs.Registry { return s.registry }

// Start transitions the session to InProgress and returns the first visible
// question. A questionnaire with zero visible questions completes
// immediately; that is an edge case, not an error, and Start returns a nil
// question for it.
func (s *Session) Start() (*models.Question, error) {
	if s.state != StateNotStarted {
		return nil, fmt.Errorf("%w: state is %s", ErrAlreadyStarted, s.state)
	}
	s.state = StateInProgress
	s.startedAt = time.Now()

	next, ok := s.nav.Next(s.questionnaire.Questions, s.answers, s.current)
	if !ok {
		s.complete()
		return nil, nil
	}
	s.current = next
	return &s.questionnaire.Questions[s.current], nil
}

// Current returns the question at the current position, or nil when the
// session is not at a question
func (s *Session) Current() *models.Question {
	if s.state != StateInProgress || s.current < 0 || s.current >= len(s.questionnaire.Questions) {
		return nil
	}
	return &s.questionnaire.Questions[s.current]
}

// SubmitAnswer validates and records an answer for the current question,
// then advances to the next visible question. An invalid answer is returned
// as data in the Result and neither records nor advances; the caller
// re-prompts. A nil question with a valid Result means the session just
// completed.
func (s *Session) SubmitAnswer(questionID string, value any) (*models.Question, answers.Result, error) {
	if s.state != StateInProgress {
		return nil, models.Valid(), fmt.Errorf("%w: state is %s", ErrNotInProgress, s.state)
	}
	current := s.Current()
	if current == nil || current.ID != questionID {
		return nil, models.Valid(), fmt.Errorf("%w: %q", ErrWrongQuestion, questionID)
	}

	result := answers.Validate(value, current)
	if !result.IsValid {
		return current, result, nil
	}

	s.answers[questionID] = value
	s.history = append(s.history, s.current)

	next, ok := s.nav.Next(s.questionnaire.Questions, s.answers, s.current)
	if !ok {
		s.complete()
		return nil, result, nil
	}
	s.current = next
	return &s.questionnaire.Questions[s.current], result, nil
}

// Back returns to the most recently visited question. ok is false when
// there is no history; that is a normal UI action, not a fault. The answer
// already recorded for the revisited question stays in place until the
// caller resubmits it.
func (s *Session) Back() (*models.Question, bool) {
	if s.state != StateInProgress {
		return nil, false
	}
	prev, ok := s.nav.Previous(&s.history)
	if !ok {
		return nil, false
	}
	s.current = prev
	return &s.questionnaire.Questions[s.current], true
}

// Abandon ends the session without completing it
func (s *Session) Abandon() error {
	if s.state != StateInProgress {
		return fmt.Errorf("%w: state is %s", ErrNotInProgress, s.state)
	}
	s.state = StateAbandoned
	s.finished = time.Now()
	return nil
}

// complete transitions to Completed
func (s *Session) complete() {
	s.state = StateCompleted
	s.finished = time.Now()
	s.current = len(s.questionnaire.Questions)
}

// Progress recomputes progress against the currently visible path
func (s *Session) Progress() Progress {
	visible := s.nav.VisibleIndices(s.questionnaire.Questions, s.answers)
	answered := 0
	position := len(visible)
	for i, idx := range visible {
		if models.Answered(s.answers, s.questionnaire.Questions[idx].ID) {
			answered++
		}
		if idx == s.current {
			position = i
		}
	}
	return ComputeProgress(len(visible), position, answered, s.state == StateCompleted)
}

// AllRequiredAnswered reports whether every required question still on the
// visible path has a non-empty answer
func (s *Session) AllRequiredAnswered() bool {
	for _, idx := range s.nav.VisibleIndices(s.questionnaire.Questions, s.answers) {
		q := &s.questionnaire.Questions[idx]
		if q.Required && !models.Answered(s.answers, q.ID) {
			return false
		}
	}
	return true
}

// Answers returns a copy of the answer map for collaborators; the canonical
// map stays owned by the session
func (s *Session) Answers() map[string]any {
	out := make(map[string]any, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// ValidateRules runs the questionnaire's cross-question rules against the
// current answer snapshot
func (s *Session) ValidateRules() models.ValidationResult {
	return rules.Validate(s.answers, s.questionnaire.Questions, s.questionnaire.Rules)
}

// Response assembles the final response for storage. Valid once the session
// has reached a terminal state.
func (s *Session) Response() *models.Response {
	status := models.StatusAbandoned
	if s.state == StateCompleted {
		status = models.StatusCompleted
	}
	return &models.Response{
		ID:                   uuid.New().String(),
		QuestionnaireID:      s.questionnaire.ID,
		QuestionnaireVersion: s.questionnaire.Version,
		SessionID:            s.id,
		Answers:              s.Answers(),
		Status:               status,
		StartedAt:            s.startedAt,
		FinishedAt:           s.finished,
	}
}
