package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/themobileprof/formpilot/internal/flow"
	"github.com/themobileprof/formpilot/internal/interfaces"
	"github.com/themobileprof/formpilot/internal/sessionlog"
	"github.com/themobileprof/formpilot/pkg/models"
)

// Runner drives one questionnaire session end to end: prompting, answer
// submission, back-navigation, and handing the finished response to the
// sink.
type Runner struct {
	prompter interfaces.Prompter
	sink     interfaces.ResponseSink
	log      *sessionlog.Logger
	out      io.Writer
}

// NewRunner creates a session runner. sink and log may be nil; the session
// then runs without persistence.
func NewRunner(prompter interfaces.Prompter, sink interfaces.ResponseSink, log *sessionlog.Logger, out io.Writer) *Runner {
	return &Runner{prompter: prompter, sink: sink, log: log, out: out}
}

// Run executes a full session over the questionnaire and returns the final
// response (completed or abandoned)
func (r *Runner) Run(q *models.Questionnaire) (*models.Response, error) {
	session := flow.NewSession(q)

	if r.log != nil {
		r.log.Begin(session.ID(), q.ID)
	}
	r.logEvent(session.ID(), q.ID, "started", "")

	question, err := session.Start()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	fmt.Fprintf(r.out, "\n=== %s ===\n", q.Title)
	if q.Description != "" {
		fmt.Fprintln(r.out, q.Description)
	}
	fmt.Fprintln(r.out)

	for question != nil {
		progress := session.Progress()
		header := fmt.Sprintf("Question %d of %d (%d%%)",
			progress.CurrentQuestion, progress.TotalQuestions, progress.PercentComplete)

		value, wantBack, wantQuit, err := r.prompter.Ask(question, header)
		if err != nil {
			return nil, err
		}

		if wantQuit {
			if abandonErr := session.Abandon(); abandonErr != nil {
				return nil, abandonErr
			}
			break
		}
		if wantBack {
			prev, ok := session.Back()
			if !ok {
				fmt.Fprintln(r.out, "Already at the first question.")
				continue
			}
			r.logEvent(session.ID(), q.ID, "back", prev.ID)
			question = prev
			continue
		}

		next, result, err := session.SubmitAnswer(question.ID, value)
		if err != nil {
			if errors.Is(err, flow.ErrNotInProgress) || errors.Is(err, flow.ErrWrongQuestion) {
				return nil, err
			}
			return nil, err
		}
		if !result.IsValid {
			r.prompter.ShowErrors(result)
			continue
		}

		r.logEvent(session.ID(), q.ID, "answered", question.ID)
		question = next
	}

	return r.finish(session, q)
}

// finish validates cross-question rules, reports the outcome, and persists
// the response
func (r *Runner) finish(session *flow.Session, q *models.Questionnaire) (*models.Response, error) {
	switch session.State() {
	case flow.StateCompleted:
		ruleResult := session.ValidateRules()
		if !ruleResult.IsValid {
			fmt.Fprintln(r.out, "\nSome answers need attention:")
			r.prompter.ShowErrors(ruleResult)
		}
		fmt.Fprintln(r.out, "\n✓ Questionnaire complete")
		r.logEvent(session.ID(), q.ID, "completed", "")
		if r.log != nil {
			r.log.End(models.StatusCompleted)
		}
	case flow.StateAbandoned:
		fmt.Fprintln(r.out, "\nSession abandoned.")
		r.logEvent(session.ID(), q.ID, "abandoned", "")
		if r.log != nil {
			r.log.End(models.StatusAbandoned)
		}
	}

	response := session.Response()
	if r.sink != nil {
		if err := r.sink.SaveResponse(response); err != nil {
			return response, fmt.Errorf("failed to save response: %w", err)
		}
	}
	return response, nil
}

// logEvent writes a session event to the sink, ignoring failures: auditing
// must never interrupt a session
func (r *Runner) logEvent(sessionID, questionnaireID, event, questionID string) {
	if r.log != nil {
		r.log.Add(event, questionID)
	}
	if r.sink != nil {
		_ = r.sink.LogEvent(sessionID, questionnaireID, event, questionID)
	}
}
