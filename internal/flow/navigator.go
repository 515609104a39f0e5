// Package flow drives a questionnaire session: ordered navigation over the
// visible path, progress tracking, and the state machine that owns the
// answer map.
package flow

import (
	"github.com/themobileprof/formpilot/internal/conditions"
	"github.com/themobileprof/formpilot/pkg/models"
)

// Navigator computes forward and backward movement through a questionnaire.
// Visibility is recomputed on every call rather than cached: an edit to an
// earlier answer can change the visibility of any later question, and at
// questionnaire sizes a cache plus invalidation would cost more than the
// recomputation.
type Navigator struct {
	eval *conditions.Evaluator
}

// NewNavigator creates a navigator backed by the given visibility evaluator
func NewNavigator(eval *conditions.Evaluator) *Navigator {
	return &Navigator{eval: eval}
}

// Next scans forward from currentIndex+1 and returns the index of the first
// visible question. ok is false when no visible question remains (the
// session is done).
func (n *Navigator) Next(questions []models.Question, answers map[string]any, currentIndex int) (int, bool) {
	for i := currentIndex + 1; i < len(questions); i++ {
		if n.eval.IsVisible(&questions[i], answers) {
			return i, true
		}
	}
	return 0, false
}

// Previous pops the most recently visited index off the history stack. ok is
// false when there is nothing to go back to; that is a normal outcome, not
// an error. Visibility is not re-checked on the way back: history only ever
// holds indices that were visible when visited.
func (n *Navigator) Previous(history *[]int) (int, bool) {
	h := *history
	if len(h) == 0 {
		return 0, false
	}
	last := h[len(h)-1]
	*history = h[:len(h)-1]
	return last, true
}

// VisibleIndices returns the indices of every currently visible question, in
// declared order
func (n *Navigator) VisibleIndices(questions []models.Question, answers map[string]any) []int {
	var visible []int
	for i := range questions {
		if n.eval.IsVisible(&questions[i], answers) {
			visible = append(visible, i)
		}
	}
	return visible
}

// VisibleCount returns the number of currently visible questions
func (n *Navigator) VisibleCount(questions []models.Question, answers map[string]any) int {
	return len(n.VisibleIndices(questions, answers))
}
