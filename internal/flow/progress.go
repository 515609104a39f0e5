package flow

import "math"

// Progress describes how far a session has advanced through the visible
// path. The denominator changes as answers change visibility, so progress is
// recomputed after every transition.
type Progress struct {
	CurrentQuestion   int  `json:"current_question"`
	TotalQuestions    int  `json:"total_questions"`
	AnsweredQuestions int  `json:"answered_questions"`
	PercentComplete   int  `json:"percent_complete"`
	IsCompleted       bool `json:"is_completed"`
}

// ComputeProgress derives progress figures from the current visible totals.
// currentPosition is zero-based; percent is round(answered/total*100), 0
// when there are no visible questions.
func ComputeProgress(totalVisible, currentPosition, answered int, completed bool) Progress {
	percent := 0
	if totalVisible > 0 {
		percent = int(math.Round(float64(answered) / float64(totalVisible) * 100))
	}
	return Progress{
		CurrentQuestion:   currentPosition + 1,
		TotalQuestions:    totalVisible,
		AnsweredQuestions: answered,
		PercentComplete:   percent,
		IsCompleted:       completed,
	}
}

// IsComplete reports whether the session is finished: the end of the visible
// path has been reached and every required question still on that path has
// an answer. A required question hidden by a later-changed condition is
// retroactively excused.
func IsComplete(currentIndex, totalVisible int, allRequiredAnswered bool) bool {
	return currentIndex >= totalVisible && allRequiredAnswered
}
