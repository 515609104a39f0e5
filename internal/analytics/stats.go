// Package analytics computes aggregate statistics over stored responses.
// It consumes responses after the fact and plays no part in flow decisions.
package analytics

import (
	"fmt"
	"sort"

	"github.com/themobileprof/formpilot/internal/funcs"
	"github.com/themobileprof/formpilot/pkg/models"
)

// QuestionStats summarizes the answers collected for one question
type QuestionStats struct {
	QuestionID string
	Answered   int
	AnswerRate float64 // answered / total responses

	// Numeric questions (number, rating)
	Mean float64
	Min  float64
	Max  float64

	// Choice questions: option value -> selection count
	Distribution map[string]int
}

// Summary aggregates every response recorded for one questionnaire
type Summary struct {
	QuestionnaireID string
	TotalResponses  int
	Completed       int
	Abandoned       int
	CompletionRate  float64
	Questions       []QuestionStats
}

// Summarize computes a summary of the responses against the questionnaire
// definition. Responses with answers for questions no longer in the
// definition are counted in the totals but not per-question.
func Summarize(q *models.Questionnaire, responses []models.Response) *Summary {
	summary := &Summary{
		QuestionnaireID: q.ID,
		TotalResponses:  len(responses),
	}
	for _, r := range responses {
		switch r.Status {
		case models.StatusCompleted:
			summary.Completed++
		case models.StatusAbandoned:
			summary.Abandoned++
		}
	}
	if summary.TotalResponses > 0 {
		summary.CompletionRate = float64(summary.Completed) / float64(summary.TotalResponses)
	}

	for i := range q.Questions {
		summary.Questions = append(summary.Questions, questionStats(&q.Questions[i], responses))
	}
	return summary
}

// questionStats aggregates one question across all responses
func questionStats(q *models.Question, responses []models.Response) QuestionStats {
	stats := QuestionStats{QuestionID: q.ID}

	var nums []float64
	isChoice := q.Type == models.TypeSingleChoice || q.Type == models.TypeMultipleChoice
	if isChoice {
		stats.Distribution = make(map[string]int)
	}

	for _, r := range responses {
		v, ok := r.Answers[q.ID]
		if !ok || models.IsEmptyAnswer(v) {
			continue
		}
		stats.Answered++

		switch q.Type {
		case models.TypeNumber, models.TypeRating:
			if n, ok := funcs.Number(v); ok {
				nums = append(nums, n)
			}
		case models.TypeSingleChoice:
			stats.Distribution[fmt.Sprintf("%v", v)]++
		case models.TypeMultipleChoice:
			for _, item := range toSlice(v) {
				stats.Distribution[item]++
			}
		}
	}

	if len(responses) > 0 {
		stats.AnswerRate = float64(stats.Answered) / float64(len(responses))
	}

	if len(nums) > 0 {
		sort.Float64s(nums)
		stats.Min = nums[0]
		stats.Max = nums[len(nums)-1]
		total := 0.0
		for _, n := range nums {
			total += n
		}
		stats.Mean = total / float64(len(nums))
	}

	return stats
}

// toSlice flattens a stored multi-choice answer (JSON round-trips slices as
// []any) to strings
func toSlice(v any) []string {
	switch items := v.(type) {
	case []string:
		return items
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	default:
		return nil
	}
}
