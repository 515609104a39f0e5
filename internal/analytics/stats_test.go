package analytics

import (
	"testing"

	"github.com/themobileprof/formpilot/pkg/models"
)

func statsQuestionnaire() *models.Questionnaire {
	return &models.Questionnaire{
		ID: "org.test.stats", Version: "1.0", Title: "Stats",
		Questions: []models.Question{
			{ID: "rating", Type: models.TypeRating, Text: "Rate us"},
			{ID: "channel", Type: models.TypeSingleChoice, Text: "How did you hear?",
				Options: []models.Option{{Value: "web"}, {Value: "friend"}}},
			{ID: "features", Type: models.TypeMultipleChoice, Text: "Which features?",
				Options: []models.Option{{Value: "a"}, {Value: "b"}, {Value: "c"}}},
			{ID: "comment", Type: models.TypeText, Text: "Anything else?"},
		},
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(statsQuestionnaire(), nil)
	if summary.TotalResponses != 0 || summary.CompletionRate != 0 {
		t.Errorf("Expected zeroed summary, got %+v", summary)
	}
	if len(summary.Questions) != 4 {
		t.Errorf("Expected stats entry per question, got %d", len(summary.Questions))
	}
}

func TestSummarizeCounts(t *testing.T) {
	responses := []models.Response{
		{Status: models.StatusCompleted, Answers: map[string]any{
			"rating": 4.0, "channel": "web", "features": []any{"a", "b"},
		}},
		{Status: models.StatusCompleted, Answers: map[string]any{
			"rating": 2.0, "channel": "web", "features": []any{"a"}, "comment": "fine",
		}},
		{Status: models.StatusAbandoned, Answers: map[string]any{
			"rating": 5.0,
		}},
	}

	summary := Summarize(statsQuestionnaire(), responses)
	if summary.TotalResponses != 3 || summary.Completed != 2 || summary.Abandoned != 1 {
		t.Errorf("Unexpected totals: %+v", summary)
	}
	if summary.CompletionRate < 0.66 || summary.CompletionRate > 0.67 {
		t.Errorf("Expected completion rate ~0.67, got %f", summary.CompletionRate)
	}

	rating := summary.Questions[0]
	if rating.Answered != 3 {
		t.Errorf("Expected 3 rating answers, got %d", rating.Answered)
	}
	if rating.Min != 2 || rating.Max != 5 {
		t.Errorf("Expected min 2 max 5, got %f %f", rating.Min, rating.Max)
	}
	if rating.Mean < 3.66 || rating.Mean > 3.67 {
		t.Errorf("Expected mean ~3.67, got %f", rating.Mean)
	}

	channel := summary.Questions[1]
	if channel.Distribution["web"] != 2 {
		t.Errorf("Expected web counted twice, got %+v", channel.Distribution)
	}

	features := summary.Questions[2]
	if features.Distribution["a"] != 2 || features.Distribution["b"] != 1 {
		t.Errorf("Unexpected multi-choice distribution: %+v", features.Distribution)
	}

	comment := summary.Questions[3]
	if comment.Answered != 1 {
		t.Errorf("Expected 1 comment answer, got %d", comment.Answered)
	}
	if comment.AnswerRate < 0.33 || comment.AnswerRate > 0.34 {
		t.Errorf("Expected answer rate ~0.33, got %f", comment.AnswerRate)
	}
}

func TestSummarizeSkipsEmptyAnswers(t *testing.T) {
	responses := []models.Response{
		{Status: models.StatusCompleted, Answers: map[string]any{
			"comment": "", "features": []any{},
		}},
	}
	summary := Summarize(statsQuestionnaire(), responses)
	if summary.Questions[2].Answered != 0 || summary.Questions[3].Answered != 0 {
		t.Errorf("Expected empty answers to be skipped: %+v", summary.Questions)
	}
}
