package models

import "time"

// Response status values persisted with each response
const (
	StatusCompleted = "completed"
	StatusAbandoned = "abandoned"
)

// Response represents one finished (or abandoned) questionnaire session
type Response struct {
	ID                   string         `json:"id"`
	QuestionnaireID      string         `json:"questionnaire_id"`
	QuestionnaireVersion string         `json:"questionnaire_version"`
	SessionID            string         `json:"session_id"`
	Answers              map[string]any `json:"answers"`
	Status               string         `json:"status"`
	StartedAt            time.Time      `json:"started_at"`
	FinishedAt           time.Time      `json:"finished_at"`
}
