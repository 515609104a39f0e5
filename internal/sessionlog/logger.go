// Package sessionlog writes one JSONL record per questionnaire session for
// offline inspection. Records are appended as sessions end; storage proper
// lives in internal/store.
package sessionlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is one step recorded during a session
type Event struct {
	Type       string    `json:"type"` // started, answered, back, completed, abandoned
	QuestionID string    `json:"question_id,omitempty"`
	At         time.Time `json:"at"`
}

// Record is the JSONL line written per session
type Record struct {
	SessionID       string    `json:"session_id"`
	QuestionnaireID string    `json:"questionnaire_id"`
	StartedAt       time.Time `json:"started_at"`
	Events          []Event   `json:"events"`
	Status          string    `json:"status,omitempty"`
}

// Logger accumulates events for one session at a time and appends the
// finished record to a JSONL file. Construct one per log path; there is no
// process-wide instance.
type Logger struct {
	mu      sync.Mutex
	current *Record
	path    string
}

// New creates a logger writing to the given file path
func New(path string) *Logger {
	return &Logger{path: path}
}

// Begin starts accumulating events for a session
func (l *Logger) Begin(sessionID, questionnaireID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.current = &Record{
		SessionID:       sessionID,
		QuestionnaireID: questionnaireID,
		StartedAt:       time.Now(),
		Events:          make([]Event, 0),
	}
}

// Add records an event for the current session; a no-op when no session is
// being logged
func (l *Logger) Add(eventType, questionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}
	l.current.Events = append(l.current.Events, Event{
		Type:       eventType,
		QuestionID: questionID,
		At:         time.Now(),
	})
}

// End finalizes the record with the session status and appends it to the
// log file. Write failures are reported as a warning, not an error: logging
// must never break a session.
func (l *Logger) End(status string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}
	l.current.Status = status

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create log directory: %v\n", err)
		l.current = nil
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write session log: %v\n", err)
		l.current = nil
		return
	}
	defer f.Close()

	data, _ := json.Marshal(l.current)
	f.Write(data)
	f.WriteString("\n")

	l.current = nil
}
