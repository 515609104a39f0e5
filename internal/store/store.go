// Package store persists questionnaires and responses in SQLite.
package store

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/themobileprof/formpilot/pkg/models"
)

//go:embed migration.sql
var migrationSQL string

// Store wraps the SQLite database connection
type Store struct {
	conn *sql.DB
	path string
}

// New opens (creating if needed) the database at dbPath and runs migrations
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	s := &Store{conn: conn, path: dbPath}
	if err := s.Migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

// Migrate runs database migrations
func (s *Store) Migrate() error {
	if _, err := s.conn.Exec(migrationSQL); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Conn returns the underlying connection for advanced operations
func (s *Store) Conn() *sql.DB {
	return s.conn
}

// ImportQuestionnaire inserts or updates a questionnaire definition. The
// definition is stored as JSON alongside a few queryable columns.
func (s *Store) ImportQuestionnaire(q *models.Questionnaire) error {
	jsonContent, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("failed to marshal questionnaire: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO questionnaires (id, version, title, description, question_count, json_content)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			version = ?,
			title = ?,
			description = ?,
			question_count = ?,
			json_content = ?,
			updated_at = strftime('%s', 'now')
	`,
		q.ID, q.Version, q.Title, q.Description, len(q.Questions), string(jsonContent),
		q.Version, q.Title, q.Description, len(q.Questions), string(jsonContent),
	)
	if err != nil {
		return fmt.Errorf("failed to insert questionnaire: %w", err)
	}
	return nil
}

// GetQuestionnaire retrieves a questionnaire by id
func (s *Store) GetQuestionnaire(id string) (*models.Questionnaire, error) {
	var jsonContent string
	err := s.conn.QueryRow("SELECT json_content FROM questionnaires WHERE id = ?", id).Scan(&jsonContent)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("questionnaire not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query questionnaire: %w", err)
	}

	var q models.Questionnaire
	if err := json.Unmarshal([]byte(jsonContent), &q); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questionnaire: %w", err)
	}
	return &q, nil
}

// QuestionnaireInfo is a listing row without the full definition
type QuestionnaireInfo struct {
	ID            string
	Version       string
	Title         string
	Description   string
	QuestionCount int
}

// ListQuestionnaires returns every stored questionnaire, ordered by title
func (s *Store) ListQuestionnaires() ([]QuestionnaireInfo, error) {
	rows, err := s.conn.Query(`
		SELECT id, version, title, description, question_count
		FROM questionnaires
		ORDER BY title
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questionnaires: %w", err)
	}
	defer rows.Close()

	var infos []QuestionnaireInfo
	for rows.Next() {
		var info QuestionnaireInfo
		if err := rows.Scan(&info.ID, &info.Version, &info.Title, &info.Description, &info.QuestionCount); err != nil {
			return nil, fmt.Errorf("failed to scan questionnaire: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// SaveResponse persists a finished (or abandoned) response
func (s *Store) SaveResponse(r *models.Response) error {
	answersJSON, err := json.Marshal(r.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO responses (id, questionnaire_id, questionnaire_version, session_id, answers_json, status, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.QuestionnaireID, r.QuestionnaireVersion, r.SessionID,
		string(answersJSON), r.Status, r.StartedAt.Unix(), r.FinishedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}
	return nil
}

// GetResponse retrieves a response by id
func (s *Store) GetResponse(id string) (*models.Response, error) {
	row := s.conn.QueryRow(`
		SELECT id, questionnaire_id, questionnaire_version, session_id, answers_json, status, started_at, finished_at
		FROM responses WHERE id = ?
	`, id)

	r, err := scanResponse(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("response not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query response: %w", err)
	}
	return r, nil
}

// ListResponses returns every response recorded for a questionnaire
func (s *Store) ListResponses(questionnaireID string) ([]models.Response, error) {
	rows, err := s.conn.Query(`
		SELECT id, questionnaire_id, questionnaire_version, session_id, answers_json, status, started_at, finished_at
		FROM responses WHERE questionnaire_id = ?
		ORDER BY finished_at
	`, questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	var responses []models.Response
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, *r)
	}
	return responses, rows.Err()
}

// scanner covers *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanResponse(row scanner) (*models.Response, error) {
	var r models.Response
	var answersJSON string
	var startedAt, finishedAt int64
	err := row.Scan(&r.ID, &r.QuestionnaireID, &r.QuestionnaireVersion, &r.SessionID,
		&answersJSON, &r.Status, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(answersJSON), &r.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	r.StartedAt = time.Unix(startedAt, 0)
	r.FinishedAt = time.Unix(finishedAt, 0)
	return &r, nil
}

// LogEvent records a session event (started, answered, back, completed,
// abandoned) for auditing
func (s *Store) LogEvent(sessionID, questionnaireID, event, questionID string) error {
	_, err := s.conn.Exec(`
		INSERT INTO session_events (session_id, questionnaire_id, event, question_id)
		VALUES (?, ?, ?, ?)
	`, sessionID, questionnaireID, event, questionID)
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// GetSetting retrieves a setting value; missing keys return an empty string
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting updates or inserts a setting
func (s *Store) SetSetting(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = strftime('%s', 'now')
	`, key, value, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
