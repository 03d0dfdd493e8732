package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/surveyguy/analytics/internal/models"
	"github.com/surveyguy/analytics/internal/services"
)

var _ services.EventSource = (*SQLiteStore)(nil)

// SQLiteStore reads and writes survey data through database/sql. It backs
// the analytics engine's event source and the seed/ingest paths.
type SQLiteStore struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewSQLiteStore(db *sql.DB, logger *logrus.Logger) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// GetSurvey returns nil without error when the survey does not exist.
func (s *SQLiteStore) GetSurvey(surveyID string) (*models.Survey, error) {
	row := s.db.QueryRow(
		`SELECT id, title, description, created_at, updated_at FROM surveys WHERE id = ?`,
		surveyID,
	)
	var sv models.Survey
	var desc sql.NullString
	if err := row.Scan(&sv.ID, &sv.Title, &desc, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get survey: %w", err)
	}
	sv.Description = desc.String
	return &sv, nil
}

// ListActiveQuestions returns the survey's live questions in display order.
// Soft-deleted questions are excluded.
func (s *SQLiteStore) ListActiveQuestions(surveyID string) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, survey_id, type, title, options, order_index, is_active
		 FROM questions
		 WHERE survey_id = ? AND is_deleted = 0
		 ORDER BY order_index ASC, id ASC`,
		surveyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		var q models.Question
		var opts sql.NullString
		var active int64
		if err := rows.Scan(&q.ID, &q.SurveyID, &q.Type, &q.Title, &opts, &q.OrderIndex, &active); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.IsActive = active != 0
		q.Options = s.decodeOptions(q.ID, opts)
		out = append(out, q)
	}
	return out, rows.Err()
}

// ListAnswerEvents returns all answer events of the survey at or after
// since, oldest first. A zero since means no lower bound.
func (s *SQLiteStore) ListAnswerEvents(surveyID string, since time.Time) ([]models.AnswerEvent, error) {
	query := `SELECT survey_id, question_id, session_id, answer, metadata, created_at
	 FROM responses WHERE survey_id = ?`
	args := []any{surveyID}
	if !since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, since)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list answer events: %w", err)
	}
	defer rows.Close()

	var out []models.AnswerEvent
	for rows.Next() {
		var ev models.AnswerEvent
		var answer, meta sql.NullString
		if err := rows.Scan(&ev.SurveyID, &ev.QuestionID, &ev.SessionID, &answer, &meta, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		if answer.Valid {
			ev.Answer = json.RawMessage(answer.String)
		}
		ev.Metadata = s.decodeMetadata(ev.SessionID, meta)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CreateSurvey(sv *models.Survey) error {
	_, err := s.db.Exec(
		`INSERT INTO surveys (id, title, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		sv.ID, sv.Title, toNullString(sv.Description), sv.CreatedAt, sv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create survey: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateQuestion(q *models.Question) error {
	opts, err := encodeJSON(q.Options)
	if err != nil {
		return fmt.Errorf("encode question options: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO questions (id, survey_id, type, title, options, order_index, is_active, is_deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0)`,
		q.ID, q.SurveyID, q.Type, q.Title, opts, q.OrderIndex, boolToInt64(q.IsActive),
	)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// SoftDeleteQuestion marks a question deleted without touching its past
// answer events.
func (s *SQLiteStore) SoftDeleteQuestion(questionID string) error {
	_, err := s.db.Exec(`UPDATE questions SET is_deleted = 1, is_active = 0 WHERE id = ?`, questionID)
	if err != nil {
		return fmt.Errorf("soft delete question: %w", err)
	}
	return nil
}

func (s *SQLiteStore) InsertAnswerEvent(ev *models.AnswerEvent) error {
	meta, err := encodeJSON(ev.Metadata)
	if err != nil {
		return fmt.Errorf("encode event metadata: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO responses (survey_id, question_id, session_id, answer, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		ev.SurveyID, ev.QuestionID, ev.SessionID, string(ev.Answer), meta, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert answer event: %w", err)
	}
	return nil
}

// decodeOptions tolerates malformed option JSON: the question survives with
// no options and the corruption is logged.
func (s *SQLiteStore) decodeOptions(questionID string, ns sql.NullString) []models.QuestionOption {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out []models.QuestionOption
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		s.logger.WithField("question_id", questionID).Warnf("decode question options: %v", err)
		return nil
	}
	return out
}

func (s *SQLiteStore) decodeMetadata(sessionID string, ns sql.NullString) models.ClientMetadata {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return models.ClientMetadata{}
	}
	var out models.ClientMetadata
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		s.logger.WithField("session_id", sessionID).Warnf("decode event metadata: %v", err)
		return models.ClientMetadata{}
	}
	return out
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func encodeJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
