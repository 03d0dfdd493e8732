package db

import (
	"database/sql"
	"encoding/json"
	"io"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/surveyguy/analytics/internal/models"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := RunMigrations(conn, ""); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store, err := NewSQLiteStore(conn, logger)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSurveyRoundTrip(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	sv := &models.Survey{ID: "sv1", Title: "Feedback", Description: "demo", CreatedAt: now, UpdatedAt: now}
	if err := store.CreateSurvey(sv); err != nil {
		t.Fatalf("create survey: %v", err)
	}

	got, err := store.GetSurvey("sv1")
	if err != nil {
		t.Fatalf("get survey: %v", err)
	}
	if got == nil || got.Title != "Feedback" || got.Description != "demo" {
		t.Fatalf("wrong survey: %+v", got)
	}

	missing, err := store.GetSurvey("nope")
	if err != nil || missing != nil {
		t.Fatalf("missing survey should be nil without error: %v %+v", err, missing)
	}
}

func TestQuestionsExcludeSoftDeleted(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if err := store.CreateSurvey(&models.Survey{ID: "sv1", Title: "T", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create survey: %v", err)
	}

	q1 := &models.Question{ID: "q1", SurveyID: "sv1", Type: models.QuestionEmojiScale, Title: "Rate", OrderIndex: 1, IsActive: true,
		Options: []models.QuestionOption{{Value: 1, Label: "Bad"}, {Value: 5, Label: "Great", Emoji: "😍"}}}
	q2 := &models.Question{ID: "q2", SurveyID: "sv1", Type: models.QuestionText, Title: "Why", OrderIndex: 0, IsActive: true}
	for _, q := range []*models.Question{q1, q2} {
		if err := store.CreateQuestion(q); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	qs, err := store.ListActiveQuestions("sv1")
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(qs) != 2 || qs[0].ID != "q2" || qs[1].ID != "q1" {
		t.Fatalf("expected order_index ordering, got %+v", qs)
	}
	if len(qs[1].Options) != 2 || qs[1].Options[1].Emoji != "😍" {
		t.Fatalf("options lost in round trip: %+v", qs[1].Options)
	}

	if err := store.SoftDeleteQuestion("q1"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	qs, err = store.ListActiveQuestions("sv1")
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(qs) != 1 || qs[0].ID != "q2" {
		t.Fatalf("soft-deleted question still listed: %+v", qs)
	}
}

func TestAnswerEventsSinceFilter(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	if err := store.CreateSurvey(&models.Survey{ID: "sv1", Title: "T", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("create survey: %v", err)
	}

	old := &models.AnswerEvent{
		SurveyID: "sv1", QuestionID: "q1", SessionID: "s1",
		Answer: json.RawMessage(`3`), CreatedAt: now.AddDate(0, 0, -30),
	}
	recent := &models.AnswerEvent{
		SurveyID: "sv1", QuestionID: "q1", SessionID: "s2",
		Answer:    json.RawMessage(`5`),
		Metadata:  models.ClientMetadata{UserAgent: "Chrome", Location: &models.GeoLocation{Country: "Japan", City: "Tokyo"}},
		CreatedAt: now.AddDate(0, 0, -1),
	}
	for _, ev := range []*models.AnswerEvent{old, recent} {
		if err := store.InsertAnswerEvent(ev); err != nil {
			t.Fatalf("insert event: %v", err)
		}
	}

	all, err := store.ListAnswerEvents("sv1", time.Time{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
	if all[0].SessionID != "s1" {
		t.Fatalf("expected oldest first, got %+v", all[0])
	}
	if all[1].Metadata.Location == nil || all[1].Metadata.Location.City != "Tokyo" {
		t.Fatalf("metadata lost in round trip: %+v", all[1].Metadata)
	}
	if string(all[1].Answer) != `5` {
		t.Fatalf("answer payload lost: %s", all[1].Answer)
	}

	windowed, err := store.ListAnswerEvents("sv1", now.AddDate(0, 0, -7))
	if err != nil {
		t.Fatalf("list windowed: %v", err)
	}
	if len(windowed) != 1 || windowed[0].SessionID != "s2" {
		t.Fatalf("window filter wrong: %+v", windowed)
	}
}

func TestSeedProducesComputableSurvey(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	surveyID, err := store.Seed(now)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	sv, err := store.GetSurvey(surveyID)
	if err != nil || sv == nil {
		t.Fatalf("seeded survey missing: %v", err)
	}
	qs, err := store.ListActiveQuestions(surveyID)
	if err != nil || len(qs) != 3 {
		t.Fatalf("expected 3 seeded questions: %v %d", err, len(qs))
	}
	events, err := store.ListAnswerEvents(surveyID, time.Time{})
	if err != nil || len(events) == 0 {
		t.Fatalf("expected seeded events: %v %d", err, len(events))
	}
}
