package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/surveyguy/analytics/internal/models"
)

// Seed inserts a demo survey with a spread of sessions so a fresh install
// has something to chart. Returns the survey ID. Safe to call once per
// database; duplicate seeding fails on the primary key.
func (s *SQLiteStore) Seed(now time.Time) (string, error) {
	surveyID := uuid.NewString()
	sv := &models.Survey{
		ID:          surveyID,
		Title:       "Customer Feedback",
		Description: "Demo survey for analytics exploration",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.CreateSurvey(sv); err != nil {
		return "", err
	}

	questions := []*models.Question{
		{
			ID: uuid.NewString(), SurveyID: surveyID, Type: models.QuestionEmojiScale,
			Title: "How satisfied are you with our service?", OrderIndex: 0, IsActive: true,
			Options: []models.QuestionOption{
				{Value: 1, Label: "Very Unsatisfied", Emoji: "😠"},
				{Value: 2, Label: "Unsatisfied", Emoji: "🙁"},
				{Value: 3, Label: "Neutral", Emoji: "😐"},
				{Value: 4, Label: "Satisfied", Emoji: "🙂"},
				{Value: 5, Label: "Very Satisfied", Emoji: "😍"},
			},
		},
		{
			ID: uuid.NewString(), SurveyID: surveyID, Type: models.QuestionMultipleChoice,
			Title: "How did you hear about us?", OrderIndex: 1, IsActive: true,
			Options: []models.QuestionOption{
				{Value: 1, Label: "Search engine"},
				{Value: 2, Label: "Social media"},
				{Value: 3, Label: "Friend or colleague"},
				{Value: 4, Label: "Advertisement"},
			},
		},
		{
			ID: uuid.NewString(), SurveyID: surveyID, Type: models.QuestionText,
			Title: "What could we improve?", OrderIndex: 2, IsActive: true,
		},
	}
	for _, q := range questions {
		if err := s.CreateQuestion(q); err != nil {
			return "", err
		}
	}

	type seedSession struct {
		ua      string
		country string
		city    string
		answers []string // raw JSON per question, "" skips the question
		start   time.Duration
		gap     time.Duration
	}
	sessions := []seedSession{
		{"Mozilla/5.0 (Windows NT 10.0) Chrome/126.0", "United States", "Seattle", []string{`5`, `"Search engine"`, `"Faster support replies"`}, -26 * time.Hour, 25 * time.Second},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile Safari/605.1", "United States", "Portland", []string{`4`, `"Social media"`, `"Love it"`}, -20 * time.Hour, 40 * time.Second},
		{"Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0", "Germany", "Berlin", []string{`3`, `"Friend or colleague"`, ``}, -50 * time.Hour, 70 * time.Second},
		{"Mozilla/5.0 (iPad; CPU OS 17_0) Safari/605.1", "", "", []string{`2`, ``, ``}, -80 * time.Hour, 0},
		{"Mozilla/5.0 (Windows NT 10.0) Edge/126.0", "United Kingdom", "London", []string{`4`, `"Advertisement"`, `"More payment options"`}, -5 * 24 * time.Hour, 95 * time.Second},
	}

	for _, ss := range sessions {
		sessionID := uuid.NewString()
		at := now.Add(ss.start)
		for i, raw := range ss.answers {
			if raw == "" || i >= len(questions) {
				continue
			}
			ev := &models.AnswerEvent{
				SurveyID:   surveyID,
				QuestionID: questions[i].ID,
				SessionID:  sessionID,
				Answer:     json.RawMessage(raw),
				Metadata: models.ClientMetadata{
					UserAgent: ss.ua,
					Location:  &models.GeoLocation{Country: ss.country, City: ss.city},
				},
				CreatedAt: at,
			}
			if err := s.InsertAnswerEvent(ev); err != nil {
				return "", fmt.Errorf("seed event: %w", err)
			}
			at = at.Add(ss.gap)
		}
	}
	return surveyID, nil
}
