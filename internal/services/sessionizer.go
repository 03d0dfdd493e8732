package services

import (
	"sort"
	"time"

	"github.com/surveyguy/analytics/internal/models"
)

// AnsweredAt is one (question, time) pair inside a session.
type AnsweredAt struct {
	QuestionID string
	At         time.Time
}

// Session is one respondent's reconstructed attempt at a survey. Sessions
// are discovered from events sharing a session token; a session with zero
// events cannot exist.
type Session struct {
	ID        string
	SurveyID  string
	Answered  map[string]struct{}
	Events    []AnsweredAt // sorted by time
	First     time.Time
	Last      time.Time
	UserAgent string
	Location  *models.GeoLocation
	Completed bool
}

// Sessionize groups events by session token and evaluates completion
// against the current active-question count. A session that was complete
// when submitted can retroactively become incomplete after questions are
// added, and vice versa: completion always tracks the live question set.
//
// The result is independent of input event order.
func Sessionize(events []models.AnswerEvent, activeQuestionCount int) []Session {
	sorted := make([]models.AnswerEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		if sorted[i].SessionID != sorted[j].SessionID {
			return sorted[i].SessionID < sorted[j].SessionID
		}
		return sorted[i].QuestionID < sorted[j].QuestionID
	})

	byID := map[string]*Session{}
	order := []string{}
	for _, ev := range sorted {
		if ev.SessionID == "" {
			continue
		}
		s, ok := byID[ev.SessionID]
		if !ok {
			s = &Session{
				ID:       ev.SessionID,
				SurveyID: ev.SurveyID,
				Answered: map[string]struct{}{},
				First:    ev.CreatedAt,
			}
			byID[ev.SessionID] = s
			order = append(order, ev.SessionID)
		}
		if ev.SurveyID != s.SurveyID {
			continue
		}
		s.Answered[ev.QuestionID] = struct{}{}
		s.Events = append(s.Events, AnsweredAt{QuestionID: ev.QuestionID, At: ev.CreatedAt})
		s.Last = ev.CreatedAt
		if s.UserAgent == "" {
			s.UserAgent = ev.Metadata.UserAgent
		}
		if s.Location == nil && ev.Metadata.Location != nil {
			loc := *ev.Metadata.Location
			s.Location = &loc
		}
	}

	out := make([]Session, 0, len(order))
	for _, id := range order {
		s := byID[id]
		s.Completed = len(s.Answered) == activeQuestionCount
		out = append(out, *s)
	}
	return out
}
