package models

import (
	"encoding/json"
	"time"
)

// GeoLocation is the best-effort location resolved from the respondent's IP
// at submission time. Any field may be empty when resolution failed.
type GeoLocation struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
}

// ClientMetadata captures the submission context recorded alongside each
// answer event.
type ClientMetadata struct {
	UserAgent      string       `json:"userAgent"`
	IPAddress      string       `json:"ipAddress"`
	Referrer       string       `json:"referrer"`
	AcceptLanguage string       `json:"language"`
	Timezone       string       `json:"timezone"`
	Location       *GeoLocation `json:"location,omitempty"`
}

// AnswerEvent is one respondent's answer to one question. Events are
// append-only history: nothing in this module updates or deletes them.
type AnswerEvent struct {
	SurveyID   string
	QuestionID string
	SessionID  string
	Answer     json.RawMessage
	Metadata   ClientMetadata
	CreatedAt  time.Time
}

// Question types recognized by the analytics engine.
const (
	QuestionEmojiScale     = "emoji_scale"
	QuestionLikertScale    = "likert_scale"
	QuestionMultipleChoice = "multiple_choice"
	QuestionText           = "text"
)

// QuestionOption is one selectable option of a scale or choice question.
type QuestionOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji,omitempty"`
}

// Question describes one survey question. Soft-deleted questions carry
// IsActive=false and are excluded from completion denominators.
type Question struct {
	ID         string
	SurveyID   string
	Type       string
	Title      string
	Options    []QuestionOption
	OrderIndex int
	IsActive   bool
}

// IsScale reports whether the question type carries numeric option values
// suitable for averaging.
func (q Question) IsScale() bool {
	return q.Type == QuestionEmojiScale || q.Type == QuestionLikertScale
}

// MaxOptionValue returns the largest defined option value, or 0 when the
// question has no options.
func (q Question) MaxOptionValue() int {
	max := 0
	for _, o := range q.Options {
		if o.Value > max {
			max = o.Value
		}
	}
	return max
}

// Survey is the descriptor used for report labeling.
type Survey struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
