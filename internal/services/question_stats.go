package services

import (
	"sort"

	"github.com/surveyguy/analytics/internal/models"
)

// QuestionCompletion reports how many distinct sessions answered one
// question and the share of all sessions that did.
type QuestionCompletion struct {
	QuestionID     string  `json:"question_id"`
	Question       string  `json:"question"`
	Responses      int     `json:"responses"`
	CompletionRate float64 `json:"completion_rate"`
}

// QuestionDifficulty is the same number with a difficulty label attached,
// presented in ascending completion order.
type QuestionDifficulty struct {
	QuestionID     string  `json:"question_id"`
	Question       string  `json:"question"`
	CompletionRate float64 `json:"completion_rate"`
	Difficulty     string  `json:"difficulty"`
}

// DifficultyLabel is a total function of the completion rate: the bands
// meet exactly at 80 and 60 with no gap or overlap.
func DifficultyLabel(rate float64) string {
	switch {
	case rate >= 80:
		return "Easy"
	case rate >= 60:
		return "Medium"
	default:
		return "Hard"
	}
}

// CalculateQuestionCompletion computes per-question respondent counts in
// survey order. The denominator is the number of distinct sessions across
// the whole survey; 0 sessions yields 0 rates.
func CalculateQuestionCompletion(questions []models.Question, sessions []Session) []QuestionCompletion {
	total := len(sessions)
	out := make([]QuestionCompletion, 0, len(questions))
	for _, q := range questions {
		n := 0
		for _, s := range sessions {
			if _, ok := s.Answered[q.ID]; ok {
				n++
			}
		}
		rate := 0.0
		if total > 0 {
			rate = round2(float64(n) / float64(total) * 100)
		}
		out = append(out, QuestionCompletion{
			QuestionID:     q.ID,
			Question:       q.Title,
			Responses:      n,
			CompletionRate: rate,
		})
	}
	return out
}

// CalculateQuestionDifficulty relabels the completion numbers with
// difficulty bands, hardest first.
func CalculateQuestionDifficulty(completion []QuestionCompletion) []QuestionDifficulty {
	out := make([]QuestionDifficulty, 0, len(completion))
	for _, qc := range completion {
		out = append(out, QuestionDifficulty{
			QuestionID:     qc.QuestionID,
			Question:       qc.Question,
			CompletionRate: qc.CompletionRate,
			Difficulty:     DifficultyLabel(qc.CompletionRate),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletionRate < out[j].CompletionRate })
	return out
}
