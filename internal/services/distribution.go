package services

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/surveyguy/analytics/internal/models"
)

// OptionBucket is the respondent count for one defined option of a scale or
// choice question. Percentage is relative to answers for this question, not
// to all sessions.
type OptionBucket struct {
	Value      int     `json:"value"`
	Label      string  `json:"label"`
	Emoji      string  `json:"emoji,omitempty"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TextAnswer is one verbatim free-text response.
type TextAnswer struct {
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"timestamp"`
}

// QuestionStats is the per-question answer breakdown: option distribution
// for scale and choice questions, plus average and satisfaction index for
// scale questions, or the verbatim answer list for text questions.
type QuestionStats struct {
	QuestionID        string         `json:"question_id"`
	Question          string         `json:"question"`
	Type              string         `json:"type"`
	Total             int            `json:"total"`
	Distribution      []OptionBucket `json:"distribution,omitempty"`
	Average           float64        `json:"average,omitempty"`
	SatisfactionIndex int            `json:"satisfaction_index,omitempty"`
	TextAnswers       []TextAnswer   `json:"text_responses,omitempty"`
}

// CalculateQuestionStats builds the distribution for every active question
// in survey order. Answers that fail to resolve against the question's
// defined options are excluded from that question's numbers but have no
// effect anywhere else.
func CalculateQuestionStats(questions []models.Question, events []models.AnswerEvent) []QuestionStats {
	byQuestion := map[string][]models.AnswerEvent{}
	for _, ev := range events {
		byQuestion[ev.QuestionID] = append(byQuestion[ev.QuestionID], ev)
	}

	out := make([]QuestionStats, 0, len(questions))
	for _, q := range questions {
		answers := byQuestion[q.ID]
		switch {
		case q.Type == models.QuestionText:
			out = append(out, textStats(q, answers))
		case q.IsScale():
			out = append(out, scaleStats(q, answers))
		default:
			out = append(out, choiceStats(q, answers))
		}
	}
	return out
}

func scaleStats(q models.Question, answers []models.AnswerEvent) QuestionStats {
	st := QuestionStats{QuestionID: q.ID, Question: q.Title, Type: q.Type}
	buckets, index := optionBuckets(q)

	var sum float64
	for _, ev := range answers {
		n, ok := ParseAnswer(ev.Answer).NumericValue()
		if !ok {
			continue
		}
		i, defined := index[strconv.Itoa(int(n))]
		if !defined || float64(int(n)) != n {
			continue
		}
		buckets[i].Count++
		st.Total++
		sum += n
	}
	finishPercentages(buckets, st.Total)
	st.Distribution = buckets
	if st.Total > 0 {
		st.Average = round2(sum / float64(st.Total))
		if max := q.MaxOptionValue(); max > 0 {
			st.SatisfactionIndex = int(math.Round(st.Average / float64(max) * 100))
		}
	}
	return st
}

func choiceStats(q models.Question, answers []models.AnswerEvent) QuestionStats {
	st := QuestionStats{QuestionID: q.ID, Question: q.Title, Type: q.Type}
	buckets, index := optionBuckets(q)

	count := func(key string) {
		if i, ok := index[key]; ok {
			buckets[i].Count++
			st.Total++
		}
	}
	for _, ev := range answers {
		v := ParseAnswer(ev.Answer)
		switch v.Kind {
		case AnswerText:
			count(v.Text)
		case AnswerNumeric:
			count(strconv.FormatFloat(v.Number, 'f', -1, 64))
		case AnswerStructured:
			// multi-choice submissions arrive as arrays of selections
			for _, sel := range v.List {
				count(sel)
			}
		}
	}
	finishPercentages(buckets, st.Total)
	st.Distribution = buckets
	return st
}

func textStats(q models.Question, answers []models.AnswerEvent) QuestionStats {
	st := QuestionStats{QuestionID: q.ID, Question: q.Title, Type: q.Type}
	for _, ev := range answers {
		v := ParseAnswer(ev.Answer)
		if v.Kind != AnswerText || v.Text == "" {
			continue
		}
		st.TextAnswers = append(st.TextAnswers, TextAnswer{Text: v.Text, SubmittedAt: ev.CreatedAt})
		st.Total++
	}
	// newest first, matching the read-through display order
	sort.SliceStable(st.TextAnswers, func(i, j int) bool {
		return st.TextAnswers[i].SubmittedAt.After(st.TextAnswers[j].SubmittedAt)
	})
	return st
}

// optionBuckets seeds one bucket per defined option, indexed by both the
// option's numeric value and its label so scalar answers of either shape
// resolve to the same bucket.
func optionBuckets(q models.Question) ([]OptionBucket, map[string]int) {
	buckets := make([]OptionBucket, 0, len(q.Options))
	index := map[string]int{}
	for _, o := range q.Options {
		buckets = append(buckets, OptionBucket{Value: o.Value, Label: o.Label, Emoji: o.Emoji})
		i := len(buckets) - 1
		index[strconv.Itoa(o.Value)] = i
		if o.Label != "" {
			if _, taken := index[o.Label]; !taken {
				index[o.Label] = i
			}
		}
	}
	return buckets, index
}

func finishPercentages(buckets []OptionBucket, total int) {
	if total == 0 {
		return
	}
	for i := range buckets {
		buckets[i].Percentage = round2(float64(buckets[i].Count) / float64(total) * 100)
	}
}
