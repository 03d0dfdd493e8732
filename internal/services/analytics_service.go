package services

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/surveyguy/analytics/internal/models"
)

// EventSource is the read-only contract to the event store. The analytics
// engine owns no persisted state: it reads answer events and the active
// question set, and writes nothing back.
type EventSource interface {
	ListAnswerEvents(surveyID string, since time.Time) ([]models.AnswerEvent, error)
	ListActiveQuestions(surveyID string) ([]models.Question, error)
	GetSurvey(surveyID string) (*models.Survey, error)
}

// Snapshot is one immutable, fully-computed analytics result for a survey
// and date range. Every numeric field is sanitized: consumers never see
// NaN, Inf, or null where a number belongs.
type Snapshot struct {
	SurveyID           string               `json:"survey_id"`
	Range              DateRange            `json:"date_range"`
	GeneratedAt        time.Time            `json:"generated_at"`
	Completion         CompletionStats      `json:"completion"`
	Devices            []DeviceCount        `json:"device_analytics"`
	Browsers           []BrowserCount       `json:"browser_analytics"`
	Hourly             []HourBucket         `json:"hourly_distribution"`
	Weekly             []DayBucket          `json:"weekly_patterns"`
	QuestionCompletion []QuestionCompletion `json:"question_completion"`
	QuestionDifficulty []QuestionDifficulty `json:"question_difficulty"`
	ResponseTimes      ResponseTimeStats    `json:"response_time_analysis"`
	Locations          []LocationCount      `json:"location_analytics"`
	EngagementScore    float64              `json:"engagement_score"`
	Questions          []QuestionStats      `json:"questions"`

	// Degraded names calculators that failed for this snapshot; their
	// sections hold zero values. Distinguishes failure from zero data.
	Degraded []string `json:"degraded,omitempty"`
}

// AnalyticsService recomputes snapshots from raw events on every request.
// There is no cache: recomputation is the only source of truth.
type AnalyticsService struct {
	source EventSource
	logger *logrus.Logger
	now    func() time.Time
}

func NewAnalyticsService(source EventSource, logger *logrus.Logger) *AnalyticsService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AnalyticsService{
		source: source,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Survey resolves the survey descriptor used for report labeling.
func (s *AnalyticsService) Survey(surveyID string) (*models.Survey, error) {
	if surveyID == "" {
		return nil, NewInvalidError("survey id required")
	}
	sv, err := s.source.GetSurvey(surveyID)
	if err != nil {
		return nil, NewUnavailableError("get survey: " + err.Error())
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	return sv, nil
}

// ComputeSnapshot reads the event set once, sessionizes it, and fans the
// metric calculators out over the shared sessionized input. Calculators
// are independent pure functions; a failing one degrades to zero values
// without taking the others down.
func (s *AnalyticsService) ComputeSnapshot(surveyID string, r DateRange) (*Snapshot, error) {
	if surveyID == "" {
		return nil, NewInvalidError("survey id required")
	}
	now := s.now()
	events, err := s.source.ListAnswerEvents(surveyID, r.Since(now))
	if err != nil {
		return nil, NewUnavailableError("list answer events: " + err.Error())
	}
	questions, err := s.source.ListActiveQuestions(surveyID)
	if err != nil {
		return nil, NewUnavailableError("list active questions: " + err.Error())
	}

	// Sessionization is the one hard ordering dependency.
	sessions := Sessionize(events, len(questions))

	snap := &Snapshot{SurveyID: surveyID, Range: r, GeneratedAt: now}
	snap.Degraded = s.runCalculators(surveyID, []calculatorTask{
		{"completion", func() { snap.Completion = CalculateCompletion(sessions) }},
		{"devices", func() { snap.Devices = CalculateDevices(sessions) }},
		{"browsers", func() { snap.Browsers = CalculateBrowsers(sessions) }},
		{"hourly", func() { snap.Hourly = CalculateHourly(sessions) }},
		{"weekly", func() { snap.Weekly = CalculateWeekly(sessions) }},
		{"question_completion", func() {
			snap.QuestionCompletion = CalculateQuestionCompletion(questions, sessions)
			snap.QuestionDifficulty = CalculateQuestionDifficulty(snap.QuestionCompletion)
		}},
		{"response_times", func() { snap.ResponseTimes = CalculateResponseTimes(sessions) }},
		{"locations", func() { snap.Locations = CalculateLocations(sessions) }},
		{"question_stats", func() { snap.Questions = CalculateQuestionStats(questions, events) }},
	})

	// Engagement consumes two calculator outputs, so it runs after the join.
	snap.EngagementScore = CalculateEngagement(snap.Completion, snap.ResponseTimes)
	snap.sanitize()
	return snap, nil
}

type calculatorTask struct {
	name string
	run  func()
}

// runCalculators executes every task concurrently. Each task writes to a
// distinct snapshot field, so the only synchronization needed is the join
// and the degraded list. Panics are contained per task.
func (s *AnalyticsService) runCalculators(surveyID string, tasks []calculatorTask) []string {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		degraded []string
	)
	for _, t := range tasks {
		wg.Add(1)
		go func(t calculatorTask) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					s.logger.WithFields(logrus.Fields{
						"survey_id":  surveyID,
						"calculator": t.name,
					}).Errorf("calculator failed: %v", rec)
					mu.Lock()
					degraded = append(degraded, t.name)
					mu.Unlock()
				}
			}()
			t.run()
		}(t)
	}
	wg.Wait()
	sort.Strings(degraded)
	return degraded
}

func (snap *Snapshot) sanitize() {
	snap.Completion.CompletionRate = sanitizeNumber(snap.Completion.CompletionRate)
	snap.ResponseTimes.Avg = sanitizeNumber(snap.ResponseTimes.Avg)
	snap.ResponseTimes.Min = sanitizeNumber(snap.ResponseTimes.Min)
	snap.ResponseTimes.Max = sanitizeNumber(snap.ResponseTimes.Max)
	snap.EngagementScore = sanitizeNumber(snap.EngagementScore)
	for i := range snap.QuestionCompletion {
		snap.QuestionCompletion[i].CompletionRate = sanitizeNumber(snap.QuestionCompletion[i].CompletionRate)
	}
	for i := range snap.QuestionDifficulty {
		snap.QuestionDifficulty[i].CompletionRate = sanitizeNumber(snap.QuestionDifficulty[i].CompletionRate)
	}
	for i := range snap.Questions {
		q := &snap.Questions[i]
		q.Average = sanitizeNumber(q.Average)
		for j := range q.Distribution {
			q.Distribution[j].Percentage = sanitizeNumber(q.Distribution[j].Percentage)
		}
	}
}
