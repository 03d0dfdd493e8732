package services

import (
	"encoding/json"
	"strings"
	"time"
	"unicode"

	"github.com/surveyguy/analytics/internal/models"
)

type ReportFormat string

const (
	FormatDocument ReportFormat = "document"
	FormatTable    ReportFormat = "table"
)

// ReportOptions selects which sections a rendered report carries. The
// summary header and metadata are always present.
type ReportOptions struct {
	IncludeCharts  bool
	IncludeMetrics bool
	IncludeTables  bool
}

// DefaultReportOptions enables every section.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{IncludeCharts: true, IncludeMetrics: true, IncludeTables: true}
}

type ReportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService turns computed snapshots into downloadable artifacts.
type ReportService struct {
	now func() time.Time
}

func NewReportService() *ReportService {
	return &ReportService{now: time.Now}
}

// Render produces the report in the requested format. An empty format
// defaults to the paginated document.
func (s *ReportService) Render(snap *Snapshot, survey *models.Survey, format ReportFormat, opts ReportOptions) (*ReportResult, error) {
	if snap == nil {
		return nil, NewInvalidError("snapshot required")
	}
	if survey == nil {
		return nil, NewInvalidError("survey required")
	}
	if format == "" {
		format = FormatDocument
	}
	switch format {
	case FormatDocument:
		doc := BuildDocument(snap, survey, opts, s.now().UTC())
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return &ReportResult{
			Filename:    reportFilename(surveyTitle(survey), "json"),
			ContentType: "application/json; charset=utf-8",
			Data:        b,
		}, nil
	case FormatTable:
		b, err := BuildFlatTable(snap, opts)
		if err != nil {
			return nil, err
		}
		return &ReportResult{
			Filename:    reportFilename(surveyTitle(survey), "csv"),
			ContentType: "text/csv; charset=utf-8",
			Data:        b,
		}, nil
	default:
		return nil, NewInvalidError("unsupported format")
	}
}

// reportFilename slugs the survey title into a safe download name like
// "customer_feedback_analytics_report.csv".
func reportFilename(title, ext string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('_')
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		slug = "survey"
	}
	return slug + "_analytics_report." + ext
}
