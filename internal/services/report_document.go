package services

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/surveyguy/analytics/internal/models"
)

// Page metrics mirror an A4 sheet in millimeters.
const (
	docPageHeight   = 297.0
	docTopMargin    = 20.0
	docBottomMargin = 30.0
	docLineHeight   = 6.0
	docHeadingSpace = 10.0
)

type LineKind string

const (
	LineHeading     LineKind = "heading"
	LineText        LineKind = "text"
	LineTableHeader LineKind = "table_header"
	LineTableRow    LineKind = "table_row"
	LineFooter      LineKind = "footer"
)

// Line is one positioned line of report content. Table cells are joined
// with tabs; the consumer decides column widths.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
	Y    float64  `json:"y"`
}

// Page is one laid-out page of the report.
type Page struct {
	Number int    `json:"number"`
	Lines  []Line `json:"lines"`
}

// Document is the paginated report: a pure function of the snapshot, the
// survey descriptor, and the render options.
type Document struct {
	Title       string    `json:"title"`
	Survey      string    `json:"survey"`
	GeneratedAt time.Time `json:"generated_at"`
	Pages       []Page    `json:"pages"`
}

// layoutCursor carries the mutable layout state of the content pass: the
// current page and the running y offset. It exists only during rendering;
// the finished Document is immutable. Footers are stamped in a second pass
// once the page count is final.
type layoutCursor struct {
	doc *Document
	y   float64
}

func newLayoutCursor(doc *Document) *layoutCursor {
	c := &layoutCursor{doc: doc}
	c.newPage()
	return c
}

func (c *layoutCursor) newPage() {
	c.doc.Pages = append(c.doc.Pages, Page{Number: len(c.doc.Pages) + 1})
	c.y = docTopMargin
}

func (c *layoutCursor) page() *Page {
	return &c.doc.Pages[len(c.doc.Pages)-1]
}

// ensureRoom starts a new page before content that would cross the bottom
// margin.
func (c *layoutCursor) ensureRoom(height float64) {
	if c.y+height > docPageHeight-docBottomMargin {
		c.newPage()
	}
}

func (c *layoutCursor) line(kind LineKind, text string, advance float64) {
	c.ensureRoom(advance)
	p := c.page()
	p.Lines = append(p.Lines, Line{Kind: kind, Text: text, Y: c.y})
	c.y += advance
}

func (c *layoutCursor) heading(text string) { c.line(LineHeading, text, docHeadingSpace) }
func (c *layoutCursor) text(text string)    { c.line(LineText, text, docLineHeight) }
func (c *layoutCursor) row(text string)     { c.line(LineTableRow, text, docLineHeight) }
func (c *layoutCursor) gap()                { c.y += docHeadingSpace }

// BuildDocument lays the report out in the fixed section order: header,
// metadata, key metrics, device and browser breakdowns, question table,
// locations. Sections without data are omitted; option flags drop whole
// sections. Footer page numbers are finalized after all content exists.
func BuildDocument(snap *Snapshot, survey *models.Survey, opts ReportOptions, generatedAt time.Time) *Document {
	doc := &Document{
		Title:       "Survey Analytics Report",
		Survey:      surveyTitle(survey),
		GeneratedAt: generatedAt,
	}
	c := newLayoutCursor(doc)

	c.heading(doc.Title)
	c.text("Survey: " + doc.Survey)
	c.gap()

	c.heading("Report Summary")
	c.text("Generated: " + generatedAt.Format("January 2, 2006 15:04"))
	c.text("Date Range: " + snap.Range.Label())
	c.text("Total Responses: " + humanize.Comma(int64(snap.Completion.TotalSessions)))
	c.text("Completion Rate: " + formatPercent(snap.Completion.CompletionRate))
	c.text(fmt.Sprintf("Total Questions: %d", len(snap.QuestionCompletion)))
	c.gap()

	if opts.IncludeMetrics {
		c.heading("Key Performance Metrics")
		c.text("Total Sessions: " + humanize.Comma(int64(snap.Completion.TotalSessions)))
		c.text("Completed Sessions: " + humanize.Comma(int64(snap.Completion.CompletedSessions)))
		c.text("Average Response Time: " + formatSeconds(snap.ResponseTimes.Avg))
		c.text(fmt.Sprintf("Engagement Score: %d%%", int(math.Round(snap.EngagementScore))))
		c.gap()
	}

	if opts.IncludeCharts && len(snap.Devices) > 0 {
		c.heading("Device Usage Distribution")
		for _, d := range snap.Devices {
			c.row(fmt.Sprintf("%s: %d (%s)", d.Device, d.Count, shareOfSessions(d.Count, snap)))
		}
		c.gap()
	}

	if opts.IncludeCharts && len(snap.Browsers) > 0 {
		c.heading("Browser Distribution")
		for _, b := range snap.Browsers {
			c.row(fmt.Sprintf("%s: %d (%s)", b.Browser, b.Count, shareOfSessions(b.Count, snap)))
		}
		c.gap()
	}

	if opts.IncludeTables && len(snap.QuestionCompletion) > 0 {
		c.heading("Question Performance Analysis")
		c.line(LineTableHeader, "Question\tCompletion Rate\tResponses", docLineHeight+2)
		for _, q := range snap.QuestionCompletion {
			c.row(fmt.Sprintf("%s\t%s\t%d", q.Question, formatPercent(q.CompletionRate), q.Responses))
		}
		c.gap()
	}

	if opts.IncludeCharts && len(snap.Locations) > 0 {
		c.heading("Top Response Locations")
		for i, l := range snap.Locations {
			c.row(fmt.Sprintf("%d. %s - %s\t%d responses", i+1, l.Country, l.City, l.Count))
		}
	}

	stampFooters(doc)
	return doc
}

// stampFooters is the second pass: every page gets its index over the
// final total, which is unknowable during the content pass.
func stampFooters(doc *Document) {
	total := len(doc.Pages)
	for i := range doc.Pages {
		p := &doc.Pages[i]
		p.Lines = append(p.Lines,
			Line{Kind: LineFooter, Text: fmt.Sprintf("Page %d of %d", i+1, total), Y: docPageHeight - 10},
			Line{Kind: LineFooter, Text: "Generated by SurveyGuy Analytics", Y: docPageHeight - 5},
		)
	}
}

func surveyTitle(survey *models.Survey) string {
	if survey == nil || survey.Title == "" {
		return "Untitled Survey"
	}
	return survey.Title
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// formatSeconds renders a duration the way the dashboard does: "45s" under
// a minute, "2m 5s" above.
func formatSeconds(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", int(math.Round(seconds)))
	}
	m := int(seconds) / 60
	s := int(math.Round(math.Mod(seconds, 60)))
	return fmt.Sprintf("%dm %ds", m, s)
}

func shareOfSessions(count int, snap *Snapshot) string {
	if snap.Completion.TotalSessions == 0 {
		return formatPercent(0)
	}
	return formatPercent(float64(count) / float64(snap.Completion.TotalSessions) * 100)
}
