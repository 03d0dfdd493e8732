package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// BuildFlatTable renders the snapshot as a sectioned CSV. Each enabled
// section is a title row, a header row, and data rows, separated from the
// next section by a blank line. csv.Writer handles quoting for free-text
// question titles.
func BuildFlatTable(snap *Snapshot, opts ReportOptions) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	writeSection := func(title string, header []string, rows [][]string) error {
		if err := w.Write([]string{title}); err != nil {
			return err
		}
		if err := w.Write(header); err != nil {
			return err
		}
		for _, rec := range rows {
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		// Blank line between sections.
		return w.Write([]string{""})
	}

	summary := [][]string{
		{"Date Range", snap.Range.Label()},
		{"Total Sessions", strconv.Itoa(snap.Completion.TotalSessions)},
		{"Completed Sessions", strconv.Itoa(snap.Completion.CompletedSessions)},
		{"Completion Rate", formatPercent(snap.Completion.CompletionRate)},
		{"Engagement Score", formatPercent(snap.EngagementScore)},
		{"Avg Time Between Questions", formatSeconds(snap.ResponseTimes.Avg)},
	}
	if err := writeSection("Summary", []string{"Metric", "Value"}, summary); err != nil {
		return nil, err
	}

	if opts.IncludeCharts && len(snap.Devices) > 0 {
		rows := make([][]string, 0, len(snap.Devices))
		for _, d := range snap.Devices {
			rows = append(rows, []string{d.Device, strconv.Itoa(d.Count), shareOfSessions(d.Count, snap)})
		}
		if err := writeSection("Device Analytics", []string{"Device", "Count", "Percentage"}, rows); err != nil {
			return nil, err
		}
	}

	if opts.IncludeCharts && len(snap.Browsers) > 0 {
		rows := make([][]string, 0, len(snap.Browsers))
		for _, b := range snap.Browsers {
			rows = append(rows, []string{b.Browser, strconv.Itoa(b.Count), shareOfSessions(b.Count, snap)})
		}
		if err := writeSection("Browser Analytics", []string{"Browser", "Count", "Percentage"}, rows); err != nil {
			return nil, err
		}
	}

	if opts.IncludeTables && len(snap.QuestionCompletion) > 0 {
		rows := make([][]string, 0, len(snap.QuestionCompletion))
		for _, q := range snap.QuestionCompletion {
			rows = append(rows, []string{q.Question, strconv.Itoa(q.Responses), formatPercent(q.CompletionRate)})
		}
		if err := writeSection("Question Performance", []string{"Question", "Responses", "Completion Rate"}, rows); err != nil {
			return nil, err
		}
	}

	if opts.IncludeTables && len(snap.QuestionDifficulty) > 0 {
		rows := make([][]string, 0, len(snap.QuestionDifficulty))
		for _, q := range snap.QuestionDifficulty {
			rows = append(rows, []string{q.Question, formatPercent(q.CompletionRate), q.Difficulty})
		}
		if err := writeSection("Question Difficulty", []string{"Question", "Completion Rate", "Difficulty"}, rows); err != nil {
			return nil, err
		}
	}

	if opts.IncludeCharts && len(snap.Locations) > 0 {
		rows := make([][]string, 0, len(snap.Locations))
		for _, l := range snap.Locations {
			rows = append(rows, []string{l.Country, l.City, strconv.Itoa(l.Count)})
		}
		if err := writeSection("Top Response Locations", []string{"Country", "City", "Responses"}, rows); err != nil {
			return nil, err
		}
	}

	if opts.IncludeMetrics {
		hourly := make([][]string, 0, len(snap.Hourly))
		for _, h := range snap.Hourly {
			hourly = append(hourly, []string{fmt.Sprintf("%02d:00", h.Hour), strconv.Itoa(h.Responses)})
		}
		if err := writeSection("Hourly Distribution", []string{"Hour", "Sessions"}, hourly); err != nil {
			return nil, err
		}
		weekly := make([][]string, 0, len(snap.Weekly))
		for _, d := range snap.Weekly {
			weekly = append(weekly, []string{d.Name, strconv.Itoa(d.Responses)})
		}
		if err := writeSection("Weekly Patterns", []string{"Day", "Sessions"}, weekly); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
