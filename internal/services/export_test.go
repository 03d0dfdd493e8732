package services

import (
	"encoding/csv"
	"strings"
	"testing"
)

func TestBuildFlatTableStructure(t *testing.T) {
	b, err := BuildFlatTable(reportSnapshot(), DefaultReportOptions())
	if err != nil {
		t.Fatalf("BuildFlatTable: %v", err)
	}
	body := string(b)

	// Sections appear in fixed order, separated by blank lines.
	order := []string{
		"Summary",
		"Device Analytics",
		"Browser Analytics",
		"Question Performance",
		"Question Difficulty",
		"Top Response Locations",
		"Hourly Distribution",
		"Weekly Patterns",
	}
	last := -1
	for _, section := range order {
		i := strings.Index(body, section+"\n")
		if i < 0 {
			t.Fatalf("section %q missing:\n%s", section, body)
		}
		if i < last {
			t.Fatalf("section %q out of order", section)
		}
		last = i
	}

	// The output must stay machine-parseable despite blank separator rows.
	r := csv.NewReader(strings.NewReader(body))
	r.FieldsPerRecord = -1
	if _, err := r.ReadAll(); err != nil {
		t.Fatalf("output is not parseable CSV: %v", err)
	}
}

func TestBuildFlatTableEmptySnapshot(t *testing.T) {
	snap := &Snapshot{Range: RangeAll}
	b, err := BuildFlatTable(snap, DefaultReportOptions())
	if err != nil {
		t.Fatalf("BuildFlatTable: %v", err)
	}
	body := string(b)
	if !strings.Contains(body, "Total Sessions,0") {
		t.Fatalf("summary should report zero sessions:\n%s", body)
	}
	// No data, no data sections.
	if strings.Contains(body, "Device Analytics") || strings.Contains(body, "Question Performance") {
		t.Fatalf("empty sections should be omitted:\n%s", body)
	}
}
