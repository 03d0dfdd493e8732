package services

import (
	"testing"
	"time"
)

func TestCalculateHourly(t *testing.T) {
	sessions := []Session{
		{First: time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)},
		{First: time.Date(2026, 3, 2, 9, 55, 0, 0, time.UTC)},
		{First: time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)},
	}
	got := CalculateHourly(sessions)
	if len(got) != 24 {
		t.Fatalf("expected 24 buckets, got %d", len(got))
	}
	if got[9].Responses != 2 || got[17].Responses != 1 {
		t.Fatalf("wrong bucket counts: 9h=%d 17h=%d", got[9].Responses, got[17].Responses)
	}
	if got[0].Hour != 0 || got[23].Hour != 23 {
		t.Fatalf("buckets not indexed by hour")
	}
}

func TestCalculateHourlyUsesSessionStart(t *testing.T) {
	// The session spans two hours; only its earliest event counts.
	s := Session{
		First: time.Date(2026, 3, 2, 9, 59, 0, 0, time.UTC),
		Last:  time.Date(2026, 3, 2, 10, 5, 0, 0, time.UTC),
	}
	got := CalculateHourly([]Session{s})
	if got[9].Responses != 1 || got[10].Responses != 0 {
		t.Fatalf("expected only the starting hour counted: %+v", got[9:11])
	}
}

func TestCalculateWeekly(t *testing.T) {
	// 2026-03-01 is a Sunday.
	sessions := []Session{
		{First: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		{First: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)},
	}
	got := CalculateWeekly(sessions)
	if len(got) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(got))
	}
	if got[0].Name != "Sunday" || got[0].Responses != 1 {
		t.Fatalf("wrong Sunday bucket: %+v", got[0])
	}
	if got[3].Name != "Wednesday" || got[3].Responses != 1 {
		t.Fatalf("wrong Wednesday bucket: %+v", got[3])
	}
}
