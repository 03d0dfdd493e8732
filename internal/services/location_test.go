package services

import (
	"fmt"
	"testing"

	"github.com/surveyguy/analytics/internal/models"
)

func locatedSession(country, city string) Session {
	return Session{Location: &models.GeoLocation{Country: country, City: city}}
}

func TestCalculateLocations(t *testing.T) {
	sessions := []Session{
		locatedSession("Germany", "Berlin"),
		locatedSession("Germany", "Berlin"),
		locatedSession("Japan", "Tokyo"),
		{}, // no location at all
		locatedSession("", ""),
	}
	got := CalculateLocations(sessions)
	if len(got) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(got))
	}
	if got[0].Country != "Germany" || got[0].City != "Berlin" || got[0].Count != 2 {
		t.Fatalf("expected Berlin first, got %+v", got[0])
	}
	var unknown int
	for _, l := range got {
		if l.Country == "Unknown" && l.City == "Unknown" {
			unknown = l.Count
		}
	}
	if unknown != 2 {
		t.Fatalf("expected 2 sessions in the Unknown group, got %d", unknown)
	}
}

func TestCalculateLocationsTruncatesToTop10(t *testing.T) {
	var sessions []Session
	for i := 0; i < 15; i++ {
		sessions = append(sessions, locatedSession("Country", fmt.Sprintf("City-%02d", i)))
	}
	got := CalculateLocations(sessions)
	if len(got) != 10 {
		t.Fatalf("expected top 10, got %d", len(got))
	}
}
