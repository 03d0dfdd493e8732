package services

import (
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	if ParseDateRange("7d") != Range7d || ParseDateRange("30d") != Range30d || ParseDateRange("90d") != Range90d {
		t.Fatalf("known ranges must parse")
	}
	if ParseDateRange("") != RangeAll || ParseDateRange("bogus") != RangeAll {
		t.Fatalf("unknown ranges must fall back to all time")
	}
}

func TestDateRangeSince(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if got := Range7d.Since(now); !got.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("7d since = %v", got)
	}
	if got := RangeAll.Since(now); !got.IsZero() {
		t.Fatalf("all time must have no lower bound, got %v", got)
	}
}

func TestDateRangeLabel(t *testing.T) {
	cases := map[DateRange]string{
		RangeAll: "All Time",
		Range7d:  "Last 7 Days",
		Range30d: "Last 30 Days",
		Range90d: "Last 90 Days",
	}
	for r, want := range cases {
		if got := r.Label(); got != want {
			t.Errorf("%s.Label() = %q, want %q", r, got, want)
		}
	}
}
