package services

import "time"

// DateRange is a fixed lookback window ending now.
type DateRange string

const (
	RangeAll DateRange = "all"
	Range7d  DateRange = "7d"
	Range30d DateRange = "30d"
	Range90d DateRange = "90d"
)

// ParseDateRange maps unrecognized values to RangeAll rather than erroring.
func ParseDateRange(s string) DateRange {
	switch DateRange(s) {
	case Range7d, Range30d, Range90d:
		return DateRange(s)
	default:
		return RangeAll
	}
}

// Since returns the window start, or the zero time for RangeAll.
func (r DateRange) Since(now time.Time) time.Time {
	switch r {
	case Range7d:
		return now.AddDate(0, 0, -7)
	case Range30d:
		return now.AddDate(0, 0, -30)
	case Range90d:
		return now.AddDate(0, 0, -90)
	default:
		return time.Time{}
	}
}

// Label is the human-readable form used in report metadata.
func (r DateRange) Label() string {
	switch r {
	case Range7d:
		return "Last 7 Days"
	case Range30d:
		return "Last 30 Days"
	case Range90d:
		return "Last 90 Days"
	default:
		return "All Time"
	}
}
