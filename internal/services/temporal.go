package services

import "time"

// HourBucket is the distinct-session count for one hour of day (0-23).
type HourBucket struct {
	Hour      int `json:"hour"`
	Responses int `json:"responses"`
}

// DayBucket is the distinct-session count for one day of week, carrying
// both the numeric index (0 = Sunday) and the display name.
type DayBucket struct {
	Day       int    `json:"day"`
	Name      string `json:"name"`
	Responses int    `json:"responses"`
}

// CalculateHourly buckets sessions by the hour of their earliest event.
// The raw stored instant's hour is used; no survey-local timezone applies.
func CalculateHourly(sessions []Session) []HourBucket {
	out := make([]HourBucket, 24)
	for i := range out {
		out[i].Hour = i
	}
	for _, s := range sessions {
		out[s.First.UTC().Hour()].Responses++
	}
	return out
}

// CalculateWeekly buckets sessions by the weekday of their earliest event.
func CalculateWeekly(sessions []Session) []DayBucket {
	out := make([]DayBucket, 7)
	for i := range out {
		out[i].Day = i
		out[i].Name = time.Weekday(i).String()
	}
	for _, s := range sessions {
		out[int(s.First.UTC().Weekday())].Responses++
	}
	return out
}
