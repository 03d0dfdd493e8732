package services

// SpeedBonus maps the survey's average transition time to the bonus part of
// the engagement score. The thresholds and weights here are a product
// decision, not derived from data.
func SpeedBonus(avgSeconds float64) float64 {
	switch {
	case avgSeconds < 30:
		return 30
	case avgSeconds < 60:
		return 20
	case avgSeconds < 120:
		return 10
	default:
		return 0
	}
}

// CalculateEngagement blends completion (70% weight) with the speed bonus
// (up to 30) into a 0-100 score. A survey with no sessions scores 0.
func CalculateEngagement(completion CompletionStats, times ResponseTimeStats) float64 {
	if completion.TotalSessions == 0 {
		return 0
	}
	return round2(completion.CompletionRate*0.7 + SpeedBonus(times.Avg))
}
