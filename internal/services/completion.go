package services

// CompletionStats is the top-line funnel: how many sessions started and how
// many answered every currently active question.
type CompletionStats struct {
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	CompletionRate    float64 `json:"completion_rate"`
}

// CalculateCompletion reduces sessions to the completion funnel. The rate is
// 0 when there are no sessions.
func CalculateCompletion(sessions []Session) CompletionStats {
	st := CompletionStats{TotalSessions: len(sessions)}
	for _, s := range sessions {
		if s.Completed {
			st.CompletedSessions++
		}
	}
	if st.TotalSessions > 0 {
		st.CompletionRate = round2(float64(st.CompletedSessions) / float64(st.TotalSessions) * 100)
	}
	return st
}
