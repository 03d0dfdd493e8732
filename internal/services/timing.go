package services

// ResponseTimeStats aggregates the wall-clock gaps between consecutive
// answer events across all sessions, in seconds.
type ResponseTimeStats struct {
	Avg              float64 `json:"avg_time_between_questions"`
	Min              float64 `json:"min_time_between_questions"`
	Max              float64 `json:"max_time_between_questions"`
	TotalTransitions int     `json:"total_transitions"`
}

// CalculateResponseTimes measures transition times, not per-question dwell
// time: each delta is between consecutive events of one session ordered by
// wall clock, whatever questions they belong to. A session with a single
// event contributes nothing. All stats are 0 when no transitions exist.
func CalculateResponseTimes(sessions []Session) ResponseTimeStats {
	var st ResponseTimeStats
	var sum float64
	for _, s := range sessions {
		for i := 1; i < len(s.Events); i++ {
			delta := s.Events[i].At.Sub(s.Events[i-1].At).Seconds()
			if st.TotalTransitions == 0 || delta < st.Min {
				st.Min = delta
			}
			if delta > st.Max {
				st.Max = delta
			}
			sum += delta
			st.TotalTransitions++
		}
	}
	if st.TotalTransitions > 0 {
		st.Avg = round2(sum / float64(st.TotalTransitions))
	}
	return st
}
