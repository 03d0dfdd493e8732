package services

import "math"

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sanitizeNumber collapses NaN and ±Inf to 0. Every consumer-facing numeric
// field passes through this before leaving the snapshot assembler.
func sanitizeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
