// Package stats maintains per-knowledge-point aggregates over a user's
// learning records and derives mastery estimates from them.
package stats

import "math"

// Accuracy returns correct/total, or 0 when there are no attempts.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Mastery blends accuracy with practice volume. Accuracy carries 70% of
// the estimate; the remaining 30% ramps linearly with attempt count and
// saturates at 10 attempts, so a lucky 2-for-2 never reads as mastered.
func Mastery(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	practice := math.Min(float64(total)/10.0, 1.0)
	return Accuracy(correct, total)*0.7 + practice*0.3
}

// AverageTime returns mean seconds per attempt, or 0 with no attempts.
func AverageTime(totalTimeSpent, totalAttempts int) float64 {
	if totalAttempts <= 0 {
		return 0
	}
	return float64(totalTimeSpent) / float64(totalAttempts)
}
