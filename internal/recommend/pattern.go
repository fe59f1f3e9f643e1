package recommend

import (
	"time"

	"github.com/question-bank/backend/internal/models"
)

// AnalyzePattern classifies a user's study cadence from up to the 50 most
// recent attempts, newest first. Zero attempts means a new learner with
// medium intensity and no preferred type.
func AnalyzePattern(sample []models.Attempt) models.LearningPattern {
	if len(sample) == 0 {
		return models.LearningPattern{
			Type:      models.LearnerNew,
			Intensity: models.IntensityMedium,
		}
	}

	var minDay, maxDay time.Time
	activeDays := make(map[time.Time]bool)
	for i, a := range sample {
		day := calendarDay(a.CompletedAt)
		activeDays[day] = true
		if i == 0 || day.Before(minDay) {
			minDay = day
		}
		if i == 0 || day.After(maxDay) {
			maxDay = day
		}
	}

	daysSpan := int(maxDay.Sub(minDay).Hours()/24) + 1
	avgPerDay := float64(len(sample)) / float64(daysSpan)
	consistency := float64(len(activeDays)) / float64(daysSpan)

	return models.LearningPattern{
		Type:          classifyLearnerType(avgPerDay, consistency),
		Intensity:     classifyIntensity(avgPerDay),
		PreferredType: mostAttemptedType(sample),
		Consistency:   consistency,
	}
}

// classifyLearnerType applies the cadence rules in order; the first match wins.
func classifyLearnerType(avgPerDay, consistency float64) models.LearnerType {
	switch {
	case avgPerDay >= 5 && consistency >= 0.7:
		return models.LearnerIntensive
	case avgPerDay >= 2 && consistency >= 0.5:
		return models.LearnerRegular
	case consistency >= 0.3:
		return models.LearnerCasual
	default:
		return models.LearnerSporadic
	}
}

func classifyIntensity(avgPerDay float64) models.Intensity {
	switch {
	case avgPerDay >= 10:
		return models.IntensityHigh
	case avgPerDay >= 3:
		return models.IntensityMedium
	default:
		return models.IntensityLow
	}
}

// mostAttemptedType returns the question type with the highest attempt
// count in the sample. Ties break by first encounter in record order,
// which is arbitrary but stable.
func mostAttemptedType(sample []models.Attempt) models.QuestionType {
	counts := make(map[models.QuestionType]int)
	var order []models.QuestionType
	for _, a := range sample {
		if counts[a.QuestionType] == 0 {
			order = append(order, a.QuestionType)
		}
		counts[a.QuestionType]++
	}

	var best models.QuestionType
	bestCount := 0
	for _, qt := range order {
		if counts[qt] > bestCount {
			best = qt
			bestCount = counts[qt]
		}
	}
	return best
}

// calendarDay truncates a timestamp to its UTC calendar date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
