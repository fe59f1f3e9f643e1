package recommend

import (
	"github.com/question-bank/backend/internal/models"
)

const (
	// HistoryWindowDays bounds the attempt history a profile is built from.
	HistoryWindowDays = 30

	// PatternSampleSize is how many of the newest all-time attempts feed
	// the cadence analysis.
	PatternSampleSize = 50

	weakThreshold   = 0.6
	strongThreshold = 0.8

	neutralAccuracy       = 0.5
	defaultAvgTimeSeconds = 300.0
)

// BuildProfile derives a learning profile from a user's stored preferences
// and attempt history. window holds the attempts from the last 30 days;
// sample holds up to the 50 most recent attempts of all time, newest first.
// A user with no windowed history gets neutral priors rather than an error.
func BuildProfile(user models.User, window, sample []models.Attempt) models.UserProfile {
	profile := models.UserProfile{
		UserID:               user.ID,
		PreferredDifficulty:  user.PreferredDifficulty,
		PreferredTypes:       user.PreferredQuestionTypes,
		PreferredInteraction: user.PreferredInteractionType,
		AvgAccuracy:          neutralAccuracy,
		AvgTimePerQuestion:   defaultAvgTimeSeconds,
	}

	if len(window) > 0 {
		profile.WeakKnowledgePoints, profile.StrongKnowledgePoints = classifyKnowledgePoints(window)

		correct := 0
		totalTime := 0
		for _, a := range window {
			if a.Correct {
				correct++
			}
			totalTime += a.TimeSpentSeconds
		}
		profile.RecentActivity = len(window)
		profile.AvgAccuracy = float64(correct) / float64(len(window))
		profile.AvgTimePerQuestion = float64(totalTime) / float64(len(window))
	}

	profile.Pattern = AnalyzePattern(sample)
	return profile
}

// classifyKnowledgePoints buckets knowledge points by per-point accuracy:
// below 0.6 is weak, above 0.8 is strong. Accuracy inside [0.6, 0.8] lands
// in neither list; the gap keeps the classification confident. Each list
// preserves the order knowledge points were first encountered in.
func classifyKnowledgePoints(window []models.Attempt) (weak, strong []int64) {
	type tally struct {
		total   int
		correct int
	}
	counts := make(map[int64]*tally)
	var order []int64

	for _, a := range window {
		t, ok := counts[a.KnowledgePointID]
		if !ok {
			t = &tally{}
			counts[a.KnowledgePointID] = t
			order = append(order, a.KnowledgePointID)
		}
		t.total++
		if a.Correct {
			t.correct++
		}
	}

	for _, kpID := range order {
		t := counts[kpID]
		accuracy := float64(t.correct) / float64(t.total)
		switch {
		case accuracy < weakThreshold:
			weak = append(weak, kpID)
		case accuracy > strongThreshold:
			strong = append(strong, kpID)
		}
	}
	return weak, strong
}
