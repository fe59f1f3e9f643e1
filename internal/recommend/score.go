package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/question-bank/backend/internal/models"
)

// Weights are the fixed relevance weights of the four scoring criteria.
// They are hand-tuned constants, not fitted parameters.
type Weights struct {
	Difficulty float64
	Type       float64
	Knowledge  float64
	Time       float64
}

func DefaultWeights() Weights {
	return Weights{
		Difficulty: 0.30,
		Type:       0.25,
		Knowledge:  0.35,
		Time:       0.10,
	}
}

// Validate rejects negative weights and weight sets that do not sum to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"difficulty": w.Difficulty,
		"type":       w.Type,
		"knowledge":  w.Knowledge,
		"time":       w.Time,
	} {
		if v < 0 {
			return fmt.Errorf("%s weight is negative: %v", name, v)
		}
	}
	sum := w.Difficulty + w.Type + w.Knowledge + w.Time
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights sum to %v, want 1.0", sum)
	}
	return nil
}

// ScoreQuestions scores every candidate against the profile and returns
// the pairs sorted by score descending. Equal scores keep the input order.
func ScoreQuestions(profile models.UserProfile, candidates []models.Question, w Weights) []models.ScoredQuestion {
	scored := make([]models.ScoredQuestion, 0, len(candidates))
	for _, q := range candidates {
		scored = append(scored, models.ScoredQuestion{
			Question: q,
			Score:    scoreQuestion(profile, q, w),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func scoreQuestion(p models.UserProfile, q models.Question, w Weights) float64 {
	return DifficultyScore(p, q)*w.Difficulty +
		TypeScore(p, q)*w.Type +
		KnowledgeScore(p, q)*w.Knowledge +
		TimeScore(p, q)*w.Time
}

// DifficultyScore matches the question's difficulty band against the
// user's preference, then nudges toward harder questions for accurate
// users and easier ones for struggling users. Capped at 1.0.
func DifficultyScore(p models.UserProfile, q models.Question) float64 {
	var base float64
	switch {
	case q.Difficulty == p.PreferredDifficulty:
		base = 1.0
	case adjacentDifficulty(p.PreferredDifficulty, q.Difficulty):
		base = 0.7
	default:
		base = 0.3
	}

	if p.AvgAccuracy > 0.8 {
		switch q.Difficulty {
		case models.DifficultyHard:
			base += 0.2
		case models.DifficultyMedium:
			base += 0.1
		}
	} else if p.AvgAccuracy < 0.5 {
		switch q.Difficulty {
		case models.DifficultyEasy:
			base += 0.2
		case models.DifficultyMedium:
			base += 0.1
		}
	}

	return math.Min(base, 1.0)
}

func adjacentDifficulty(a, b models.Difficulty) bool {
	return (a == models.DifficultyEasy && b == models.DifficultyMedium) ||
		(a == models.DifficultyMedium && b == models.DifficultyEasy) ||
		(a == models.DifficultyMedium && b == models.DifficultyHard) ||
		(a == models.DifficultyHard && b == models.DifficultyMedium)
}

// TypeScore rates how well the question type fits the user's stated
// preferences and observed habits. A user with no recorded preferences
// gets a flat neutral score. Hands-on types get a small flat bonus.
// Capped at 1.0.
func TypeScore(p models.UserProfile, q models.Question) float64 {
	if len(p.PreferredTypes) == 0 {
		return 0.5
	}

	base := 0.3
	for _, qt := range p.PreferredTypes {
		if qt == q.QuestionType {
			base = 1.0
			break
		}
	}

	if p.Pattern.PreferredType != "" && p.Pattern.PreferredType == q.QuestionType {
		base += 0.2
	}
	if q.QuestionType == models.TypeCoding || q.QuestionType == models.TypePractical {
		base += 0.1
	}

	return math.Min(base, 1.0)
}

// KnowledgeScore pushes questions on weak knowledge points to the top
// and damps questions on already-strong ones; unclassified points score
// in between.
func KnowledgeScore(p models.UserProfile, q models.Question) float64 {
	for _, kp := range p.WeakKnowledgePoints {
		if kp == q.KnowledgePointID {
			return 1.0
		}
	}
	for _, kp := range p.StrongKnowledgePoints {
		if kp == q.KnowledgePointID {
			return 0.3
		}
	}
	return 0.6
}

// TimeScore compares the question's estimated time with the user's
// average pace. The best fit is 0.5x-1.5x the user's average.
func TimeScore(p models.UserProfile, q models.Question) float64 {
	estimatedMinutes := q.EstimatedTime
	if estimatedMinutes == 0 {
		estimatedMinutes = 10
	}
	ratio := float64(estimatedMinutes*60) / p.AvgTimePerQuestion

	switch {
	case ratio >= 0.5 && ratio <= 1.5:
		return 1.0
	case (ratio >= 0.3 && ratio < 0.5) || (ratio > 1.5 && ratio <= 2.0):
		return 0.7
	default:
		return 0.3
	}
}
