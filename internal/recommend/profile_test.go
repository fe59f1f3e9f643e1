package recommend

import (
	"math"
	"testing"
	"time"

	"github.com/question-bank/backend/internal/models"
)

func kpAttempts(kpID int64, correct, total int) []models.Attempt {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	attempts := make([]models.Attempt, 0, total)
	for i := 0; i < total; i++ {
		attempts = append(attempts, models.Attempt{
			QuestionID:       int64(i + 1),
			KnowledgePointID: kpID,
			QuestionType:     models.TypeTheory,
			Correct:          i < correct,
			TimeSpentSeconds: 120,
			CompletedAt:      base.Add(time.Duration(i) * time.Hour),
		})
	}
	return attempts
}

func TestBuildProfileNoHistory(t *testing.T) {
	user := models.User{ID: 7, PreferredDifficulty: models.DifficultyEasy}
	p := BuildProfile(user, nil, nil)

	if p.AvgAccuracy != 0.5 {
		t.Errorf("AvgAccuracy = %f, want 0.5", p.AvgAccuracy)
	}
	if p.AvgTimePerQuestion != 300 {
		t.Errorf("AvgTimePerQuestion = %f, want 300", p.AvgTimePerQuestion)
	}
	if p.RecentActivity != 0 {
		t.Errorf("RecentActivity = %d, want 0", p.RecentActivity)
	}
	if len(p.WeakKnowledgePoints) != 0 || len(p.StrongKnowledgePoints) != 0 {
		t.Errorf("expected no classified knowledge points, got weak=%v strong=%v",
			p.WeakKnowledgePoints, p.StrongKnowledgePoints)
	}
	if p.Pattern.Type != models.LearnerNew {
		t.Errorf("Pattern.Type = %s, want %s", p.Pattern.Type, models.LearnerNew)
	}
	if p.PreferredDifficulty != models.DifficultyEasy {
		t.Errorf("PreferredDifficulty = %s, want easy", p.PreferredDifficulty)
	}
}

func TestBuildProfileAverages(t *testing.T) {
	// 4 attempts, 3 correct, 120s each.
	window := kpAttempts(1, 3, 4)
	p := BuildProfile(models.User{ID: 1}, window, window)

	if p.RecentActivity != 4 {
		t.Errorf("RecentActivity = %d, want 4", p.RecentActivity)
	}
	if math.Abs(p.AvgAccuracy-0.75) > 1e-9 {
		t.Errorf("AvgAccuracy = %f, want 0.75", p.AvgAccuracy)
	}
	if math.Abs(p.AvgTimePerQuestion-120) > 1e-9 {
		t.Errorf("AvgTimePerQuestion = %f, want 120", p.AvgTimePerQuestion)
	}
}

func TestClassifyKnowledgePoints(t *testing.T) {
	var window []models.Attempt
	window = append(window, kpAttempts(1, 2, 5)...)  // 0.4 → weak
	window = append(window, kpAttempts(2, 5, 5)...)  // 1.0 → strong
	window = append(window, kpAttempts(3, 7, 10)...) // 0.7 → neither

	weak, strong := classifyKnowledgePoints(window)
	if len(weak) != 1 || weak[0] != 1 {
		t.Errorf("weak = %v, want [1]", weak)
	}
	if len(strong) != 1 || strong[0] != 2 {
		t.Errorf("strong = %v, want [2]", strong)
	}
}

func TestClassifyKnowledgePointsBoundaries(t *testing.T) {
	// Accuracy exactly at a threshold belongs to neither bucket.
	var window []models.Attempt
	window = append(window, kpAttempts(1, 3, 5)...) // exactly 0.6
	window = append(window, kpAttempts(2, 4, 5)...) // exactly 0.8

	weak, strong := classifyKnowledgePoints(window)
	if len(weak) != 0 {
		t.Errorf("weak = %v, want empty", weak)
	}
	if len(strong) != 0 {
		t.Errorf("strong = %v, want empty", strong)
	}
}

func TestClassifyKnowledgePointsOrder(t *testing.T) {
	// Weak points keep first-encounter order; the learning path relies on it.
	var window []models.Attempt
	window = append(window, kpAttempts(9, 0, 2)...)
	window = append(window, kpAttempts(4, 0, 2)...)
	window = append(window, kpAttempts(6, 0, 2)...)

	weak, _ := classifyKnowledgePoints(window)
	want := []int64{9, 4, 6}
	if len(weak) != len(want) {
		t.Fatalf("weak = %v, want %v", weak, want)
	}
	for i := range want {
		if weak[i] != want[i] {
			t.Errorf("weak[%d] = %d, want %d", i, weak[i], want[i])
		}
	}
}
