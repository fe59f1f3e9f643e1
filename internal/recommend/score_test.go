package recommend

import (
	"math"
	"testing"

	"github.com/question-bank/backend/internal/models"
)

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Errorf("DefaultWeights().Validate() = %v, want nil", err)
	}

	bad := Weights{Difficulty: 0.5, Type: 0.5, Knowledge: 0.5, Time: 0.5}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for weights summing to 2.0")
	}

	negative := Weights{Difficulty: -0.1, Type: 0.5, Knowledge: 0.5, Time: 0.1}
	if err := negative.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestDifficultyScore(t *testing.T) {
	tests := []struct {
		name      string
		preferred models.Difficulty
		accuracy  float64
		question  models.Difficulty
		want      float64
	}{
		{"exact match", models.DifficultyMedium, 0.6, models.DifficultyMedium, 1.0},
		{"adjacent easy-medium", models.DifficultyEasy, 0.6, models.DifficultyMedium, 0.7},
		{"adjacent hard-medium", models.DifficultyHard, 0.6, models.DifficultyMedium, 0.7},
		{"two bands apart", models.DifficultyEasy, 0.6, models.DifficultyHard, 0.3},
		{"high accuracy boosts hard", models.DifficultyEasy, 0.9, models.DifficultyHard, 0.5},
		{"high accuracy boosts medium", models.DifficultyEasy, 0.9, models.DifficultyMedium, 0.8},
		{"low accuracy boosts easy", models.DifficultyHard, 0.4, models.DifficultyEasy, 0.5},
		{"low accuracy boosts medium", models.DifficultyHard, 0.4, models.DifficultyMedium, 0.8},
		{"boost clamps at one", models.DifficultyHard, 0.9, models.DifficultyHard, 1.0},
		{"accuracy exactly 0.8 gives no boost", models.DifficultyEasy, 0.8, models.DifficultyHard, 0.3},
		{"accuracy exactly 0.5 gives no boost", models.DifficultyHard, 0.5, models.DifficultyEasy, 0.3},
	}

	for _, tt := range tests {
		p := models.UserProfile{PreferredDifficulty: tt.preferred, AvgAccuracy: tt.accuracy}
		q := models.Question{Difficulty: tt.question}
		got := DifficultyScore(p, q)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: DifficultyScore = %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestTypeScore(t *testing.T) {
	coding := models.Question{QuestionType: models.TypeCoding}
	theory := models.Question{QuestionType: models.TypeTheory}

	// No stated preferences is flat neutral, bonuses included.
	got := TypeScore(models.UserProfile{}, coding)
	if got != 0.5 {
		t.Errorf("TypeScore with no preferences = %f, want 0.5", got)
	}

	// Preferred type, plus hands-on bonus, clamps at 1.0.
	p := models.UserProfile{PreferredTypes: []models.QuestionType{models.TypeCoding}}
	got = TypeScore(p, coding)
	if got != 1.0 {
		t.Errorf("TypeScore for preferred coding = %f, want 1.0", got)
	}

	// Non-preferred theory stays at the low base.
	got = TypeScore(p, theory)
	if math.Abs(got-0.3) > 1e-9 {
		t.Errorf("TypeScore for non-preferred theory = %f, want 0.3", got)
	}

	// Habit bonus applies when the pattern's dominant type matches.
	p.Pattern.PreferredType = models.TypeTheory
	got = TypeScore(p, theory)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("TypeScore with habit bonus = %f, want 0.5", got)
	}

	// Non-preferred practical gets only the hands-on bonus.
	p.Pattern.PreferredType = ""
	got = TypeScore(p, models.Question{QuestionType: models.TypePractical})
	if math.Abs(got-0.4) > 1e-9 {
		t.Errorf("TypeScore for non-preferred practical = %f, want 0.4", got)
	}
}

func TestKnowledgeScore(t *testing.T) {
	p := models.UserProfile{
		WeakKnowledgePoints:   []int64{1},
		StrongKnowledgePoints: []int64{2},
	}

	if got := KnowledgeScore(p, models.Question{KnowledgePointID: 1}); got != 1.0 {
		t.Errorf("weak knowledge point score = %f, want 1.0", got)
	}
	if got := KnowledgeScore(p, models.Question{KnowledgePointID: 2}); got != 0.3 {
		t.Errorf("strong knowledge point score = %f, want 0.3", got)
	}
	if got := KnowledgeScore(p, models.Question{KnowledgePointID: 3}); got != 0.6 {
		t.Errorf("unclassified knowledge point score = %f, want 0.6", got)
	}
}

func TestTimeScore(t *testing.T) {
	p := models.UserProfile{AvgTimePerQuestion: 600} // 10 minutes

	tests := []struct {
		name    string
		minutes int
		want    float64
	}{
		{"perfect fit", 10, 1.0},
		{"half the pace", 5, 1.0},
		{"1.5x the pace", 15, 1.0},
		{"near miss under", 4, 0.7},
		{"near miss over", 20, 0.7},
		{"far too short", 2, 0.3},
		{"far too long", 30, 0.3},
		{"zero estimate defaults to ten minutes", 0, 1.0},
	}

	for _, tt := range tests {
		got := TimeScore(p, models.Question{EstimatedTime: tt.minutes})
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: TimeScore = %f, want %f", tt.name, got, tt.want)
		}
	}
}

func TestScoreQuestionsOrdering(t *testing.T) {
	p := models.UserProfile{
		PreferredDifficulty: models.DifficultyMedium,
		PreferredTypes:      []models.QuestionType{models.TypeCoding},
		WeakKnowledgePoints: []int64{1},
		AvgAccuracy:         0.6,
		AvgTimePerQuestion:  600,
	}

	// Weak knowledge point, preferred type and difficulty beats a
	// strong-fit-nothing question.
	best := models.Question{ID: 1, QuestionType: models.TypeCoding, Difficulty: models.DifficultyMedium, KnowledgePointID: 1, EstimatedTime: 10}
	worst := models.Question{ID: 2, QuestionType: models.TypeTheory, Difficulty: models.DifficultyHard, KnowledgePointID: 5, EstimatedTime: 45}

	scored := ScoreQuestions(p, []models.Question{worst, best}, DefaultWeights())
	if len(scored) != 2 {
		t.Fatalf("got %d scored questions, want 2", len(scored))
	}
	if scored[0].Question.ID != 1 {
		t.Errorf("highest scored question = %d, want 1", scored[0].Question.ID)
	}
	if scored[0].Score <= scored[1].Score {
		t.Errorf("scores not descending: %f then %f", scored[0].Score, scored[1].Score)
	}
}

func TestScoreQuestionsStable(t *testing.T) {
	p := models.UserProfile{AvgAccuracy: 0.6, AvgTimePerQuestion: 600}

	// Identical questions score identically and keep input order.
	qs := []models.Question{
		{ID: 10, QuestionType: models.TypeTheory, Difficulty: models.DifficultyMedium, EstimatedTime: 10},
		{ID: 11, QuestionType: models.TypeTheory, Difficulty: models.DifficultyMedium, EstimatedTime: 10},
	}
	scored := ScoreQuestions(p, qs, DefaultWeights())
	if scored[0].Question.ID != 10 || scored[1].Question.ID != 11 {
		t.Errorf("equal scores reordered: got %d, %d", scored[0].Question.ID, scored[1].Question.ID)
	}
}
