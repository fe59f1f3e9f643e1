package recommend

import (
	"testing"

	"github.com/question-bank/backend/internal/models"
)

func scoredList(qs ...models.Question) []models.ScoredQuestion {
	scored := make([]models.ScoredQuestion, len(qs))
	for i, q := range qs {
		scored[i] = models.ScoredQuestion{Question: q, Score: 1.0 - float64(i)*0.01}
	}
	return scored
}

func TestDiversifyFewerThanCount(t *testing.T) {
	scored := scoredList(
		models.Question{ID: 1, KnowledgePointID: 1, QuestionType: models.TypeTheory},
		models.Question{ID: 2, KnowledgePointID: 1, QuestionType: models.TypeTheory},
	)
	got := Diversify(scored, 5)
	if len(got) != 2 {
		t.Errorf("got %d questions, want all 2", len(got))
	}
}

func TestDiversifyNeverExceedsCount(t *testing.T) {
	var qs []models.Question
	for i := 1; i <= 30; i++ {
		qs = append(qs, models.Question{
			ID:               int64(i),
			KnowledgePointID: int64(i),
			QuestionType:     models.TypeTheory,
		})
	}
	got := Diversify(scoredList(qs...), 10)
	if len(got) != 10 {
		t.Errorf("got %d questions, want 10", len(got))
	}
}

func TestDiversifyNoDuplicates(t *testing.T) {
	var qs []models.Question
	for i := 1; i <= 30; i++ {
		qs = append(qs, models.Question{
			ID:               int64(i),
			KnowledgePointID: int64(i%3 + 1),
			QuestionType:     models.TypeTheory,
		})
	}
	got := Diversify(scoredList(qs...), 12)
	seen := make(map[int64]bool)
	for _, q := range got {
		if seen[q.ID] {
			t.Errorf("question %d selected twice", q.ID)
		}
		seen[q.ID] = true
	}
	if len(got) != 12 {
		t.Errorf("got %d questions, want 12", len(got))
	}
}

func TestDiversifySpreadsKnowledgePoints(t *testing.T) {
	// 20 same-type questions on knowledge point 1 outscore 5 questions on
	// other points. Diversification still admits the other points because
	// each brings an unused knowledge point.
	var qs []models.Question
	for i := 1; i <= 20; i++ {
		qs = append(qs, models.Question{ID: int64(i), KnowledgePointID: 1, QuestionType: models.TypeTheory})
	}
	for i := 21; i <= 25; i++ {
		qs = append(qs, models.Question{ID: int64(i), KnowledgePointID: int64(i), QuestionType: models.TypeCoding})
	}

	got := Diversify(scoredList(qs...), 10)

	kps := make(map[int64]bool)
	for _, q := range got {
		kps[q.KnowledgePointID] = true
	}
	if len(kps) < 2 {
		t.Errorf("selection covers %d knowledge points, want more than 1", len(kps))
	}
}

func TestDiversifyFillsFromRemainder(t *testing.T) {
	// Everything shares one knowledge point and type: the first pass can
	// only admit count/2 before all three conditions fail, the second
	// pass tops up to count in score order.
	var qs []models.Question
	for i := 1; i <= 20; i++ {
		qs = append(qs, models.Question{ID: int64(i), KnowledgePointID: 1, QuestionType: models.TypeTheory})
	}

	got := Diversify(scoredList(qs...), 10)
	if len(got) != 10 {
		t.Fatalf("got %d questions, want 10", len(got))
	}
	// Top scorers come first, so the fill keeps IDs 1 through 10.
	for i, q := range got {
		if q.ID != int64(i+1) {
			t.Errorf("position %d holds question %d, want %d", i, q.ID, i+1)
		}
	}
}

func TestDiversifyZeroCount(t *testing.T) {
	scored := scoredList(models.Question{ID: 1, KnowledgePointID: 1, QuestionType: models.TypeTheory})
	if got := Diversify(scored, 0); len(got) != 0 {
		t.Errorf("got %d questions, want 0", len(got))
	}
}
