package recommend

import (
	"testing"

	"github.com/question-bank/backend/internal/models"
)

func questionsOfType(qt models.QuestionType, n int, startID int64) []models.Question {
	qs := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, models.Question{
			ID:           startID + int64(i),
			QuestionType: qt,
			Difficulty:   models.DifficultyMedium,
		})
	}
	return qs
}

func TestFilterCandidatesNoPreferences(t *testing.T) {
	fresh := questionsOfType(models.TypeTheory, 5, 1)
	got := FilterCandidates(fresh, nil)
	if len(got) != 5 {
		t.Errorf("got %d questions, want 5", len(got))
	}
}

func TestFilterCandidatesKeepsFilterAtTwenty(t *testing.T) {
	fresh := questionsOfType(models.TypeCoding, 20, 1)
	fresh = append(fresh, questionsOfType(models.TypeTheory, 30, 100)...)

	got := FilterCandidates(fresh, []models.QuestionType{models.TypeCoding})
	if len(got) != 20 {
		t.Fatalf("got %d questions, want 20", len(got))
	}
	for _, q := range got {
		if q.QuestionType != models.TypeCoding {
			t.Errorf("question %d has type %s, want coding", q.ID, q.QuestionType)
		}
	}
}

func TestFilterCandidatesWidensBelowTwenty(t *testing.T) {
	// 19 matches is one short of the floor, so the filter is dropped.
	fresh := questionsOfType(models.TypeCoding, 19, 1)
	fresh = append(fresh, questionsOfType(models.TypeTheory, 30, 100)...)

	got := FilterCandidates(fresh, []models.QuestionType{models.TypeCoding})
	if len(got) != len(fresh) {
		t.Errorf("got %d questions, want the full pool of %d", len(got), len(fresh))
	}
}

func TestFilterCandidatesMultiplePreferredTypes(t *testing.T) {
	fresh := questionsOfType(models.TypeCoding, 15, 1)
	fresh = append(fresh, questionsOfType(models.TypePractical, 10, 100)...)
	fresh = append(fresh, questionsOfType(models.TypeTheory, 5, 200)...)

	got := FilterCandidates(fresh, []models.QuestionType{models.TypeCoding, models.TypePractical})
	if len(got) != 25 {
		t.Errorf("got %d questions, want 25", len(got))
	}
}
