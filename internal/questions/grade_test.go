package questions

import (
	"testing"

	"github.com/question-bank/backend/internal/models"
)

func TestGradeAnswer(t *testing.T) {
	q := models.Question{CorrectAnswer: "goroutine"}

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"exact match", "goroutine", true},
		{"case insensitive", "Goroutine", true},
		{"surrounding whitespace", "  goroutine \n", true},
		{"wrong answer", "thread", false},
		{"empty answer", "", false},
		{"partial answer", "gorout", false},
	}

	for _, tt := range tests {
		if got := GradeAnswer(q, tt.answer); got != tt.want {
			t.Errorf("%s: GradeAnswer(%q) = %v, want %v", tt.name, tt.answer, got, tt.want)
		}
	}
}

func TestGradeAnswerNoStoredAnswer(t *testing.T) {
	q := models.Question{CorrectAnswer: ""}
	if GradeAnswer(q, "") {
		t.Error("question with no stored answer must not grade correct")
	}
}
