package questions

import (
	"strings"

	"github.com/question-bank/backend/internal/models"
)

// GradeAnswer checks a submitted answer against the stored correct
// answer. Comparison ignores surrounding whitespace and letter case, so
// "True" and " true " both pass. Coding questions are graded by the
// judge instead, never by string comparison.
func GradeAnswer(q models.Question, userAnswer string) bool {
	if q.CorrectAnswer == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(userAnswer), strings.TrimSpace(q.CorrectAnswer))
}
