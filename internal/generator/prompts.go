package generator

import (
	"fmt"
	"strings"

	"github.com/question-bank/backend/internal/models"
)

func SystemPrompt() string {
	return `You are an expert technical educator who writes practice questions for software engineering topics.

You always respond with a single JSON object and nothing else. No prose before or after, no markdown fences.

The JSON object has this shape:
{
  "questions": [
    {
      "title": "short descriptive title",
      "content": "the full question text",
      "options": ["...", "...", "...", "..."],
      "correct_answer": "the correct option text, or the expected answer for non-choice questions",
      "explanation": "why the correct answer is correct",
      "estimated_time": 10,
      "starter_code": "optional, coding questions only",
      "programming_language": "optional, coding questions only"
    }
  ]
}

Rules:
- "options" is required for multiple_choice questions (exactly 4 entries, one matching correct_answer verbatim) and must be omitted for every other type.
- "estimated_time" is minutes, an integer between 2 and 60.
- Coding questions include "starter_code" and "programming_language".
- Questions must be self-contained: no references to "the lecture" or external material.`
}

func BuildUserPrompt(kp models.KnowledgePoint, questionType models.QuestionType, difficulty models.Difficulty, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d %s practice question(s) at %s difficulty for the knowledge point %q (category: %s).\n",
		count, questionType, difficulty, kp.Name, kp.Category)
	if kp.Description != "" {
		fmt.Fprintf(&b, "Knowledge point description: %s\n", kp.Description)
	}

	switch questionType {
	case models.TypeMultipleChoice:
		b.WriteString("Each question needs exactly 4 options with plausible distractors drawn from real misconceptions.\n")
	case models.TypeCoding:
		b.WriteString("Each question needs starter code, a programming language, and a precise statement of the expected behavior.\n")
	case models.TypePractical:
		b.WriteString("Each question should describe a realistic hands-on task with a verifiable outcome.\n")
	}

	b.WriteString("Vary the scenarios so no two questions test the identical fact.")
	return b.String()
}
