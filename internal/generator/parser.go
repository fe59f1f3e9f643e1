package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/question-bank/backend/internal/models"
)

type DraftBatch struct {
	Questions []DraftQuestion `json:"questions"`
}

// DraftQuestion is one model-authored question before it is persisted.
type DraftQuestion struct {
	Title               string   `json:"title"`
	Content             string   `json:"content"`
	Options             []string `json:"options,omitempty"`
	CorrectAnswer       string   `json:"correct_answer"`
	Explanation         string   `json:"explanation"`
	EstimatedTime       int      `json:"estimated_time"`
	StarterCode         string   `json:"starter_code,omitempty"`
	ProgrammingLanguage string   `json:"programming_language,omitempty"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse decodes and validates a generation response for the
// requested question type.
func ParseResponse(responseBody string, questionType models.QuestionType) (*DraftBatch, error) {
	cleaned := stripCodeFences(responseBody)

	var batch DraftBatch
	if err := json.Unmarshal([]byte(cleaned), &batch); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateBatch(&batch, questionType); err != nil {
		return nil, err
	}

	return &batch, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateBatch(batch *DraftBatch, questionType models.QuestionType) error {
	var errs []string

	if len(batch.Questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in batch"}}
	}

	for i, q := range batch.Questions {
		qNum := i + 1

		if q.Title == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty title", qNum))
		}
		if q.Content == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty content", qNum))
		}
		if q.CorrectAnswer == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty correct_answer", qNum))
		}
		if q.Explanation == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
		}
		if q.EstimatedTime < 2 || q.EstimatedTime > 60 {
			errs = append(errs, fmt.Sprintf("question %d: estimated_time %d outside range [2, 60]", qNum, q.EstimatedTime))
		}

		switch questionType {
		case models.TypeMultipleChoice:
			if len(q.Options) != 4 {
				errs = append(errs, fmt.Sprintf("question %d: expected 4 options, got %d", qNum, len(q.Options)))
				continue
			}
			found := false
			for _, opt := range q.Options {
				if opt == q.CorrectAnswer {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Sprintf("question %d: correct_answer not among options", qNum))
			}
		case models.TypeCoding:
			if q.ProgrammingLanguage == "" {
				errs = append(errs, fmt.Sprintf("question %d: coding question missing programming_language", qNum))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
