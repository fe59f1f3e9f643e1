package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/question-bank/backend/internal/models"
)

const validMC = `{
	"questions": [
		{
			"title": "Slice growth",
			"content": "What happens to the backing array when a slice append exceeds capacity?",
			"options": ["It is resized in place", "A larger array is allocated and elements copied", "The append fails", "Capacity is unlimited"],
			"correct_answer": "A larger array is allocated and elements copied",
			"explanation": "Append allocates a new backing array when capacity is exhausted.",
			"estimated_time": 5
		}
	]
}`

func TestParseResponseValid(t *testing.T) {
	batch, err := ParseResponse(validMC, models.TypeMultipleChoice)
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	if len(batch.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(batch.Questions))
	}
	if batch.Questions[0].Title != "Slice growth" {
		t.Errorf("Title = %q", batch.Questions[0].Title)
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	fenced := "```json\n" + validMC + "\n```"
	if _, err := ParseResponse(fenced, models.TypeMultipleChoice); err != nil {
		t.Errorf("ParseResponse with fences: %v", err)
	}

	bare := "```\n" + validMC + "\n```"
	if _, err := ParseResponse(bare, models.TypeMultipleChoice); err != nil {
		t.Errorf("ParseResponse with bare fences: %v", err)
	}
}

func TestParseResponseInvalidJSON(t *testing.T) {
	if _, err := ParseResponse("not json at all", models.TypeTheory); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseResponseEmptyBatch(t *testing.T) {
	if _, err := ParseResponse(`{"questions": []}`, models.TypeTheory); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestParseResponseValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		qtype   models.QuestionType
		wantErr string
	}{
		{
			"wrong option count",
			`{"questions":[{"title":"t","content":"c","options":["a","b"],"correct_answer":"a","explanation":"e","estimated_time":5}]}`,
			models.TypeMultipleChoice,
			"expected 4 options",
		},
		{
			"answer not among options",
			`{"questions":[{"title":"t","content":"c","options":["a","b","c","d"],"correct_answer":"z","explanation":"e","estimated_time":5}]}`,
			models.TypeMultipleChoice,
			"not among options",
		},
		{
			"missing language for coding",
			`{"questions":[{"title":"t","content":"c","correct_answer":"a","explanation":"e","estimated_time":5}]}`,
			models.TypeCoding,
			"missing programming_language",
		},
		{
			"estimated time out of range",
			`{"questions":[{"title":"t","content":"c","correct_answer":"a","explanation":"e","estimated_time":90}]}`,
			models.TypeTheory,
			"estimated_time",
		},
		{
			"empty explanation",
			`{"questions":[{"title":"t","content":"c","correct_answer":"a","explanation":"","estimated_time":5}]}`,
			models.TypeTheory,
			"empty explanation",
		},
	}

	for _, tt := range tests {
		_, err := ParseResponse(tt.body, tt.qtype)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestMockClientOutputParses(t *testing.T) {
	resp, err := NewMockClient().Generate(context.Background(), "", "")
	if err != nil {
		t.Fatalf("mock generate: %v", err)
	}
	for _, qt := range []models.QuestionType{models.TypeTheory, models.TypeMultipleChoice, models.TypeCoding} {
		if _, err := ParseResponse(resp.Content, qt); err != nil {
			t.Errorf("mock output invalid for %s: %v", qt, err)
		}
	}
}
