package models

import "time"

type QuestionType string

const (
	TypeTheory         QuestionType = "theory"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeCoding         QuestionType = "coding"
	TypePractical      QuestionType = "practical"
)

var ValidQuestionTypes = map[QuestionType]bool{
	TypeTheory:         true,
	TypeMultipleChoice: true,
	TypeCoding:         true,
	TypePractical:      true,
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

type InteractionType string

const (
	InteractionTheory   InteractionType = "theory"
	InteractionPractice InteractionType = "practice"
	InteractionMixed    InteractionType = "mixed"
)

var ValidInteractionTypes = map[InteractionType]bool{
	InteractionTheory:   true,
	InteractionPractice: true,
	InteractionMixed:    true,
}

// ── Core Structs ───────────────────────────────────────

type KnowledgePoint struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Description     string `json:"description,omitempty"`
	DifficultyLevel int    `json:"difficulty_level"`
}

type Question struct {
	ID               int64        `json:"id"`
	Title            string       `json:"title"`
	Content          string       `json:"content"`
	QuestionType     QuestionType `json:"question_type"`
	Difficulty       Difficulty   `json:"difficulty"`
	EstimatedTime    int          `json:"estimated_time"` // minutes
	KnowledgePointID int64        `json:"knowledge_point_id"`
	Options          []string     `json:"options,omitempty"`
	CorrectAnswer    string       `json:"correct_answer,omitempty"`
	Explanation      string       `json:"explanation,omitempty"`

	// Coding questions only
	ProgrammingLanguage string     `json:"programming_language,omitempty"`
	StarterCode         string     `json:"starter_code,omitempty"`
	TestCases           []TestCase `json:"test_cases,omitempty"`
	ExternalPlatform    string     `json:"external_platform,omitempty"`
	ExternalID          string     `json:"external_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

// ── Request/Response Types ────────────────────────────

type QuestionFilter struct {
	QuestionType     *QuestionType
	Difficulty       *Difficulty
	KnowledgePointID *int64
	Page             int
	PageSize         int
}

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

type KnowledgePointQuestionsResponse struct {
	KnowledgePoint KnowledgePoint `json:"knowledge_point"`
	Questions      []Question     `json:"questions"`
}

type GenerateQuestionsRequest struct {
	KnowledgePointID int64        `json:"knowledge_point_id"`
	QuestionType     QuestionType `json:"question_type"`
	Difficulty       Difficulty   `json:"difficulty"`
	Count            int          `json:"count"`
}

type GenerateQuestionsResponse struct {
	Created   []Question `json:"created"`
	Count     int        `json:"count"`
	ModelUsed string     `json:"model_used"`
}
