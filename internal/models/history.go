package models

import "time"

// ── Learning Records ─────────────────────────────────────

// LearningRecord is one completed attempt at a question. Records are
// immutable once written; the recommendation engine only ever reads them.
type LearningRecord struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	QuestionID      int64           `json:"question_id"`
	IsCorrect       bool            `json:"is_correct"`
	TimeSpent       int             `json:"time_spent"` // seconds
	AttemptCount    int             `json:"attempt_count"`
	UserAnswer      string          `json:"user_answer,omitempty"`
	InteractionType InteractionType `json:"interaction_type,omitempty"`
	StartedAt       time.Time       `json:"started_at"`
	CompletedAt     time.Time       `json:"completed_at"`
}

type SubmitAnswerRequest struct {
	UserAnswer      string          `json:"user_answer"`
	TimeSpent       int             `json:"time_spent"`
	InteractionType InteractionType `json:"interaction_type"`
}

type SubmitAnswerResponse struct {
	Correct          bool             `json:"is_correct"`
	CorrectAnswer    string           `json:"correct_answer"`
	Explanation      string           `json:"explanation,omitempty"`
	LearningRecordID int64            `json:"learning_record_id"`
	UpdatedStats     *KnowledgeStats  `json:"updated_stats,omitempty"`
	ExecutionResult  *ExecutionResult `json:"execution_result,omitempty"`
}

// ── Code Execution ───────────────────────────────────────

// ExecutionResult is the outcome of running submitted code through the
// external judge, with test-case tallies when test cases were supplied.
type ExecutionResult struct {
	Success         bool    `json:"success"`
	Output          string  `json:"output"`
	Error           string  `json:"error,omitempty"`
	ExecutionTime   float64 `json:"execution_time"` // seconds
	MemoryUsage     int     `json:"memory_usage"`   // KB
	TestCasesPassed int     `json:"test_cases_passed"`
	TotalTestCases  int     `json:"total_test_cases"`
}

type RunCodeRequest struct {
	Code      string     `json:"code"`
	Language  string     `json:"language"`
	TestCases []TestCase `json:"test_cases,omitempty"`
}

// ── Knowledge Stats ──────────────────────────────────────

type KnowledgeStats struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"user_id"`
	KnowledgePointID int64           `json:"knowledge_point_id"`
	TotalAttempts    int             `json:"total_attempts"`
	CorrectAttempts  int             `json:"correct_attempts"`
	AccuracyRate     float64         `json:"accuracy_rate"`
	TotalTimeSpent   int             `json:"total_time_spent"` // seconds
	AverageTime      float64         `json:"average_time"`     // seconds
	MasteryLevel     float64         `json:"mastery_level"`    // 0-1
	LastPracticeTime *time.Time      `json:"last_practice_time,omitempty"`
	KnowledgePoint   *KnowledgePoint `json:"knowledge_point,omitempty"`
}

type UserStatsResponse struct {
	User           User             `json:"user"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	AccuracyRate   float64          `json:"accuracy_rate"`
	KnowledgeStats []KnowledgeStats `json:"knowledge_stats"`
	RecentRecords  []LearningRecord `json:"recent_records"`
}
