package models

import "time"

// ── Recommendation Profile Types ─────────────────────────
//
// These are derived per request from learning history and discarded
// after responding. They are never persisted.

type LearnerType string

const (
	LearnerNew       LearnerType = "new_learner"
	LearnerIntensive LearnerType = "intensive_learner"
	LearnerRegular   LearnerType = "regular_learner"
	LearnerCasual    LearnerType = "casual_learner"
	LearnerSporadic  LearnerType = "sporadic_learner"
)

type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// LearningPattern summarizes a user's study cadence over their most
// recent attempts.
type LearningPattern struct {
	Type          LearnerType  `json:"type"`
	Intensity     Intensity    `json:"intensity"`
	PreferredType QuestionType `json:"preferred_type,omitempty"`
	Consistency   float64      `json:"consistency"` // active days / span, 0-1
}

// UserProfile is the per-user learning profile the scorer consumes.
type UserProfile struct {
	UserID                int64           `json:"user_id"`
	PreferredDifficulty   Difficulty      `json:"preferred_difficulty"`
	PreferredTypes        []QuestionType  `json:"preferred_types"`
	PreferredInteraction  InteractionType `json:"preferred_interaction"`
	WeakKnowledgePoints   []int64         `json:"weak_knowledge_points"`
	StrongKnowledgePoints []int64         `json:"strong_knowledge_points"`
	RecentActivity        int             `json:"recent_activity"`
	AvgAccuracy           float64         `json:"avg_accuracy"`           // 0-1
	AvgTimePerQuestion    float64         `json:"avg_time_per_question"` // seconds
	Pattern               LearningPattern `json:"learning_pattern"`
}

// Attempt is a learning record joined with the attempted question's
// knowledge point and type, the shape the profile builder works from.
type Attempt struct {
	QuestionID       int64
	KnowledgePointID int64
	QuestionType     QuestionType
	Correct          bool
	TimeSpentSeconds int
	CompletedAt      time.Time
}

// ScoredQuestion pairs a candidate question with its relevance score.
type ScoredQuestion struct {
	Question Question `json:"question"`
	Score    float64  `json:"score"`
}

// ── API Types ────────────────────────────────────────────

type RecommendationResponse struct {
	UserID          int64      `json:"user_id"`
	Recommendations []Question `json:"recommendations"`
	Count           int        `json:"count"`
}

type LearningPathItem struct {
	KnowledgePoint      KnowledgePoint `json:"knowledge_point"`
	RecommendedSequence []Question     `json:"recommended_sequence"`
	EstimatedTime       int            `json:"estimated_time"` // minutes
}

type LearningPathResponse struct {
	UserID int64              `json:"user_id"`
	Path   []LearningPathItem `json:"path"`
}
