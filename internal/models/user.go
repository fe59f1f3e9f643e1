package models

import "time"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"-"`

	// Learning preferences
	PreferredDifficulty      Difficulty      `json:"preferred_difficulty"`
	PreferredQuestionTypes   []QuestionType  `json:"preferred_question_types"`
	PreferredInteractionType InteractionType `json:"preferred_interaction_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// PreferencesRequest carries a partial preferences update. Nil or
// unrecognized fields leave the stored value untouched; an invalid
// enum value degrades to the neutral default instead of failing.
type PreferencesRequest struct {
	PreferredDifficulty      *string  `json:"preferred_difficulty,omitempty"`
	PreferredQuestionTypes   []string `json:"preferred_question_types,omitempty"`
	PreferredInteractionType *string  `json:"preferred_interaction_type,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
