package recommend

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/question-bank/backend/internal/models"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrKnowledgePointNotFound = errors.New("knowledge point not found")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Profile Inputs ──────────────────────────────────────

func (s *Store) GetUser(userID int64) (*models.User, error) {
	var u models.User
	var prefTypes []byte
	err := s.db.QueryRow(
		`SELECT id, username, email, password_hash,
		        preferred_difficulty, preferred_question_types, preferred_interaction_type,
		        created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password,
		&u.PreferredDifficulty, &prefTypes, &u.PreferredInteractionType,
		&u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(prefTypes) > 0 {
		if err := json.Unmarshal(prefTypes, &u.PreferredQuestionTypes); err != nil {
			return nil, fmt.Errorf("decode preferred types: %w", err)
		}
	}
	return &u, nil
}

// RecentAttempts returns the user's completed attempts since the cutoff,
// joined with each question's knowledge point and type.
func (s *Store) RecentAttempts(userID int64, since time.Time) ([]models.Attempt, error) {
	rows, err := s.db.Query(
		`SELECT lr.question_id, q.knowledge_point_id, q.question_type,
		        lr.is_correct, lr.time_spent, lr.completed_at
		 FROM learning_records lr
		 JOIN questions q ON q.id = lr.question_id
		 WHERE lr.user_id = $1 AND lr.completed_at >= $2
		 ORDER BY lr.completed_at DESC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	defer rows.Close()
	return scanAttempts(rows)
}

// LatestAttempts returns the user's newest attempts regardless of age,
// capped at limit.
func (s *Store) LatestAttempts(userID int64, limit int) ([]models.Attempt, error) {
	rows, err := s.db.Query(
		`SELECT lr.question_id, q.knowledge_point_id, q.question_type,
		        lr.is_correct, lr.time_spent, lr.completed_at
		 FROM learning_records lr
		 JOIN questions q ON q.id = lr.question_id
		 WHERE lr.user_id = $1
		 ORDER BY lr.completed_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("latest attempts: %w", err)
	}
	defer rows.Close()
	return scanAttempts(rows)
}

func scanAttempts(rows *sql.Rows) ([]models.Attempt, error) {
	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.QuestionID, &a.KnowledgePointID, &a.QuestionType,
			&a.Correct, &a.TimeSpentSeconds, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ── Candidate Questions ─────────────────────────────────

// FreshQuestions returns every question the user has not attempted since
// the cutoff. Questions attempted only before the cutoff are included.
func (s *Store) FreshQuestions(userID int64, attemptedSince time.Time) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, title, content, question_type, difficulty, estimated_time,
		        knowledge_point_id, options, correct_answer, explanation,
		        programming_language, starter_code, test_cases,
		        external_platform, external_id, created_at
		 FROM questions
		 WHERE id NOT IN (
		     SELECT question_id FROM learning_records
		     WHERE user_id = $1 AND completed_at >= $2
		 )
		 ORDER BY id`,
		userID, attemptedSince,
	)
	if err != nil {
		return nil, fmt.Errorf("fresh questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}

func scanQuestion(rows *sql.Rows) (*models.Question, error) {
	var q models.Question
	var options, testCases []byte
	var correctAnswer, explanation, lang, starter, platform, externalID sql.NullString
	if err := rows.Scan(&q.ID, &q.Title, &q.Content, &q.QuestionType, &q.Difficulty,
		&q.EstimatedTime, &q.KnowledgePointID, &options, &correctAnswer, &explanation,
		&lang, &starter, &testCases, &platform, &externalID, &q.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan question: %w", err)
	}
	q.CorrectAnswer = correctAnswer.String
	q.Explanation = explanation.String
	q.ProgrammingLanguage = lang.String
	q.StarterCode = starter.String
	q.ExternalPlatform = platform.String
	q.ExternalID = externalID.String
	if len(options) > 0 {
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
	}
	if len(testCases) > 0 {
		if err := json.Unmarshal(testCases, &q.TestCases); err != nil {
			return nil, fmt.Errorf("decode test cases: %w", err)
		}
	}
	return &q, nil
}

// ── Learning Path ───────────────────────────────────────

func (s *Store) GetKnowledgePoint(kpID int64) (*models.KnowledgePoint, error) {
	var kp models.KnowledgePoint
	var description sql.NullString
	err := s.db.QueryRow(
		`SELECT id, name, category, description, difficulty_level
		 FROM knowledge_points WHERE id = $1`,
		kpID,
	).Scan(&kp.ID, &kp.Name, &kp.Category, &description, &kp.DifficultyLevel)
	if err == sql.ErrNoRows {
		return nil, ErrKnowledgePointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get knowledge point: %w", err)
	}
	kp.Description = description.String
	return &kp, nil
}

// QuestionsForKnowledgePoint returns up to limit questions for the given
// knowledge point, easiest first.
func (s *Store) QuestionsForKnowledgePoint(kpID int64, limit int) ([]models.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, title, content, question_type, difficulty, estimated_time,
		        knowledge_point_id, options, correct_answer, explanation,
		        programming_language, starter_code, test_cases,
		        external_platform, external_id, created_at
		 FROM questions
		 WHERE knowledge_point_id = $1
		 ORDER BY CASE difficulty WHEN 'easy' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, id
		 LIMIT $2`,
		kpID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("questions for knowledge point: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}
