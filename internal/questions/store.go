package questions

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/question-bank/backend/internal/models"
)

var ErrQuestionNotFound = errors.New("question not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const questionColumns = `id, title, content, question_type, difficulty, estimated_time,
	knowledge_point_id, options, correct_answer, explanation,
	programming_language, starter_code, test_cases,
	external_platform, external_id, created_at`

// ── Questions ───────────────────────────────────────────

func (s *Store) ListQuestions(filter models.QuestionFilter) ([]models.Question, int, error) {
	var clauses []string
	var args []interface{}
	paramIdx := 1

	if filter.QuestionType != nil {
		clauses = append(clauses, fmt.Sprintf("question_type = $%d", paramIdx))
		args = append(args, *filter.QuestionType)
		paramIdx++
	}
	if filter.Difficulty != nil {
		clauses = append(clauses, fmt.Sprintf("difficulty = $%d", paramIdx))
		args = append(args, *filter.Difficulty)
		paramIdx++
	}
	if filter.KnowledgePointID != nil {
		clauses = append(clauses, fmt.Sprintf("knowledge_point_id = $%d", paramIdx))
		args = append(args, *filter.KnowledgePointID)
		paramIdx++
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	err := s.db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM questions %s`, where), args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf(`SELECT %s FROM questions %s ORDER BY id LIMIT $%d OFFSET $%d`,
		questionColumns, where, paramIdx, paramIdx+1)
	args = append(args, filter.PageSize, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, err
		}
		questions = append(questions, *q)
	}
	return questions, total, rows.Err()
}

func (s *Store) GetQuestion(questionID int64) (*models.Question, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionColumns),
		questionID,
	)
	q, err := scanQuestionRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

func (s *Store) CreateQuestion(q *models.Question) error {
	options, err := json.Marshal(q.Options)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	testCases, err := json.Marshal(q.TestCases)
	if err != nil {
		return fmt.Errorf("encode test cases: %w", err)
	}

	err = s.db.QueryRow(
		`INSERT INTO questions
		 (title, content, question_type, difficulty, estimated_time, knowledge_point_id,
		  options, correct_answer, explanation, programming_language, starter_code,
		  test_cases, external_platform, external_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		 RETURNING id, created_at`,
		q.Title, q.Content, q.QuestionType, q.Difficulty, q.EstimatedTime, q.KnowledgePointID,
		options, nullString(q.CorrectAnswer), nullString(q.Explanation),
		nullString(q.ProgrammingLanguage), nullString(q.StarterCode),
		testCases, nullString(q.ExternalPlatform), nullString(q.ExternalID),
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// ── Knowledge Points ────────────────────────────────────

func (s *Store) ListKnowledgePoints() ([]models.KnowledgePoint, error) {
	rows, err := s.db.Query(
		`SELECT id, name, category, COALESCE(description, ''), difficulty_level
		 FROM knowledge_points ORDER BY category, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list knowledge points: %w", err)
	}
	defer rows.Close()

	var kps []models.KnowledgePoint
	for rows.Next() {
		var kp models.KnowledgePoint
		if err := rows.Scan(&kp.ID, &kp.Name, &kp.Category, &kp.Description, &kp.DifficultyLevel); err != nil {
			return nil, fmt.Errorf("scan knowledge point: %w", err)
		}
		kps = append(kps, kp)
	}
	return kps, rows.Err()
}

var ErrKnowledgePointNotFound = errors.New("knowledge point not found")

func (s *Store) GetKnowledgePoint(kpID int64) (*models.KnowledgePoint, error) {
	var kp models.KnowledgePoint
	err := s.db.QueryRow(
		`SELECT id, name, category, COALESCE(description, ''), difficulty_level
		 FROM knowledge_points WHERE id = $1`,
		kpID,
	).Scan(&kp.ID, &kp.Name, &kp.Category, &kp.Description, &kp.DifficultyLevel)
	if err == sql.ErrNoRows {
		return nil, ErrKnowledgePointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get knowledge point: %w", err)
	}
	return &kp, nil
}

// ── Learning Records ────────────────────────────────────

func (s *Store) InsertLearningRecord(r *models.LearningRecord) error {
	err := s.db.QueryRow(
		`INSERT INTO learning_records
		 (user_id, question_id, is_correct, time_spent, attempt_count,
		  user_answer, interaction_type, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		r.UserID, r.QuestionID, r.IsCorrect, r.TimeSpent, r.AttemptCount,
		nullString(r.UserAnswer), nullString(string(r.InteractionType)),
		r.StartedAt, r.CompletedAt,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("insert learning record: %w", err)
	}
	return nil
}

// CountAttempts returns how many times the user has already answered the
// question, used to number the new attempt.
func (s *Store) CountAttempts(userID, questionID int64) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM learning_records WHERE user_id = $1 AND question_id = $2`,
		userID, questionID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return count, nil
}

// ── Scanning helpers ────────────────────────────────────

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestion(rows *sql.Rows) (*models.Question, error) {
	q, err := scanQuestionRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan question: %w", err)
	}
	return q, nil
}

func scanQuestionRow(row rowScanner) (*models.Question, error) {
	var q models.Question
	var options, testCases []byte
	var correctAnswer, explanation, lang, starter, platform, externalID sql.NullString
	if err := row.Scan(&q.ID, &q.Title, &q.Content, &q.QuestionType, &q.Difficulty,
		&q.EstimatedTime, &q.KnowledgePointID, &options, &correctAnswer, &explanation,
		&lang, &starter, &testCases, &platform, &externalID, &q.CreatedAt); err != nil {
		return nil, err
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

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
