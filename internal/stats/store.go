package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/question-bank/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordAttempt folds one answered question into the user's aggregate row
// for that knowledge point, creating the row on first contact. The
// read-modify-write runs under a row lock so concurrent submissions from
// the same user cannot drop an attempt.
func (s *Store) RecordAttempt(ctx context.Context, userID, knowledgePointID int64, correct bool, timeSpent int) (*models.KnowledgeStats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO user_knowledge_stats (user_id, knowledge_point_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, knowledge_point_id) DO NOTHING`,
		userID, knowledgePointID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert stats row: %w", err)
	}

	var st models.KnowledgeStats
	err = tx.QueryRow(
		`SELECT id, user_id, knowledge_point_id, total_attempts, correct_attempts, total_time_spent
		 FROM user_knowledge_stats
		 WHERE user_id = $1 AND knowledge_point_id = $2
		 FOR UPDATE`,
		userID, knowledgePointID,
	).Scan(&st.ID, &st.UserID, &st.KnowledgePointID, &st.TotalAttempts, &st.CorrectAttempts, &st.TotalTimeSpent)
	if err != nil {
		return nil, fmt.Errorf("lock stats row: %w", err)
	}

	st.TotalAttempts++
	if correct {
		st.CorrectAttempts++
	}
	st.TotalTimeSpent += timeSpent
	st.AccuracyRate = Accuracy(st.CorrectAttempts, st.TotalAttempts)
	st.AverageTime = AverageTime(st.TotalTimeSpent, st.TotalAttempts)
	st.MasteryLevel = Mastery(st.CorrectAttempts, st.TotalAttempts)
	now := time.Now()
	st.LastPracticeTime = &now

	_, err = tx.Exec(
		`UPDATE user_knowledge_stats
		 SET total_attempts = $1, correct_attempts = $2, total_time_spent = $3,
		     accuracy_rate = $4, average_time = $5, mastery_level = $6,
		     last_practice_time = $7
		 WHERE id = $8`,
		st.TotalAttempts, st.CorrectAttempts, st.TotalTimeSpent,
		st.AccuracyRate, st.AverageTime, st.MasteryLevel, now, st.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update stats row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit stats: %w", err)
	}
	return &st, nil
}

// GetUserStats returns every per-knowledge-point aggregate for the user,
// joined with the knowledge point definitions, highest mastery first.
func (s *Store) GetUserStats(userID int64) ([]models.KnowledgeStats, error) {
	rows, err := s.db.Query(
		`SELECT s.id, s.user_id, s.knowledge_point_id, s.total_attempts, s.correct_attempts,
		        s.accuracy_rate, s.total_time_spent, s.average_time, s.mastery_level,
		        s.last_practice_time,
		        kp.id, kp.name, kp.category, COALESCE(kp.description, ''), kp.difficulty_level
		 FROM user_knowledge_stats s
		 JOIN knowledge_points kp ON kp.id = s.knowledge_point_id
		 WHERE s.user_id = $1
		 ORDER BY s.mastery_level DESC, kp.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get user stats: %w", err)
	}
	defer rows.Close()

	var all []models.KnowledgeStats
	for rows.Next() {
		var st models.KnowledgeStats
		var kp models.KnowledgePoint
		if err := rows.Scan(&st.ID, &st.UserID, &st.KnowledgePointID, &st.TotalAttempts, &st.CorrectAttempts,
			&st.AccuracyRate, &st.TotalTimeSpent, &st.AverageTime, &st.MasteryLevel,
			&st.LastPracticeTime,
			&kp.ID, &kp.Name, &kp.Category, &kp.Description, &kp.DifficultyLevel); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		st.KnowledgePoint = &kp
		all = append(all, st)
	}
	return all, rows.Err()
}

// GetOverallCounts returns the user's all-time attempt and correct totals.
func (s *Store) GetOverallCounts(userID int64) (total, correct int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct)
		 FROM learning_records WHERE user_id = $1`,
		userID,
	).Scan(&total, &correct)
	if err != nil {
		return 0, 0, fmt.Errorf("overall counts: %w", err)
	}
	return total, correct, nil
}

// RecentRecords returns the user's newest learning records.
func (s *Store) RecentRecords(userID int64, limit int) ([]models.LearningRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, question_id, is_correct, time_spent, attempt_count,
		        COALESCE(user_answer, ''), COALESCE(interaction_type, ''),
		        started_at, completed_at
		 FROM learning_records
		 WHERE user_id = $1
		 ORDER BY completed_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent records: %w", err)
	}
	defer rows.Close()

	var records []models.LearningRecord
	for rows.Next() {
		var r models.LearningRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.QuestionID, &r.IsCorrect, &r.TimeSpent,
			&r.AttemptCount, &r.UserAnswer, &r.InteractionType,
			&r.StartedAt, &r.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
