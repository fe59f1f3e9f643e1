package questions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/question-bank/backend/internal/generator"
	"github.com/question-bank/backend/internal/judge"
	"github.com/question-bank/backend/internal/models"
	"github.com/question-bank/backend/internal/recommend"
	"github.com/question-bank/backend/internal/stats"
)

// Service handles answer submission and question generation. Submitting
// an answer grades it, appends a learning record, updates the knowledge
// stats, and invalidates the user's cached recommendations.
type Service struct {
	store     *Store
	statStore *stats.Store
	judge     *judge.Client
	generator *generator.Generator
	cache     *recommend.Cache
}

func NewService(store *Store, statStore *stats.Store, judgeClient *judge.Client, gen *generator.Generator, cache *recommend.Cache) *Service {
	return &Service{
		store:     store,
		statStore: statStore,
		judge:     judgeClient,
		generator: gen,
		cache:     cache,
	}
}

func (s *Service) SubmitAnswer(ctx context.Context, userID, questionID int64, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	question, err := s.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}

	var correct bool
	var execResult *models.ExecutionResult

	if question.QuestionType == models.TypeCoding {
		execResult, err = s.judge.RunTests(ctx, req.UserAnswer, question.ProgrammingLanguage, question.TestCases)
		if err != nil {
			return nil, fmt.Errorf("judge submission: %w", err)
		}
		correct = execResult.Success
	} else {
		correct = GradeAnswer(*question, req.UserAnswer)
	}

	previous, err := s.store.CountAttempts(userID, questionID)
	if err != nil {
		return nil, err
	}

	interaction := req.InteractionType
	if !models.ValidInteractionTypes[interaction] {
		interaction = models.InteractionMixed
	}

	now := time.Now()
	record := &models.LearningRecord{
		UserID:          userID,
		QuestionID:      questionID,
		IsCorrect:       correct,
		TimeSpent:       req.TimeSpent,
		AttemptCount:    previous + 1,
		UserAnswer:      req.UserAnswer,
		InteractionType: interaction,
		StartedAt:       now.Add(-time.Duration(req.TimeSpent) * time.Second),
		CompletedAt:     now,
	}
	if err := s.store.InsertLearningRecord(record); err != nil {
		return nil, err
	}

	updated, err := s.statStore.RecordAttempt(ctx, userID, question.KnowledgePointID, correct, req.TimeSpent)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)

	return &models.SubmitAnswerResponse{
		Correct:          correct,
		CorrectAnswer:    question.CorrectAnswer,
		Explanation:      question.Explanation,
		LearningRecordID: record.ID,
		UpdatedStats:     updated,
		ExecutionResult:  execResult,
	}, nil
}

// GenerateQuestions drafts questions with the model and persists the ones
// that validate. Non-multiple-choice drafts drop the options the mock
// generator still fills in.
func (s *Service) GenerateQuestions(ctx context.Context, req models.GenerateQuestionsRequest) (*models.GenerateQuestionsResponse, error) {
	kp, err := s.store.GetKnowledgePoint(req.KnowledgePointID)
	if err != nil {
		return nil, err
	}

	batch, _, err := s.generator.GenerateQuestions(ctx, *kp, req.QuestionType, req.Difficulty, req.Count)
	if err != nil {
		return nil, err
	}

	created := make([]models.Question, 0, len(batch.Questions))
	for _, draft := range batch.Questions {
		q := models.Question{
			Title:               draft.Title,
			Content:             draft.Content,
			QuestionType:        req.QuestionType,
			Difficulty:          req.Difficulty,
			EstimatedTime:       draft.EstimatedTime,
			KnowledgePointID:    kp.ID,
			CorrectAnswer:       draft.CorrectAnswer,
			Explanation:         draft.Explanation,
			ProgrammingLanguage: draft.ProgrammingLanguage,
			StarterCode:         draft.StarterCode,
		}
		if req.QuestionType == models.TypeMultipleChoice {
			q.Options = draft.Options
		}
		if err := s.store.CreateQuestion(&q); err != nil {
			return nil, err
		}
		created = append(created, q)
	}

	return &models.GenerateQuestionsResponse{
		Created:   created,
		Count:     len(created),
		ModelUsed: s.generator.ModelName(),
	}, nil
}

// IsNotFound reports whether err is one of the store's not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuestionNotFound) || errors.Is(err, ErrKnowledgePointNotFound)
}
