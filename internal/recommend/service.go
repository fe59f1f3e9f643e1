package recommend

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/question-bank/backend/internal/models"
)

const defaultRecommendationCount = 10

// Service runs the recommendation pipeline: profile, candidates, scoring,
// diversification. All state is read from the store per request.
type Service struct {
	store    *Store
	cache    *Cache
	weights  Weights
	maxCount int
}

// NewService wires the pipeline. cache may be nil to disable caching.
// MAX_RECOMMENDATIONS caps the count a caller may request, default 20.
func NewService(store *Store, cache *Cache) (*Service, error) {
	weights := DefaultWeights()
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring weights: %w", err)
	}

	maxCount := 20
	if v := os.Getenv("MAX_RECOMMENDATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxCount = n
		}
	}

	return &Service{
		store:    store,
		cache:    cache,
		weights:  weights,
		maxCount: maxCount,
	}, nil
}

// Recommend returns up to count questions for the user, best fit first
// subject to diversification. A non-positive count falls back to the
// default of 10; counts above the configured maximum are clamped.
func (s *Service) Recommend(ctx context.Context, userID int64, count int) ([]models.Question, error) {
	if count <= 0 {
		count = defaultRecommendationCount
	}
	if count > s.maxCount {
		count = s.maxCount
	}

	if cached, ok := s.cache.Get(ctx, userID, count); ok {
		return cached, nil
	}

	profile, err := s.buildProfile(userID)
	if err != nil {
		return nil, err
	}

	fresh, err := s.store.FreshQuestions(userID, time.Now().AddDate(0, 0, -RecentExclusionDays))
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	candidates := FilterCandidates(fresh, profile.PreferredTypes)
	scored := ScoreQuestions(*profile, candidates, s.weights)
	selected := Diversify(scored, count)

	s.cache.Set(ctx, userID, count, selected)
	return selected, nil
}

// Profile exposes the derived profile for the stats endpoint.
func (s *Service) Profile(userID int64) (*models.UserProfile, error) {
	return s.buildProfile(userID)
}

func (s *Service) buildProfile(userID int64) (*models.UserProfile, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	window, err := s.store.RecentAttempts(userID, time.Now().AddDate(0, 0, -HistoryWindowDays))
	if err != nil {
		return nil, fmt.Errorf("load history window: %w", err)
	}

	sample, err := s.store.LatestAttempts(userID, PatternSampleSize)
	if err != nil {
		return nil, fmt.Errorf("load pattern sample: %w", err)
	}

	profile := BuildProfile(*user, window, sample)
	return &profile, nil
}

// LearningPath builds a remediation sequence over the user's three
// weakest knowledge points, five questions each, easiest first. Knowledge
// points with no stored definition are skipped rather than failing the
// whole path.
func (s *Service) LearningPath(ctx context.Context, userID int64) (*models.LearningPathResponse, error) {
	profile, err := s.buildProfile(userID)
	if err != nil {
		return nil, err
	}

	weak := profile.WeakKnowledgePoints
	if len(weak) > 3 {
		weak = weak[:3]
	}

	resp := &models.LearningPathResponse{
		UserID: userID,
		Path:   []models.LearningPathItem{},
	}

	for _, kpID := range weak {
		kp, err := s.store.GetKnowledgePoint(kpID)
		if err == ErrKnowledgePointNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}

		questions, err := s.store.QuestionsForKnowledgePoint(kpID, 5)
		if err != nil {
			return nil, err
		}

		totalMinutes := 0
		for _, q := range questions {
			est := q.EstimatedTime
			if est == 0 {
				est = 10
			}
			totalMinutes += est
		}

		resp.Path = append(resp.Path, models.LearningPathItem{
			KnowledgePoint:      *kp,
			RecommendedSequence: questions,
			EstimatedTime:       totalMinutes,
		})
	}

	return resp, nil
}
