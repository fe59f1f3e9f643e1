package recommend

import (
	"github.com/question-bank/backend/internal/models"
)

// RecentExclusionDays is how long an attempted question stays out of the
// candidate pool.
const RecentExclusionDays = 7

// minCandidatePool is the smallest candidate set the type filter may
// leave behind before it is dropped entirely.
const minCandidatePool = 20

// FilterCandidates narrows a candidate pool to the user's preferred
// question types. fresh must already exclude recently attempted questions.
// When the type filter leaves fewer than 20 questions the filter is
// discarded and the whole fresh pool is returned, so the scorer always
// has enough material to diversify over.
func FilterCandidates(fresh []models.Question, preferredTypes []models.QuestionType) []models.Question {
	if len(preferredTypes) == 0 {
		return fresh
	}

	preferred := make(map[models.QuestionType]bool, len(preferredTypes))
	for _, qt := range preferredTypes {
		preferred[qt] = true
	}

	filtered := make([]models.Question, 0, len(fresh))
	for _, q := range fresh {
		if preferred[q.QuestionType] {
			filtered = append(filtered, q)
		}
	}

	if len(filtered) < minCandidatePool {
		return fresh
	}
	return filtered
}
