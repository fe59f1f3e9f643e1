package recommend

import (
	"github.com/question-bank/backend/internal/models"
)

// Diversify selects up to count questions from the score-sorted list,
// spreading the selection across knowledge points and question types.
//
// Pass one walks the list in score order and admits a question when its
// knowledge point is new to the selection, when fewer than count/3 picks
// share its type, or when less than half the quota is filled. Pass two
// tops up from the remaining highest scorers, ignoring diversity. The
// returned order is admission order, not score order.
func Diversify(scored []models.ScoredQuestion, count int) []models.Question {
	if count <= 0 {
		return nil
	}
	if len(scored) <= count {
		all := make([]models.Question, len(scored))
		for i, sq := range scored {
			all[i] = sq.Question
		}
		return all
	}

	selected := make([]models.Question, 0, count)
	usedKnowledgePoints := make(map[int64]bool)
	typeCounts := make(map[models.QuestionType]int)

	for _, sq := range scored {
		if len(selected) >= count {
			break
		}
		q := sq.Question

		kpUnused := !usedKnowledgePoints[q.KnowledgePointID]
		typeRoom := typeCounts[q.QuestionType] < count/3

		if kpUnused || typeRoom || len(selected) < count/2 {
			selected = append(selected, q)
			usedKnowledgePoints[q.KnowledgePointID] = true
			typeCounts[q.QuestionType]++
		}
	}

	if len(selected) < count {
		chosen := make(map[int64]bool, len(selected))
		for _, q := range selected {
			chosen[q.ID] = true
		}
		for _, sq := range scored {
			if len(selected) >= count {
				break
			}
			if chosen[sq.Question.ID] {
				continue
			}
			selected = append(selected, sq.Question)
			chosen[sq.Question.ID] = true
		}
	}

	return selected
}
