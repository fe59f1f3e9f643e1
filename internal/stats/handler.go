package stats

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/question-bank/backend/internal/models"
	"github.com/question-bank/backend/internal/recommend"
)

type Handler struct {
	store    *Store
	recStore *recommend.Store
}

func NewHandler(store *Store, recStore *recommend.Store) *Handler {
	return &Handler{store: store, recStore: recStore}
}

// GetUserStats handles GET /users/{id}/stats.
func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	user, err := h.recStore.GetUser(userID)
	if err != nil {
		if errors.Is(err, recommend.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		log.Printf("[stats] get user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load user"})
		return
	}

	total, correct, err := h.store.GetOverallCounts(userID)
	if err != nil {
		log.Printf("[stats] overall counts for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}

	knowledgeStats, err := h.store.GetUserStats(userID)
	if err != nil {
		log.Printf("[stats] knowledge stats for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}
	if knowledgeStats == nil {
		knowledgeStats = []models.KnowledgeStats{}
	}

	records, err := h.store.RecentRecords(userID, 10)
	if err != nil {
		log.Printf("[stats] recent records for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load stats"})
		return
	}
	if records == nil {
		records = []models.LearningRecord{}
	}

	writeJSON(w, http.StatusOK, models.UserStatsResponse{
		User:           *user,
		TotalQuestions: total,
		CorrectAnswers: correct,
		AccuracyRate:   Accuracy(correct, total),
		KnowledgeStats: knowledgeStats,
		RecentRecords:  records,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
