package recommend

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/question-bank/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetRecommendations handles GET /users/{id}/recommendations?count=N.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	count := 0
	if s := r.URL.Query().Get("count"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			count = v
		}
	}

	questions, err := h.service.Recommend(r.Context(), userID, count)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		log.Printf("[recommend] recommendations failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build recommendations"})
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}
	writeJSON(w, http.StatusOK, models.RecommendationResponse{
		UserID:          userID,
		Recommendations: questions,
		Count:           len(questions),
	})
}

// GetLearningPath handles GET /users/{id}/learning-path.
func (h *Handler) GetLearningPath(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	path, err := h.service.LearningPath(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		log.Printf("[recommend] learning path failed for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to build learning path"})
		return
	}

	writeJSON(w, http.StatusOK, path)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
