package questions

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/question-bank/backend/internal/models"
)

type Handler struct {
	service *Service
	store   *Store
}

func NewHandler(service *Service, store *Store) *Handler {
	return &Handler{service: service, store: store}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ListQuestions handles GET /questions with optional type, difficulty,
// knowledge_point_id, page and page_size query parameters.
func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.QuestionFilter{
		Page:     intQueryParam(query, "page", 1),
		PageSize: intQueryParam(query, "page_size", 20),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	if t := query.Get("type"); t != "" {
		qt := models.QuestionType(t)
		if !models.ValidQuestionTypes[qt] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid question type"})
			return
		}
		filter.QuestionType = &qt
	}
	if d := query.Get("difficulty"); d != "" {
		diff := models.Difficulty(d)
		if !models.ValidDifficulties[diff] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid difficulty"})
			return
		}
		filter.Difficulty = &diff
	}
	if kp := query.Get("knowledge_point_id"); kp != "" {
		kpID, err := strconv.ParseInt(kp, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid knowledge_point_id"})
			return
		}
		filter.KnowledgePointID = &kpID
	}

	questions, total, err := h.store.ListQuestions(filter)
	if err != nil {
		log.Printf("[questions] list: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}

	writeJSON(w, http.StatusOK, models.QuestionListResponse{
		Questions: questions,
		Total:     total,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	})
}

// GetQuestion handles GET /questions/{id}.
func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	question, err := h.store.GetQuestion(id)
	if err != nil {
		if IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
			return
		}
		log.Printf("[questions] get %d: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load question"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// ListKnowledgePoints handles GET /knowledge-points.
func (h *Handler) ListKnowledgePoints(w http.ResponseWriter, r *http.Request) {
	kps, err := h.store.ListKnowledgePoints()
	if err != nil {
		log.Printf("[questions] list knowledge points: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list knowledge points"})
		return
	}
	if kps == nil {
		kps = []models.KnowledgePoint{}
	}
	writeJSON(w, http.StatusOK, kps)
}

// GetKnowledgePointQuestions handles GET /knowledge-points/{id}/questions.
func (h *Handler) GetKnowledgePointQuestions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kpID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid knowledge point ID"})
		return
	}

	kp, err := h.store.GetKnowledgePoint(kpID)
	if err != nil {
		if IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Knowledge point not found"})
			return
		}
		log.Printf("[questions] get knowledge point %d: %v", kpID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load knowledge point"})
		return
	}

	questions, _, err := h.store.ListQuestions(models.QuestionFilter{
		KnowledgePointID: &kpID,
		Page:             1,
		PageSize:         100,
	})
	if err != nil {
		log.Printf("[questions] questions for knowledge point %d: %v", kpID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load questions"})
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}

	writeJSON(w, http.StatusOK, models.KnowledgePointQuestionsResponse{
		KnowledgePoint: *kp,
		Questions:      questions,
	})
}

// SubmitAnswer handles POST /questions/{id}/submit for the authenticated user.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	vars := mux.Vars(r)
	questionID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.TimeSpent < 0 {
		req.TimeSpent = 0
	}

	resp, err := h.service.SubmitAnswer(r.Context(), userID, questionID, req)
	if err != nil {
		if IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
			return
		}
		log.Printf("[questions] submit answer for question %d: %v", questionID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit answer"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GenerateQuestions handles POST /questions/generate.
func (h *Handler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if !models.ValidQuestionTypes[req.QuestionType] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid question type"})
		return
	}
	if !models.ValidDifficulties[req.Difficulty] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid difficulty"})
		return
	}
	if req.Count <= 0 {
		req.Count = 3
	}
	if req.Count > 10 {
		req.Count = 10
	}

	resp, err := h.service.GenerateQuestions(r.Context(), req)
	if err != nil {
		if IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Knowledge point not found"})
			return
		}
		log.Printf("[questions] generate: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Generation failed: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
