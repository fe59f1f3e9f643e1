package judge

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/question-bank/backend/internal/models"
)

type Handler struct {
	client  *Client
	catalog *Catalog
}

func NewHandler(client *Client, catalog *Catalog) *Handler {
	return &Handler{client: client, catalog: catalog}
}

// RunCode handles POST /code/run: execute arbitrary code, optionally
// against supplied test cases.
func (h *Handler) RunCode(w http.ResponseWriter, r *http.Request) {
	var req models.RunCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Code == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "code is required"})
		return
	}
	if !SupportedLanguage(req.Language) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unsupported language: " + req.Language})
		return
	}

	result, err := h.client.RunTests(r.Context(), req.Code, req.Language, req.TestCases)
	if err != nil {
		log.Printf("[judge] run code: %v", err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Code execution failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListExternalProblems handles GET /external/problems?difficulty=easy.
func (h *Handler) ListExternalProblems(w http.ResponseWriter, r *http.Request) {
	summaries := h.catalog.List(r.URL.Query().Get("difficulty"))
	writeJSON(w, http.StatusOK, summaries)
}

// GetExternalProblem handles GET /external/problems/{slug}.
func (h *Handler) GetExternalProblem(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	problem, ok := h.catalog.Get(slug)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Problem not found"})
		return
	}
	writeJSON(w, http.StatusOK, problem)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
