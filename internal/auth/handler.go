package auth

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/question-bank/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// JWTSecret is the HMAC signing key for auth tokens, overridable via
// JWT_SECRET. It never leaves the backend.
var JWTSecret = []byte(jwtSecretFromEnv())

func jwtSecretFromEnv() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "question-bank-staging-signing-key-2026"
}

type Handler struct {
	db *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email, username, and password are required"})
		return
	}
	if len(req.Password) < 8 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Password must be at least 8 characters"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	var user models.User
	err = h.db.QueryRow(
		`INSERT INTO users (username, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING id, username, email, preferred_difficulty, preferred_interaction_type, created_at, updated_at`,
		req.Username, req.Email, string(hashedPassword), time.Now(),
	).Scan(&user.ID, &user.Username, &user.Email,
		&user.PreferredDifficulty, &user.PreferredInteractionType,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "An account with this email or username already exists"})
			return
		}
		log.Printf("[auth] register: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create account"})
		return
	}
	user.PreferredQuestionTypes = []models.QuestionType{}

	token, err := generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
		return
	}

	user, hashedPassword, err := h.userByEmail(req.Email)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}
	if err != nil {
		log.Printf("[auth] login: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	token, err := generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: *user})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	user, err := h.userByID(userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /users, a lightweight roster for the demo UI.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(
		`SELECT id, username, email, preferred_difficulty, preferred_question_types,
		        preferred_interaction_type, created_at, updated_at
		 FROM users ORDER BY id`,
	)
	if err != nil {
		log.Printf("[auth] list users: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list users"})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.Printf("[auth] scan user: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list users"})
			return
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[auth] list users: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list users"})
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	user, err := h.userByID(userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdatePreferences handles PUT /users/{id}/preferences. Fields absent
// from the body keep their stored value; invalid enum values reset to
// the neutral default instead of erroring.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	authID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid user ID"})
		return
	}
	if userID != authID {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Cannot update another user's preferences"})
		return
	}

	var req models.PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userByID(userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	if req.PreferredDifficulty != nil {
		diff := models.Difficulty(*req.PreferredDifficulty)
		if !models.ValidDifficulties[diff] {
			diff = models.DifficultyMedium
		}
		user.PreferredDifficulty = diff
	}
	if req.PreferredQuestionTypes != nil {
		types := make([]models.QuestionType, 0, len(req.PreferredQuestionTypes))
		for _, t := range req.PreferredQuestionTypes {
			qt := models.QuestionType(t)
			if models.ValidQuestionTypes[qt] {
				types = append(types, qt)
			}
		}
		user.PreferredQuestionTypes = types
	}
	if req.PreferredInteractionType != nil {
		it := models.InteractionType(*req.PreferredInteractionType)
		if !models.ValidInteractionTypes[it] {
			it = models.InteractionMixed
		}
		user.PreferredInteractionType = it
	}

	prefTypes, err := json.Marshal(user.PreferredQuestionTypes)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	_, err = h.db.Exec(
		`UPDATE users
		 SET preferred_difficulty = $1, preferred_question_types = $2,
		     preferred_interaction_type = $3, updated_at = NOW()
		 WHERE id = $4`,
		user.PreferredDifficulty, prefTypes, user.PreferredInteractionType, userID,
	)
	if err != nil {
		log.Printf("[auth] update preferences for user %d: %v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update preferences"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ── Helpers ──────────────────────────────────────────────

func (h *Handler) userByID(userID int64) (*models.User, error) {
	row := h.db.QueryRow(
		`SELECT id, username, email, preferred_difficulty, preferred_question_types,
		        preferred_interaction_type, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	)
	return scanUser(row)
}

func (h *Handler) userByEmail(email string) (*models.User, string, error) {
	var user models.User
	var prefTypes []byte
	var hashedPassword string
	err := h.db.QueryRow(
		`SELECT id, username, email, password_hash, preferred_difficulty,
		        preferred_question_types, preferred_interaction_type, created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Username, &user.Email, &hashedPassword,
		&user.PreferredDifficulty, &prefTypes, &user.PreferredInteractionType,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, "", err
	}
	user.PreferredQuestionTypes = decodePreferredTypes(prefTypes)
	return &user, hashedPassword, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var prefTypes []byte
	err := row.Scan(&user.ID, &user.Username, &user.Email,
		&user.PreferredDifficulty, &prefTypes, &user.PreferredInteractionType,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.PreferredQuestionTypes = decodePreferredTypes(prefTypes)
	return &user, nil
}

func decodePreferredTypes(data []byte) []models.QuestionType {
	types := []models.QuestionType{}
	if len(data) > 0 {
		// A corrupt column degrades to no preferences rather than a 500.
		_ = json.Unmarshal(data, &types)
	}
	return types
}

func generateToken(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
