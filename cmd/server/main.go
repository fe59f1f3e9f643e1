package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/question-bank/backend/internal/auth"
	"github.com/question-bank/backend/internal/database"
	"github.com/question-bank/backend/internal/generator"
	"github.com/question-bank/backend/internal/judge"
	"github.com/question-bank/backend/internal/middleware"
	"github.com/question-bank/backend/internal/questions"
	"github.com/question-bank/backend/internal/recommend"
	"github.com/question-bank/backend/internal/seed"
	"github.com/question-bank/backend/internal/stats"
	"github.com/rs/cors"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if os.Getenv("SEED_DATA") == "true" {
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
	}

	cache, err := recommend.NewCacheFromEnv()
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize services
	recStore := recommend.NewStore(db)
	recService, err := recommend.NewService(recStore, cache)
	if err != nil {
		log.Fatalf("Failed to initialize recommendation service: %v", err)
	}

	statStore := stats.NewStore(db)
	questionStore := questions.NewStore(db)
	judgeClient := judge.NewClient()
	gen := generator.NewGenerator()
	questionService := questions.NewService(questionStore, statStore, judgeClient, gen, cache)

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	questionHandler := questions.NewHandler(questionService, questionStore)
	recHandler := recommend.NewHandler(recService)
	statsHandler := stats.NewHandler(statStore, recStore)
	judgeHandler := judge.NewHandler(judgeClient, judge.NewCatalog())

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/questions", questionHandler.ListQuestions).Methods("GET")
	api.HandleFunc("/questions/{id:[0-9]+}", questionHandler.GetQuestion).Methods("GET")
	api.HandleFunc("/knowledge-points", questionHandler.ListKnowledgePoints).Methods("GET")
	api.HandleFunc("/knowledge-points/{id:[0-9]+}/questions", questionHandler.GetKnowledgePointQuestions).Methods("GET")

	api.HandleFunc("/external-problems", judgeHandler.ListExternalProblems).Methods("GET")
	api.HandleFunc("/external-problems/{slug}", judgeHandler.GetExternalProblem).Methods("GET")

	api.HandleFunc("/users", authHandler.ListUsers).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}", authHandler.GetUser).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}/recommendations", recHandler.GetRecommendations).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}/learning-path", recHandler.GetLearningPath).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}/stats", statsHandler.GetUserStats).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/users/{id:[0-9]+}/preferences", authHandler.UpdatePreferences).Methods("PUT")
	protected.HandleFunc("/questions/{id:[0-9]+}/submit", questionHandler.SubmitAnswer).Methods("POST")
	protected.HandleFunc("/code/run", judgeHandler.RunCode).Methods("POST")
	protected.HandleFunc("/questions/generate", questionHandler.GenerateQuestions).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
