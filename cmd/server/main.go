package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lingualearn/internal/audio"
	"lingualearn/internal/config"
	"lingualearn/internal/database"
	"lingualearn/internal/handlers"
	"lingualearn/internal/repository"
	"lingualearn/internal/scheduler"
	"lingualearn/internal/security"
	"lingualearn/internal/service"
)

func main() {
	// Load .env if present, real environment wins
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	if cfg.APITokenSecret == "" {
		log.Fatal("API_TOKEN_SECRET must be set")
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	progressRepo := repository.NewProgressRepository()
	wordRepo := repository.NewWordRepository()
	lessonRepo := repository.NewLessonRepository()

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	if err := os.MkdirAll(cfg.AudioDir, 0755); err != nil {
		log.Fatalf("Failed to create audio directory: %v", err)
	}
	ttsService := audio.NewTTSService(cfg.AudioDir, "hi")

	authService := service.NewAuthService(db, userRepo, progressRepo, emailService, cfg.SessionDuration, cfg.APITokenSecret, cfg.APITokenTTL)
	progressService := service.NewProgressService(db, progressRepo, wordRepo, lessonRepo)
	statsService := service.NewStatsService(db, progressRepo)
	contentService := service.NewContentService(db, wordRepo, lessonRepo, ttsService)

	// Seed default content on first run
	if err := contentService.SeedDefaultContent(); err != nil {
		log.Printf("Warning: Failed to seed default content: %v", err)
	}

	// Generate pronunciation clips in the background so startup isn't blocked
	// on the TTS endpoint
	go func() {
		generated, err := contentService.GenerateMissingAudio()
		if err != nil {
			log.Printf("Warning: Failed to generate missing audio files: %v", err)
			return
		}
		if generated > 0 {
			log.Printf("Generated %d pronunciation audio files", generated)
		}
	}()

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, rateLimiter)
	googleOAuth := handlers.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret)
	authHandler := handlers.NewAuthHandler(authService, googleOAuth, cfg.AppBaseURL)
	learningHandler := handlers.NewLearningHandler(contentService, progressService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /verify/{token}", authHandler.VerifyEmail)
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleOAuthCallback)

	// Learning routes
	mux.HandleFunc("GET /api/vocabulary", middleware.RequireAuth(learningHandler.ListVocabulary))
	mux.HandleFunc("POST /api/vocabulary/{id}/learn", middleware.RequireAuth(learningHandler.LearnWord))
	mux.HandleFunc("GET /api/lesson/basic/words", middleware.RequireAuth(learningHandler.GetLessonWords))
	mux.HandleFunc("POST /api/lesson/basic/complete", middleware.RequireAuth(learningHandler.CompleteBasicLesson))
	mux.HandleFunc("GET /api/lesson/quiz/questions", middleware.RequireAuth(learningHandler.GetQuizQuestions))
	mux.HandleFunc("POST /api/lesson/quiz/complete", middleware.RequireAuth(learningHandler.CompleteQuiz))

	// Stats routes
	mux.HandleFunc("GET /api/user-stats", middleware.RequireAuth(statsHandler.GetUserStats))
	mux.HandleFunc("GET /api/difficulty-stats", middleware.RequireAuth(statsHandler.GetDifficultyStats))

	// Pronunciation audio
	mux.Handle("GET /audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(cfg.AudioDir))))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start maintenance scheduler
	maintenance := scheduler.NewScheduler(authService)
	maintenance.Start()
	defer maintenance.Stop()

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
