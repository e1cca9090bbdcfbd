package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"preptrack-backend/internal/catalog"
	"preptrack-backend/internal/config"
	"preptrack-backend/internal/database"
	"preptrack-backend/internal/handlers"
	"preptrack-backend/internal/middleware"
	"preptrack-backend/internal/repository"
	"preptrack-backend/internal/router"
	"preptrack-backend/internal/services"
	"preptrack-backend/internal/tracker"
	"preptrack-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting PrepTrack Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Ensure Progress Tables ────
	if err := database.EnsureSchema(pool); err != nil {
		log.Fatalf("✗ Schema setup failed: %v", err)
	}
	log.Println("✓ Progress tables ready")

	// ──── Step 5: Load Question Catalog ────
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("✗ Catalog load failed: %v", err)
	}
	log.Printf("✓ Catalog loaded (%d days, %d questions)", len(cat.Days()), cat.TotalQuestions())

	// ──── Initialize Repositories ────
	legacyRepo := repository.NewProgressRepo(pool)
	v2Repo := repository.NewProgressV2Repo(pool)

	// ──── Step 6: Initialize Gemini Client ────
	aiService, err := services.NewAIService(
		cfg.GeminiAPIKey,
		cfg.GeminiModel,
		cfg.GeminiConcurrentReqs,
		redisClients.Cache,
		time.Duration(cfg.QuizCacheTTLSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer aiService.Close()
	log.Println("✓ Gemini client initialized")

	// ──── Initialize Tracker State (v2 is the canonical store) ────
	state := tracker.NewState(cat, v2Repo)
	if err := state.Load(context.Background()); err != nil {
		log.Fatalf("✗ Progress snapshot load failed: %v", err)
	}
	log.Println("✓ Progress snapshot loaded")

	// ──── Initialize Handlers ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	authHandler := handlers.NewAuthHandler(cfg.Passcode, jwtAuth)
	legacyProgress := handlers.NewProgressHandler(legacyRepo, redisClients.Cache)
	progressV2 := handlers.NewProgressHandler(v2Repo, redisClients.Cache)
	aiHandler := handlers.NewAIHandler(aiService)
	catalogHandler := handlers.NewCatalogHandler(cat)
	dashboardHandler := handlers.NewDashboardHandler(state)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, handlers.ProgressUpdatesChannel, jwtAuth)
	log.Println("✓ WebSocket hub started")

	// ──── Step 8: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		legacyProgress,
		progressV2,
		aiHandler,
		catalogHandler,
		dashboardHandler,
		wsHub,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ PrepTrack Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
