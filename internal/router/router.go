package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"preptrack-backend/internal/handlers"
	"preptrack-backend/internal/middleware"
	"preptrack-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	legacyProgress *handlers.ProgressHandler,
	progressV2 *handlers.ProgressHandler,
	aiHandler *handlers.AIHandler,
	catalogHandler *handlers.CatalogHandler,
	dashboardHandler *handlers.DashboardHandler,
	wsHub *websocket.Hub,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// AI rate limiter (20 req/min per IP)
	aiLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Original serverless surface (paths preserved) ────
	r.Route("/api", func(r chi.Router) {
		r.Route("/progress", func(r chi.Router) {
			r.Get("/", legacyProgress.FetchAll)
			r.Post("/", legacyProgress.Upsert)
		})

		r.Route("/progress_v2", func(r chi.Router) {
			r.Get("/", progressV2.FetchAll)
			r.Post("/", progressV2.Upsert)
		})

		r.With(aiLimiter.Middleware).Post("/ai", aiHandler.Proxy)
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Post("/auth/login", authHandler.Login)

		// ──── Catalog Routes (public, read-only) ────
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/days", catalogHandler.Days)
			r.Get("/days/{day}", catalogHandler.Day)
		})

		r.Get("/quiz/latest", aiHandler.LatestQuiz)

		// ──── Dashboard & Revision Routes ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/dashboard/stats", dashboardHandler.Stats)
			r.Get("/dashboard/streak", dashboardHandler.Streak)
			r.Get("/dashboard/due", dashboardHandler.Due)
			r.Post("/revision/{questionID}/review", dashboardHandler.MarkReviewed)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
