package handler

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/suar-net/suar-rest/internal/config"
	"github.com/suar-net/suar-rest/internal/service"
)

// Services groups the application services the router exposes.
type Services struct {
	Request service.IRequestService
	History service.IHistoryService
}

// SetupRouter creates the main Chi router for the application.
func SetupRouter(s Services, db *sql.DB, cfg config.ServerConfig, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// IMPORTANT: lock AllowedOrigins down to the frontend's domain in production.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any major browser
	}))

	healthHandler := NewHealthHandler(db, logger)
	requestHandler := NewRequestHandler(s.Request, logger)
	historyHandler := NewHistoryHandler(s.History, logger)

	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// The handler only accepts POST and answers 405 otherwise.
		r.Mount("/request", requestHandler)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyHandler.List)
			r.Delete("/", historyHandler.Delete)
			r.Get("/{id}", historyHandler.Get)
			r.Delete("/{id}", historyHandler.Delete)
		})
	})

	return r
}
