package handler

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports whether the history store is reachable.
type HealthHandler struct {
	db     *sql.DB
	logger *slog.Logger
}

type healthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	LatencyMs int64  `json:"latencyMs"`
}

func NewHealthHandler(db *sql.DB, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		h.logger.Error("history store unreachable", "error", err, "latency_ms", latency)
		respondWithJson(w, http.StatusServiceUnavailable, healthStatus{
			Status:    "unavailable",
			Database:  "down",
			LatencyMs: latency,
		})
		return
	}

	respondWithJson(w, http.StatusOK, healthStatus{
		Status:    "ok",
		Database:  "up",
		LatencyMs: latency,
	})
}
