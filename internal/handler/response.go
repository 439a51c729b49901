package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/suar-net/suar-rest/internal/service"
)

// respondWithError mengirim respons error dalam format JSON: {"error": "..."}.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJson(w, code, map[string]string{"error": message})
}

// respondWithJson menangani marshaling, header Content-Type, dan status code.
func respondWithJson(w http.ResponseWriter, code int, payload any) {
	dat, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(dat)
}

// respondWithServiceError maps service sentinel errors to status codes.
// Anything unexpected is logged and reported with the generic message.
func respondWithServiceError(w http.ResponseWriter, logger *slog.Logger, err error, message string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Request not found")
	default:
		logger.Error(message, "error", err)
		respondWithError(w, http.StatusInternalServerError, message)
	}
}
