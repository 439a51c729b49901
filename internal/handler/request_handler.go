package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/suar-net/suar-rest/internal/model"
	"github.com/suar-net/suar-rest/internal/service"
)

const maxRequestPayloadSize = 10 * 1024 * 1024

type RequestHandler struct {
	requestService service.IRequestService
	logger         *slog.Logger
}

func NewRequestHandler(s service.IRequestService, l *slog.Logger) *RequestHandler {
	return &RequestHandler{
		requestService: s,
		logger:         l,
	}
}

func (h *RequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	var dto model.DTORequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestPayloadSize)).Decode(&dto); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if err := validate.Struct(&dto); err != nil {
		respondWithError(w, http.StatusBadRequest, ValidationError(err))
		return
	}

	// Transport failures come back as a normal response with status 0.
	dtoResponse, err := h.requestService.ProcessRequest(r.Context(), &dto)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Internal server error")
		return
	}

	respondWithJson(w, http.StatusOK, dtoResponse)
}
