package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/suar-net/suar-rest/internal/model"
	"github.com/suar-net/suar-rest/internal/service"
)

type HistoryHandler struct {
	historyService service.IHistoryService
	logger         *slog.Logger
}

func NewHistoryHandler(s service.IHistoryService, l *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyService: s,
		logger:         l,
	}
}

// List handles GET /api/history?page=&limit=.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageQuery := service.ParsePageQuery(q.Get("page"), q.Get("limit"))

	page, err := h.historyService.List(r.Context(), pageQuery)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch history")
		return
	}

	respondWithJson(w, http.StatusOK, model.NewDTOHistoryPage(page))
}

// Get handles GET /api/history/{id}.
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.historyService.Get(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch request")
		return
	}

	respondWithJson(w, http.StatusOK, model.NewDTORecord(record))
}

// Delete handles DELETE /api/history/{id} and DELETE /api/history?id=.
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	if rawID == "" {
		rawID = r.URL.Query().Get("id")
	}

	id, err := service.ParseID(rawID)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.historyService.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to delete request")
		return
	}

	respondWithJson(w, http.StatusOK, map[string]bool{"success": true})
}
