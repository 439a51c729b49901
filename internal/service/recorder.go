package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/suar-net/suar-rest/internal/model"
	"github.com/suar-net/suar-rest/internal/repository"
)

const recordTimeout = 5 * time.Second

// HistoryRecorder turns dispatch outcomes into persisted records.
type HistoryRecorder struct {
	repo   repository.IRequestRepository
	logger *slog.Logger
}

func NewHistoryRecorder(repo repository.IRequestRepository, logger *slog.Logger) *HistoryRecorder {
	return &HistoryRecorder{
		repo:   repo,
		logger: logger,
	}
}

// Record persists the outcome of req. A failure is logged and returned;
// callers that treat history as best-effort may drop it.
func (r *HistoryRecorder) Record(ctx context.Context, req *OutboundRequest, outcome *Outcome) (*model.RequestRecord, error) {
	record, err := newRequestRecord(req, outcome)
	if err != nil {
		r.logger.Error("failed to build request history", "method", req.Method, "url", req.URL, "error", err)
		return nil, err
	}

	// The insert must not be cut short by the caller going away.
	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if _, err := r.repo.Create(insertCtx, record); err != nil {
		r.logger.Error("failed to save request history", "method", req.Method, "url", req.URL, "error", err)
		return nil, fmt.Errorf("failed to save request history: %w", err)
	}

	r.logger.Debug("request history saved", "id", record.ID, "status", record.StatusCode)
	return record, nil
}

func newRequestRecord(req *OutboundRequest, outcome *Outcome) (*model.RequestRecord, error) {
	headers := req.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	headersText, err := json.Marshal(headers)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize headers: %w", err)
	}

	body := ""
	if req.Body != nil {
		body = *req.Body
	}

	responseText, err := json.Marshal(outcome.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize response: %w", err)
	}

	return &model.RequestRecord{
		Method:       req.Method,
		URL:          req.URL,
		Headers:      string(headersText),
		Body:         body,
		Response:     string(responseText),
		StatusCode:   outcome.Status,
		ResponseTime: outcome.ResponseTimeMs(),
		CreatedAt:    model.Now(),
	}, nil
}
