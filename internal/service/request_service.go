package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/suar-net/suar-rest/internal/model"
)

type RequestServiceOptions struct {
	DefaultTimeout       time.Duration
	BlockPrivateNetworks bool
}

type requestService struct {
	dispatcher Dispatcher
	recorder   *HistoryRecorder
	opts       RequestServiceOptions
	logger     *slog.Logger
}

func NewRequestService(d Dispatcher, rec *HistoryRecorder, opts RequestServiceOptions, logger *slog.Logger) IRequestService {
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 30 * time.Second
	}
	return &requestService{
		dispatcher: d,
		recorder:   rec,
		opts:       opts,
		logger:     logger,
	}
}

// ProcessRequest dispatches the request described by dto and records the
// outcome. Only invalid input is returned as an error.
func (s *requestService) ProcessRequest(ctx context.Context, dto *model.DTORequest) (*model.DTOResponse, error) {
	outboundRequest, err := newOutboundRequest(dto, s.opts.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	if s.opts.BlockPrivateNetworks {
		if err := checkPublicTarget(ctx, outboundRequest.URL); err != nil {
			return nil, err
		}
	}

	outcome := s.dispatcher.Dispatch(ctx, outboundRequest)
	if outcome.TransportFailed {
		s.logger.Info("outbound request failed",
			"method", outboundRequest.Method, "url", outboundRequest.URL, "error", outcome.ErrorMessage)
	}
	if outcome.Truncated {
		s.logger.Warn("response body truncated",
			"method", outboundRequest.Method, "url", outboundRequest.URL, "limit", maxResponseBodySize)
	}

	// History is best-effort; the recorder already logged any failure.
	_, _ = s.recorder.Record(ctx, outboundRequest, outcome)

	return &model.DTOResponse{
		Data:         outcome.Payload,
		Status:       outcome.Status,
		Headers:      outcome.Headers,
		ResponseTime: outcome.ResponseTimeMs(),
		Truncated:    outcome.Truncated,
	}, nil
}
