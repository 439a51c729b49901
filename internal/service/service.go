package service

import (
	"context"

	"github.com/suar-net/suar-rest/internal/model"
)

// IRequestService executes a caller-specified request and records it.
type IRequestService interface {
	ProcessRequest(ctx context.Context, dto *model.DTORequest) (*model.DTOResponse, error)
}

// IHistoryService serves the log of past requests.
type IHistoryService interface {
	List(ctx context.Context, q PageQuery) (*model.HistoryPage, error)
	Get(ctx context.Context, id int64) (*model.RequestRecord, error)
	Delete(ctx context.Context, id int64) error
}

// Dispatcher performs one outbound call. It never fails: transport
// errors are reported through the returned Outcome.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *OutboundRequest) *Outcome
}
