package model

import (
	"encoding/json"
	"time"
)

// DTO for incoming dispatch requests.
type DTORequest struct {
	Method  string            `json:"method" validate:"required"`
	URL     string            `json:"url" validate:"required"`
	Headers map[string]string `json:"headers"`
	Body    json.RawMessage   `json:"body,omitempty"`
	Timeout int               `json:"timeout" validate:"gte=0,lte=90000"` // milliseconds, 0 means default
}

// DTOResponse is returned to the caller of a dispatch, transport failures included.
type DTOResponse struct {
	Data         Payload           `json:"data"`
	Status       int               `json:"status"`
	Headers      map[string]string `json:"headers"`
	ResponseTime int64             `json:"responseTime"`
	Truncated    bool              `json:"truncated,omitempty"`
}

// DTORecord is the wire form of a RequestRecord.
type DTORecord struct {
	ID           int64  `json:"id"`
	Method       string `json:"method"`
	URL          string `json:"url"`
	Headers      string `json:"headers"`
	Body         string `json:"body"`
	Response     string `json:"response"`
	StatusCode   int    `json:"statusCode"`
	ResponseTime int64  `json:"responseTime"`
	CreatedAt    string `json:"createdAt"`
}

// ISO-8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func NewDTORecord(r *RequestRecord) DTORecord {
	return DTORecord{
		ID:           r.ID,
		Method:       r.Method,
		URL:          r.URL,
		Headers:      r.Headers,
		Body:         r.Body,
		Response:     r.Response,
		StatusCode:   r.StatusCode,
		ResponseTime: r.ResponseTime,
		CreatedAt:    r.CreatedAt.UTC().Format(timestampLayout),
	}
}

type DTOHistoryPage struct {
	Requests    []DTORecord `json:"requests"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	TotalCount  int64       `json:"totalCount"`
}

// HistoryPage is the service-level result of a paginated history read.
type HistoryPage struct {
	Records    []*RequestRecord
	Page       int
	Limit      int
	TotalCount int64
	TotalPages int
}

func NewDTOHistoryPage(p *HistoryPage) DTOHistoryPage {
	requests := make([]DTORecord, 0, len(p.Records))
	for _, r := range p.Records {
		requests = append(requests, NewDTORecord(r))
	}
	return DTOHistoryPage{
		Requests:    requests,
		TotalPages:  p.TotalPages,
		CurrentPage: p.Page,
		TotalCount:  p.TotalCount,
	}
}

// Now returns the current UTC time at the precision records are rendered with.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
