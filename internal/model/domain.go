package model

import "time"

// RequestRecord is a persisted summary of one dispatch attempt.
// StatusCode 0 means no HTTP response was obtained.
type RequestRecord struct {
	ID           int64
	Method       string
	URL          string
	Headers      string
	Body         string
	Response     string
	StatusCode   int
	ResponseTime int64
	CreatedAt    time.Time
}
