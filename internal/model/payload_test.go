package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    string
	}{
		{"json object", JSONPayload(json.RawMessage(`{"a":1}`)), `{"a":1}`},
		{"json array", JSONPayload(json.RawMessage(`[1,2]`)), `[1,2]`},
		{"empty json", JSONPayload(nil), `null`},
		{"text", TextPayload("hello"), `"hello"`},
		{"text with quotes", TextPayload(`say "hi"`), `"say \"hi\""`},
		{"zero value", Payload{}, `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.payload)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestNewDTORecord_FormatsCreatedAt(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	r := &RequestRecord{
		ID:        7,
		Method:    "GET",
		CreatedAt: time.Date(2024, 3, 1, 12, 30, 45, 123_000_000, loc),
	}

	dto := NewDTORecord(r)

	assert.Equal(t, "2024-03-01T10:30:45.123Z", dto.CreatedAt)
	assert.Equal(t, int64(7), dto.ID)
}

func TestNewDTOHistoryPage_EmptyRequestsIsArray(t *testing.T) {
	dto := NewDTOHistoryPage(&HistoryPage{Page: 4, Limit: 10, TotalCount: 25, TotalPages: 3})

	b, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.JSONEq(t, `{"requests":[],"totalPages":3,"currentPage":4,"totalCount":25}`, string(b))
}
