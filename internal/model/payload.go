package model

import "encoding/json"

type PayloadKind int

const (
	PayloadText PayloadKind = iota
	PayloadJSON
)

// Payload is a decoded response body: either a JSON value or raw text.
type Payload struct {
	kind PayloadKind
	json json.RawMessage
	text string
}

// JSONPayload wraps an already valid JSON document.
func JSONPayload(raw json.RawMessage) Payload {
	return Payload{kind: PayloadJSON, json: raw}
}

func TextPayload(s string) Payload {
	return Payload{kind: PayloadText, text: s}
}

func (p Payload) Kind() PayloadKind { return p.kind }

func (p Payload) Text() string { return p.text }

func (p Payload) JSON() json.RawMessage { return p.json }

// MarshalJSON renders JSON payloads as-is and text payloads as a JSON string.
func (p Payload) MarshalJSON() ([]byte, error) {
	if p.kind == PayloadJSON {
		if len(p.json) == 0 {
			return []byte("null"), nil
		}
		return p.json, nil
	}
	return json.Marshal(p.text)
}
