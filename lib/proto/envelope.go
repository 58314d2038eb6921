package proto

import (
	"encoding/json"
	"strings"
)

// Status discriminates response envelopes.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
)

// Row is one result row. Values aligns positionally with the envelope's
// Columns; entries are raw JSON scalars, the null marker, or single-key
// tagged wrappers (see Unwrap).
type Row struct {
	Values []any `json:"values"`
}

// Envelope is the decoded form of one response frame.
type Envelope struct {
	Status       Status   `json:"status"`
	Message      string   `json:"message"`
	AffectedRows int64    `json:"affected_rows"`
	Columns      []string `json:"columns"`
	Rows         []Row    `json:"rows"`
}

// IsStructured reports whether a frame should be decoded as JSON. Anything
// else is a bare diagnostic line from the server.
func IsStructured(frame string) bool {
	return strings.HasPrefix(frame, "{")
}

// DecodeEnvelope parses one structured frame. Numbers decode as
// json.Number so 64-bit integers survive the trip.
func DecodeEnvelope(frame string) (*Envelope, error) {
	dec := json.NewDecoder(strings.NewReader(frame))
	dec.UseNumber()
	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

// InfoEnvelope wraps a bare diagnostic line so that plain-text server
// output still resolves the waiter whose turn it was.
func InfoEnvelope(text string) *Envelope {
	return &Envelope{Status: StatusInfo, Message: text}
}
