package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RequestRecord is the normalized form of one OracleRequest event.
type RequestRecord struct {
	Offset    uint64  `json:"offset"`
	Index     uint8   `json:"index"`
	Airline   Address `json:"airline"`
	Flight    string  `json:"flight"`
	Timestamp int64   `json:"timestamp"`
}

// RequestEvent is the wire payload of an OracleRequest event. Index and
// Timestamp may be JSON numbers or decimal strings, the form web3 event
// decoders emit for uint fields. Airline and Flight are mandatory.
type RequestEvent struct {
	Index     *int   `json:"index"`
	Airline   string `json:"airline"`
	Flight    string `json:"flight"`
	Timestamp *int64 `json:"timestamp"`
}

func (e *RequestEvent) UnmarshalJSON(data []byte) error {
	var wire struct {
		Index     json.RawMessage `json:"index"`
		Airline   string          `json:"airline"`
		Flight    string          `json:"flight"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	index, err := decodeInteger("index", wire.Index)
	if err != nil {
		return err
	}
	timestamp, err := decodeInteger("timestamp", wire.Timestamp)
	if err != nil {
		return err
	}

	*e = RequestEvent{Airline: wire.Airline, Flight: wire.Flight, Timestamp: timestamp}
	if index != nil {
		// Range is checked by ToRecord; clamp so a huge value cannot wrap into range.
		i := int(max(min(*index, 1<<16), -1))
		e.Index = &i
	}
	return nil
}

// decodeInteger reads a base-10 integer given either bare or quoted. An absent
// or null field yields nil.
func decodeInteger(field string, raw json.RawMessage) (*int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: not an integer: %q", field, text)
	}
	return &n, nil
}

// ToRecord validates the payload and attaches the stream offset.
func (e RequestEvent) ToRecord(offset uint64) (RequestRecord, error) {
	if e.Index == nil {
		return RequestRecord{}, NewMissingFieldError("index")
	}
	if *e.Index < 0 || *e.Index > 255 {
		return RequestRecord{}, &CoordinatorError{
			Code:    ErrCodeDecodeFailed,
			Message: "index out of range",
		}
	}
	if e.Airline == "" {
		return RequestRecord{}, NewMissingFieldError("airline")
	}
	if e.Flight == "" {
		return RequestRecord{}, NewMissingFieldError("flight")
	}
	if e.Timestamp == nil {
		return RequestRecord{}, NewMissingFieldError("timestamp")
	}

	return RequestRecord{
		Offset:    offset,
		Index:     uint8(*e.Index),
		Airline:   Address(e.Airline),
		Flight:    e.Flight,
		Timestamp: *e.Timestamp,
	}, nil
}

// OracleResponse is what one oracle reports for one request.
type OracleResponse struct {
	Index      uint8
	Airline    Address
	Flight     string
	Timestamp  int64
	StatusCode StatusCode
}

// ResponseAttempt is a single (identity, record, status code) submission.
type ResponseAttempt struct {
	ID          uuid.UUID
	Identity    Address
	Record      RequestRecord
	StatusCode  StatusCode
	SubmittedAt time.Time
	Duration    time.Duration
	Err         error
}

func NewResponseAttempt(identity Address, record RequestRecord, code StatusCode) ResponseAttempt {
	return ResponseAttempt{
		ID:         uuid.New(),
		Identity:   identity,
		Record:     record,
		StatusCode: code,
	}
}

// Response builds the ledger payload for this attempt.
func (a ResponseAttempt) Response() OracleResponse {
	return OracleResponse{
		Index:      a.Record.Index,
		Airline:    a.Record.Airline,
		Flight:     a.Record.Flight,
		Timestamp:  a.Record.Timestamp,
		StatusCode: a.StatusCode,
	}
}

func (a ResponseAttempt) Succeeded() bool {
	return a.Err == nil
}
