package ledger

import "encoding/json"

type HealthResponse struct {
	Status string `json:"status"`
}

type AccountsResponse struct {
	Accounts []string `json:"accounts"`
}

type RegisterRequest struct {
	Address string `json:"address"`
	Stake   string `json:"stake"`
}

type RegisterResponse struct {
	Address string `json:"address"`
	Status  string `json:"status"`
}

// IndexesResponse uses []int so out-of-range values can be rejected rather
// than wrapped.
type IndexesResponse struct {
	Indexes []int `json:"indexes"`
}

type EventDTO struct {
	Offset  uint64          `json:"offset"`
	Payload json.RawMessage `json:"payload"`
}

type EventsResponse struct {
	Events []EventDTO `json:"events"`
	Next   uint64     `json:"next"`
}

type SubmitResponseRequest struct {
	From       string `json:"from"`
	Index      uint8  `json:"index"`
	Airline    string `json:"airline"`
	Flight     string `json:"flight"`
	Timestamp  int64  `json:"timestamp"`
	StatusCode uint8  `json:"status_code"`
}

type SubmitResponseResponse struct {
	Status string `json:"status"`
}
