package rest

import (
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/google/uuid"
)

type OracleResponse struct {
	Address string `json:"address"`
	Indexes []int  `json:"indexes"`
}

type AttemptResponse struct {
	ID          uuid.UUID `json:"id"`
	Oracle      string    `json:"oracle"`
	Offset      uint64    `json:"offset"`
	Index       int       `json:"index"`
	Airline     string    `json:"airline"`
	Flight      string    `json:"flight"`
	Timestamp   int64     `json:"timestamp"`
	StatusCode  int       `json:"status_code"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	DurationMs  int64     `json:"duration_ms"`
	Succeeded   bool      `json:"succeeded"`
	Error       string    `json:"error,omitempty"`
}

// ToAPIOracle spells indexes out as numbers; a []uint8 would encode as base64.
func ToAPIOracle(id domain.Identity) OracleResponse {
	indexes := make([]int, 0, len(id.Indexes))
	for _, idx := range id.Indexes {
		indexes = append(indexes, int(idx))
	}
	return OracleResponse{Address: string(id.Address), Indexes: indexes}
}

func ToAPIOracles(ids []domain.Identity) []OracleResponse {
	out := make([]OracleResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, ToAPIOracle(id))
	}
	return out
}

func ToAPIAttempt(a domain.ResponseAttempt) AttemptResponse {
	resp := AttemptResponse{
		ID:          a.ID,
		Oracle:      string(a.Identity),
		Offset:      a.Record.Offset,
		Index:       int(a.Record.Index),
		Airline:     string(a.Record.Airline),
		Flight:      a.Record.Flight,
		Timestamp:   a.Record.Timestamp,
		StatusCode:  int(a.StatusCode),
		Status:      a.StatusCode.String(),
		SubmittedAt: a.SubmittedAt,
		DurationMs:  a.Duration.Milliseconds(),
		Succeeded:   a.Succeeded(),
	}
	if a.Err != nil {
		resp.Error = a.Err.Error()
	}
	return resp
}

func ToAPIAttempts(attempts []domain.ResponseAttempt) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, ToAPIAttempt(a))
	}
	return out
}
