package postgres

import (
	"time"

	"github.com/google/uuid"
)

// ResponseAttemptRow mirrors one response_attempts row.
type ResponseAttemptRow struct {
	ID              uuid.UUID
	OracleAddress   string
	RequestOffset   int64
	RequestIndex    int16
	Airline         string
	Flight          string
	FlightTimestamp int64
	StatusCode      int16
	SubmittedAt     time.Time
	DurationMs      int64
	ErrorMessage    *string
}
