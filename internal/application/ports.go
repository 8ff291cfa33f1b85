package application

import (
	"context"
	"encoding/json"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

// Ledger is the port for the authoritative ledger the oracles answer to.
type Ledger interface {
	Ping(ctx context.Context) error
	Accounts(ctx context.Context) ([]domain.Address, error)
	Register(ctx context.Context, addr domain.Address, stake string) error
	AssignedIndexes(ctx context.Context, addr domain.Address) (domain.IndexSet, error)
	RequestEvents(ctx context.Context, from uint64, limit int) (*EventPage, error)
	SubmitResponse(ctx context.Context, from domain.Address, resp domain.OracleResponse) error
}

// RawEvent is an undecoded OracleRequest event and its stream position.
type RawEvent struct {
	Offset  uint64          `json:"offset"`
	Payload json.RawMessage `json:"payload"`
}

// EventPage is one read from the event stream. Next is the offset to ask for
// on the following read.
type EventPage struct {
	Events []RawEvent `json:"events"`
	Next   uint64     `json:"next"`
}

// AttemptJournal keeps an audit trail of submitted responses.
type AttemptJournal interface {
	Record(ctx context.Context, attempt domain.ResponseAttempt) error
	ListByRequest(ctx context.Context, offset uint64) ([]domain.ResponseAttempt, error)
}

// CheckpointStore remembers how far a stream has been delivered.
type CheckpointStore interface {
	Load(ctx context.Context, stream string) (offset uint64, ok bool, err error)
	Save(ctx context.Context, stream string, offset uint64) error
}
