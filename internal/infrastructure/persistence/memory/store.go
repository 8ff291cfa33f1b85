// Package memory keeps the attempt journal and stream checkpoints in process
// memory. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

type AttemptJournal struct {
	mu        sync.RWMutex
	byRequest map[uint64][]domain.ResponseAttempt
}

func NewAttemptJournal() *AttemptJournal {
	return &AttemptJournal{byRequest: make(map[uint64][]domain.ResponseAttempt)}
}

func (j *AttemptJournal) Record(_ context.Context, attempt domain.ResponseAttempt) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.byRequest[attempt.Record.Offset] = append(j.byRequest[attempt.Record.Offset], attempt)
	return nil
}

// ListByRequest returns attempts for the record at offset in the order they
// were recorded.
func (j *AttemptJournal) ListByRequest(_ context.Context, offset uint64) ([]domain.ResponseAttempt, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	attempts := j.byRequest[offset]
	out := make([]domain.ResponseAttempt, len(attempts))
	copy(out, attempts)
	return out, nil
}

type CheckpointStore struct {
	mu      sync.RWMutex
	offsets map[string]uint64
}

func NewCheckpointStore() *CheckpointStore {
	return &CheckpointStore{offsets: make(map[string]uint64)}
}

func (s *CheckpointStore) Load(_ context.Context, stream string) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	offset, ok := s.offsets[stream]
	return offset, ok, nil
}

func (s *CheckpointStore) Save(_ context.Context, stream string, offset uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offsets[stream] = offset
	return nil
}

var (
	_ application.AttemptJournal  = (*AttemptJournal)(nil)
	_ application.CheckpointStore = (*CheckpointStore)(nil)
)
