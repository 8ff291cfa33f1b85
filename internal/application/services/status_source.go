package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

// StatusCodeSource supplies the status code an oracle reports.
type StatusCodeSource interface {
	Next() domain.StatusCode
}

// RandomStatusSource draws uniformly from domain.StatusCodes.
type RandomStatusSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomStatusSource() *RandomStatusSource {
	return NewSeededStatusSource(time.Now().UnixNano())
}

// NewSeededStatusSource returns a source whose draws repeat for a given seed.
func NewSeededStatusSource(seed int64) *RandomStatusSource {
	return &RandomStatusSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomStatusSource) Next() domain.StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.StatusCodes[s.rng.Intn(len(domain.StatusCodes))]
}

// SequenceStatusSource cycles through a fixed list of codes.
type SequenceStatusSource struct {
	mu    sync.Mutex
	codes []domain.StatusCode
	pos   int
}

func NewSequenceStatusSource(codes ...domain.StatusCode) *SequenceStatusSource {
	if len(codes) == 0 {
		codes = []domain.StatusCode{domain.StatusUnknown}
	}
	return &SequenceStatusSource{codes: codes}
}

// FixedStatusSource always returns code.
func FixedStatusSource(code domain.StatusCode) *SequenceStatusSource {
	return NewSequenceStatusSource(code)
}

func (s *SequenceStatusSource) Next() domain.StatusCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.codes[s.pos%len(s.codes)]
	s.pos++
	return code
}
