package services_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application/mocks"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application/services"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/infrastructure/persistence/memory"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/metrics"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleRecord(index uint8) domain.RequestRecord {
	return domain.RequestRecord{
		Offset:    12,
		Index:     index,
		Airline:   "0xa1",
		Flight:    "ND1309",
		Timestamp: 1700000000,
	}
}

// submissionRecorder collects SubmitResponse calls from concurrent goroutines.
type submissionRecorder struct {
	mu    sync.Mutex
	calls map[domain.Address][]domain.OracleResponse
}

func newSubmissionRecorder() *submissionRecorder {
	return &submissionRecorder{calls: make(map[domain.Address][]domain.OracleResponse)}
}

func (r *submissionRecorder) record(_ context.Context, from domain.Address, resp domain.OracleResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[from] = append(r.calls[from], resp)
}

func (r *submissionRecorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		n += len(c)
	}
	return n
}

func TestResponseDispatcher_SubmitsForEveryMatch(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)
	recorder := newSubmissionRecorder()

	ledger.EXPECT().SubmitResponse(mock.Anything, mock.Anything, mock.Anything).
		Run(recorder.record).Return(nil).Times(2)

	dispatcher := services.NewResponseDispatcher(registry, services.FixedStatusSource(domain.StatusOnTime), ledger, discardLogger())
	attempts := dispatcher.Handle(context.Background(), sampleRecord(4))

	require.Len(t, attempts, 2)
	assert.Equal(t, oracleA, attempts[0].Identity)
	assert.Equal(t, oracleB, attempts[1].Identity)
	assert.Equal(t, 2, recorder.total())
	assert.Len(t, recorder.calls[oracleA], 1)
	assert.Len(t, recorder.calls[oracleB], 1)
	assert.Empty(t, recorder.calls[oracleC])

	for _, a := range attempts {
		assert.True(t, a.Succeeded())
		assert.NotEqual(t, uuid.Nil, a.ID)
	}
}

func TestResponseDispatcher_FixedStatusCode(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)
	recorder := newSubmissionRecorder()

	ledger.EXPECT().SubmitResponse(mock.Anything, mock.Anything, mock.Anything).
		Run(recorder.record).Return(nil).Times(2)

	dispatcher := services.NewResponseDispatcher(registry, services.FixedStatusSource(domain.StatusOnTime), ledger, discardLogger())
	dispatcher.Handle(context.Background(), sampleRecord(4))

	record := sampleRecord(4)
	for _, addr := range []domain.Address{oracleA, oracleB} {
		require.Len(t, recorder.calls[addr], 1)
		resp := recorder.calls[addr][0]
		assert.Equal(t, domain.StatusOnTime, resp.StatusCode)
		assert.Equal(t, domain.StatusCode(10), resp.StatusCode)
		assert.Equal(t, record.Index, resp.Index)
		assert.Equal(t, record.Airline, resp.Airline)
		assert.Equal(t, record.Flight, resp.Flight)
		assert.Equal(t, record.Timestamp, resp.Timestamp)
	}
}

func TestResponseDispatcher_DrawsInRegistrationOrder(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)

	ledger.EXPECT().SubmitResponse(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)

	source := services.NewSequenceStatusSource(domain.StatusLateWeather, domain.StatusLateAirline)
	dispatcher := services.NewResponseDispatcher(registry, source, ledger, discardLogger())
	attempts := dispatcher.Handle(context.Background(), sampleRecord(4))

	require.Len(t, attempts, 2)
	assert.Equal(t, domain.StatusLateWeather, attempts[0].StatusCode)
	assert.Equal(t, domain.StatusLateAirline, attempts[1].StatusCode)
}

func TestResponseDispatcher_NoMatchDropsOnce(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)
	m := metrics.NewMetrics()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dispatcher := services.NewResponseDispatcher(registry, services.NewRandomStatusSource(), ledger, logger,
		services.WithMetrics(m))
	attempts := dispatcher.Handle(context.Background(), sampleRecord(7))

	assert.Empty(t, attempts)
	assert.Equal(t, 1, strings.Count(buf.String(), "request dropped"))
	assert.Equal(t, int64(1), m.GetSnapshot().RecordsDropped)
	ledger.AssertNotCalled(t, "SubmitResponse", mock.Anything, mock.Anything, mock.Anything)
}

func TestResponseDispatcher_FailureIsIsolated(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)
	m := metrics.NewMetrics()

	rejection := &application.LedgerError{Code: application.LedgerCodeIndexMismatch, StatusCode: 400}
	ledger.EXPECT().SubmitResponse(mock.Anything, oracleA, mock.Anything).Return(rejection).Once()
	ledger.EXPECT().SubmitResponse(mock.Anything, oracleB, mock.Anything).Return(nil).Once()

	dispatcher := services.NewResponseDispatcher(registry, services.FixedStatusSource(domain.StatusLateOther), ledger,
		discardLogger(), services.WithMetrics(m))
	attempts := dispatcher.Handle(context.Background(), sampleRecord(4))

	require.Len(t, attempts, 2)
	assert.False(t, attempts[0].Succeeded())
	assert.True(t, domain.IsErrorCode(attempts[0].Err, domain.ErrCodeSubmissionFailed))
	assert.ErrorIs(t, attempts[0].Err, rejection)
	assert.True(t, attempts[1].Succeeded())

	snap := m.GetSnapshot()
	assert.Equal(t, int64(1), snap.SubmissionsOK)
	assert.Equal(t, int64(1), snap.SubmissionsFailed)
	assert.Equal(t, int64(1), snap.RecordsDispatched)
}

func TestResponseDispatcher_LateResponseAfterRequestClosed(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)
	m := metrics.NewMetrics()

	closed := &application.LedgerError{Code: application.LedgerCodeRequestClosed, StatusCode: 409}
	ledger.EXPECT().SubmitResponse(mock.Anything, oracleA, mock.Anything).Return(nil).Once()
	ledger.EXPECT().SubmitResponse(mock.Anything, oracleB, mock.Anything).Return(closed).Once()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	dispatcher := services.NewResponseDispatcher(registry, services.FixedStatusSource(domain.StatusOnTime), ledger,
		logger, services.WithMetrics(m))
	attempts := dispatcher.Handle(context.Background(), sampleRecord(4))

	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].Succeeded())
	assert.ErrorIs(t, attempts[1].Err, closed)
	assert.Contains(t, buf.String(), "response arrived after request closed")
	assert.NotContains(t, buf.String(), "level=WARN")
	assert.Equal(t, int64(1), m.GetSnapshot().SubmissionsFailed)
}

func TestResponseDispatcher_SubmitTimeout(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)

	ledger.EXPECT().SubmitResponse(mock.Anything, oracleA, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ domain.Address, _ domain.OracleResponse) error {
			<-ctx.Done()
			return ctx.Err()
		}).Once()
	ledger.EXPECT().SubmitResponse(mock.Anything, oracleB, mock.Anything).Return(nil).Once()

	dispatcher := services.NewResponseDispatcher(registry, services.NewSeededStatusSource(1), ledger,
		discardLogger(), services.WithSubmitTimeout(20*time.Millisecond))
	attempts := dispatcher.Handle(context.Background(), sampleRecord(4))

	require.Len(t, attempts, 2)
	assert.ErrorIs(t, attempts[0].Err, context.DeadlineExceeded)
	assert.True(t, attempts[1].Succeeded())
}

func TestResponseDispatcher_DuplicateRecordsAreNotDeduplicated(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)
	journal := memory.NewAttemptJournal()

	ledger.EXPECT().SubmitResponse(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(4)

	dispatcher := services.NewResponseDispatcher(registry, services.FixedStatusSource(domain.StatusOnTime), ledger,
		discardLogger(), services.WithJournal(journal))

	record := sampleRecord(4)
	first := dispatcher.Handle(context.Background(), record)
	second := dispatcher.Handle(context.Background(), record)

	require.Len(t, first, 2)
	require.Len(t, second, 2)
	assert.NotEqual(t, first[0].ID, second[0].ID)

	recorded, err := journal.ListByRequest(context.Background(), record.Offset)
	require.NoError(t, err)
	assert.Len(t, recorded, 4)
}

type failingJournal struct{}

func (failingJournal) Record(context.Context, domain.ResponseAttempt) error {
	return errors.New("disk full")
}

func (failingJournal) ListByRequest(context.Context, uint64) ([]domain.ResponseAttempt, error) {
	return nil, nil
}

func TestResponseDispatcher_JournalFailureIgnored(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)

	ledger.EXPECT().SubmitResponse(mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)

	dispatcher := services.NewResponseDispatcher(registry, services.FixedStatusSource(domain.StatusOnTime), ledger,
		discardLogger(), services.WithJournal(failingJournal{}))
	attempts := dispatcher.Handle(context.Background(), sampleRecord(4))

	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].Succeeded())
	assert.True(t, attempts[1].Succeeded())
}

var _ application.AttemptJournal = failingJournal{}
