package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application/mocks"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application/services"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testStake = "1000000000000000000"

var (
	oracleA = domain.Address("0xaaa")
	oracleB = domain.Address("0xbbb")
	oracleC = domain.Address("0xccc")
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// registerABC builds a registry holding A{1,4}, B{4}, C{9}.
func registerABC(t *testing.T, ledger *mocks.MockLedger) *services.OracleRegistry {
	t.Helper()

	sets := map[domain.Address]domain.IndexSet{
		oracleA: {1, 4},
		oracleB: {4},
		oracleC: {9},
	}
	for addr, set := range sets {
		ledger.EXPECT().Register(mock.Anything, addr, testStake).Return(nil).Once()
		ledger.EXPECT().AssignedIndexes(mock.Anything, addr).Return(set, nil).Once()
	}

	registry := services.NewOracleRegistry(ledger, 2, nil, discardLogger())
	report := registry.RegisterAll(context.Background(), []domain.Address{oracleA, oracleB, oracleC}, testStake)
	require.Equal(t, 3, report.Registered())
	return registry
}

func addresses(ids []domain.Identity) []domain.Address {
	out := make([]domain.Address, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Address)
	}
	return out
}

func TestOracleRegistry_RegisterAll_KeepsPoolOrder(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)

	assert.Equal(t, 3, registry.Count())
	assert.Equal(t, []domain.Address{oracleA, oracleB, oracleC}, addresses(registry.Identities()))
}

func TestOracleRegistry_Matching(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)

	assert.Equal(t, []domain.Address{oracleA, oracleB}, addresses(registry.Matching(4)))
	assert.Equal(t, []domain.Address{oracleA}, addresses(registry.Matching(1)))
	assert.Equal(t, []domain.Address{oracleC}, addresses(registry.Matching(9)))
	assert.Empty(t, registry.Matching(7))
}

func TestOracleRegistry_Matching_ExactForEveryIndex(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := registerABC(t, ledger)
	identities := registry.Identities()

	for i := 0; i <= 255; i++ {
		index := uint8(i)

		var want []domain.Address
		for _, id := range identities {
			if id.Indexes.Contains(index) {
				want = append(want, id.Address)
			}
		}

		got := addresses(registry.Matching(index))
		if len(want) == 0 {
			assert.Empty(t, got, "index %d", index)
			continue
		}
		assert.Equal(t, want, got, "index %d", index)
	}
}

func TestOracleRegistry_RegisterAll_FailureIsPerIdentity(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	m := metrics.NewMetrics()

	ledger.EXPECT().Register(mock.Anything, oracleA, testStake).Return(nil).Once()
	ledger.EXPECT().AssignedIndexes(mock.Anything, oracleA).Return(domain.IndexSet{2}, nil).Once()
	ledger.EXPECT().Register(mock.Anything, oracleB, testStake).
		Return(&application.LedgerError{Code: application.LedgerCodeInsufficientFunds, StatusCode: 402}).Once()
	ledger.EXPECT().Register(mock.Anything, oracleC, testStake).Return(nil).Once()
	ledger.EXPECT().AssignedIndexes(mock.Anything, oracleC).Return(domain.IndexSet{}, nil).Once()

	registry := services.NewOracleRegistry(ledger, 1, m, discardLogger())
	report := registry.RegisterAll(context.Background(), []domain.Address{oracleA, oracleB, oracleC}, testStake)

	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, 1, report.Registered())
	assert.Equal(t, 2, report.Failed())

	assert.True(t, report.Outcomes[0].Succeeded())
	assert.True(t, domain.IsErrorCode(report.Outcomes[1].Err, domain.ErrCodeRegistrationFailed))
	assert.ErrorIs(t, report.Outcomes[2].Err, domain.ErrEmptyIndexSet)

	assert.Equal(t, []domain.Address{oracleA}, addresses(registry.Identities()))
	assert.Empty(t, registry.Matching(0))

	snap := m.GetSnapshot()
	assert.Equal(t, int64(1), snap.RegistrationsOK)
	assert.Equal(t, int64(2), snap.RegistrationsFailed)
}

func TestOracleRegistry_RegisterAll_AdoptsAlreadyRegistered(t *testing.T) {
	ledger := mocks.NewMockLedger(t)

	ledger.EXPECT().Register(mock.Anything, oracleA, testStake).
		Return(&application.LedgerError{Code: application.LedgerCodeAlreadyRegistered, StatusCode: 409}).Once()
	ledger.EXPECT().AssignedIndexes(mock.Anything, oracleA).Return(domain.IndexSet{3, 5, 7}, nil).Once()

	registry := services.NewOracleRegistry(ledger, 1, nil, discardLogger())
	report := registry.RegisterAll(context.Background(), []domain.Address{oracleA}, testStake)

	require.Len(t, report.Outcomes, 1)
	assert.True(t, report.Outcomes[0].Adopted)
	assert.Equal(t, domain.IndexSet{3, 5, 7}, report.Outcomes[0].Indexes)
	assert.Len(t, registry.Matching(5), 1)
}

func TestOracleRegistry_RegisterAll_IndexLookupFails(t *testing.T) {
	ledger := mocks.NewMockLedger(t)

	ledger.EXPECT().Register(mock.Anything, oracleA, testStake).Return(nil).Once()
	ledger.EXPECT().AssignedIndexes(mock.Anything, oracleA).Return(nil, errors.New("connection reset")).Once()

	registry := services.NewOracleRegistry(ledger, 1, nil, discardLogger())
	report := registry.RegisterAll(context.Background(), []domain.Address{oracleA}, testStake)

	assert.Equal(t, 0, report.Registered())
	assert.Equal(t, 0, registry.Count())
}

func TestOracleRegistry_RegisterAll_Idempotent(t *testing.T) {
	ledger := mocks.NewMockLedger(t)

	// Only one ledger round trip even though A is requested three times.
	ledger.EXPECT().Register(mock.Anything, oracleA, testStake).Return(nil).Once()
	ledger.EXPECT().AssignedIndexes(mock.Anything, oracleA).Return(domain.IndexSet{4}, nil).Once()

	registry := services.NewOracleRegistry(ledger, 4, nil, discardLogger())
	registry.RegisterAll(context.Background(), []domain.Address{oracleA, "0xAAA"}, testStake)
	report := registry.RegisterAll(context.Background(), []domain.Address{oracleA}, testStake)

	require.Len(t, report.Outcomes, 1)
	assert.True(t, report.Outcomes[0].Existing)
	assert.True(t, report.Outcomes[0].Succeeded())
	assert.Equal(t, 1, registry.Count())
	assert.Len(t, registry.Matching(4), 1)
}

func TestOracleRegistry_NeverMatchesUnregistered(t *testing.T) {
	ledger := mocks.NewMockLedger(t)
	registry := services.NewOracleRegistry(ledger, 1, nil, discardLogger())

	for i := 0; i <= 255; i++ {
		assert.Empty(t, registry.Matching(uint8(i)))
	}
	_, ok := registry.Lookup(oracleA)
	assert.False(t, ok)
}
