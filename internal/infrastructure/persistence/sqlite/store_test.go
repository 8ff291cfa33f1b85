package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coordinator.db")
	store, err := sqlite.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestStore_Ping(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Ping(context.Background()))
}

func TestStore_RecordAndListByRequest(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	record := domain.RequestRecord{Offset: 9, Index: 4, Airline: "0xa1", Flight: "ND1309", Timestamp: 1700000000}

	first := domain.NewResponseAttempt("0xaaa", record, domain.StatusOnTime)
	first.SubmittedAt = time.Now().Add(-time.Second)
	first.Duration = 40 * time.Millisecond

	second := domain.NewResponseAttempt("0xbbb", record, domain.StatusLateTechnical)
	second.SubmittedAt = time.Now()
	second.Err = errors.New("request_closed")

	require.NoError(t, store.Record(ctx, first))
	require.NoError(t, store.Record(ctx, second))
	// Recording the same attempt again is ignored.
	require.NoError(t, store.Record(ctx, first))

	got, err := store.ListByRequest(ctx, 9)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, record, got[0].Record)
	assert.Equal(t, domain.StatusOnTime, got[0].StatusCode)
	assert.Equal(t, 40*time.Millisecond, got[0].Duration)
	assert.True(t, got[0].Succeeded())

	assert.Equal(t, second.ID, got[1].ID)
	require.Error(t, got[1].Err)
	assert.Equal(t, "request_closed", got[1].Err.Error())

	none, err := store.ListByRequest(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_CheckpointSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	store, path := newStore(t)

	_, ok, err := store.Load(ctx, "oracle-requests")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "oracle-requests", 3))
	require.NoError(t, store.Save(ctx, "oracle-requests", 8))
	require.NoError(t, store.Close())

	reopened, err := sqlite.NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	offset, ok, err := reopened.Load(ctx, "oracle-requests")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(8), offset)
}
