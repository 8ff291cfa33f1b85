package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/jackc/pgx/v5"
)

type CheckpointRepository struct {
	q Executor
}

func NewCheckpointRepository(db *DB) *CheckpointRepository {
	return &CheckpointRepository{q: db.Pool}
}

func (r *CheckpointRepository) Load(ctx context.Context, stream string) (uint64, bool, error) {
	var offset int64
	err := r.q.QueryRow(ctx, `SELECT next_offset FROM stream_checkpoints WHERE stream = $1`, stream).Scan(&offset)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	return uint64(offset), true, nil
}

func (r *CheckpointRepository) Save(ctx context.Context, stream string, offset uint64) error {
	query := `
		INSERT INTO stream_checkpoints (stream, next_offset, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (stream) DO UPDATE
		SET next_offset = EXCLUDED.next_offset, updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, stream, int64(offset)); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

var _ application.CheckpointStore = (*CheckpointRepository)(nil)
