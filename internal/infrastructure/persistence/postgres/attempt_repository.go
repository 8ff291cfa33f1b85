package postgres

import (
	"context"
	"fmt"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/jackc/pgx/v5"
)

type AttemptRepository struct {
	q Executor
}

func NewAttemptRepository(db *DB) *AttemptRepository {
	return &AttemptRepository{q: db.Pool}
}

func (r *AttemptRepository) Record(ctx context.Context, attempt domain.ResponseAttempt) error {
	query := `
		INSERT INTO response_attempts (
			id, oracle_address, request_offset, request_index, airline, flight,
			flight_timestamp, status_code, submitted_at, duration_ms, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	row := toAttemptRow(attempt)
	_, err := r.q.Exec(ctx, query,
		row.ID,
		row.OracleAddress,
		row.RequestOffset,
		row.RequestIndex,
		row.Airline,
		row.Flight,
		row.FlightTimestamp,
		row.StatusCode,
		row.SubmittedAt,
		row.DurationMs,
		row.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to record response attempt: %w", err)
	}

	return nil
}

// ListByRequest returns the attempts made for the record at offset, oldest first.
func (r *AttemptRepository) ListByRequest(ctx context.Context, offset uint64) ([]domain.ResponseAttempt, error) {
	query := `
		SELECT id, oracle_address, request_offset, request_index, airline, flight,
		       flight_timestamp, status_code, submitted_at, duration_ms, error_message
		FROM response_attempts
		WHERE request_offset = $1
		ORDER BY submitted_at, oracle_address
	`

	rows, err := r.q.Query(ctx, query, int64(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to query response attempts: %w", err)
	}

	attempts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ResponseAttempt, error) {
		var m ResponseAttemptRow
		err := row.Scan(
			&m.ID,
			&m.OracleAddress,
			&m.RequestOffset,
			&m.RequestIndex,
			&m.Airline,
			&m.Flight,
			&m.FlightTimestamp,
			&m.StatusCode,
			&m.SubmittedAt,
			&m.DurationMs,
			&m.ErrorMessage,
		)
		return toDomainAttempt(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan response attempts: %w", err)
	}

	return attempts, nil
}

var _ application.AttemptJournal = (*AttemptRepository)(nil)
