// Package sqlite is the single-node journal and checkpoint store.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store is a SQLite-backed attempt journal and checkpoint store.
type Store struct{ db *sql.DB }

func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema, err := migrationFS.ReadFile("migrations/0001_init.sql")
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return errors.New("db not initialized")
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, a domain.ResponseAttempt) error {
	submittedAt := a.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	var errMsg sql.NullString
	if a.Err != nil {
		errMsg = sql.NullString{String: a.Err.Error(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO response_attempts (
			id, oracle_address, request_offset, request_index, airline, flight,
			flight_timestamp, status_code, submitted_at, duration_ms, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(),
		a.Identity.String(),
		int64(a.Record.Offset),
		int(a.Record.Index),
		a.Record.Airline.String(),
		a.Record.Flight,
		a.Record.Timestamp,
		int(a.StatusCode),
		submittedAt.UnixNano(),
		a.Duration.Milliseconds(),
		errMsg,
	)
	if err != nil {
		return fmt.Errorf("record response attempt: %w", err)
	}
	return nil
}

func (s *Store) ListByRequest(ctx context.Context, offset uint64) ([]domain.ResponseAttempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, oracle_address, request_offset, request_index, airline, flight,
		       flight_timestamp, status_code, submitted_at, duration_ms, error_message
		FROM response_attempts
		WHERE request_offset = ?
		ORDER BY submitted_at, oracle_address`, int64(offset))
	if err != nil {
		return nil, fmt.Errorf("query response attempts: %w", err)
	}
	defer rows.Close()

	var attempts []domain.ResponseAttempt
	for rows.Next() {
		var (
			id, oracle, airline, flight string
			reqOffset, ts, submitted    int64
			durationMs                  int64
			index, status               int
			errMsg                      sql.NullString
		)
		if err := rows.Scan(&id, &oracle, &reqOffset, &index, &airline, &flight, &ts, &status, &submitted, &durationMs, &errMsg); err != nil {
			return nil, fmt.Errorf("scan response attempt: %w", err)
		}

		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse attempt id %q: %w", id, err)
		}

		attempt := domain.ResponseAttempt{
			ID:       parsed,
			Identity: domain.Address(oracle),
			Record: domain.RequestRecord{
				Offset:    uint64(reqOffset),
				Index:     uint8(index),
				Airline:   domain.Address(airline),
				Flight:    flight,
				Timestamp: ts,
			},
			StatusCode:  domain.StatusCode(status),
			SubmittedAt: time.Unix(0, submitted),
			Duration:    time.Duration(durationMs) * time.Millisecond,
		}
		if errMsg.Valid {
			attempt.Err = errors.New(errMsg.String)
		}
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}

func (s *Store) Load(ctx context.Context, stream string) (uint64, bool, error) {
	var offset int64
	err := s.db.QueryRowContext(ctx, `SELECT next_offset FROM stream_checkpoints WHERE stream = ?`, stream).Scan(&offset)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("load checkpoint: %w", err)
	}
	return uint64(offset), true, nil
}

func (s *Store) Save(ctx context.Context, stream string, offset uint64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stream_checkpoints (stream, next_offset, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(stream) DO UPDATE SET next_offset = excluded.next_offset, updated_at = excluded.updated_at`,
		stream, int64(offset), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}

var (
	_ application.AttemptJournal  = (*Store)(nil)
	_ application.CheckpointStore = (*Store)(nil)
)
