package postgres

import (
	"errors"
	"time"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

func toAttemptRow(a domain.ResponseAttempt) ResponseAttemptRow {
	row := ResponseAttemptRow{
		ID:              a.ID,
		OracleAddress:   a.Identity.String(),
		RequestOffset:   int64(a.Record.Offset),
		RequestIndex:    int16(a.Record.Index),
		Airline:         a.Record.Airline.String(),
		Flight:          a.Record.Flight,
		FlightTimestamp: a.Record.Timestamp,
		StatusCode:      int16(a.StatusCode),
		SubmittedAt:     a.SubmittedAt,
		DurationMs:      a.Duration.Milliseconds(),
	}
	if row.SubmittedAt.IsZero() {
		row.SubmittedAt = time.Now()
	}
	if a.Err != nil {
		msg := a.Err.Error()
		row.ErrorMessage = &msg
	}
	return row
}

func toDomainAttempt(row ResponseAttemptRow) domain.ResponseAttempt {
	attempt := domain.ResponseAttempt{
		ID:       row.ID,
		Identity: domain.Address(row.OracleAddress),
		Record: domain.RequestRecord{
			Offset:    uint64(row.RequestOffset),
			Index:     uint8(row.RequestIndex),
			Airline:   domain.Address(row.Airline),
			Flight:    row.Flight,
			Timestamp: row.FlightTimestamp,
		},
		StatusCode:  domain.StatusCode(row.StatusCode),
		SubmittedAt: row.SubmittedAt,
		Duration:    time.Duration(row.DurationMs) * time.Millisecond,
	}
	if row.ErrorMessage != nil {
		attempt.Err = errors.New(*row.ErrorMessage)
	}
	return attempt
}
