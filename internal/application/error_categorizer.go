package application

import (
	"context"
	"errors"
	"net"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

// ErrorCategory represents the nature of an error for retry logic
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category for retry and logging purposes
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	// Cancellation is the caller giving up, never worth another attempt.
	if errors.Is(err, context.Canceled) {
		return CategoryPermanent
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTransient
	}

	if domain.IsErrorCode(err, domain.ErrCodeDecodeFailed) ||
		domain.IsErrorCode(err, domain.ErrCodeMissingField) ||
		domain.IsErrorCode(err, domain.ErrCodeInvalidStatusCode) {
		return CategoryPermanent
	}

	if domain.IsErrorCode(err, domain.ErrCodeConnectionFailed) {
		return CategoryInfrastructure
	}

	if ledgerErr, ok := IsLedgerError(err); ok {
		if ledgerErr.IsRetryable() {
			return CategoryTransient
		}

		switch ledgerErr.Code {
		case LedgerCodeInternal, LedgerCodeRateLimited:
			return CategoryTransient
		default:
			return CategoryPermanent
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return CategoryInfrastructure
	}

	// Default: Transient (safe fallback)
	return CategoryTransient
}

// IsRetryable returns true if the error category suggests retry
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}
