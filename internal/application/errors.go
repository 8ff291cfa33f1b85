package application

import (
	"errors"
	"fmt"
)

// LedgerError is a rejection reported by the ledger gateway.
type LedgerError struct {
	Code       string
	Message    string
	StatusCode int
}

type LedgerErrorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
}

func (e *LedgerError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

func IsLedgerError(err error) (*LedgerError, bool) {
	var ledgerErr *LedgerError
	ok := errors.As(err, &ledgerErr)
	return ledgerErr, ok
}

// Ledger rejection codes the coordinator reacts to.
const (
	LedgerCodeAlreadyRegistered = "already_registered"
	LedgerCodeInsufficientFunds = "insufficient_funds"
	LedgerCodeIndexMismatch     = "index_mismatch"
	LedgerCodeRequestClosed     = "request_closed"
	LedgerCodeInternal          = "internal_error"
	LedgerCodeRateLimited       = "rate_limited"
)

// IsAlreadyRegistered reports whether the ledger refused a registration
// because the oracle already holds indexes.
func IsAlreadyRegistered(err error) bool {
	ledgerErr, ok := IsLedgerError(err)
	return ok && ledgerErr.Code == LedgerCodeAlreadyRegistered
}

// IsRequestClosed reports whether the ledger refused a response because the
// request already reached its quorum and stopped accepting answers.
func IsRequestClosed(err error) bool {
	ledgerErr, ok := IsLedgerError(err)
	return ok && ledgerErr.Code == LedgerCodeRequestClosed
}
