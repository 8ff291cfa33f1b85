package domain

import (
	"errors"
	"fmt"
)

// CoordinatorError represents a failure with a stable code the coordinator
// uses to decide whether the failure is contained or fatal.
type CoordinatorError struct {
	Code    string
	Message string
	Address Address
	Err     error
}

func (e *CoordinatorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *CoordinatorError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeRegistrationFailed = "REGISTRATION_FAILED"
	ErrCodeDecodeFailed       = "DECODE_FAILED"
	ErrCodeSubmissionFailed   = "SUBMISSION_FAILED"
	ErrCodeConnectionFailed   = "CONNECTION_FAILED"
	ErrCodeBootstrapExhausted = "BOOTSTRAP_EXHAUSTED"
	ErrCodeInvalidStatusCode  = "INVALID_STATUS_CODE"
	ErrCodeMissingField       = "MISSING_REQUIRED_FIELD"
)

var ErrEmptyIndexSet = errors.New("ledger assigned no indexes")

func NewRegistrationFailedError(addr Address, err error) *CoordinatorError {
	return &CoordinatorError{
		Code:    ErrCodeRegistrationFailed,
		Message: fmt.Sprintf("registration failed for oracle %s", addr),
		Address: addr,
		Err:     err,
	}
}

func NewDecodeFailedError(offset uint64, err error) *CoordinatorError {
	return &CoordinatorError{
		Code:    ErrCodeDecodeFailed,
		Message: fmt.Sprintf("cannot decode request event at offset %d", offset),
		Err:     err,
	}
}

func NewSubmissionFailedError(addr Address, index uint8, err error) *CoordinatorError {
	return &CoordinatorError{
		Code:    ErrCodeSubmissionFailed,
		Message: fmt.Sprintf("response from oracle %s for index %d rejected", addr, index),
		Address: addr,
		Err:     err,
	}
}

func NewConnectionFailedError(err error) *CoordinatorError {
	return &CoordinatorError{
		Code:    ErrCodeConnectionFailed,
		Message: "ledger connection failed",
		Err:     err,
	}
}

func NewBootstrapExhaustedError(attempted int) *CoordinatorError {
	return &CoordinatorError{
		Code:    ErrCodeBootstrapExhausted,
		Message: fmt.Sprintf("all %d oracle registrations failed", attempted),
	}
}

func NewInvalidStatusCodeError(code int) *CoordinatorError {
	return &CoordinatorError{
		Code:    ErrCodeInvalidStatusCode,
		Message: fmt.Sprintf("unknown status code %d", code),
	}
}

func NewMissingFieldError(field string) *CoordinatorError {
	return &CoordinatorError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

// IsErrorCode checks if an error is a CoordinatorError with a specific code
func IsErrorCode(err error, code string) bool {
	var coordErr *CoordinatorError
	if errors.As(err, &coordErr) {
		return coordErr.Code == code
	}
	return false
}

// IsFatal reports whether err must stop the process.
func IsFatal(err error) bool {
	return IsErrorCode(err, ErrCodeConnectionFailed) || IsErrorCode(err, ErrCodeBootstrapExhausted)
}
