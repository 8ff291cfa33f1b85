package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// RequestError is a malformed query or path parameter.
type RequestError struct {
	Param   string
	Message string
}

func (e *RequestError) Error() string {
	return e.Param + ": " + e.Message
}

func ToHTTPStatus(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return http.StatusBadRequest
	}

	var coordErr *domain.CoordinatorError
	if errors.As(err, &coordErr) {
		switch coordErr.Code {
		case domain.ErrCodeDecodeFailed, domain.ErrCodeMissingField, domain.ErrCodeInvalidStatusCode:
			return http.StatusBadRequest
		case domain.ErrCodeConnectionFailed:
			return http.StatusServiceUnavailable
		}
	}
	return http.StatusInternalServerError
}

func ToErrorCode(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return ErrCodeInvalidRequest
	}

	var coordErr *domain.CoordinatorError
	if errors.As(err, &coordErr) {
		return coordErr.Code
	}
	return ErrCodeInternal
}

// WriteError maps coordinator errors to HTTP responses
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := ToHTTPStatus(err)

	response := ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    ToErrorCode(err),
			Message: err.Error(),
		},
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		response.Error.Details = map[string]string{"param": reqErr.Param}
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed", "status", statusCode, "error", err)
	}

	WriteRaw(w, statusCode, response)
}

// WriteRaw encodes v as the whole response body.
func WriteRaw(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSON writes a success envelope around data.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	WriteRaw(w, status, struct {
		Success bool `json:"success"`
		Data    any  `json:"data"`
	}{Success: true, Data: data})
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteRaw(w, http.StatusNotFound, ErrorResponse{
		Error: ErrorDetail{Code: "NOT_FOUND", Message: message},
	})
}
