package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/msivanov/materialhub/internal/client/models"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnavailable       = errors.New("server unavailable")
	ErrNotFound          = errors.New("not found")
	ErrMalformedResponse = errors.New("malformed response")
)

// ErrorCategory is the advisory classification of a failed request.
// It drives logging and user-facing messages only; callers still receive
// the underlying failure.
type ErrorCategory string

const (
	CategoryValidation  ErrorCategory = "validation"
	CategoryPermission  ErrorCategory = "permission"
	CategoryNotFound    ErrorCategory = "not_found"
	CategoryRateLimited ErrorCategory = "rate_limited"
	CategoryServer      ErrorCategory = "server"
	CategoryNetwork     ErrorCategory = "network"
	CategoryUnknown     ErrorCategory = "unknown"
)

// APIError carries the HTTP status, its category, and the server error
// envelope when one was present. It unwraps to a sentinel so callers can
// keep using errors.Is.
type APIError struct {
	Status   int
	Category ErrorCategory
	Message  string
	Code     string
	Err      error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d (%s): %s", e.Status, e.Category, e.Message)
	}
	return fmt.Sprintf("api error: status %d (%s)", e.Status, e.Category)
}

func (e *APIError) Unwrap() error { return e.Err }

// classify maps an HTTP status code to its category and sentinel.
func classify(status int) (ErrorCategory, error) {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return CategoryValidation, nil
	case status == http.StatusUnauthorized:
		return CategoryPermission, ErrUnauthorized
	case status == http.StatusForbidden:
		return CategoryPermission, nil
	case status == http.StatusNotFound:
		return CategoryNotFound, ErrNotFound
	case status == http.StatusTooManyRequests:
		return CategoryRateLimited, nil
	case status >= 500:
		return CategoryServer, ErrUnavailable
	default:
		return CategoryUnknown, nil
	}
}

// newAPIError builds an APIError from a status code and the decoded server
// envelope, which may be nil when the server sent no JSON body.
func newAPIError(status int, envelope *models.ErrorEnvelope) *APIError {
	category, sentinel := classify(status)
	e := &APIError{Status: status, Category: category, Err: sentinel}
	if envelope != nil {
		e.Message = envelope.Message
		e.Code = envelope.Code
	}
	return e
}
