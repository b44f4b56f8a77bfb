package stores

import (
	"errors"

	"github.com/msivanov/materialhub/internal/client/api"
)

var (
	ErrOperationInProgress = errors.New("operation already in progress")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrNoOrder             = errors.New("no payment order created")
)

// userMessage extracts the server-provided message from an API failure,
// falling back to a generic one. Transport failures carry no envelope.
func userMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
