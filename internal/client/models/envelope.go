package models

// Paginated is the list envelope returned by collection endpoints.
type Paginated[T any] struct {
	Count    int64  `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// ErrorEnvelope is the backend error body, when the backend produced one.
// Transport failures have no envelope at all.
type ErrorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Message is the trivial `{message}` body used by logout and
// change-password responses.
type Message struct {
	Message string `json:"message"`
}
