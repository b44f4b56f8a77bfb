// Package api contains the HTTP building blocks for talking to the
// materials backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     whole REST surface: auth, profile, materials, categories, tags,
//     and payments.
//  2. A concrete implementation (see HTTPClient) that owns the base URL and
//     timeouts, injects the bearer token on every request, transparently
//     refreshes an expired access token once and retries, and classifies
//     HTTP failures into an advisory taxonomy (see APIError).
//  3. Upload progress computation (see Progress) with the three fallback
//     strategies used by multipart material creates.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnauthorized, ErrUnavailable, ErrNotFound,
// ErrMalformedResponse. Status-specific detail travels in *APIError, which
// unwraps to the matching sentinel. Classification is advisory: every
// failure is returned to the caller so the stores can react.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package api
