// Package stores contains the client state containers: materials, user,
// upload, and payment. Each store is an explicitly constructed instance
// holding the last-known-good mirror of server data plus the operations
// that mutate it through the API client.
//
// Local mirrors are never authoritative. Counter mutations (favorite
// toggles, download counts) are optimistic: applied immediately, with an
// optional rollback on failure that is disabled by default to match the
// historical fire-and-forget behavior.
//
// Within one store, at most one list/detail fetch may be in flight;
// a second call is rejected with ErrOperationInProgress. No ordering is
// guaranteed across stores.
package stores
