// Package localstore is a small key/value repository over the local sqlite
// database, holding the session token and cached profile between runs.
package localstore

import "context"

// Repository is the key/value contract. A missing key reads as nil, not an
// error, mirroring localStorage.getItem semantics.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
