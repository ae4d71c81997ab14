// Package kv provides the string-keyed snapshot store that cart, favorites
// and session state are persisted to. Production uses Redis; tests use the
// in-memory implementation.
package kv

import "context"

// Store is a minimal key-value interface. Get returns (nil, nil) for a
// missing key so absence is never an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
