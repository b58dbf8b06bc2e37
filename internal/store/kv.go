// Package store persists small opaque documents, such as the cart snapshot,
// under string keys.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// KV is the persistence boundary used by the cart store.
type KV interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

// Backend is a KV that owns resources which must be released.
type Backend interface {
	KV
	Close() error
}
