package repositories

import "context"

// KeyValueStore is the persistence primitive every backend provides: one opaque
// value per key, always read and overwritten whole.
type KeyValueStore interface {
	// Get returns the value stored under key, or apperrors.ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ClosableKeyValueStore is implemented by backends holding connections.
type ClosableKeyValueStore interface {
	KeyValueStore
	Close() error
}
