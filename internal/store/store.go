package store

import "errors"

var (
	// ErrKeyNotFound is returned by Get for keys that were never set or
	// were deleted. All backends normalize to this sentinel.
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key is empty")
)

// KVStore is a minimal key-value backend. Implementations are safe for
// concurrent use.
type KVStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}
