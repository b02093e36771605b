package record

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrKeyExists       = errors.New("record already exists")
	ErrVersionConflict = errors.New("record was modified concurrently")
	ErrInvalidKeyPart  = errors.New("key part must be non-empty and must not contain ':'")
)

// Entry is a single stored document. Version starts at 1 and is bumped on
// every successful write to the key.
type Entry struct {
	Key     string
	Value   []byte
	Version int64
}

// Store is the key/value contract every driver (postgres, sqlite, memory)
// implements. Values are opaque JSON documents.
type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (Entry, error)

	// ScanPrefix returns all entries whose key starts with prefix, ordered by key.
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)

	// Set writes value unconditionally.
	Set(ctx context.Context, key string, value []byte) error

	// Create writes value only if the key is absent, otherwise ErrKeyExists.
	Create(ctx context.Context, key string, value []byte) error

	// CompareAndSwap replaces value only if the stored version equals version,
	// otherwise ErrVersionConflict.
	CompareAndSwap(ctx context.Context, key string, version int64, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Atomically runs fn so that every write performed through ctx commits
	// together or not at all. Nested calls join the outer unit.
	Atomically(ctx context.Context, fn func(ctx context.Context) error) error
}
