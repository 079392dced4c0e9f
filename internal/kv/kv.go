// Package kv defines the storage capability set the catalog and telemetry
// layers are written against. Any backend that provides keyed blobs, string
// sets, counters and an atomic set-if-absent can serve as the backing store.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key is absent. Absence is a valid
// result for lookups; callers translate it, they never treat it as failure.
var ErrNotFound = errors.New("kv: key not found")

// Store is the abstract backing medium. Each call is a self-contained round
// trip; implementations hold no per-call resources beyond their own client.
type Store interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetNX stores value at key only if the key does not exist yet.
	// Returns true if the value was stored. The check-and-set is atomic.
	SetNX(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// SetAdd adds members to the string set at key.
	SetAdd(ctx context.Context, key string, members ...string) error

	// SetRemove removes members from the string set at key.
	SetRemove(ctx context.Context, key string, members ...string) error

	// SetMembers returns all members of the string set at key.
	// An absent set is an empty slice, not an error.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// SetLen returns the cardinality of the string set at key.
	SetLen(ctx context.Context, key string) (int64, error)

	// Incr atomically increments the counter at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases the backend client, if any.
	Close() error
}
