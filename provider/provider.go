// Package provider defines the byte store the ljson value store writes to.
//
// Implementations must hand back from Get exactly the bytes given to Set for
// a key. The store frames every payload and treats anything it cannot parse
// as corruption, so a transforming backend (compression, re-encoding) has to
// undo its transform before returning.
//
// The keyspace "val:<ns>:" belongs to the store. Foreign writes under it are
// deleted on read.
package provider

import (
	"context"
	"time"
)

// Provider is a byte store with per-entry TTLs. It must be safe for
// concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit and (nil, false, nil) on miss.
	// Transport or backend failures are (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value for ttl. cost is a hint for admission-based stores.
	// ok=false means the store declined the write, which is not an error.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes key. Deleting a missing key is not an error.
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
