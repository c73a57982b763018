// Package cache stores computed layouts so that unchanged snapshots are not
// laid out twice.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under the user cache directory,
//     used by the CLI
//   - [RedisCache]: shared cache for multi-instance API deployments
//
// # Keys
//
// A [Keyer] derives keys from the content hash of a snapshot and everything
// else the layout depends on (engine, sizing and separation constants):
//
//	key := keyer.LayoutKey(cache.Hash(snapshotJSON), cache.LayoutKeyOpts{
//	    Engine: "native",
//	    Params: opts,
//	})
//
// [ScopedKeyer] prefixes every key, e.g. per tenant.
//
// Only computed output is cached. User-arranged positions are never
// persisted here.
package cache

import (
	"context"
	"time"
)

// LayoutTTL is how long a cached layout is kept.
const LayoutTTL = 7 * 24 * time.Hour

// Cache is a byte store with expiration.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
