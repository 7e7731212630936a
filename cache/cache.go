// Package cache provides the TTL cache used by the price oracle and the yield
// adapters. Values are opaque byte payloads so Redis and in-memory backends
// behave identically; callers own (de)serialization.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get returns the stored payload and true on a live entry. Entries past
	// their TTL are never returned.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores the payload for ttl. Concurrent writers may race on a refill;
	// last writer wins.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}
