// Package storage persists encrypted portfolio snapshots in object storage.
package storage

import (
	"context"
)

// BlobStore is the object-storage collaborator. Implementations must be safe
// for concurrent use.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
