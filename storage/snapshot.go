package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SnapshotVault writes encrypted portfolio snapshots to a blob store and
// reads them back.
type SnapshotVault struct {
	store  BlobStore
	sealer *Sealer
	log    zerolog.Logger
}

func NewSnapshotVault(store BlobStore, sealer *Sealer, log zerolog.Logger) *SnapshotVault {
	return &SnapshotVault{store: store, sealer: sealer, log: log.With().Str("component", "snapshot-vault").Logger()}
}

// Save encrypts the payload and stores it under a fresh per-user key.
func (v *SnapshotVault) Save(ctx context.Context, userID uint, payload []byte) (string, error) {
	sealed, err := v.sealer.Seal(payload)
	if err != nil {
		return "", fmt.Errorf("seal snapshot: %w", err)
	}
	key := fmt.Sprintf("users/%d/snapshots/%s.json.enc", userID, uuid.NewString())
	if err := v.store.Put(ctx, key, sealed); err != nil {
		return "", err
	}
	v.log.Info().Uint("user_id", userID).Str("key", key).Int("bytes", len(sealed)).Msg("snapshot stored")
	return key, nil
}

// Load fetches and decrypts a previously saved snapshot.
func (v *SnapshotVault) Load(ctx context.Context, key string) ([]byte, error) {
	sealed, err := v.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return v.sealer.Open(sealed)
}
