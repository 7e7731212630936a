package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	m.Set(ctx, "k", []byte("v"), time.Minute)
	got, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	m.Set(ctx, "k", []byte("v"), 15*time.Minute)

	now = now.Add(14 * time.Minute)
	_, ok := m.Get(ctx, "k")
	assert.True(t, ok, "entry inside TTL must be served")

	now = now.Add(2 * time.Minute)
	_, ok = m.Get(ctx, "k")
	assert.False(t, ok, "a read after expiry must miss, never serve stale data")
}

func TestMemoryOverwrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "k", []byte("old"), time.Minute)
	m.Set(ctx, "k", []byte("new"), time.Minute)

	got, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}
