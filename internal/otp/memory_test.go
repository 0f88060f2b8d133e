package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := Record{Code: "123456", ExpiresAt: time.Now().Add(time.Minute), Channel: ChannelEmail}
	require.NoError(t, store.Put(ctx, "a@b.com", rec, time.Minute))

	got, err := store.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, rec.Code, got.Code)

	require.NoError(t, store.Delete(ctx, "a@b.com"))
	_, err = store.Get(ctx, "a@b.com")
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestMemoryStore_TTLEviction(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec := Record{Code: "123456", ExpiresAt: time.Now(), Channel: ChannelPhone}
	require.NoError(t, store.Put(ctx, "+15550000000", rec, -time.Second))

	_, err := store.Get(ctx, "+15550000000")
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestMemoryStore_DeleteMissingKey(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Delete(context.Background(), "missing"))
}
