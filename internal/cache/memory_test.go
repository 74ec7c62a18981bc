package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "views:personnes")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, "views:personnes", []byte(`[]`), time.Minute))

	value, ok, err := store.Get(ctx, "views:personnes")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`[]`), value)

	require.NoError(t, store.Delete(ctx, "views:personnes", "views:meetings"))

	_, ok, err = store.Get(ctx, "views:personnes")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))

	current = current.Add(2 * time.Minute)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	original := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", original, 0))
	original[0] = 'z'

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("abc"), value)
}
