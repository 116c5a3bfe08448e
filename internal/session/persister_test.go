package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func exercisePersister(t *testing.T, persister Persister) {
	t.Helper()
	ctx := context.Background()

	_, found, err := persister.Load(ctx, StorageKey)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, persister.Save(ctx, StorageKey, []byte(`{"state":{}}`)))
	data, found, err := persister.Load(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"state":{}}`, string(data))

	require.NoError(t, persister.Delete(ctx, StorageKey))
	require.NoError(t, persister.Delete(ctx, StorageKey))
	_, found, err = persister.Load(ctx, StorageKey)
	require.NoError(t, err)
	require.False(t, found)
}

func TestPersisters(t *testing.T) {
	t.Parallel()

	t.Run("memory", func(t *testing.T) {
		exercisePersister(t, NewMemoryPersister())
	})

	t.Run("file", func(t *testing.T) {
		dir := t.TempDir()
		persister, err := NewFilePersister(dir)
		require.NoError(t, err)
		exercisePersister(t, persister)

		require.NoError(t, persister.Save(context.Background(), StorageKey, []byte(`{}`)))
		info, err := os.Stat(filepath.Join(dir, StorageKey+".json"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("redis", func(t *testing.T) {
		m, err := mr.Run()
		require.NoError(t, err)
		defer m.Close()

		client := redis.NewClient(&redis.Options{Addr: m.Addr()})
		defer client.Close()
		exercisePersister(t, NewRedisPersister(client, "test:", 0))
	})

	t.Run("redis ttl expires state", func(t *testing.T) {
		m, err := mr.Run()
		require.NoError(t, err)
		defer m.Close()

		client := redis.NewClient(&redis.Options{Addr: m.Addr()})
		defer client.Close()
		persister := NewRedisPersister(client, "", time.Minute)

		ctx := context.Background()
		require.NoError(t, persister.Save(ctx, StorageKey, []byte(`{}`)))
		require.True(t, m.Exists("sportify:"+StorageKey))

		m.FastForward(2 * time.Minute)
		_, found, err := persister.Load(ctx, StorageKey)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("sealed", func(t *testing.T) {
		exercisePersister(t, NewSealedPersister(NewMemoryPersister(), "s3cret"))
	})
}

func TestSealedPersister(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inner := NewMemoryPersister()
	sealed := NewSealedPersister(inner, "s3cret")
	require.NoError(t, sealed.Save(ctx, StorageKey, []byte(`{"state":{"token":"abc"}}`)))

	raw, _, err := inner.Load(ctx, StorageKey)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "abc")

	_, _, err = NewSealedPersister(inner, "other").Load(ctx, StorageKey)
	require.ErrorIs(t, err, ErrSealedState)

	require.NoError(t, inner.Save(ctx, StorageKey, []byte("short")))
	_, _, err = sealed.Load(ctx, StorageKey)
	require.ErrorIs(t, err, ErrSealedState)
}
