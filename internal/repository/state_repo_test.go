//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"sportify-admin/internal/database"
	"sportify-admin/internal/model"
	"sportify-admin/internal/session"
)

var _ session.Persister = (*StateRepository)(nil)

func newRepository(t *testing.T) *StateRepository {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx, databaseURL, 2, 0)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(ctx))

	return NewStateRepository(db.Pool)
}

func TestStateRepositoryRoundTrip(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	key := "auth-storage-" + uuid.NewString()
	t.Cleanup(func() { _ = repo.Delete(context.Background(), key) })

	_, found, err := repo.Load(ctx, key)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, repo.Save(ctx, key, []byte(`{"token":"a"}`)))
	require.NoError(t, repo.Save(ctx, key, []byte(`{"token":"b"}`)))

	data, found, err := repo.Load(ctx, key)
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"token":"b"}`, string(data))

	require.NoError(t, repo.Delete(ctx, key))
	require.NoError(t, repo.Delete(ctx, key))

	_, found, err = repo.Load(ctx, key)
	require.NoError(t, err)
	require.False(t, found)
}

func TestStateRepositoryBacksSessionStore(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	t.Cleanup(func() { _ = repo.Delete(context.Background(), session.StorageKey) })

	store := session.NewStore(repo, nil, 0)
	require.NoError(t, store.Login(ctx, model.User{ID: "u1", Email: "admin@sportify.test", Role: "admin"}, "access-1", "refresh-1"))

	restored := session.NewStore(repo, nil, 0)
	require.NoError(t, restored.Load(ctx))
	snapshot := restored.Snapshot()
	require.True(t, snapshot.IsAuthenticated)
	require.Equal(t, "access-1", snapshot.AccessToken)
	require.Equal(t, "refresh-1", snapshot.RefreshToken)
	require.Equal(t, "admin@sportify.test", snapshot.User.Email)
}
