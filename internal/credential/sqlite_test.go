package credential

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "credentials.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_CreateAndGet(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	cred := &Credential{
		Type: "office365_calendar",
		Key: Key{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiryDate:   1704067200,
		},
	}
	require.NoError(t, store.Create(ctx, cred))
	require.NotEmpty(t, cred.ID, "Create assigns an id")

	got, err := store.Get(ctx, cred.ID)
	require.NoError(t, err)
	assert.Equal(t, cred.ID, got.ID)
	assert.Equal(t, "office365_calendar", got.Type)
	assert.Equal(t, cred.Key, got.Key)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSQLiteStore_GetNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_CreateDuplicate(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	cred := &Credential{ID: "cred-1", Type: "office365_calendar"}
	require.NoError(t, store.Create(ctx, cred))

	err := store.Create(ctx, &Credential{ID: "cred-1", Type: "office365_calendar"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSQLiteStore_Update(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	cred := &Credential{
		Type: "office365_calendar",
		Key:  Key{AccessToken: "old", RefreshToken: "refresh", ExpiryDate: 1},
	}
	require.NoError(t, store.Create(ctx, cred))

	newKey := Key{AccessToken: "new", RefreshToken: "refresh", ExpiryDate: 1704067200}
	require.NoError(t, store.Update(ctx, cred.ID, newKey))

	got, err := store.Get(ctx, cred.ID)
	require.NoError(t, err)
	assert.Equal(t, newKey, got.Key)
}

func TestSQLiteStore_UpdateNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)

	err := store.Update(context.Background(), "missing", Key{AccessToken: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_ListAndDelete(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first := &Credential{Type: "office365_calendar"}
	second := &Credential{Type: "office365_calendar"}
	require.NoError(t, store.Create(ctx, first))
	require.NoError(t, store.Create(ctx, second))

	creds, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, creds, 2)

	require.NoError(t, store.Delete(ctx, first.ID))

	creds, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, second.ID, creds[0].ID)
}

func TestKey_Expired(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	assert.False(t, Key{ExpiryDate: now.Add(time.Minute).Unix()}.Expired(now))
	assert.True(t, Key{ExpiryDate: now.Add(-time.Minute).Unix()}.Expired(now))
	assert.True(t, Key{}.Expired(now))
}
