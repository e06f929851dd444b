package store_test

import (
	"context"
	"testing"

	"github.com/maestro-marketing/go-maestro/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func setupBunStore(t *testing.T, opts ...store.BunOption) (*store.BunStore, *bun.DB) {
	t.Helper()

	db, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	db.DB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	s := store.NewBunStore(db, opts...)
	require.NoError(t, s.Init(context.Background()))
	return s, db
}

func TestBunStoreCredentialRoundTrip(t *testing.T) {
	s, _ := setupBunStore(t)

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token, "an empty table reports no credential without error")

	require.NoError(t, s.Save("tok-123"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, s.Save("tok-456"))
	token, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-456", token, "saving again overwrites in place")

	require.NoError(t, s.Clear())
	token, err = s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestBunStoreSealsCredentialAtRest(t *testing.T) {
	box := store.NewSecretBox([]byte("machine-key"))
	s, db := setupBunStore(t, store.WithSecretBox(box))

	require.NoError(t, s.Save("tok-123"))

	var stored string
	err := db.NewSelect().
		Model((*store.ClientStateModel)(nil)).
		Column("value").
		Where("key = ?", "credential").
		Scan(context.Background(), &stored)
	require.NoError(t, err)

	assert.NotEqual(t, "tok-123", stored)
	assert.NotContains(t, stored, "tok-123")

	token, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestBunStorePreferencesAreIndependent(t *testing.T) {
	s, _ := setupBunStore(t)
	ctx := context.Background()

	prefs, err := s.Preferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, prefs)

	require.NoError(t, s.Save("tok-123"))
	require.NoError(t, s.SavePreferences(ctx, map[string]any{
		"theme":     "dark",
		"page_size": float64(25),
	}))

	// Clearing the credential leaves preferences untouched.
	require.NoError(t, s.Clear())

	prefs, err = s.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs["theme"])
	assert.Equal(t, float64(25), prefs["page_size"])

	token, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, s.ClearPreferences(ctx))
	prefs, err = s.Preferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, prefs)
}

func TestBunStoreInitIsIdempotent(t *testing.T) {
	s, _ := setupBunStore(t)
	require.NoError(t, s.Init(context.Background()))
}
