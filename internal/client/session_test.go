package client_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ansh-patel-repos/job-listing-portal/internal/client"
	"github.com/ansh-patel-repos/job-listing-portal/internal/model"
)

func TestStore_LoadWithoutFile(t *testing.T) {
	store := client.NewStore(filepath.Join(t.TempDir(), "session.json"))

	s, err := store.Load()
	require.NoError(t, err)
	require.False(t, s.Authenticated())
}

func TestStore_SaveLoadClear(t *testing.T) {
	store := client.NewStore(filepath.Join(t.TempDir(), "session.json"))

	saved := client.Session{
		Token: "some-token",
		Role:  model.RoleEmployer,
		User:  &model.PublicUser{ID: "abc", Name: "Ann", Email: "ann@x.com", Role: model.RoleEmployer},
	}
	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.True(t, loaded.Authenticated())
	require.Equal(t, saved.Token, loaded.Token)
	require.Equal(t, saved.Role, loaded.Role)
	require.Equal(t, "ann@x.com", loaded.User.Email)

	require.NoError(t, store.Clear())

	cleared, err := store.Load()
	require.NoError(t, err)
	require.False(t, cleared.Authenticated())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store := client.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestSession_Authenticated(t *testing.T) {
	require.False(t, client.Session{}.Authenticated())
	require.False(t, client.Session{Token: "tok"}.Authenticated())
	require.False(t, client.Session{Role: model.RoleEmployer}.Authenticated())
	require.False(t, client.Session{Token: "tok", Role: "admin"}.Authenticated())
	require.True(t, client.Session{Token: "tok", Role: model.RoleJobSeeker}.Authenticated())
}
