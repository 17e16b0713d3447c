package session_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoparts/internal/models"
	"motoparts/internal/session"
	"motoparts/internal/storage"
)

func TestScopeCartKeys(t *testing.T) {
	assert.Equal(t, "user_42", session.Authenticated("42").CartKey())
	assert.Equal(t, "guest_1700000000000", session.Guest("guest_1700000000000").CartKey())
	assert.True(t, session.Guest("guest_1").IsGuest())
	assert.Equal(t, "authenticated", session.Authenticated("1").Kind().String())
	assert.Equal(t, "guest", session.ScopeGuest.String())
}

func TestResolverMintsAndPersistsGuestID(t *testing.T) {
	store := storage.NewMemoryStorage()
	clock := time.UnixMilli(1700000000000)
	r := session.NewResolver(store).WithClock(func() time.Time { return clock })

	scope, err := r.Scope(nil)
	require.NoError(t, err)
	assert.True(t, scope.IsGuest())
	assert.Equal(t, "guest_1700000000000", scope.CartKey())

	// Later calls reuse the stored id even after the clock moves.
	clock = clock.Add(time.Hour)
	again, err := session.NewResolver(store).WithClock(func() time.Time { return clock }).Scope(&models.User{})
	require.NoError(t, err)
	assert.Equal(t, scope, again)

	stored, ok, err := r.StoredGuest()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, scope, stored)
}

func TestResolverPrefersSignedInUser(t *testing.T) {
	store := storage.NewMemoryStorage()
	require.NoError(t, store.SetItem(storage.KeyGuestCartID, "guest_5"))
	r := session.NewResolver(store)

	key, err := r.CartKey(&models.User{ID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, "user_u-1", key)

	// The guest id is left alone for a later merge.
	v, ok, _ := store.GetItem(storage.KeyGuestCartID)
	assert.True(t, ok)
	assert.Equal(t, "guest_5", v)

	require.NoError(t, r.ForgetGuest())
	_, ok, err = r.StoredGuest()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartKeyShapes(t *testing.T) {
	store := storage.NewMemoryStorage()
	r := session.NewResolver(store)
	for _, id := range []string{"1", "abc", "65f0c2"} {
		key, err := r.CartKey(&models.User{ID: id})
		require.NoError(t, err)
		assert.Equal(t, "user_"+id, key)
	}
	key, err := r.CartKey(nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "guest_"))
}

type failingStorage struct{ *storage.MemoryStorage }

func newFailingStorage() *failingStorage {
	return &failingStorage{MemoryStorage: storage.NewMemoryStorage()}
}

func (*failingStorage) GetItem(string) (string, bool, error) { return "", false, errors.New("disk gone") }

func TestResolverSurfacesStorageErrors(t *testing.T) {
	r := session.NewResolver(newFailingStorage())
	_, err := r.Scope(nil)
	assert.ErrorContains(t, err, "disk gone")

	_, err = session.NewAuthStore(newFailingStorage()).Load()
	assert.ErrorContains(t, err, "disk gone")
}

func TestAuthStore(t *testing.T) {
	store := storage.NewMemoryStorage()
	auth := session.NewAuthStore(store)

	s, err := auth.Load()
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	want := models.AuthSession{User: &models.User{ID: "u-1", Name: "Jane", Role: models.RoleAdmin}, AccessToken: "tok"}
	require.NoError(t, auth.Save(want))
	got, err := auth.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	token, err := auth.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	require.NoError(t, store.SetItem(storage.KeyGuestCartID, "guest_1"))
	require.NoError(t, auth.Clear())
	_, ok, _ := store.GetItem(storage.KeyGuestCartID)
	assert.True(t, ok, "Clear keeps the guest id")

	require.NoError(t, auth.Save(want))
	require.NoError(t, auth.Logout())
	_, ok, _ = store.GetItem(storage.KeyAuth)
	assert.False(t, ok)
	_, ok, _ = store.GetItem(storage.KeyGuestCartID)
	assert.False(t, ok)

	require.NoError(t, store.SetItem(storage.KeyAuth, "{broken"))
	_, err = auth.Load()
	assert.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)

	got, ok := session.TokenExpiry(token)
	assert.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = session.TokenExpiry("nope")
	assert.False(t, ok)
}
