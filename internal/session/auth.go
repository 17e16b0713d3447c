package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"motoparts/internal/models"
	"motoparts/internal/storage"
)

// AuthStore persists the auth blob. No expiry is enforced; a stale token is
// only discovered when the API answers 401.
type AuthStore struct {
	store storage.Storage
}

// NewAuthStore creates an AuthStore backed by store.
func NewAuthStore(store storage.Storage) *AuthStore {
	return &AuthStore{store: store}
}

// Load returns the persisted session, or an empty one when none is stored.
func (a *AuthStore) Load() (models.AuthSession, error) {
	raw, ok, err := a.store.GetItem(storage.KeyAuth)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("failed to read auth: %w", err)
	}
	if !ok || raw == "" {
		return models.AuthSession{}, nil
	}
	var s models.AuthSession
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return models.AuthSession{}, fmt.Errorf("failed to decode stored auth: %w", err)
	}
	return s, nil
}

// Save persists s.
func (a *AuthStore) Save(s models.AuthSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode auth: %w", err)
	}
	if err := a.store.SetItem(storage.KeyAuth, string(raw)); err != nil {
		return fmt.Errorf("failed to persist auth: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when signed out.
func (a *AuthStore) Token() (string, error) {
	s, err := a.Load()
	if err != nil {
		return "", err
	}
	return s.AccessToken, nil
}

// Clear drops the auth blob only. Used when the API rejects the token.
func (a *AuthStore) Clear() error {
	if err := a.store.RemoveItem(storage.KeyAuth); err != nil {
		return fmt.Errorf("failed to clear auth: %w", err)
	}
	return nil
}

// Logout drops the auth blob and the guest cart id.
func (a *AuthStore) Logout() error {
	if err := a.Clear(); err != nil {
		return err
	}
	if err := a.store.RemoveItem(storage.KeyGuestCartID); err != nil {
		return fmt.Errorf("failed to clear guest cart id: %w", err)
	}
	return nil
}

// TokenExpiry reads the exp claim without verifying the signature; the
// client has no key and only uses it for display.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0), true
}
