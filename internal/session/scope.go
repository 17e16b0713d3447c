// Package session resolves who the current shopper is: the persisted auth
// blob and the cart identity derived from it.
package session

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"motoparts/internal/models"
	"motoparts/internal/storage"
)

const (
	userCartPrefix  = "user_"
	guestCartPrefix = "guest_"
)

// ScopeKind distinguishes anonymous from signed-in shoppers.
type ScopeKind int

const (
	ScopeGuest ScopeKind = iota
	ScopeAuthenticated
)

func (k ScopeKind) String() string {
	if k == ScopeAuthenticated {
		return "authenticated"
	}
	return "guest"
}

// SessionScope is either Guest(id) or Authenticated(userID).
type SessionScope struct {
	kind ScopeKind
	id   string
}

// Guest scopes the cart to a persisted anonymous id.
func Guest(id string) SessionScope {
	return SessionScope{kind: ScopeGuest, id: id}
}

// Authenticated scopes the cart to a user account.
func Authenticated(userID string) SessionScope {
	return SessionScope{kind: ScopeAuthenticated, id: userID}
}

func (s SessionScope) Kind() ScopeKind { return s.kind }
func (s SessionScope) ID() string      { return s.id }
func (s SessionScope) IsGuest() bool   { return s.kind == ScopeGuest }

// CartKey is the string that scopes every cart call server-side.
func (s SessionScope) CartKey() string {
	if s.kind == ScopeAuthenticated {
		return userCartPrefix + s.id
	}
	return s.id
}

// Resolver derives the SessionScope from auth state and local storage.
type Resolver struct {
	store storage.Storage
	now   func() time.Time
	mu    sync.Mutex
}

// NewResolver creates a Resolver backed by store.
func NewResolver(store storage.Storage) *Resolver {
	return &Resolver{store: store, now: time.Now}
}

// WithClock overrides the time source used to mint guest ids.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Scope returns Authenticated for a signed-in user, regardless of any stored
// guest id. Otherwise it reuses the stored guest id, minting and persisting
// guest_<unix-millis> on first use.
func (r *Resolver) Scope(user *models.User) (SessionScope, error) {
	if user != nil && user.ID != "" {
		return Authenticated(user.ID), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok, err := r.store.GetItem(storage.KeyGuestCartID)
	if err != nil {
		return SessionScope{}, fmt.Errorf("failed to read guest cart id: %w", err)
	}
	if ok && id != "" {
		return Guest(id), nil
	}

	id = guestCartPrefix + strconv.FormatInt(r.now().UnixMilli(), 10)
	if err := r.store.SetItem(storage.KeyGuestCartID, id); err != nil {
		return SessionScope{}, fmt.Errorf("failed to persist guest cart id: %w", err)
	}
	return Guest(id), nil
}

// CartKey is shorthand for Scope(user).CartKey().
func (r *Resolver) CartKey(user *models.User) (string, error) {
	scope, err := r.Scope(user)
	if err != nil {
		return "", err
	}
	return scope.CartKey(), nil
}

// StoredGuest returns the persisted guest scope without minting one.
func (r *Resolver) StoredGuest() (SessionScope, bool, error) {
	id, ok, err := r.store.GetItem(storage.KeyGuestCartID)
	if err != nil {
		return SessionScope{}, false, fmt.Errorf("failed to read guest cart id: %w", err)
	}
	if !ok || id == "" {
		return SessionScope{}, false, nil
	}
	return Guest(id), true, nil
}

// ForgetGuest drops the persisted guest id.
func (r *Resolver) ForgetGuest() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.RemoveItem(storage.KeyGuestCartID)
}
