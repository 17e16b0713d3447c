// Package storefront holds the shopper and admin use cases. Each one calls
// the API, dispatches the outcome into the state store and reports failures
// to the caller without retrying.
package storefront

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"motoparts/internal/api"
	"motoparts/internal/catalog"
	"motoparts/internal/models"
	"motoparts/internal/session"
	"motoparts/internal/state"
)

// Routes a front end navigates to after auth decisions.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
	RouteAdmin = "/admin"
)

var (
	ErrUnauthenticated = errors.New("sign in required")
	ErrNotAdmin        = errors.New("admin role required")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrMissingCartID   = errors.New("cart id is missing")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotInCart       = errors.New("product is not in the cart")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError lists failed fields, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Options tune behaviour that the storefront leaves to the deployment.
type Options struct {
	// MergeGuestCartOnLogin moves guest cart lines into the user's cart after
	// login. Off by default: the guest and user carts stay separate.
	MergeGuestCartOnLogin bool
	// Navigate is called with RouteLogin when the API rejects the session.
	Navigate func(route string)
	// LowStockThreshold marks products for the admin report.
	LowStockThreshold int
}

// Storefront wires the API client, the state store and the local session.
type Storefront struct {
	api      *api.Client
	store    *state.Store
	auth     *session.AuthStore
	resolver *session.Resolver
	selector *catalog.Selector
	validate *validator.Validate
	logger   *zap.Logger
	opts     Options
}

// New creates a Storefront and hooks 401 handling into the client.
func New(client *api.Client, store *state.Store, auth *session.AuthStore, resolver *session.Resolver, logger *zap.Logger, opts Options) *Storefront {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = 5
	}
	s := &Storefront{
		api:      client,
		store:    store,
		auth:     auth,
		resolver: resolver,
		selector: catalog.NewSelector(),
		validate: validator.New(),
		logger:   logger,
		opts:     opts,
	}
	client.OnUnauthorized(s.sessionExpired)
	return s
}

// Store exposes the state container for subscribers.
func (s *Storefront) Store() *state.Store {
	return s.store
}

// Restore loads the persisted session into the store.
func (s *Storefront) Restore() error {
	sess, err := s.auth.Load()
	if err != nil {
		return err
	}
	if sess.Authenticated() {
		s.store.Dispatch(state.SetCredentials{Session: sess})
	}
	return nil
}

// CurrentUser returns the signed-in user, or nil.
func (s *Storefront) CurrentUser() *models.User {
	return s.store.State().Auth.User
}

// RequireAuth fails with ErrUnauthenticated when nobody is signed in.
func (s *Storefront) RequireAuth() (*models.User, error) {
	user := s.CurrentUser()
	if user == nil || user.ID == "" {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// RequireAdmin additionally fails with ErrNotAdmin for non-admin roles.
func (s *Storefront) RequireAdmin() (*models.User, error) {
	user, err := s.RequireAuth()
	if err != nil {
		return nil, err
	}
	if !user.Role.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return user, nil
}

// RedirectFor maps a guard error onto the route a front end should show.
func RedirectFor(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, api.ErrUnauthorized):
		return RouteLogin
	case errors.Is(err, ErrNotAdmin):
		return RouteHome
	default:
		return ""
	}
}

func (s *Storefront) sessionExpired() {
	s.logger.Info("session rejected by API, signing out")
	s.store.Dispatch(state.LoggedOut{})
	if s.opts.Navigate != nil {
		s.opts.Navigate(RouteLogin)
	}
}

func (s *Storefront) begin(slice state.Slice) {
	s.store.Dispatch(state.RequestStarted{Slice: slice})
}

// fail records err on slice and returns it wrapped with the operation name.
func (s *Storefront) fail(slice state.Slice, op string, err error, fallback string) error {
	s.store.Dispatch(state.RequestFailed{Slice: slice, Err: api.Message(err, fallback)})
	s.logger.Warn("request failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Storefront) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}
