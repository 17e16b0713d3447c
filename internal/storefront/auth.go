package storefront

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"motoparts/internal/models"
	"motoparts/internal/session"
	"motoparts/internal/state"
)

// Login signs in, persists the session and returns the route to show next.
func (s *Storefront) Login(ctx context.Context, email, password string) (string, error) {
	in := models.LoginInput{Email: email, Password: password}
	if err := s.check(in); err != nil {
		return "", err
	}
	s.begin(state.SliceAuth)
	sess, err := s.api.Login(ctx, in)
	if err != nil {
		return "", s.fail(state.SliceAuth, "login", err, "Login/Register failed")
	}
	return s.signIn(ctx, *sess)
}

// GoogleLogin signs in with a Google credential.
func (s *Storefront) GoogleLogin(ctx context.Context, credential string) (string, error) {
	if err := s.check(models.GoogleLoginInput{Credential: credential}); err != nil {
		return "", err
	}
	s.begin(state.SliceAuth)
	sess, err := s.api.GoogleLogin(ctx, credential)
	if err != nil {
		return "", s.fail(state.SliceAuth, "google login", err, "Google login failed")
	}
	return s.signIn(ctx, *sess)
}

func (s *Storefront) signIn(ctx context.Context, sess models.AuthSession) (string, error) {
	if !sess.Authenticated() {
		return "", s.fail(state.SliceAuth, "login", fmt.Errorf("server returned no user"), "Login failed")
	}
	if err := s.auth.Save(sess); err != nil {
		return "", err
	}
	s.store.Dispatch(state.SetCredentials{Session: sess})

	if s.opts.MergeGuestCartOnLogin {
		if err := s.mergeGuestCart(ctx, *sess.User); err != nil {
			s.logger.Warn("guest cart merge failed", zap.Error(err))
		}
	}

	if sess.User.Role.IsAdmin() {
		return RouteAdmin, nil
	}
	return RouteHome, nil
}

// Register creates a customer account. It does not sign in.
func (s *Storefront) Register(ctx context.Context, in models.RegisterInput) (string, error) {
	if err := s.check(in); err != nil {
		return "", err
	}
	msg, err := s.api.Register(ctx, in)
	if err != nil {
		return "", s.fail(state.SliceAuth, "register", err, "Login/Register failed")
	}
	if msg == "" {
		msg = "Registration successful! Please login."
	}
	return msg, nil
}

// Logout ends the session locally even if the API call fails, and forgets
// the guest cart id.
func (s *Storefront) Logout(ctx context.Context) error {
	if s.CurrentUser() != nil {
		if err := s.api.Logout(ctx); err != nil {
			s.logger.Warn("logout call failed", zap.Error(err))
		}
	}
	if err := s.auth.Logout(); err != nil {
		return err
	}
	s.store.Dispatch(state.LoggedOut{})
	return nil
}

// Scope returns the current cart scope.
func (s *Storefront) Scope() (session.SessionScope, error) {
	return s.resolver.Scope(s.CurrentUser())
}
