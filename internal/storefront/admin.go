package storefront

import (
	"context"

	"motoparts/internal/catalog"
	"motoparts/internal/models"
	"motoparts/internal/state"
)

// FetchAdmins loads the user list and keeps only admin accounts.
func (s *Storefront) FetchAdmins(ctx context.Context) ([]models.UserRecord, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	s.begin(state.SliceUsers)
	users, err := s.api.Users(ctx)
	if err != nil {
		return nil, s.fail(state.SliceUsers, "fetch users", err, "Failed to fetch users")
	}
	admins := catalog.AdminsOnly(users)
	s.store.Dispatch(state.UsersLoaded{Users: admins})
	return admins, nil
}

// FetchUser loads one user and marks it selected.
func (s *Storefront) FetchUser(ctx context.Context, id string) (*models.UserRecord, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	s.begin(state.SliceUsers)
	user, err := s.api.User(ctx, id)
	if err != nil {
		return nil, s.fail(state.SliceUsers, "fetch user", err, "User not found")
	}
	s.store.Dispatch(state.UserSelected{User: user})
	return user, nil
}

// CreateAdmin registers a new admin account.
func (s *Storefront) CreateAdmin(ctx context.Context, in models.AdminInput) (*models.UserRecord, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	s.begin(state.SliceUsers)
	user, err := s.api.CreateAdmin(ctx, in)
	if err != nil {
		return nil, s.fail(state.SliceUsers, "create admin", err, "Failed to create admin")
	}
	s.store.Dispatch(state.UserAdded{User: *user})
	return user, nil
}

// UpdateUser applies the non-nil fields of in.
func (s *Storefront) UpdateUser(ctx context.Context, id string, in models.UserUpdate) (*models.UserRecord, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	s.begin(state.SliceUsers)
	user, err := s.api.UpdateUser(ctx, id, in)
	if err != nil {
		return nil, s.fail(state.SliceUsers, "update user", err, "Failed to update user")
	}
	s.store.Dispatch(state.UserUpdated{User: *user})
	return user, nil
}

// DeleteUser removes an account.
func (s *Storefront) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.RequireAdmin(); err != nil {
		return err
	}
	s.begin(state.SliceUsers)
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return s.fail(state.SliceUsers, "delete user", err, "Failed to delete user")
	}
	s.store.Dispatch(state.UserDeleted{ID: id})
	return nil
}

// UserView filters the users in state by name or email.
func (s *Storefront) UserView(search string) []models.UserRecord {
	return catalog.FilterUsers(s.store.State().Users, search)
}
