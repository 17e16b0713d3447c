package api

import (
	"context"

	"motoparts/internal/models"
)

// Login: POST /auth/login. The session comes back as {data: {user, accessToken}}.
func (c *Client) Login(ctx context.Context, in models.LoginInput) (*models.AuthSession, error) {
	var resp dataEnvelope[models.AuthSession]
	if err := c.post(ctx, "/auth/login", in, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GoogleLogin exchanges a Google credential for a session: POST /auth/google.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (*models.AuthSession, error) {
	var resp dataEnvelope[models.AuthSession]
	if err := c.post(ctx, "/auth/google", models.GoogleLoginInput{Credential: credential}, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Register: POST /auth/register. Registration does not sign the user in.
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, "/auth/register", in, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout: POST /auth/logout.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// Users lists every account: GET /users.
func (c *Client) Users(ctx context.Context) ([]models.UserRecord, error) {
	var resp dataEnvelope[[]models.UserRecord]
	if err := c.get(ctx, "/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// User: GET /users/:id.
func (c *Client) User(ctx context.Context, id string) (*models.UserRecord, error) {
	var resp dataEnvelope[models.UserRecord]
	if err := c.get(ctx, "/users/"+escape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Me: GET /users/me.
func (c *Client) Me(ctx context.Context) (*models.UserRecord, error) {
	var resp dataEnvelope[models.UserRecord]
	if err := c.get(ctx, "/users/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateAdmin: POST /users/create-admin.
func (c *Client) CreateAdmin(ctx context.Context, in models.AdminInput) (*models.UserRecord, error) {
	var resp dataEnvelope[models.UserRecord]
	if err := c.post(ctx, "/users/create-admin", in, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateUser: PUT /users/:id.
func (c *Client) UpdateUser(ctx context.Context, id string, in models.UserUpdate) (*models.UserRecord, error) {
	var resp dataEnvelope[models.UserRecord]
	if err := c.put(ctx, "/users/"+escape(id), in, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteUser: DELETE /users/:id.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+escape(id), nil, nil)
}
