package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motoparts/internal/models"
	"motoparts/internal/sandbox"
	"motoparts/internal/sandbox/sandboxtest"
	"motoparts/internal/session"
	"motoparts/internal/storage"
)

func newTestClient(t *testing.T) (*Client, *session.AuthStore) {
	t.Helper()
	h := sandboxtest.Start(t)
	creds := session.NewAuthStore(storage.NewMemoryStorage())
	return NewClient(Config{BaseURL: h.URL, Timeout: 5 * time.Second}, creds, nil), creds
}

func signIn(t *testing.T, c *Client, creds *session.AuthStore, email, password string) *models.AuthSession {
	t.Helper()
	sess, err := c.Login(context.Background(), models.LoginInput{Email: email, Password: password})
	require.NoError(t, err)
	require.NoError(t, creds.Save(*sess))
	return sess
}

func TestLogin(t *testing.T) {
	c, creds := newTestClient(t)
	ctx := context.Background()

	sess := signIn(t, c, creds, sandbox.AdminEmail, sandbox.AdminPassword)
	require.NotNil(t, sess.User)
	assert.NotEmpty(t, sess.AccessToken)
	assert.Equal(t, sandbox.AdminEmail, sess.User.Email)
	assert.True(t, sess.User.Role.IsAdmin())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, me.ID)

	_, err = c.Login(ctx, models.LoginInput{Email: sandbox.AdminEmail, Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegister(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	in := models.RegisterInput{Name: "Jane Rider", Email: "jane@example.com", Password: "secret1"}

	msg, err := c.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Registration successful! Please login.", msg)

	_, err = c.Register(ctx, in)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = c.Register(ctx, models.RegisterInput{Name: "J", Email: "not-an-email", Password: "x"})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "Validation failed", Message(err, "fallback"))
}

func TestProducts(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	products, err := c.Products(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Category.ID())
	}

	p, err := c.Product(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, products[0].Name, p.Name)

	_, err = c.Product(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)

	cats, err := c.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)

	subs, err := c.SubCategories(ctx, cats[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, subs)
}

func TestCartRoundTrip(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	cartID := session.Guest("guest_1700000000000").CartKey()

	products, err := c.Products(ctx)
	require.NoError(t, err)
	var productID string
	for _, p := range products {
		if p.Stock > 5 {
			productID = p.ID
			break
		}
	}
	require.NotEmpty(t, productID)

	cart, err := c.AddToCart(ctx, cartID, productID, 2)
	require.NoError(t, err)
	assert.Equal(t, cartID, cart.CartID)
	assert.Equal(t, 2, cart.Count())

	cart, err = c.UpdateCartItem(ctx, cartID, productID, 3)
	require.NoError(t, err)
	item, ok := cart.Item(productID)
	require.True(t, ok)
	assert.Equal(t, 3, item.Quantity)

	cart, err = c.RemoveCartItem(ctx, cartID, productID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	require.NoError(t, c.ClearCart(ctx, cartID))
}

func TestUnauthorizedClearsSession(t *testing.T) {
	c, creds := newTestClient(t)
	require.NoError(t, creds.Save(models.AuthSession{
		AccessToken: "not-a-real-token",
		User:        &models.User{ID: "u1", Name: "Ghost", Role: models.RoleUser},
	}))

	called := 0
	c.OnUnauthorized(func() { called++ })

	_, err := c.MyOrders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, called)

	token, err := creds.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestForbiddenForCustomers(t *testing.T) {
	c, creds := newTestClient(t)
	ctx := context.Background()

	_, err := c.Register(ctx, models.RegisterInput{Name: "Sam Buyer", Email: "sam@example.com", Password: "secret1"})
	require.NoError(t, err)
	signIn(t, c, creds, "sam@example.com", "secret1")

	called := false
	c.OnUnauthorized(func() { called = true })

	_, err = c.AllOrders(ctx)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, called)

	token, err := creds.Token()
	require.NoError(t, err)
	assert.NotEmpty(t, token, "a 403 must not end the session")
}

func TestCancelledContext(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Products(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		is      error
	}{
		{"server message", http.StatusNotFound, `{"message":"Product not found"}`, "Product not found", ErrNotFound},
		{"empty message", http.StatusConflict, `{"message":""}`, FallbackMessage, ErrConflict},
		{"not json", http.StatusBadRequest, `<html>bad gateway</html>`, FallbackMessage, ErrBadRequest},
		{"no body", http.StatusForbidden, ``, FallbackMessage, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.message, err.Message)
			assert.ErrorIs(t, err, tt.is)
			assert.NotErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Out of stock", Message(&Error{Status: 400, Message: "Out of stock"}, "Cart update failed"))
	assert.Equal(t, "Cart update failed", Message(&Error{Status: 500, Message: FallbackMessage}, "Cart update failed"))
	assert.Equal(t, "Cart update failed", Message(errors.New("dial tcp: refused"), "Cart update failed"))

	wrapped := errors.Join(errors.New("add to cart"), &Error{Status: 404, Message: "Product not found"})
	assert.Equal(t, "Product not found", Message(wrapped, "x"))
}
