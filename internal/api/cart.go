package api

import (
	"context"
	"net/url"

	"motoparts/internal/models"
)

type cartLine struct {
	CartID    string `json:"cartId"`
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
}

// Cart: GET /cart?cartId=.
func (c *Client) Cart(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	if err := c.get(ctx, "/cart", url.Values{"cartId": {cartID}}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart: POST /cart/add.
func (c *Client) AddToCart(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error) {
	var cart models.Cart
	body := cartLine{CartID: cartID, ProductID: productID, Quantity: quantity}
	if err := c.post(ctx, "/cart/add", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem sets a line's quantity: PATCH /cart/update.
func (c *Client) UpdateCartItem(ctx context.Context, cartID, productID string, quantity int) (*models.Cart, error) {
	var cart models.Cart
	body := cartLine{CartID: cartID, ProductID: productID, Quantity: quantity}
	if err := c.patch(ctx, "/cart/update", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem: DELETE /cart/remove.
func (c *Client) RemoveCartItem(ctx context.Context, cartID, productID string) (*models.Cart, error) {
	var cart models.Cart
	body := cartLine{CartID: cartID, ProductID: productID}
	if err := c.delete(ctx, "/cart/remove", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart: DELETE /cart/clear.
func (c *Client) ClearCart(ctx context.Context, cartID string) error {
	return c.delete(ctx, "/cart/clear", cartLine{CartID: cartID}, nil)
}
