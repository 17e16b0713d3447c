package api

import (
	"context"

	"motoparts/internal/models"
)

// CreateOrder checks out a cart: POST /orders/create.
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/orders/create", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InitiateMpesa asks the gateway to send an STK push: POST /checkout/mpesa.
func (c *Client) InitiateMpesa(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error) {
	var resp models.PaymentResponse
	if err := c.post(ctx, "/checkout/mpesa", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyOrders: GET /orders/my.
func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order: GET /orders/:id.
func (c *Client) Order(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, "/orders/"+escape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder: PATCH /orders/cancel/:id.
func (c *Client) CancelOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.patch(ctx, "/orders/cancel/"+escape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AllOrders is the admin listing: GET /orders/admin/all.
func (c *Client) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, "/orders/admin/all", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus: PATCH /orders/admin/status/:id.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	body := map[string]models.OrderStatus{"status": status}
	if err := c.patch(ctx, "/orders/admin/status/"+escape(id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
