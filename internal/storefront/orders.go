package storefront

import (
	"context"
	"fmt"

	"motoparts/internal/catalog"
	"motoparts/internal/models"
	"motoparts/internal/state"
)

const defaultSTKMessage = "STK Push sent. Check your phone"

// CheckoutResult is what checkout hands back to the shopper.
type CheckoutResult struct {
	Order           *models.Order
	CustomerMessage string
}

// Checkout turns the cart in state into an order and starts an M-Pesa STK
// push. An empty cart or a missing phone number fails before any request.
// If the order is created but the payment call fails, the result still
// carries the order so PayOrder can retry the payment.
func (s *Storefront) Checkout(ctx context.Context, in models.CheckoutInput) (*CheckoutResult, error) {
	cart := s.Cart()
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if in.Phone == "" {
		return nil, &ValidationError{Fields: map[string]string{"Phone": "Please enter your M-Pesa phone number"}}
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = "mpesa"
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	if cart.CartID == "" {
		return nil, ErrMissingCartID
	}

	s.begin(state.SliceOrders)
	order, err := s.api.CreateOrder(ctx, models.CreateOrderRequest{
		CartID:          cart.CartID,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	})
	if err != nil {
		return nil, s.fail(state.SliceOrders, "create order", err, "Payment failed")
	}
	s.store.Dispatch(state.CartCleared{Seq: s.store.NextCartSeq()})
	s.store.Dispatch(state.MyOrdersLoaded{Orders: append([]models.Order{*order}, s.store.State().Orders...)})

	msg, err := s.PayOrder(ctx, order.ID, in.Phone)
	result := &CheckoutResult{Order: order, CustomerMessage: msg}
	if err != nil {
		return result, err
	}
	return result, nil
}

// PayOrder (re)starts the M-Pesa STK push for an existing order.
func (s *Storefront) PayOrder(ctx context.Context, orderID, phone string) (string, error) {
	if err := s.check(models.PaymentRequest{OrderID: orderID, PhoneNumber: phone}); err != nil {
		return "", err
	}
	resp, err := s.api.InitiateMpesa(ctx, models.PaymentRequest{OrderID: orderID, PhoneNumber: phone})
	if err != nil {
		return "", s.fail(state.SliceOrders, "initiate payment", err, "Payment failed")
	}
	if msg := resp.Response.CustomerMessage; msg != "" {
		return msg, nil
	}
	return defaultSTKMessage, nil
}

// MyOrders loads the signed-in user's orders.
func (s *Storefront) MyOrders(ctx context.Context) ([]models.Order, error) {
	if _, err := s.RequireAuth(); err != nil {
		return nil, err
	}
	s.begin(state.SliceOrders)
	orders, err := s.api.MyOrders(ctx)
	if err != nil {
		return nil, s.fail(state.SliceOrders, "fetch my orders", err, "Failed to fetch orders")
	}
	s.store.Dispatch(state.MyOrdersLoaded{Orders: orders})
	return orders, nil
}

// Order loads one order.
func (s *Storefront) Order(ctx context.Context, id string) (*models.Order, error) {
	if _, err := s.RequireAuth(); err != nil {
		return nil, err
	}
	order, err := s.api.Order(ctx, id)
	if err != nil {
		return nil, s.fail(state.SliceOrders, "fetch order", err, "Order not found")
	}
	return order, nil
}

// CancelOrder asks the server to cancel; the returned order is authoritative.
func (s *Storefront) CancelOrder(ctx context.Context, id string) (*models.Order, error) {
	if _, err := s.RequireAuth(); err != nil {
		return nil, err
	}
	s.begin(state.SliceOrders)
	order, err := s.api.CancelOrder(ctx, id)
	if err != nil {
		return nil, s.fail(state.SliceOrders, "cancel order", err, "Failed to cancel order")
	}
	s.store.Dispatch(state.OrderStored{Order: *order, Message: fmt.Sprintf("Order %s has been cancelled", order.ID)})
	return order, nil
}

// FetchAllOrders is the admin order listing.
func (s *Storefront) FetchAllOrders(ctx context.Context) ([]models.Order, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	s.begin(state.SliceOrders)
	orders, err := s.api.AllOrders(ctx)
	if err != nil {
		return nil, s.fail(state.SliceOrders, "fetch all orders", err, "Failed to fetch orders")
	}
	s.store.Dispatch(state.AdminOrdersLoaded{Orders: orders})
	return orders, nil
}

// UpdateOrderStatus requests a status transition.
func (s *Storefront) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if _, err := s.RequireAdmin(); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, &ValidationError{Fields: map[string]string{"Status": fmt.Sprintf("invalid order status: %s", status)}}
	}
	s.begin(state.SliceOrders)
	order, err := s.api.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, s.fail(state.SliceOrders, "update order status", err, "Failed to update status")
	}
	msg := fmt.Sprintf("Order %s status updated to %s", order.ID, order.Status)
	s.store.Dispatch(state.OrderStored{Order: *order, Message: msg})
	return order, nil
}

// AdminOrderView filters the admin orders in state.
func (s *Storefront) AdminOrderView(search string, status models.OrderStatus) []models.Order {
	return catalog.FilterOrders(s.store.State().AdminOrders, search, status)
}

// ClearSuccess drops the last success message.
func (s *Storefront) ClearSuccess() {
	s.store.Dispatch(state.SuccessCleared{})
}
