package models

import "time"

// OrderStatus is the server-authoritative lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in this status may still be cancelled.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderProcessing
}

// OrderUser is the populated owner of an order.
type OrderUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is a snapshot of a cart taken at checkout.
type Order struct {
	ID              string      `json:"_id"`
	User            *OrderUser  `json:"user,omitempty"`
	CartID          string      `json:"cartId"`
	Items           []CartItem  `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CheckoutInput is what the customer submits at checkout.
type CheckoutInput struct {
	ShippingAddress string `json:"shippingAddress" validate:"required,min=5"`
	PaymentMethod   string `json:"paymentMethod" validate:"required,oneof=mpesa"`
	Phone           string `json:"phoneNumber" validate:"required,e164|numeric"`
}

// CreateOrderRequest is the body of POST /orders/create.
type CreateOrderRequest struct {
	CartID          string `json:"cartId" validate:"required"`
	ShippingAddress string `json:"shippingAddress" validate:"required"`
	PaymentMethod   string `json:"paymentMethod" validate:"required"`
}

// PaymentRequest is the body of POST /checkout/mpesa.
type PaymentRequest struct {
	OrderID     string `json:"orderId" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

// PaymentResponse mirrors the gateway acknowledgement relayed by the API.
type PaymentResponse struct {
	Message  string `json:"message,omitempty"`
	Response struct {
		MerchantRequestID string `json:"MerchantRequestID,omitempty"`
		CheckoutRequestID string `json:"CheckoutRequestID,omitempty"`
		ResponseCode      string `json:"ResponseCode,omitempty"`
		CustomerMessage   string `json:"CustomerMessage,omitempty"`
	} `json:"response"`
}
