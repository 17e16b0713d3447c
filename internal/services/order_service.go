package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
	"motoparts/pkg/rabbitmq"
)

// OrderService handles checkout, the order lifecycle and payment requests.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	carts       *CartService
	events      EventPublisher
	logger      *zap.Logger
	// mu makes the stock check and decrement of one checkout atomic.
	mu sync.Mutex
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, carts *CartService, events EventPublisher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		carts:       carts,
		events:      events,
		logger:      logger,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// MyOrders retrieves the orders of one user.
func (s *OrderService) MyOrders(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID returns an order its owner or an admin may see.
func (s *OrderService) GetOrderByID(user *models.User, id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !canSee(user, order) {
		return nil, fmt.Errorf("%w: order %s belongs to another user", ErrForbidden, id)
	}
	return order, nil
}

func canSee(user *models.User, order *models.Order) bool {
	return user.Role.IsAdmin() || (order.User != nil && order.User.ID == user.ID)
}

// CreateOrder snapshots the cart into a pending order, reserves stock and
// clears the cart.
func (s *OrderService) CreateOrder(user *models.User, req models.CreateOrderRequest) (*models.Order, error) {
	cart, err := s.carts.GetCart(req.CartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products := make([]*models.Product, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.Product.ID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.Product.ID, err)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("%w: insufficient stock for product %s (requested: %d, available: %d)",
				ErrInvalidInput, product.Name, item.Quantity, product.Stock)
		}
		products = append(products, product)
	}
	for i, product := range products {
		product.Stock -= cart.Items[i].Quantity
		if err := s.productRepo.Update(product); err != nil {
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
	}

	newOrder := &models.Order{
		User:            &models.OrderUser{ID: user.ID, Name: user.Name, Email: user.Email},
		CartID:          cart.CartID,
		Items:           cart.Items,
		TotalAmount:     models.SumItems(cart.Items).InexactFloat64(),
		Status:          models.OrderPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}
	if err := s.carts.Clear(cart.CartID); err != nil {
		s.logger.Warn("failed to clear cart after checkout", zap.String("cart", cart.CartID), zap.Error(err))
	}

	s.publish(rabbitmq.Event{
		Type:    rabbitmq.OrderCreated,
		OrderID: newOrder.ID,
		UserID:  user.ID,
		Status:  string(newOrder.Status),
		Total:   newOrder.TotalAmount,
	})
	return newOrder, nil
}

// CancelOrder cancels an order that has not shipped and returns its stock.
// The status check, status change and restock all run under s.mu.
func (s *OrderService) CancelOrder(user *models.User, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.GetOrderByID(user, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, fmt.Errorf("%w: order %s cannot be cancelled once %s", ErrInvalidInput, id, order.Status)
	}

	updated, err := s.orderRepo.UpdateStatus(order.ID, models.OrderCancelled)
	if err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		product, err := s.productRepo.GetByID(item.Product.ID)
		if err != nil {
			continue
		}
		product.Stock += item.Quantity
		if err := s.productRepo.Update(product); err != nil {
			s.logger.Warn("failed to restock", zap.String("product", product.ID), zap.Error(err))
		}
	}
	s.publish(rabbitmq.Event{Type: rabbitmq.OrderCancelled, OrderID: id, UserID: user.ID, Status: string(updated.Status)})
	return updated, nil
}

// UpdateOrderStatus moves an order to any known status.
func (s *OrderService) UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid order status: %s", ErrInvalidInput, status)
	}
	order, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	s.publish(rabbitmq.Event{Type: rabbitmq.OrderStatusChanged, OrderID: id, Status: string(status)})
	return order, nil
}

// InitiatePayment records an M-Pesa STK push request for a pending order and
// answers the way the gateway acknowledges one.
func (s *OrderService) InitiatePayment(user *models.User, req models.PaymentRequest) (*models.PaymentResponse, error) {
	order, err := s.GetOrderByID(user, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderPending {
		return nil, fmt.Errorf("%w: order %s is already %s", ErrInvalidInput, order.ID, order.Status)
	}

	s.publish(rabbitmq.Event{
		Type:    rabbitmq.PaymentRequested,
		OrderID: order.ID,
		UserID:  user.ID,
		Total:   order.TotalAmount,
		Phone:   req.PhoneNumber,
	})

	resp := &models.PaymentResponse{Message: "STK push initiated"}
	resp.Response.MerchantRequestID = uuid.New().String()
	resp.Response.CheckoutRequestID = fmt.Sprintf("ws_CO_%s", time.Now().Format("020120061504050000"))
	resp.Response.ResponseCode = "0"
	resp.Response.CustomerMessage = "Success. Request accepted for processing"
	return resp, nil
}

func (s *OrderService) publish(event rabbitmq.Event) {
	if s.events == nil {
		s.logger.Debug("no event publisher, skipping", zap.String("type", event.Type))
		return
	}
	if err := s.events.Publish(event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", event.Type), zap.String("order", event.OrderID), zap.Error(err))
	}
}
