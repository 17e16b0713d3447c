package services_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"motoparts/internal/models"
	"motoparts/internal/repositories"
	"motoparts/internal/services"
	"motoparts/pkg/rabbitmq"
)

type orderFixture struct {
	orders   *services.OrderService
	carts    *services.CartService
	products *repositories.MockProductRepository
	events   *MockPublisher
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	products := repositories.NewMockProductRepository()
	seedProduct(t, products, "p1", 100, 5)
	seedProduct(t, products, "p2", 250, 3)
	carts := services.NewCartService(repositories.NewMockCartRepository(), products)
	events := new(MockPublisher)
	events.On("Publish", mock.Anything).Return(nil)
	return orderFixture{
		orders:   services.NewOrderService(repositories.NewMockOrderRepository(), products, carts, events, nil),
		carts:    carts,
		products: products,
		events:   events,
	}
}

func (f orderFixture) checkout(t *testing.T, user *models.User) *models.Order {
	t.Helper()
	cartID := "user_" + user.ID
	_, err := f.carts.AddItem(cartID, "p1", 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(cartID, "p2", 1)
	require.NoError(t, err)
	order, err := f.orders.CreateOrder(user, models.CreateOrderRequest{CartID: cartID, ShippingAddress: "Moi Avenue, Nairobi", PaymentMethod: "mpesa"})
	require.NoError(t, err)
	return order
}

func TestOrderService_CreateOrder(t *testing.T) {
	f := newOrderFixture(t)

	order := f.checkout(t, customer)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, 450.0, order.TotalAmount)
	assert.Equal(t, "u-1", order.User.ID)
	assert.Len(t, order.Items, 2)

	assert.Equal(t, 3, stockOf(t, f.products, "p1"))
	assert.Equal(t, 2, stockOf(t, f.products, "p2"))

	cart, err := f.carts.GetCart("user_u-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	assert.Equal(t, []string{rabbitmq.OrderCreated}, f.events.Types())
}

func TestOrderService_CreateOrderRejectsEmptyCartAndShortStock(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orders.CreateOrder(customer, models.CreateOrderRequest{CartID: "user_u-1", ShippingAddress: "x", PaymentMethod: "mpesa"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = f.carts.AddItem("user_u-1", "p2", 3)
	require.NoError(t, err)
	// Someone else buys the stock first.
	p2, err := f.products.GetByID("p2")
	require.NoError(t, err)
	p2.Stock = 1
	require.NoError(t, f.products.Update(p2))

	_, err = f.orders.CreateOrder(customer, models.CreateOrderRequest{CartID: "user_u-1", ShippingAddress: "x", PaymentMethod: "mpesa"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Equal(t, 1, stockOf(t, f.products, "p2"))
	assert.Empty(t, f.events.Types())
}

func TestOrderService_Visibility(t *testing.T) {
	f := newOrderFixture(t)
	order := f.checkout(t, customer)

	got, err := f.orders.GetOrderByID(customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = f.orders.GetOrderByID(admin, order.ID)
	assert.NoError(t, err)

	_, err = f.orders.GetOrderByID(stranger, order.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.orders.GetOrderByID(customer, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	mine, err := f.orders.MyOrders(customer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := f.orders.MyOrders(stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestOrderService_CancelOrderRestocks(t *testing.T) {
	f := newOrderFixture(t)
	order := f.checkout(t, customer)

	_, err := f.orders.CancelOrder(stranger, order.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	cancelled, err := f.orders.CancelOrder(customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)
	assert.Equal(t, 5, stockOf(t, f.products, "p1"))
	assert.Equal(t, 3, stockOf(t, f.products, "p2"))

	_, err = f.orders.CancelOrder(customer, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	assert.Equal(t, []string{rabbitmq.OrderCreated, rabbitmq.OrderCancelled}, f.events.Types())
}

func TestOrderService_ConcurrentCancelRestocksOnce(t *testing.T) {
	f := newOrderFixture(t)
	order := f.checkout(t, customer)

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.orders.CancelOrder(customer, order.ID)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, services.ErrInvalidInput)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 5, stockOf(t, f.products, "p1"))
	assert.Equal(t, 3, stockOf(t, f.products, "p2"))
	assert.Equal(t, []string{rabbitmq.OrderCreated, rabbitmq.OrderCancelled}, f.events.Types())
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t)
	order := f.checkout(t, customer)

	updated, err := f.orders.UpdateOrderStatus(order.ID, models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)

	_, err = f.orders.UpdateOrderStatus(order.ID, "lost")
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	_, err = f.orders.UpdateOrderStatus("missing", models.OrderShipped)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Shipped orders can no longer be cancelled.
	_, err = f.orders.CancelOrder(customer, order.ID)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	all, err := f.orders.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOrderService_InitiatePayment(t *testing.T) {
	f := newOrderFixture(t)
	order := f.checkout(t, customer)

	resp, err := f.orders.InitiatePayment(customer, models.PaymentRequest{OrderID: order.ID, PhoneNumber: "254712345678"})
	require.NoError(t, err)
	assert.Equal(t, "0", resp.Response.ResponseCode)
	assert.Equal(t, "Success. Request accepted for processing", resp.Response.CustomerMessage)
	assert.NotEmpty(t, resp.Response.MerchantRequestID)

	f.events.AssertCalled(t, "Publish", mock.MatchedBy(func(e rabbitmq.Event) bool {
		return e.Type == rabbitmq.PaymentRequested && e.Phone == "254712345678" && e.Total == 450
	}))

	_, err = f.orders.InitiatePayment(stranger, models.PaymentRequest{OrderID: order.ID, PhoneNumber: "254700000000"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.orders.UpdateOrderStatus(order.ID, models.OrderProcessing)
	require.NoError(t, err)
	_, err = f.orders.InitiatePayment(customer, models.PaymentRequest{OrderID: order.ID, PhoneNumber: "254712345678"})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestOrderService_PublishFailureDoesNotFailOrder(t *testing.T) {
	products := repositories.NewMockProductRepository()
	seedProduct(t, products, "p1", 100, 5)
	carts := services.NewCartService(repositories.NewMockCartRepository(), products)
	events := new(MockPublisher)
	events.On("Publish", mock.Anything).Return(errors.New("broker down"))
	orders := services.NewOrderService(repositories.NewMockOrderRepository(), products, carts, events, nil)

	_, err := carts.AddItem("guest_1", "p1", 1)
	require.NoError(t, err)
	order, err := orders.CreateOrder(customer, models.CreateOrderRequest{CartID: "guest_1", ShippingAddress: "Nairobi", PaymentMethod: "mpesa"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
}

func TestOrderService_WithoutPublisher(t *testing.T) {
	products := repositories.NewMockProductRepository()
	seedProduct(t, products, "p1", 100, 5)
	carts := services.NewCartService(repositories.NewMockCartRepository(), products)
	orders := services.NewOrderService(repositories.NewMockOrderRepository(), products, carts, nil, nil)

	_, err := carts.AddItem("guest_1", "p1", 1)
	require.NoError(t, err)
	_, err = orders.CreateOrder(customer, models.CreateOrderRequest{CartID: "guest_1", ShippingAddress: "Nairobi", PaymentMethod: "mpesa"})
	assert.NoError(t, err)
}
