package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"motoparts/internal/middleware"
	"motoparts/internal/models"
	"motoparts/internal/services"
)

// OrderHandler handles HTTP requests for orders and payments.
type OrderHandler struct {
	base
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{base: newBase(logger), service: service}
}

type statusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// RegisterRoutes registers the order routes. The fixed paths go before /:id.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, g Guards) {
	orderRoutes := router.Group("/orders", g.Auth)
	orderRoutes.Post("/create", h.HandleCreateOrder)
	orderRoutes.Get("/my", h.HandleMyOrders)
	orderRoutes.Get("/admin/all", g.Admin, h.HandleGetOrders)
	orderRoutes.Patch("/admin/status/:id", g.Admin, h.HandleUpdateOrderStatus)
	orderRoutes.Patch("/cancel/:id", h.HandleCancelOrder)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)

	router.Post("/checkout/mpesa", g.Auth, h.HandleMpesaCheckout)
}

// HandleGetOrders lists every order, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return h.fail(c, err, "Could not retrieve orders")
	}
	return c.JSON(nonNil(orders))
}

func (h *OrderHandler) HandleMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.MyOrders(middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err, "Could not retrieve orders")
	}
	return c.JSON(nonNil(orders))
}

// HandleGetOrderByID returns one order to its owner or an admin.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Could not retrieve order")
	}
	return c.JSON(order)
}

// HandleCreateOrder turns the caller's cart into a pending order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	order, err := h.service.CreateOrder(middleware.CurrentUser(c), req)
	if err != nil {
		return h.fail(c, err, "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	order, err := h.service.CancelOrder(middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Could not cancel order")
	}
	return c.JSON(order)
}

func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req statusRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	order, err := h.service.UpdateOrderStatus(c.Params("id"), req.Status)
	if err != nil {
		return h.fail(c, err, "Could not update order status")
	}
	return c.JSON(order)
}

// HandleMpesaCheckout requests an STK push for a pending order.
func (h *OrderHandler) HandleMpesaCheckout(c *fiber.Ctx) error {
	var req models.PaymentRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	resp, err := h.service.InitiatePayment(middleware.CurrentUser(c), req)
	if err != nil {
		return h.fail(c, err, "Could not initiate payment")
	}
	return c.JSON(resp)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
