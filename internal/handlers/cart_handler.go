package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"motoparts/internal/services"
)

// CartHandler serves carts keyed by the client-chosen cart id. Guests have
// carts too, so none of these routes require a token.
type CartHandler struct {
	base
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{base: newBase(logger), service: service}
}

type cartRequest struct {
	CartID    string `json:"cartId" validate:"required"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router, _ Guards) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddItem)
	cartRoutes.Patch("/update", h.HandleUpdateItem)
	cartRoutes.Delete("/remove", h.HandleRemoveItem)
	cartRoutes.Delete("/clear", h.HandleClearCart)
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cartID := c.Query("cartId")
	if cartID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cartId is required"})
	}
	cart, err := h.service.GetCart(cartID)
	if err != nil {
		return h.fail(c, err, "Could not retrieve cart")
	}
	return c.JSON(cart)
}

// lineRequest binds a body that must name a product.
func (h *CartHandler) lineRequest(c *fiber.Ctx) (cartRequest, bool, error) {
	var req cartRequest
	if ok, err := h.bind(c, &req); !ok {
		return req, false, err
	}
	if req.ProductID == "" {
		return req, false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productId is required"})
	}
	return req, true, nil
}

func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	req, ok, err := h.lineRequest(c)
	if !ok {
		return err
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	cart, err := h.service.AddItem(req.CartID, req.ProductID, req.Quantity)
	if err != nil {
		return h.fail(c, err, "Could not add item to cart")
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	req, ok, err := h.lineRequest(c)
	if !ok {
		return err
	}
	cart, err := h.service.UpdateItem(req.CartID, req.ProductID, req.Quantity)
	if err != nil {
		return h.fail(c, err, "Could not update cart item")
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	req, ok, err := h.lineRequest(c)
	if !ok {
		return err
	}
	cart, err := h.service.RemoveItem(req.CartID, req.ProductID)
	if err != nil {
		return h.fail(c, err, "Could not remove cart item")
	}
	return c.JSON(cart)
}

func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	var req cartRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	if err := h.service.Clear(req.CartID); err != nil {
		return h.fail(c, err, "Could not clear cart")
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
