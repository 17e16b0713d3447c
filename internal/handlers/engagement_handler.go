package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"motoparts/internal/middleware"
	"motoparts/internal/models"
	"motoparts/internal/services"
)

// EngagementHandler serves reviews and wishlists.
type EngagementHandler struct {
	base
	service *services.EngagementService
}

// NewEngagementHandler creates a new EngagementHandler.
func NewEngagementHandler(service *services.EngagementService, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{base: newBase(logger), service: service}
}

type wishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// RegisterRoutes registers the review and wishlist routes.
func (h *EngagementHandler) RegisterRoutes(router fiber.Router, g Guards) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/product/:productId", h.HandleProductReviews)
	reviewRoutes.Post("/", g.Auth, h.HandleCreateReview)
	reviewRoutes.Patch("/:id", g.Auth, h.HandleUpdateReview)
	reviewRoutes.Delete("/:id", g.Auth, h.HandleDeleteReview)

	wishlistRoutes := router.Group("/wishlists", g.Auth)
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/", h.HandleAddToWishlist)
	wishlistRoutes.Delete("/", h.HandleClearWishlist)
	wishlistRoutes.Delete("/:productId", h.HandleRemoveFromWishlist)
}

func (h *EngagementHandler) HandleProductReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ProductReviews(c.Params("productId"))
	if err != nil {
		return h.fail(c, err, "Could not retrieve reviews")
	}
	return c.JSON(nonNil(reviews))
}

func (h *EngagementHandler) HandleCreateReview(c *fiber.Ctx) error {
	var in models.ReviewInput
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	review, err := h.service.CreateReview(middleware.CurrentUser(c), in)
	if err != nil {
		return h.fail(c, err, "Could not create review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *EngagementHandler) HandleUpdateReview(c *fiber.Ctx) error {
	var in models.ReviewInput
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	review, err := h.service.UpdateReview(middleware.CurrentUser(c), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err, "Could not update review")
	}
	return c.JSON(review)
}

func (h *EngagementHandler) HandleDeleteReview(c *fiber.Ctx) error {
	if err := h.service.DeleteReview(middleware.CurrentUser(c), c.Params("id")); err != nil {
		return h.fail(c, err, "Could not delete review")
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}

func (h *EngagementHandler) HandleGetWishlist(c *fiber.Ctx) error {
	w, err := h.service.Wishlist(middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err, "Could not retrieve wishlist")
	}
	return c.JSON(w)
}

func (h *EngagementHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	var req wishlistRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	w, err := h.service.AddToWishlist(middleware.CurrentUser(c).ID, req.ProductID)
	if err != nil {
		return h.fail(c, err, "Could not update wishlist")
	}
	return c.JSON(w)
}

func (h *EngagementHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	w, err := h.service.RemoveFromWishlist(middleware.CurrentUser(c).ID, c.Params("productId"))
	if err != nil {
		return h.fail(c, err, "Could not update wishlist")
	}
	return c.JSON(w)
}

func (h *EngagementHandler) HandleClearWishlist(c *fiber.Ctx) error {
	if err := h.service.ClearWishlist(middleware.CurrentUser(c).ID); err != nil {
		return h.fail(c, err, "Could not clear wishlist")
	}
	return c.JSON(fiber.Map{"message": "Wishlist cleared"})
}
