package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"motoparts/internal/middleware"
	"motoparts/internal/models"
	"motoparts/internal/services"
)

// ProductHandler serves the catalog: products, categories and subcategories.
type ProductHandler struct {
	base
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{base: newBase(logger), service: service}
}

type categoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Category string `json:"category"`
}

// RegisterRoutes registers the catalog routes. Reads are public; writes need an admin.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, g Guards) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/manage", g.Auth, g.Admin, h.HandleCreateProduct)
	productRoutes.Patch("/:id", g.Auth, g.Admin, h.HandleUpdateProduct)
	productRoutes.Delete("/:id", g.Auth, g.Admin, h.HandleDeleteProduct)

	router.Get("/categories", h.HandleGetCategories)
	router.Post("/categories", g.Auth, g.Admin, h.HandleCreateCategory)
	router.Get("/subcategories/:categoryId", h.HandleGetSubCategories)
	router.Post("/subcategories", g.Auth, g.Admin, h.HandleCreateSubCategory)
}

// HandleGetProducts returns the whole catalog as a plain array.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return h.fail(c, err, "Could not retrieve products")
	}
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	product, err := h.service.CreateProduct(in, middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var in models.ProductInput
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	product, err := h.service.UpdateProduct(c.Params("id"), in)
	if err != nil {
		return h.fail(c, err, "Could not update product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return h.fail(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.Categories()
	if err != nil {
		return h.fail(c, err, "Could not retrieve categories")
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return c.JSON(categories)
}

func (h *ProductHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		return h.fail(c, err, "Could not create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *ProductHandler) HandleGetSubCategories(c *fiber.Ctx) error {
	subs, err := h.service.SubCategories(c.Params("categoryId"))
	if err != nil {
		return h.fail(c, err, "Could not retrieve subcategories")
	}
	if subs == nil {
		subs = []models.SubCategory{}
	}
	return c.JSON(subs)
}

func (h *ProductHandler) HandleCreateSubCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}
	if req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "category is required"})
	}
	sub, err := h.service.CreateSubCategory(req.Name, req.Category)
	if err != nil {
		return h.fail(c, err, "Could not create subcategory")
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}
