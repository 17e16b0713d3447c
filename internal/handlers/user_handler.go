package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"motoparts/internal/middleware"
	"motoparts/internal/models"
	"motoparts/internal/services"
)

// UserHandler serves account administration and the caller's own profile.
type UserHandler struct {
	base
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{base: newBase(logger), authService: authService}
}

// RegisterRoutes registers the user routes. /me is registered before /:id.
func (h *UserHandler) RegisterRoutes(router fiber.Router, g Guards) {
	userRoutes := router.Group("/users", g.Auth)
	userRoutes.Get("/me", h.HandleMe)
	userRoutes.Get("/", g.Admin, h.HandleGetUsers)
	userRoutes.Post("/create-admin", g.Admin, h.HandleCreateAdmin)
	userRoutes.Get("/:id", g.Admin, h.HandleGetUser)
	userRoutes.Put("/:id", g.Admin, h.HandleUpdateUser)
	userRoutes.Delete("/:id", g.Admin, h.HandleDeleteUser)
}

func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(middleware.CurrentUser(c).ID)
	if err != nil {
		return h.fail(c, err, "Could not retrieve profile")
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		return h.fail(c, err, "Could not retrieve users")
	}
	return c.JSON(fiber.Map{"data": nonNil(users)})
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Could not retrieve user")
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) HandleCreateAdmin(c *fiber.Ctx) error {
	var in models.AdminInput
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	account, err := h.authService.CreateAdmin(in)
	if err != nil {
		return h.fail(c, err, "Could not create admin")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin created",
		"data":    account.Record(),
	})
}

func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var upd models.UserUpdate
	if ok, err := h.bind(c, &upd); !ok {
		return err
	}
	user, err := h.authService.UpdateUser(c.Params("id"), upd)
	if err != nil {
		return h.fail(c, err, "Could not update user")
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.authService.DeleteUser(middleware.CurrentUser(c).ID, c.Params("id")); err != nil {
		return h.fail(c, err, "Could not delete user")
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
