package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"motoparts/internal/models"
	"motoparts/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	base
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{base: newBase(logger), authService: authService}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, _ Guards) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/google", h.HandleGoogleLogin)
	authRoutes.Post("/logout", h.HandleLogout)
}

// HandleRegister creates a customer account. It does not sign the user in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in models.RegisterInput
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	account, err := h.authService.RegisterUser(in)
	if err != nil {
		return h.fail(c, err, "Could not register user")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful! Please login.",
		"user":    account.SessionUser(),
	})
}

// HandleLogin checks the credentials and returns {data: {user, accessToken}}.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in models.LoginInput
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	session, err := h.authService.LoginUser(in.Email, in.Password)
	if err != nil {
		return h.fail(c, err, "Authentication failed")
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data":    session,
	})
}

// HandleGoogleLogin exchanges a Google credential for a session.
func (h *AuthHandler) HandleGoogleLogin(c *fiber.Ctx) error {
	var in models.GoogleLoginInput
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	session, err := h.authService.GoogleLogin(in.Credential)
	if err != nil {
		return h.fail(c, err, "Google login failed")
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data":    session,
	})
}

// HandleLogout acknowledges a logout. Tokens are stateless, so there is
// nothing to revoke.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out"})
}
