package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"motoparts/internal/repositories"
	"motoparts/internal/services"
)

// Guards are the middlewares protecting authenticated and admin routes.
type Guards struct {
	Auth  fiber.Handler
	Admin fiber.Handler
}

// base carries what every handler needs.
type base struct {
	validate *validator.Validate
	logger   *zap.Logger
}

func newBase(logger *zap.Logger) base {
	if logger == nil {
		logger = zap.NewNop()
	}
	return base{validate: validator.New(), logger: logger}
}

// bind parses the JSON body into v and validates it. When it returns false
// the error response has already been written.
func (b base) bind(c *fiber.Ctx, v any) (bool, error) {
	if err := c.BodyParser(v); err != nil {
		b.logger.Debug("invalid request body", zap.String("path", c.Path()), zap.Error(err))
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := b.validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}

// fail maps a service error onto a status. Client errors carry the error
// text as the message; anything else gets the generic one.
func (b base) fail(c *fiber.Ctx, err error, message string) error {
	status := statusOf(err)
	if status == fiber.StatusInternalServerError {
		b.logger.Error(message, zap.String("path", c.Path()), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
	b.logger.Debug(message, zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
