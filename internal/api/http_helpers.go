package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/movewell/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func invalidBody(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusBadRequest, "invalid request body")
}

// serviceError maps service errors to HTTP responses. Unexpected errors are
// logged and hidden behind a generic message.
func serviceError(c *fiber.Ctx, err error) error {
	var inputErr *services.InputError
	switch {
	case errors.As(err, &inputErr):
		return apiError(c, fiber.StatusBadRequest, inputErr.Message)
	case errors.Is(err, services.ErrUserNotFound):
		return apiError(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, services.ErrCurrentPasswordInvalid):
		return apiError(c, fiber.StatusUnauthorized, "current password is incorrect")
	default:
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return apiError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
