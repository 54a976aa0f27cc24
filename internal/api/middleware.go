package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/movewell/internal/models"
	"github.com/terraincognita07/movewell/internal/observability"
	"github.com/terraincognita07/movewell/internal/services"
)

const contextUserKey = "current_user"

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if errors.Is(err, errInvalidToken) || errors.Is(err, services.ErrUserNotFound) {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return serviceError(c, err)
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

func (handler *Handler) WriteRateLimited(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !handler.writeLimiter.allow(user.ID) {
		observability.RecordRateLimited()
		return apiError(c, fiber.StatusTooManyRequests, "too many requests, slow down")
	}
	return c.Next()
}

// RequestMetrics records latency per route template, so ids in paths do not
// explode label cardinality.
func RequestMetrics(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	observability.ObserveHTTPRequest(c.Route().Path, c.Method(), status, time.Since(started))
	return err
}
