package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	status := "ok"
	code := fiber.StatusOK
	if err := handler.pingDatabase(); err != nil {
		log.Printf("health check database ping failed: %v", err)
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    status,
		"timestamp": handler.now().UTC().Format(time.RFC3339),
	})
}

func (handler *Handler) pingDatabase() error {
	sqlDB, err := handler.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
