package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.statsService.BuildStats(user.ID, c.Query("date"), handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(newStatsView(stats))
}
