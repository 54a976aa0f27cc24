package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/movewell/internal/models"
	"github.com/terraincognita07/movewell/internal/services"
)

func (handler *Handler) GetToday(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := handler.ledgerService.Today(user.ID, c.Query("date"), handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(newProgressView(entry))
}

func (handler *Handler) GetRange(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.ledgerService.Range(user.ID, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(newProgressViews(entries))
}

func (handler *Handler) AddSteps(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input stepsInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}
	if input.Steps == nil {
		return apiError(c, fiber.StatusBadRequest, "steps is required")
	}

	entry, err := handler.ledgerService.AddSteps(user.ID, input.Date, *input.Steps, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(newProgressView(entry))
}

func (handler *Handler) RecordWorkout(c *fiber.Ctx) error {
	return handler.recordCompletion(c, models.KindWorkout)
}

func (handler *Handler) RecordStretch(c *fiber.Ctx) error {
	return handler.recordCompletion(c, models.KindStretch)
}

func (handler *Handler) RecordWarmup(c *fiber.Ctx) error {
	return handler.recordCompletion(c, models.KindWarmup)
}

func (handler *Handler) RecordHabit(c *fiber.Ctx) error {
	return handler.recordCompletion(c, models.KindHabit)
}

func (handler *Handler) recordCompletion(c *fiber.Ctx, kind models.CompletionKind) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload completionPayload
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c)
	}
	input := payload.toInput(kind)

	var (
		result services.LedgerResult
		err    error
	)
	now := handler.now()
	switch kind {
	case models.KindWorkout:
		result, err = handler.ledgerService.RecordWorkout(user.ID, input, now)
	case models.KindStretch:
		result, err = handler.ledgerService.RecordStretch(user.ID, input, now)
	case models.KindWarmup:
		result, err = handler.ledgerService.RecordWarmup(user.ID, input, now)
	default:
		result, err = handler.ledgerService.RecordHabit(user.ID, input, now)
	}
	if err != nil {
		return serviceError(c, err)
	}

	progress := newProgressView(result.Entry)
	if kind == models.KindHabit {
		return c.JSON(fiber.Map{
			"success":  true,
			"habit":    completionView(result.Item),
			"progress": progress,
		})
	}
	return c.JSON(progress)
}

func (payload completionPayload) toInput(kind models.CompletionKind) services.CompletionInput {
	input := services.CompletionInput{
		Title:          payload.Title,
		Duration:       payload.Duration.float(),
		CaloriesBurned: payload.CaloriesBurned.float(),
		Actual:         payload.Actual.float(),
		Date:           payload.Date,
	}
	switch kind {
	case models.KindWorkout:
		input.ID = payload.WorkoutID
	case models.KindStretch:
		input.ID = payload.StretchID
	case models.KindWarmup:
		input.ID = payload.WarmupID
	case models.KindHabit:
		input.ID = payload.HabitID
	}
	return input
}
