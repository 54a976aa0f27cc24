package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/movewell/internal/models"
	"github.com/terraincognita07/movewell/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	user, err := handler.authService.Register(services.RegistrationInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return handler.respondWithToken(c, fiber.StatusCreated, user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	now := handler.now()
	limiterKey := loginLimiterKey(c, input.Email)
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptsWindow)
		}
		return serviceError(c, err)
	}
	handler.loginLimiter.reset(limiterKey)
	return handler.respondWithToken(c, fiber.StatusOK, user)
}

func (handler *Handler) respondWithToken(c *fiber.Ctx, status int, user models.User) error {
	token, err := handler.buildToken(&user)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(status).JSON(fiber.Map{
		"token":     token,
		"expiresAt": tokenExpiry(handler.tokenTTL, handler.now()),
		"user":      newUserView(user),
	})
}
