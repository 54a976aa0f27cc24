package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(newUserView(*user))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input profileInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	updated, err := handler.accountService.UpdateProfile(user.ID, input.Name, input.Email, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(newUserView(updated))
}

func (handler *Handler) UpdateProfilePicture(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input profilePictureInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	updated, err := handler.accountService.SetProfilePicture(user.ID, input.ProfilePicture, handler.now())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(newUserView(updated))
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	if err := handler.accountService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "password updated"})
}
