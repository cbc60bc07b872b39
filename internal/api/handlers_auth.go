package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ternovka/medbell/internal/models"
	"github.com/ternovka/medbell/internal/services"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PaidPlan bool   `json:"paidPlan"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.RegisterCaregiver(input.Name, input.Email, input.Password, input.PaidPlan)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "registration failed")
		}
	}

	token, err := handler.issueAuthToken(user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "registration failed")
	}
	handler.setAuthCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return apiError(c, fiber.StatusUnauthorized, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}

	token, err := handler.issueAuthToken(user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "login failed")
	}
	handler.setAuthCookie(c, token)
	return c.JSON(userResponse(user))
}

// Logout drops the session. A patient's monitor stops with it so no alert can
// fire into a dead session.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	if user, ok := currentUser(c); ok && user.Role == models.RolePatient {
		handler.dispatcher.StopMonitoring(user.ID)
	}
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
