package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ternovka/medbell/internal/models"
)

const contextUserKey = "currentUser"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

func (handler *Handler) CaregiverOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.Role != models.RoleCaregiver {
		return apiError(c, fiber.StatusForbidden, "caregiver access required")
	}
	return c.Next()
}

func (handler *Handler) PatientOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok || user.Role != models.RolePatient {
		return apiError(c, fiber.StatusForbidden, "patient access required")
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}
