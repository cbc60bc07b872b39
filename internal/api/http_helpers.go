package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ternovka/medbell/internal/models"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func userResponse(user models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"plan":  user.Plan,
	}
}
