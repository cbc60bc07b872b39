package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ternovka/medbell/internal/services"
)

func (handler *Handler) StartMonitoring(c *fiber.Ctx) error {
	patient, _ := currentUser(c)

	if err := handler.dispatcher.StartMonitoring(patient.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "start monitoring failed")
	}
	return c.JSON(fiber.Map{"monitoring": true})
}

func (handler *Handler) StopMonitoring(c *fiber.Ctx) error {
	patient, _ := currentUser(c)

	handler.dispatcher.StopMonitoring(patient.ID)
	return c.JSON(fiber.Map{"monitoring": false})
}

// CurrentAlert returns the open alert, or alert:null while nothing is due.
func (handler *Handler) CurrentAlert(c *fiber.Ctx) error {
	patient, _ := currentUser(c)

	alert, open := handler.dispatcher.CurrentAlert(patient.ID)
	if !open {
		return c.JSON(fiber.Map{"alert": nil})
	}
	return c.JSON(fiber.Map{"alert": alert})
}

func (handler *Handler) ConfirmTaken(c *fiber.Ctx) error {
	patient, _ := currentUser(c)

	result, confirmed, err := handler.dispatcher.ConfirmTaken(patient.ID)
	if err != nil {
		if errors.Is(err, services.ErrMedicineNotFound) {
			return apiError(c, fiber.StatusNotFound, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "confirm failed")
	}
	if !confirmed {
		return c.JSON(fiber.Map{"confirmed": false})
	}
	return c.JSON(fiber.Map{
		"confirmed": true,
		"stock":     result.NewStock,
		"lowStock":  result.LowStock,
	})
}

func (handler *Handler) DismissAlert(c *fiber.Ctx) error {
	patient, _ := currentUser(c)

	dismissed := handler.dispatcher.DismissAlert(patient.ID)
	return c.JSON(fiber.Map{"dismissed": dismissed})
}
