package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ternovka/medbell/internal/services"
)

type createPatientInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) CreatePatient(c *fiber.Ctx) error {
	caregiver, _ := currentUser(c)

	var input createPatientInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	patient, err := handler.authService.RegisterPatient(caregiver, input.Name, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusConflict, err.Error())
		default:
			return apiError(c, fiber.StatusInternalServerError, "create patient failed")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(userResponse(patient))
}

func (handler *Handler) ListPatients(c *fiber.Ctx) error {
	caregiver, _ := currentUser(c)

	patients, err := handler.repositories.Users.ListPatientsByCaregiver(caregiver.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch patients")
	}

	responses := make([]fiber.Map, 0, len(patients))
	for _, patient := range patients {
		medicines, err := handler.medicineService.ListForPatient(patient.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to fetch patients")
		}
		entry := userResponse(patient)
		entry["medicineCount"] = len(medicines)
		entry["createdAt"] = patient.CreatedAt
		responses = append(responses, entry)
	}

	return c.JSON(responses)
}
