package api

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/ternovka/medbell/internal/models"
	"github.com/ternovka/medbell/internal/services"
)

type medicineInput struct {
	PatientID     uint     `json:"patientId"`
	Name          string   `json:"name"`
	DoseTime      string   `json:"doseTime"`
	Stock         *int     `json:"stock"`
	Instructions  string   `json:"instructions"`
	VoiceNoteRef  string   `json:"voiceNoteRef"`
	ScheduleKind  string   `json:"scheduleKind"`
	ScheduleDays  []int    `json:"scheduleDays"`
	ScheduleDates []string `json:"scheduleDates"`
}

func (input medicineInput) toServiceInput() services.MedicineInput {
	return services.MedicineInput{
		PatientID:     input.PatientID,
		Name:          input.Name,
		DoseTime:      input.DoseTime,
		Stock:         input.Stock,
		Instructions:  input.Instructions,
		VoiceNoteRef:  input.VoiceNoteRef,
		ScheduleKind:  input.ScheduleKind,
		ScheduleDays:  input.ScheduleDays,
		ScheduleDates: input.ScheduleDates,
	}
}

func (handler *Handler) CreateMedicine(c *fiber.Ctx) error {
	caregiver, _ := currentUser(c)

	var input medicineInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	patient, found, err := handler.repositories.Users.FindByID(input.PatientID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "create medicine failed")
	}
	if !found || patient.Role != models.RolePatient || patient.CaregiverID == nil || *patient.CaregiverID != caregiver.ID {
		return apiError(c, fiber.StatusNotFound, "patient not found")
	}

	medicine, err := handler.medicineService.CreateMedicine(caregiver, input.toServiceInput())
	if err != nil {
		return medicineError(c, err, "create medicine failed")
	}
	return c.Status(fiber.StatusCreated).JSON(medicine)
}

func (handler *Handler) ListMedicines(c *fiber.Ctx) error {
	caregiver, _ := currentUser(c)

	medicines, err := handler.medicineService.ListForCaregiver(caregiver.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch medicines")
	}
	return c.JSON(medicines)
}

func (handler *Handler) UpdateMedicine(c *fiber.Ctx) error {
	caregiver, _ := currentUser(c)

	medicineID, err := c.ParamsInt("id")
	if err != nil || medicineID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid medicine id")
	}

	var input medicineInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	medicine, err := handler.medicineService.UpdateMedicine(caregiver.ID, uint(medicineID), input.toServiceInput())
	if err != nil {
		return medicineError(c, err, "update medicine failed")
	}
	return c.JSON(medicine)
}

func (handler *Handler) DeleteMedicine(c *fiber.Ctx) error {
	caregiver, _ := currentUser(c)

	medicineID, err := c.ParamsInt("id")
	if err != nil || medicineID <= 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid medicine id")
	}

	if err := handler.medicineService.DeleteMedicine(caregiver.ID, uint(medicineID)); err != nil {
		return medicineError(c, err, "delete medicine failed")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ListMyMedicines is the patient-facing list: sorted by dose time, with the
// status flags the patient dashboard shows.
func (handler *Handler) ListMyMedicines(c *fiber.Ctx) error {
	patient, _ := currentUser(c)

	medicines, err := handler.medicineService.ListForPatient(patient.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch medicines")
	}

	sort.SliceStable(medicines, func(i, j int) bool {
		return medicines[i].DoseTime < medicines[j].DoseTime
	})

	now := handler.clock.Now()
	today := services.DateKey(now, handler.location)

	responses := make([]fiber.Map, 0, len(medicines))
	for _, medicine := range medicines {
		responses = append(responses, fiber.Map{
			"id":           medicine.ID,
			"name":         medicine.Name,
			"doseTime":     medicine.DoseTime,
			"stock":        medicine.Stock,
			"scheduleKind": medicine.ScheduleKind,
			"dueToday":     services.IsDueOn(services.MedicineSchedule(medicine), now, handler.location),
			"takenToday":   services.TakenOn(medicine, today),
			"lowStock":     medicine.Stock <= services.LowStockThreshold,
		})
	}
	return c.JSON(responses)
}

func medicineError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrPlanLimitExceeded):
		return apiError(c, fiber.StatusPaymentRequired, err.Error())
	case errors.Is(err, services.ErrMedicineNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotMedicineOwner):
		return apiError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrInvalidSchedule),
		errors.Is(err, services.ErrInvalidDoseTime),
		errors.Is(err, services.ErrInvalidMedicineName),
		errors.Is(err, services.ErrInvalidStock),
		errors.Is(err, services.ErrInstructionsConflict):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}
